package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rantnar/nala/internal/history"
	"github.com/rantnar/nala/pkg/apt"
)

var removeCmd = &cobra.Command{
	Use:     "remove <package>...",
	Aliases: []string{"rm"},
	Short:   "Remove packages",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRemove(args, false)
	},
}

var purgeCmd = &cobra.Command{
	Use:   "purge <package>...",
	Short: "Remove packages along with their configuration files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRemove(args, true)
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(purgeCmd)
}

func runRemove(args []string, purge bool) error {
	ctx := context.Background()

	cache, err := openCache(ctx)
	if err != nil {
		return err
	}
	names, err := resolveNames(ctx, cache, args)
	if err != nil {
		return err
	}

	op := history.OpRemove
	if purge {
		op = history.OpPurge
	}
	tx := apt.Transaction{
		Remove:     names,
		Purge:      purge,
		AutoRemove: cfg.General.AutoRemove,
	}
	return planAndApply(ctx, op, tx)
}
