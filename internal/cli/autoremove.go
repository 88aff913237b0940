package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rantnar/nala/internal/history"
	"github.com/rantnar/nala/pkg/apt"
)

var autoremoveCmd = &cobra.Command{
	Use:   "autoremove",
	Short: "Remove packages that were installed as dependencies and are no longer needed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAutoRemove(false)
	},
}

var autopurgeCmd = &cobra.Command{
	Use:   "autopurge",
	Short: "Autoremove orphaned packages and purge their configuration files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAutoRemove(true)
	},
}

func init() {
	rootCmd.AddCommand(autoremoveCmd)
	rootCmd.AddCommand(autopurgeCmd)
}

func runAutoRemove(purge bool) error {
	ctx := context.Background()
	tx := apt.Transaction{
		AutoRemove: true,
		Purge:      purge,
	}
	return planAndApply(ctx, history.OpAutoRemove, tx)
}
