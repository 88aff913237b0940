package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rantnar/nala/internal/ui"
	"github.com/rantnar/nala/pkg/apt"
)

var showAllVersions bool

var showCmd = &cobra.Command{
	Use:   "show <package>...",
	Short: "Show detailed information about packages",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVarP(&showAllVersions, "all-versions", "a", false,
		"show a record for every available version")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cache, err := openCache(ctx)
	if err != nil {
		return err
	}
	names, err := resolveNames(ctx, cache, args)
	if err != nil {
		return err
	}

	var notFound []string
	additional := 0
	printed := 0

	for _, name := range names {
		records, err := cache.Engine().Show(ctx, name)
		if err != nil {
			var nf *apt.NotFoundError
			if errors.As(err, &nf) {
				notFound = append(notFound, nf.Names...)
				continue
			}
			return err
		}
		if len(records) == 0 {
			notFound = append(notFound, name)
			continue
		}

		show := records
		if !showAllVersions {
			show = records[:1]
			additional += len(records) - 1
		}
		for _, rec := range show {
			if printed > 0 {
				fmt.Println()
			}
			ui.PrintRecord(rec)
			printed++
		}
	}

	if additional > 0 {
		ui.MutedMsg("There are %d additional records. Use the --all-versions switch to see them.", additional)
	}
	if len(notFound) > 0 {
		return &apt.NotFoundError{Names: notFound}
	}
	return nil
}
