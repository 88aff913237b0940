package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rantnar/nala/internal/ui"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the package list cache",
	Args:  cobra.NoArgs,
	RunE:  runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if err := engine.Refresh(ctx); err != nil {
		return err
	}
	ui.SuccessMsg("Package lists updated")

	reportUpgradable(ctx)
	return nil
}

// reportUpgradable tells the user how many upgrades are pending. Failures
// here never fail the update itself.
func reportUpgradable(ctx context.Context) {
	cs, err := engine.Plan(ctx, upgradeTransaction(nil))
	if err != nil {
		return
	}
	total := len(upgradeView(cs))
	if total == 0 {
		return
	}
	ui.InfoMsg("%d packages can be upgraded. Run 'nala list --upgradable' to see them.", total)
}
