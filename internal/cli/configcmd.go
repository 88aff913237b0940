package cli

import (
	"github.com/spf13/cobra"

	"github.com/rantnar/nala/internal/config"
	"github.com/rantnar/nala/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage nala's configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the active configuration to the config file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// runConfigInit persists the active configuration, flag overrides
// included, so it becomes the default for future runs.
func runConfigInit(cmd *cobra.Command, args []string) error {
	if err := cfg.Save(); err != nil {
		return err
	}
	ui.SuccessMsg("Wrote %s", config.ConfigPath())
	return nil
}
