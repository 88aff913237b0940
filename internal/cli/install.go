package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rantnar/nala/internal/history"
	"github.com/rantnar/nala/internal/ui"
	"github.com/rantnar/nala/pkg/apt"
)

var (
	installNoRecommends bool
	installSuggests     bool
	installDownloadOnly bool
	installPurge        bool
)

var installCmd = &cobra.Command{
	Use:   "install <package>...",
	Short: "Install packages or local .deb files",
	Long: `Install packages from the configured repositories, or local .deb
files given by path. Names may contain shell-style globs, and virtual
package names are resolved to their providers.`,
	Args: cobra.ArbitraryArgs,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().BoolVar(&installNoRecommends, "no-install-recommends", false,
		"do not install recommended packages")
	installCmd.Flags().BoolVar(&installSuggests, "install-suggests", false,
		"also install suggested packages")
	installCmd.Flags().BoolVarP(&installDownloadOnly, "download-only", "d", false,
		"download packages without unpacking or installing")
	installCmd.Flags().BoolVar(&installPurge, "purge", false,
		"purge any packages the transaction removes")
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(fixBrokenCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if len(args) == 0 {
		if cfg.General.FixBroken {
			return runFixBroken(cmd, args)
		}
		return ErrNoPackages
	}

	handler := apt.NewPackageHandler()
	names := handler.SplitLocal(args)
	if len(handler.NotFound) > 0 {
		return &apt.NotFoundError{Names: handler.NotFound}
	}

	if len(names) > 0 {
		cache, err := openCache(ctx)
		if err != nil {
			return err
		}
		names, err = resolveNames(ctx, cache, names)
		if err != nil {
			return err
		}
	}

	tx := apt.Transaction{
		Install:      names,
		LocalDebs:    handler.LocalDebs,
		Purge:        installPurge,
		AutoRemove:   cfg.General.AutoRemove,
		FixBroken:    cfg.General.FixBroken,
		DownloadOnly: installDownloadOnly,
		NoRecommends: installNoRecommends || !cfg.Apt.InstallRecommends,
		WithSuggests: installSuggests || cfg.Apt.InstallSuggests,
	}
	return planAndApply(ctx, history.OpInstall, tx)
}

var fixBrokenCmd = &cobra.Command{
	Use:   "fix-broken",
	Short: "Repair a broken install state",
	Args:  cobra.NoArgs,
	RunE:  runFixBroken,
}

func runFixBroken(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	ui.InfoMsg("Asking the engine to repair the install state")
	return planAndApply(ctx, history.OpInstall, apt.Transaction{FixBroken: true})
}
