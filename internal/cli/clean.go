package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rantnar/nala/internal/config"
	"github.com/rantnar/nala/internal/executor"
	"github.com/rantnar/nala/internal/ui"
)

var cleanLists bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clear out the local archive of downloaded package files",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func init() {
	cleanCmd.Flags().BoolVar(&cleanLists, "lists", false,
		"clear the package list cache instead of the archive")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	if cfg.General.DryRun {
		announceClean(cfg.Paths, cleanLists)
		return nil
	}
	if !executor.IsRoot() {
		ui.WarningMsg("Not running as root; removal of system caches may fail")
	}
	if err := cleanPaths(cfg.Paths, cleanLists); err != nil {
		return err
	}
	if cleanLists {
		ui.SuccessMsg("Package lists have been cleaned")
	} else {
		ui.SuccessMsg("Package archives have been cleaned")
	}
	return nil
}

// cleanPaths removes the engine's cached files. With lists set, only the
// package list cache goes; otherwise only the downloaded archives and the
// binary caches do.
func cleanPaths(paths config.PathsConfig, lists bool) error {
	if lists {
		for _, dir := range []string{paths.ListsDir, paths.ListsPartialDir} {
			if err := emptyDir(dir); err != nil {
				return err
			}
		}
		return nil
	}

	for _, dir := range []string{paths.ArchiveDir, paths.PartialDir} {
		if err := emptyDir(dir); err != nil {
			return err
		}
	}
	for _, file := range []string{paths.PackageCache, paths.SourcePackageCache} {
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing %s: %w", file, err)
		}
	}
	return nil
}

// emptyDir removes the plain files directly inside dir, leaving the
// directory itself and any subdirectories in place. A missing dir is fine.
func emptyDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("removing %s: %w", path, err)
		}
	}
	return nil
}

func announceClean(paths config.PathsConfig, lists bool) {
	if lists {
		ui.InfoMsg("Dry run: would remove files under %s and %s",
			paths.ListsDir, paths.ListsPartialDir)
		return
	}
	ui.InfoMsg("Dry run: would remove files under %s and %s, plus %s and %s",
		paths.ArchiveDir, paths.PartialDir, paths.PackageCache, paths.SourcePackageCache)
}
