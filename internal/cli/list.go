package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/rantnar/nala/internal/ui"
	"github.com/rantnar/nala/pkg/apt"
)

var (
	listInstalled  bool
	listUpgradable bool
	listVirtual    bool
)

var listCmd = &cobra.Command{
	Use:   "list [package]...",
	Short: "List packages, optionally filtered by name or glob",
	Args:  cobra.ArbitraryArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVarP(&listInstalled, "installed", "i", false,
		"only list installed packages")
	listCmd.Flags().BoolVarP(&listUpgradable, "upgradable", "u", false,
		"only list packages with a pending upgrade")
	listCmd.Flags().BoolVarP(&listVirtual, "virtual", "V", false,
		"only list virtual packages")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cache, err := openCache(ctx)
	if err != nil {
		return err
	}

	if listUpgradable {
		return listUpgrades(ctx, cache)
	}
	if listVirtual {
		return listVirtuals(ctx, cache, args)
	}

	installed, err := cache.Installed(ctx)
	if err != nil {
		return err
	}

	var pkgs []apt.Package
	if listInstalled && len(args) == 0 {
		for _, pkg := range installed {
			pkgs = append(pkgs, pkg)
		}
	} else {
		var known []apt.Package
		err = ui.WithSpinner("Reading package records...", func() error {
			var derr error
			known, derr = cache.Engine().Dump(ctx)
			return derr
		})
		if err != nil {
			return err
		}

		wanted, err := selectionSet(cache, args)
		if err != nil {
			return err
		}
		for _, pkg := range known {
			if wanted != nil {
				if _, ok := wanted[pkg.Name]; !ok {
					continue
				}
			}
			if inst, ok := installed[pkg.Name]; ok {
				pkg.Installed = inst.Installed
			} else if listInstalled {
				continue
			}
			pkgs = append(pkgs, pkg)
		}
	}

	if len(pkgs) == 0 {
		return fmt.Errorf("nothing was found to list")
	}
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].Name < pkgs[j].Name })
	ui.PrintPackages(pkgs)
	return nil
}

// selectionSet expands the name arguments into a membership set; nil means
// no filtering.
func selectionSet(cache *apt.Cache, args []string) (map[string]struct{}, error) {
	if len(args) == 0 {
		return nil, nil
	}
	names, err := cache.GlobFilter(cfg.ResolveAliases(args))
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set, nil
}

// listVirtuals lists names the engine knows but has no records for.
func listVirtuals(ctx context.Context, cache *apt.Cache, args []string) error {
	known, err := cache.Engine().Dump(ctx)
	if err != nil {
		return err
	}
	real := make(map[string]struct{}, len(known))
	for _, pkg := range known {
		real[pkg.Name] = struct{}{}
	}

	wanted, err := selectionSet(cache, args)
	if err != nil {
		return err
	}

	found := false
	for _, name := range cache.Names() {
		if _, ok := real[name]; ok {
			continue
		}
		if wanted != nil {
			if _, ok := wanted[name]; !ok {
				continue
			}
		}
		found = true
		ui.Println("%s %s", ui.PackageName.Sprint(name), ui.Muted.Sprint("(virtual package)"))
	}
	if !found {
		return fmt.Errorf("nothing was found to list")
	}
	return nil
}

// listUpgrades renders the pending upgrades with both versions.
func listUpgrades(ctx context.Context, cache *apt.Cache) error {
	cs, err := cache.Upgradable(ctx)
	if err != nil {
		return err
	}

	pkgs := upgradeView(cs)
	if len(pkgs) == 0 {
		ui.SuccessMsg("Everything is up to date")
		return nil
	}
	ui.PrintPackages(pkgs)
	return nil
}

// upgradeView converts the pending upgrades into displayable packages.
// The update command's "can be upgraded" count reports this same set.
func upgradeView(cs *apt.Changeset) []apt.Package {
	pkgs := make([]apt.Package, 0, len(cs.Upgrade))
	for _, ch := range cs.Upgrade {
		pkgs = append(pkgs, apt.Package{
			Name:      ch.Name,
			Installed: ch.Current,
			Candidate: ch.Target,
		})
	}
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].Name < pkgs[j].Name })
	return pkgs
}
