package cli

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/spf13/cobra"

	"github.com/rantnar/nala/internal/ui"
	"github.com/rantnar/nala/pkg/apt"
)

var (
	searchNamesOnly  bool
	searchInstalled  bool
	searchUpgradable bool
	searchVirtual    bool
	searchFull       bool
)

var searchCmd = &cobra.Command{
	Use:   "search <pattern>",
	Short: "Search package names and descriptions with a regex",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().BoolVarP(&searchNamesOnly, "names", "N", false,
		"match against package names only")
	searchCmd.Flags().BoolVarP(&searchInstalled, "installed", "i", false,
		"only show installed packages")
	searchCmd.Flags().BoolVarP(&searchUpgradable, "upgradable", "u", false,
		"only show upgradable packages")
	searchCmd.Flags().BoolVarP(&searchVirtual, "virtual", "V", false,
		"only show virtual packages")
	searchCmd.Flags().BoolVar(&searchFull, "full", false,
		"print untruncated descriptions, one block per match")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	re, err := compileSearchPattern(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()
	cache, err := openCache(ctx)
	if err != nil {
		return err
	}

	var known []apt.Package
	err = ui.WithSpinner("Searching...", func() error {
		var derr error
		known, derr = cache.Engine().Dump(ctx)
		return derr
	})
	if err != nil {
		return err
	}

	if searchVirtual {
		return printVirtualMatches(re, cache, known)
	}

	installed, err := cache.Installed(ctx)
	if err != nil {
		return err
	}

	var upgradable map[string]struct{}
	if searchUpgradable {
		cs, err := cache.Upgradable(ctx)
		if err != nil {
			return err
		}
		upgradable = make(map[string]struct{})
		for _, name := range cs.UpgradableNames() {
			upgradable[name] = struct{}{}
		}
	}

	var matches []apt.Package
	for _, pkg := range known {
		if !matchPackage(re, pkg, searchNamesOnly) {
			continue
		}
		if inst, ok := installed[pkg.Name]; ok {
			pkg.Installed = inst.Installed
		} else if searchInstalled {
			continue
		}
		if searchUpgradable {
			if _, ok := upgradable[pkg.Name]; !ok {
				continue
			}
		}
		matches = append(matches, pkg)
	}

	if len(matches) == 0 {
		return fmt.Errorf("%q was not found", args[0])
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Name < matches[j].Name })
	if searchFull {
		printFullMatches(matches)
		return nil
	}
	ui.PrintPackages(matches)
	return nil
}

// printFullMatches renders one block per match with the whole description.
func printFullMatches(matches []apt.Package) {
	for i, pkg := range matches {
		if i > 0 {
			fmt.Println()
		}
		name := ui.PackageName.Sprint(pkg.Name)
		if pkg.IsInstalled() {
			name += " " + ui.Installed.Sprint("[installed "+pkg.Installed+"]")
		}
		ui.Println("%s", name)
		ui.MutedMsg("  %s", pkg.Description)
	}
}

// compileSearchPattern builds the case-insensitive matcher. A bare "*"
// means everything; an invalid expression is the user's error to fix.
func compileSearchPattern(query string) (*regexp.Regexp, error) {
	if query == "*" {
		query = ".*"
	}
	re, err := regexp.Compile("(?i)" + query)
	if err != nil {
		return nil, fmt.Errorf("failed to compile regex pattern %q: %w", query, err)
	}
	return re, nil
}

func matchPackage(re *regexp.Regexp, pkg apt.Package, namesOnly bool) bool {
	if re.MatchString(pkg.Name) {
		return true
	}
	return !namesOnly && re.MatchString(pkg.Description)
}

// printVirtualMatches lists names the engine knows but has no records
// for. Those are the purely virtual ones.
func printVirtualMatches(re *regexp.Regexp, cache *apt.Cache, known []apt.Package) error {
	real := make(map[string]struct{}, len(known))
	for _, pkg := range known {
		real[pkg.Name] = struct{}{}
	}

	found := false
	for _, name := range cache.Names() {
		if _, ok := real[name]; ok {
			continue
		}
		if !re.MatchString(name) {
			continue
		}
		found = true
		ui.Println("%s %s", ui.PackageName.Sprint(name), ui.Muted.Sprint("(virtual package)"))
	}
	if !found {
		return fmt.Errorf("no virtual packages match the pattern")
	}
	return nil
}
