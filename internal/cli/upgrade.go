package cli

import (
	"context"
	"errors"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rantnar/nala/internal/history"
	"github.com/rantnar/nala/internal/ui"
	"github.com/rantnar/nala/pkg/apt"
)

var (
	upgradeExclude  []string
	upgradeFull     bool
	upgradeNoUpdate bool
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade installed packages",
	Args:  cobra.NoArgs,
	RunE:  runUpgrade,
}

func init() {
	upgradeCmd.Flags().StringSliceVar(&upgradeExclude, "exclude", nil,
		"package names or globs to hold back from this upgrade")
	upgradeCmd.Flags().BoolVar(&upgradeFull, "full", true,
		"allow installing and removing packages during the upgrade")
	upgradeCmd.Flags().BoolVar(&upgradeNoUpdate, "no-update", false,
		"skip refreshing the package lists first")
	rootCmd.AddCommand(upgradeCmd)
}

func runUpgrade(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if !upgradeNoUpdate {
		if err := engine.Refresh(ctx); err != nil {
			return err
		}
	}

	tx := upgradeTransaction(nil)
	if cmd.Flags().Changed("full") {
		tx.Full = upgradeFull
	}

	cs, err := engine.Plan(ctx, tx)
	if err != nil {
		return err
	}

	if len(upgradeExclude) == 0 {
		return applyPlanned(ctx, history.OpUpgrade, tx, cs, nil)
	}
	return upgradeExcluding(ctx, cs)
}

// upgradeExcluding re-plans the upgrade as an explicit install of every
// upgradable package that no exclusion pattern matched. When the narrowed
// plan breaks, the user is offered exactly once to also exclude the
// packages the solver named and retry.
func upgradeExcluding(ctx context.Context, full *apt.Changeset) error {
	keep, handler := splitExcluded(upgradeExclude, full)
	if protected := handler.ProtectedNames(); len(protected) > 0 {
		sort.Strings(protected)
		ui.InfoMsg("Holding back: %s", strings.Join(protected, ", "))
	}
	if len(keep) == 0 {
		ui.SuccessMsg("Nothing to do. Every pending upgrade is excluded.")
		return nil
	}

	tx := upgradeTransaction(keep)
	cs, err := engine.Plan(ctx, tx)
	if err == nil {
		return applyPlanned(ctx, history.OpUpgrade, tx, cs, nil)
	}

	var broken *apt.BrokenError
	if !errors.As(err, &broken) {
		return err
	}

	var more []string
	for _, name := range brokenNames(broken, full.Held) {
		if !handler.IsProtected(name) {
			more = append(more, name)
		}
	}
	if len(more) == 0 {
		return err
	}

	ui.WarningMsg("The narrowed upgrade cannot be resolved. These packages are in the way:")
	for _, name := range more {
		ui.MutedMsg("  %s", name)
	}
	if !cfg.General.AssumeYes {
		ok, cerr := ui.Confirm("Exclude these packages as well and try again?", true)
		if cerr != nil || !ok {
			return err
		}
	}

	handler.Protect(more...)
	var narrowed []string
	for _, name := range keep {
		if !handler.IsProtected(name) {
			narrowed = append(narrowed, name)
		}
	}
	if len(narrowed) == 0 {
		ui.SuccessMsg("Nothing to do. Every pending upgrade is excluded.")
		return nil
	}
	tx = upgradeTransaction(narrowed)
	cs, err = engine.Plan(ctx, tx)
	if err != nil {
		return err
	}
	return applyPlanned(ctx, history.OpUpgrade, tx, cs, nil)
}

// upgradeTransaction builds either the whole-system upgrade or, when
// install names are given, the equivalent explicit install.
func upgradeTransaction(install []string) apt.Transaction {
	tx := apt.Transaction{
		AutoRemove:   cfg.General.AutoRemove,
		FixBroken:    cfg.General.FixBroken,
		NoRecommends: !cfg.Apt.InstallRecommends,
		WithSuggests: cfg.Apt.InstallSuggests,
	}
	if len(install) > 0 {
		tx.Install = install
	} else {
		tx.Upgrade = true
		tx.Full = cfg.General.FullUpgrade
	}
	return tx
}

// splitExcluded partitions the planned changes into names to keep and a
// handler carrying the protected set for the rest of the flow.
func splitExcluded(patterns []string, cs *apt.Changeset) ([]string, *apt.PackageHandler) {
	var names []string
	for _, group := range [][]apt.Change{cs.Upgrade, cs.Install, cs.Downgrade} {
		for _, ch := range group {
			names = append(names, ch.Name)
		}
	}
	sort.Strings(names)

	handler := apt.NewPackageHandler()
	var keep []string
	for _, name := range names {
		if matchesAny(patterns, name) {
			handler.Protect(name)
		} else {
			keep = append(keep, name)
		}
	}
	return keep, handler
}

func matchesAny(patterns []string, name string) bool {
	for _, pat := range patterns {
		if ok, _ := path.Match(pat, name); ok || pat == name {
			return true
		}
	}
	return false
}

// brokenNames collects the packages the solver blamed, plus anything the
// original full plan already held back.
func brokenNames(broken *apt.BrokenError, held []string) []string {
	seen := map[string]struct{}{}
	var names []string
	add := func(n string) {
		if _, ok := seen[n]; !ok {
			seen[n] = struct{}{}
			names = append(names, n)
		}
	}
	for _, pkg := range broken.Packages {
		add(pkg.Name)
	}
	for _, n := range held {
		add(n)
	}
	sort.Strings(names)
	return names
}
