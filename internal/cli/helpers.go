package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/rantnar/nala/internal/executor"
	"github.com/rantnar/nala/internal/history"
	"github.com/rantnar/nala/internal/ui"
	"github.com/rantnar/nala/pkg/apt"
)

// openCache opens a session against the engine behind a spinner.
func openCache(ctx context.Context) (*apt.Cache, error) {
	var cache *apt.Cache
	err := ui.WithSpinner("Reading package lists...", func() error {
		var err error
		cache, err = apt.OpenCache(ctx, engine)
		return err
	})
	return cache, err
}

// resolveNames expands globs and substitutes virtual names with concrete
// providers, prompting the user when a virtual name is ambiguous.
func resolveNames(ctx context.Context, cache *apt.Cache, names []string) ([]string, error) {
	names, err := cache.GlobFilter(cfg.ResolveAliases(names))
	if err != nil {
		return nil, err
	}

	for {
		resolved, substitutions, err := cache.VirtualFilter(ctx, names)
		if err == nil {
			for _, sub := range substitutions {
				ui.InfoMsg("Selecting %s for virtual package %s", sub.Provider, sub.Virtual)
			}
			return resolved, nil
		}

		var ambiguous *apt.AmbiguousVirtualError
		if !errors.As(err, &ambiguous) {
			return nil, err
		}
		if cfg.General.AssumeYes {
			// No terminal interaction wanted; the error lists the
			// providers so the user can pick one explicitly.
			return nil, ambiguous
		}

		choice, perr := ui.SelectProvider(ambiguous.Name, ambiguous.Providers)
		if perr != nil {
			return nil, ErrAborted
		}
		for i, n := range names {
			if n == ambiguous.Name {
				names[i] = choice
			}
		}
	}
}

// planAndApply runs the standard transaction flow: plan, validate, show
// the change set, confirm and apply, journaling the outcome.
func planAndApply(ctx context.Context, op history.Operation, tx apt.Transaction) error {
	cs, err := engine.Plan(ctx, tx)
	if err != nil {
		return err
	}
	return applyPlanned(ctx, op, tx, cs, tx.Requested())
}

// applyPlanned commits a transaction whose change set was already planned.
// requested lists the names whose marks must be verified; upgrades derived
// from an exclusion pass leave it empty because the engine may legitimately
// hold some of them back.
func applyPlanned(ctx context.Context, op history.Operation, tx apt.Transaction, cs *apt.Changeset, requested []string) error {
	if unmarked := unmarkedNames(requested, cs); len(unmarked) > 0 {
		return errors.New("the engine did not mark the following packages: " +
			strings.Join(unmarked, ", "))
	}
	for _, name := range cs.AlreadyNewest {
		ui.InfoMsg("%s is already at the newest version", name)
	}
	if cs.Empty() {
		ui.SuccessMsg("Nothing to do. All requested changes are already in place.")
		return nil
	}

	ui.PrintChangeset(cs)

	if cfg.General.DryRun {
		ui.InfoMsg("Dry run: no changes were applied")
		return nil
	}
	if err := executor.CheckPrivileges(true); err != nil {
		return err
	}
	if !cfg.General.AssumeYes {
		ok, err := ui.Confirm("Do you want to continue?", !tx.IsRemoval())
		if err != nil || !ok {
			return ErrAborted
		}
	}

	entry := history.NewEntry(op, requested)
	entry.Installed = cs.NewInstalled
	entry.Upgraded = cs.Upgraded
	entry.Removed = cs.Removed

	applyErr := engine.Apply(ctx, tx, apt.ApplyOpts{AssumeYes: true})
	if applyErr != nil {
		entry.MarkFailed(applyErr)
	} else {
		entry.MarkSuccess()
	}
	recordHistory(entry)

	if applyErr != nil {
		return applyErr
	}
	ui.SuccessMsg("Transaction complete")
	return nil
}

// unmarkedNames returns explicitly requested names the engine attached
// no mark to. A request the solver silently ignores is an error, not a
// partial success.
func unmarkedNames(requested []string, cs *apt.Changeset) []string {
	var unmarked []string
	for _, name := range requested {
		if !cs.Marked(name) {
			unmarked = append(unmarked, name)
		}
	}
	return unmarked
}

// recordHistory journals an entry, logging rather than failing when the
// journal is unavailable.
func recordHistory(entry *history.Entry) {
	store, err := history.Open()
	if err != nil {
		logrus.Debugf("history journal unavailable: %v", err)
		return
	}
	defer store.Close()

	if err := store.Record(entry); err != nil {
		logrus.Debugf("recording history entry: %v", err)
	}
}
