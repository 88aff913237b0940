package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rantnar/nala/internal/history"
	"github.com/rantnar/nala/internal/ui"
	"github.com/rantnar/nala/pkg/apt"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the transaction journal",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyInfoCmd = &cobra.Command{
	Use:   "info <id>",
	Short: "Show one journal entry in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryInfo,
}

var historyUndoCmd = &cobra.Command{
	Use:   "undo [id]",
	Short: "Undo a journaled transaction (the newest one by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistoryUndo,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the entire transaction journal",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 25, "number of entries to show (0 for all)")
	historyCmd.AddCommand(historyInfoCmd, historyUndoCmd, historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := history.Open()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		ui.MutedMsg("No transactions recorded yet")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, ui.Bold("ID")+"\t"+ui.Bold("DATE")+"\t"+ui.Bold("OPERATION")+"\t"+ui.Bold("PACKAGES")+"\t"+ui.Bold("RESULT"))
	for _, entry := range entries {
		result := ui.Green("ok")
		if !entry.Success {
			result = ui.Red("failed")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			entry.ID, entry.FormatTime(), entry.Operation,
			summarizePackages(entry.Packages), result)
	}
	return w.Flush()
}

func runHistoryInfo(cmd *cobra.Command, args []string) error {
	entry, store, err := lookupEntry(args[0])
	if err != nil {
		return err
	}
	defer store.Close()

	ui.HeaderMsg("Transaction %d", entry.ID)
	ui.Println("Date:      %s", entry.FormatTime())
	ui.Println("Operation: %s", entry.Operation)
	if len(entry.Packages) > 0 {
		ui.Println("Packages:  %s", strings.Join(entry.Packages, " "))
	}
	ui.Println("Changes:   %d installed, %d upgraded, %d removed",
		entry.Installed, entry.Upgraded, entry.Removed)
	if entry.Success {
		ui.SuccessMsg("Applied successfully")
	} else {
		ui.ErrorMsg("Failed: %s", entry.Error)
	}
	return nil
}

func runHistoryUndo(cmd *cobra.Command, args []string) error {
	entry, err := undoTarget(args)
	if err != nil {
		return err
	}

	if !entry.Undoable() {
		return fmt.Errorf("transaction %d (%s) cannot be undone", entry.ID, entry.Operation)
	}

	ctx := context.Background()
	cache, err := openCache(ctx)
	if err != nil {
		return err
	}
	names, err := resolveNames(ctx, cache, entry.Packages)
	if err != nil {
		return err
	}

	inverse := entry.InverseOperation()
	ui.InfoMsg("Undoing transaction %d: %s %s",
		entry.ID, inverse, strings.Join(names, " "))

	var tx apt.Transaction
	if inverse == history.OpInstall {
		tx = apt.Transaction{
			Install:      names,
			FixBroken:    cfg.General.FixBroken,
			NoRecommends: !cfg.Apt.InstallRecommends,
		}
	} else {
		tx = apt.Transaction{
			Remove:     names,
			AutoRemove: cfg.General.AutoRemove,
		}
	}
	return planAndApply(ctx, inverse, tx)
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	store, err := history.Open()
	if err != nil {
		return err
	}
	defer store.Close()

	count, err := store.Count()
	if err != nil {
		return err
	}
	if count == 0 {
		ui.MutedMsg("The transaction journal is already empty")
		return nil
	}

	if !cfg.General.AssumeYes {
		ok, err := ui.Confirm(fmt.Sprintf("Delete all %d journal entries?", count), false)
		if err != nil || !ok {
			return ErrAborted
		}
	}

	if err := store.Clear(); err != nil {
		return err
	}
	ui.SuccessMsg("Transaction journal cleared")
	return nil
}

// undoTarget resolves the entry to undo: an explicit ID, or the newest
// journal entry when none is given.
func undoTarget(args []string) (*history.Entry, error) {
	if len(args) == 1 {
		entry, store, err := lookupEntry(args[0])
		if err != nil {
			return nil, err
		}
		store.Close()
		return entry, nil
	}

	store, err := history.Open()
	if err != nil {
		return nil, err
	}
	defer store.Close()

	entry, err := store.Last()
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("the transaction journal is empty")
	}
	return entry, nil
}

// lookupEntry parses a numeric ID argument and fetches its entry. The
// caller closes the returned store.
func lookupEntry(arg string) (*history.Entry, *history.Store, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid transaction id %q", arg)
	}

	store, err := history.Open()
	if err != nil {
		return nil, nil, err
	}
	entry, err := store.Get(id)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return entry, store, nil
}

func summarizePackages(packages []string) string {
	if len(packages) == 0 {
		return "-"
	}
	joined := strings.Join(packages, " ")
	if len(joined) > 50 {
		return joined[:47] + "..."
	}
	return joined
}
