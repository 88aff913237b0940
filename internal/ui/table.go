package ui

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rantnar/nala/pkg/apt"
)

// PrintPackages prints a package list as a table.
func PrintPackages(packages []apt.Package) {
	if len(packages) == 0 {
		MutedMsg("No packages found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, Bold("NAME")+"\t"+Bold("VERSION")+"\t"+Bold("DESCRIPTION"))

	for _, pkg := range packages {
		name := PackageName.Sprint(pkg.Name)
		if pkg.IsInstalled() {
			name += " " + Installed.Sprint("[installed]")
		}

		version := pkg.Candidate
		if version == "" {
			version = pkg.Installed
		}

		fmt.Fprintf(w, "%s\t%s\t%s\n",
			name, PackageVersion.Sprint(version), truncate(pkg.Description, 60))
	}

	w.Flush()
}

// PrintRecord prints one full package record.
func PrintRecord(rec apt.Record) {
	printField("Package", PackageName.Sprint(rec.Name))
	printField("Version", PackageVersion.Sprint(rec.Version))
	if rec.Architecture != "" {
		printField("Architecture", rec.Architecture)
	}
	if rec.Priority != "" {
		printField("Priority", rec.Priority)
	}
	if rec.Section != "" {
		printField("Section", rec.Section)
	}
	if rec.Source != "" {
		printField("Source", rec.Source)
	}
	if rec.Origin != "" {
		printField("Origin", rec.Origin)
	}
	if rec.Maintainer != "" {
		printField("Maintainer", rec.Maintainer)
	}
	if rec.InstalledSize != "" {
		printField("Installed-Size", rec.InstalledSize+" KB")
	}
	if rec.DownloadSize != "" {
		printField("Download-Size", rec.DownloadSize+" B")
	}
	if rec.Homepage != "" {
		printField("Homepage", rec.Homepage)
	}
	printDepField("Depends", rec.Depends)
	printDepField("Recommends", rec.Recommends)
	printDepField("Suggests", rec.Suggests)
	printDepField("Conflicts", rec.Conflicts)
	printDepField("Breaks", rec.Breaks)
	printDepField("Replaces", rec.Replaces)
	printDepField("Provides", rec.Provides)
	if rec.Description != "" {
		printField("Description", rec.Description)
	}
}

func printField(label, value string) {
	fmt.Printf("%s: %s\n", Cyan(label), value)
}

func printDepField(label string, deps []string) {
	if len(deps) == 0 {
		return
	}
	fmt.Printf("%s: %s\n", Cyan(label), strings.Join(deps, ", "))
}

// PrintChangeset summarizes the engine's pending marks before confirmation.
func PrintChangeset(cs *apt.Changeset) {
	printChangeGroup("Installing", cs.Install, Green)
	printChangeGroup("Upgrading", cs.Upgrade, Blue)
	printChangeGroup("Downgrading", cs.Downgrade, Yellow)
	printChangeGroup("Removing", cs.Remove, Red)

	if len(cs.Held) > 0 {
		HeaderMsg("Kept back (%d)", len(cs.Held))
		for _, name := range cs.Held {
			MutedMsg("  %s", name)
		}
	}

	fmt.Println()
	summary := fmt.Sprintf("%d upgraded, %d newly installed, %d to remove and %d not upgraded.",
		cs.Upgraded, cs.NewInstalled, cs.Removed, cs.NotUpgraded)
	Println("%s", Bold(summary))
	if cs.DownloadSize != "" {
		MutedMsg("Total download size: %s", cs.DownloadSize)
	}
	if cs.SpaceChange != "" {
		MutedMsg("Disk space change: %s", cs.SpaceChange)
	}
}

func printChangeGroup(title string, changes []apt.Change, colorize func(string) string) {
	if len(changes) == 0 {
		return
	}

	HeaderMsg("%s (%d)", title, len(changes))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, ch := range changes {
		switch ch.Kind {
		case apt.KindRemove:
			fmt.Fprintf(w, "  %s\t%s\n", colorize(ch.Name), Muted.Sprint(ch.Current))
		case apt.KindInstall:
			fmt.Fprintf(w, "  %s\t%s\n", colorize(ch.Name), PackageVersion.Sprint(ch.Target))
		default:
			fmt.Fprintf(w, "  %s\t%s %s %s\n", colorize(ch.Name),
				Muted.Sprint(ch.Current), SymbolInfo, PackageVersion.Sprint(ch.Target))
		}
	}
	w.Flush()
}

// PrintBroken reports the solver's unmet dependency details.
func PrintBroken(be *apt.BrokenError) {
	ErrorMsg("The engine reports unmet dependencies:")
	for _, pkg := range be.Packages {
		fmt.Fprintf(os.Stderr, "  %s\n", Bold(pkg.Name))
		for _, detail := range pkg.Unmet {
			fmt.Fprintf(os.Stderr, "    %s\n", Muted.Sprint(detail))
		}
	}
	if be.Held {
		fmt.Fprintf(os.Stderr, "  %s\n", Yellow("You have held broken packages."))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
