package cli

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rantnar/nala/internal/tui"
	"github.com/rantnar/nala/internal/ui"
	"github.com/rantnar/nala/pkg/apt"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse packages interactively",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cache, err := openCache(ctx)
	if err != nil {
		return err
	}

	var known []apt.Package
	err = ui.WithSpinner("Reading package records...", func() error {
		var derr error
		known, derr = cache.Engine().Dump(ctx)
		return derr
	})
	if err != nil {
		return err
	}
	installed, err := cache.Installed(ctx)
	if err != nil {
		return err
	}

	for i := range known {
		if inst, ok := installed[known[i].Name]; ok {
			known[i].Installed = inst.Installed
		}
	}
	if cs, err := cache.Upgradable(ctx); err != nil {
		logrus.Debugf("upgradable set unavailable: %v", err)
	} else {
		mergeCandidates(known, cs)
	}
	sort.Slice(known, func(i, j int) bool { return known[i].Name < known[j].Name })

	return tui.Run(known, func(name string) ([]apt.Record, error) {
		return cache.Engine().Show(ctx, name)
	})
}

// mergeCandidates fills in the target versions of pending upgrades so the
// browser can tell upgradable packages apart.
func mergeCandidates(pkgs []apt.Package, cs *apt.Changeset) {
	targets := make(map[string]string, len(cs.Upgrade))
	for _, ch := range cs.Upgrade {
		targets[ch.Name] = ch.Target
	}
	for i := range pkgs {
		if target, ok := targets[pkgs[i].Name]; ok {
			pkgs[i].Candidate = target
		}
	}
}
