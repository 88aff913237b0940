package apt

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/rantnar/nala/internal/executor"
)

// System talks to the real APT engine through its command-line tools.
type System struct {
	exec    *executor.Executor
	options []string // -o settings applied to every engine call
}

// NewSystem creates an engine bound to the given executor.
func NewSystem(exec *executor.Executor) *System {
	return &System{exec: exec}
}

// SetOptions sets engine options passed as -o Key=Value to every call.
func (s *System) SetOptions(options []string) {
	s.options = options
}

func (s *System) optionArgs() []string {
	args := make([]string, 0, len(s.options)*2)
	for _, opt := range s.options {
		args = append(args, "-o", opt)
	}
	return args
}

// Refresh updates the package lists.
func (s *System) Refresh(ctx context.Context) error {
	args := append(s.optionArgs(), "update")
	return s.exec.RunSudo(ctx, "apt-get", args...)
}

// Names enumerates every known package name, virtual names included.
func (s *System) Names(ctx context.Context) ([]string, error) {
	out, err := s.exec.Output(ctx, "apt-cache", "pkgnames")
	if err != nil {
		return nil, fmt.Errorf("enumerating package names: %w", err)
	}
	names := strings.Fields(out)
	sort.Strings(names)
	logrus.Debugf("engine knows %d package names", len(names))
	return names, nil
}

// Policy returns the engine's version verdict for one name.
func (s *System) Policy(ctx context.Context, name string) (*Policy, error) {
	out, err := s.exec.OutputQuiet(ctx, "apt-cache", "policy", "--", name)
	if err != nil {
		return nil, fmt.Errorf("querying policy for %s: %w", name, err)
	}
	if strings.TrimSpace(out) == "" {
		return nil, &NotFoundError{Names: []string{name}}
	}
	return parsePolicy(name, out), nil
}

// Show returns the full records for a name.
func (s *System) Show(ctx context.Context, name string) ([]Record, error) {
	out, err := s.exec.OutputQuiet(ctx, "apt-cache", "show", "--", name)
	if err != nil || strings.TrimSpace(out) == "" {
		return nil, &NotFoundError{Names: []string{name}}
	}
	return parseRecords(out), nil
}

// Dump returns the name and short description of every known package.
func (s *System) Dump(ctx context.Context) ([]Package, error) {
	// A regex matching everything makes apt-cache emit its whole view.
	out, err := s.exec.Output(ctx, "apt-cache", "search", ".")
	if err != nil {
		return nil, fmt.Errorf("reading package records: %w", err)
	}
	return parseDump(out), nil
}

// ListInstalled returns every installed package with its version.
func (s *System) ListInstalled(ctx context.Context) ([]Package, error) {
	out, err := s.exec.Output(ctx, "dpkg-query", "-W",
		"-f=${Package}\t${Architecture}\t${Version}\t${Status}\n")
	if err != nil {
		return nil, fmt.Errorf("listing installed packages: %w", err)
	}
	return parseInstalledTable(out), nil
}

// AutoInstalled returns the packages marked as automatically installed.
func (s *System) AutoInstalled(ctx context.Context) (map[string]bool, error) {
	out, err := s.exec.Output(ctx, "apt-mark", "showauto")
	if err != nil {
		return nil, fmt.Errorf("reading auto-installed marks: %w", err)
	}
	auto := make(map[string]bool)
	for _, name := range strings.Fields(out) {
		auto[name] = true
	}
	return auto, nil
}

// Providers returns the concrete packages that provide a virtual name.
func (s *System) Providers(ctx context.Context, name string) ([]string, error) {
	out, err := s.exec.OutputQuiet(ctx, "apt-cache", "showpkg", "--", name)
	if err != nil {
		return nil, &NotFoundError{Names: []string{name}}
	}
	return parseReverseProvides(out), nil
}

// Plan simulates a transaction and returns the engine's change set.
func (s *System) Plan(ctx context.Context, tx Transaction) (*Changeset, error) {
	args := append([]string{"-s", "-q"}, s.transactionArgs(tx)...)
	logrus.Debugf("planning transaction: apt-get %s", strings.Join(args, " "))

	out, err := s.exec.OutputCombined(ctx, "apt-get", args...)
	if err != nil {
		return nil, classifyEngineError(out, err)
	}
	return parseChangeset(out), nil
}

// Apply commits a transaction for real.
func (s *System) Apply(ctx context.Context, tx Transaction, opts ApplyOpts) error {
	args := s.transactionArgs(tx)
	if opts.AssumeYes {
		args = append([]string{"-y"}, args...)
	}
	logrus.Debugf("applying transaction: apt-get %s", strings.Join(args, " "))

	stderr, err := s.exec.RunSudoWithStderr(ctx, "apt-get", args...)
	if err != nil {
		return classifyEngineError(stderr, err)
	}
	return nil
}

// transactionArgs maps a Transaction onto an apt-get invocation.
func (s *System) transactionArgs(tx Transaction) []string {
	args := s.optionArgs()
	for _, opt := range tx.Options {
		args = append(args, "-o", opt)
	}
	if tx.NoRecommends {
		args = append(args, "--no-install-recommends")
	}
	if tx.WithSuggests {
		args = append(args, "--install-suggests")
	}
	if tx.DownloadOnly {
		args = append(args, "--download-only")
	}
	if tx.FixBroken {
		args = append(args, "-f")
	}
	if tx.AutoRemove && !tx.IsRemoval() {
		args = append(args, "--autoremove")
	}

	switch {
	case tx.Upgrade:
		if tx.Full {
			args = append(args, "dist-upgrade")
		} else {
			args = append(args, "upgrade")
		}
	case len(tx.Remove) > 0:
		verb := "remove"
		if tx.Purge {
			verb = "purge"
		}
		if tx.AutoRemove {
			args = append(args, "--autoremove")
		}
		args = append(args, verb, "--")
		args = append(args, tx.Remove...)
	case len(tx.Install) > 0 || len(tx.LocalDebs) > 0:
		args = append(args, "install", "--")
		args = append(args, tx.Install...)
		args = append(args, tx.LocalDebs...)
	case tx.AutoRemove:
		verb := "autoremove"
		if tx.Purge {
			args = append(args, "--purge")
		}
		args = append(args, verb)
	case tx.FixBroken:
		args = append(args, "install")
	}

	return args
}
