// Package apt defines the boundary to the APT package-management engine.
// All dependency resolution, version selection and transaction application
// happen inside apt itself; this package only sequences engine calls and
// turns their output into typed values.
package apt

import "strings"

// Package is a thin view over one entry in the engine's database.
type Package struct {
	Name         string `json:"name"`
	Architecture string `json:"architecture,omitempty"`
	Installed    string `json:"installed,omitempty"` // installed version, "" when not installed
	Candidate    string `json:"candidate,omitempty"` // candidate version, "" when none
	Description  string `json:"description,omitempty"`
	Auto         bool   `json:"auto,omitempty"` // marked as automatically installed
}

// IsInstalled reports whether any version of the package is installed.
func (p Package) IsInstalled() bool {
	return p.Installed != ""
}

// IsUpgradable reports whether the candidate differs from what is installed.
func (p Package) IsUpgradable() bool {
	return p.Installed != "" && p.Candidate != "" && p.Installed != p.Candidate
}

// Policy is the engine's version-selection verdict for a single name,
// as reported by `apt-cache policy`.
type Policy struct {
	Name      string
	Installed string // "" when not installed
	Candidate string // "" when the name has no installation candidate
}

// Installable reports whether the engine can pick a version to install.
func (p *Policy) Installable() bool {
	return p.Candidate != ""
}

// Record holds one full package record as printed by `apt-cache show`.
type Record struct {
	Name          string
	Version       string
	Architecture  string
	Priority      string
	Section       string
	Source        string
	Origin        string
	Maintainer    string
	InstalledSize string
	DownloadSize  string
	Homepage      string
	Description   string
	Depends       []string
	Recommends    []string
	Suggests      []string
	Conflicts     []string
	Breaks        []string
	Replaces      []string
	Provides      []string
}

// Transaction describes what the caller wants the engine to do. The engine
// decides how: it resolves dependencies and computes the final change set.
type Transaction struct {
	Install   []string // package names to install
	Remove    []string // package names to remove
	LocalDebs []string // paths of locally supplied .deb files

	Purge      bool // remove configuration files along with packages
	Upgrade    bool // upgrade everything that is upgradable
	Full       bool // allow installs/removals while upgrading (dist-upgrade)
	FixBroken  bool // ask the engine to repair broken installs
	AutoRemove bool // also drop orphaned dependencies

	DownloadOnly bool
	NoRecommends bool
	WithSuggests bool

	// Options are passed verbatim to the engine as -o settings.
	Options []string
}

// IsRemoval reports whether the transaction runs in the removal direction.
func (t Transaction) IsRemoval() bool {
	return len(t.Remove) > 0 || (t.AutoRemove && len(t.Install) == 0 && !t.Upgrade)
}

// Requested returns every package name the caller asked about.
func (t Transaction) Requested() []string {
	out := make([]string, 0, len(t.Install)+len(t.Remove))
	out = append(out, t.Install...)
	out = append(out, t.Remove...)
	return out
}

// ChangeKind classifies one pending mark in a change set.
type ChangeKind string

const (
	KindInstall   ChangeKind = "install"
	KindUpgrade   ChangeKind = "upgrade"
	KindDowngrade ChangeKind = "downgrade"
	KindRemove    ChangeKind = "remove"
)

// Change is one pending mark the engine attached to a package.
type Change struct {
	Name    string
	Kind    ChangeKind
	Current string // version currently installed, "" for new installs
	Target  string // version after the transaction, "" for removals
}

// Changeset is the engine-computed set of pending marks for a transaction,
// obtained from a simulation run before anything is applied.
type Changeset struct {
	Install   []Change
	Upgrade   []Change
	Downgrade []Change
	Remove    []Change

	// Held lists packages the engine declined to upgrade.
	Held []string

	// AlreadyNewest lists requested packages that need no action.
	AlreadyNewest []string

	// Counts from the engine's own summary line.
	Upgraded     int
	NewInstalled int
	Removed      int
	NotUpgraded  int

	// DownloadSize and SpaceChange are the engine's human-readable
	// estimates, when present.
	DownloadSize string
	SpaceChange  string
}

// Empty reports whether the transaction would change nothing.
func (c *Changeset) Empty() bool {
	return len(c.Install) == 0 && len(c.Upgrade) == 0 &&
		len(c.Downgrade) == 0 && len(c.Remove) == 0
}

// Marked reports whether the engine attached any mark to the named package.
func (c *Changeset) Marked(name string) bool {
	// Marks carry the bare name; requests may carry name:arch or name=version.
	name = baseName(name)
	for _, group := range [][]Change{c.Install, c.Upgrade, c.Downgrade, c.Remove} {
		for _, ch := range group {
			if baseName(ch.Name) == name {
				return true
			}
		}
	}
	for _, n := range c.AlreadyNewest {
		if baseName(n) == name {
			return true
		}
	}
	return false
}

// UpgradableNames returns the names the engine would upgrade.
func (c *Changeset) UpgradableNames() []string {
	names := make([]string, 0, len(c.Upgrade))
	for _, ch := range c.Upgrade {
		names = append(names, ch.Name)
	}
	return names
}

// baseName strips :arch and =version suffixes from a package spec.
func baseName(spec string) string {
	if i := strings.IndexAny(spec, ":="); i > 0 {
		return spec[:i]
	}
	return spec
}
