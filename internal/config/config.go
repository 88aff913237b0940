// Package config loads and stores nala's TOML configuration.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the complete nala configuration.
type Config struct {
	General GeneralConfig     `toml:"general"`
	Output  OutputConfig      `toml:"output"`
	Apt     AptConfig         `toml:"apt"`
	Paths   PathsConfig       `toml:"paths"`
	Aliases map[string]string `toml:"aliases"`
}

// GeneralConfig contains behavior settings.
type GeneralConfig struct {
	// AssumeYes answers every confirmation prompt with yes.
	AssumeYes bool `toml:"assume_yes"`

	// DryRun prints engine commands instead of executing them.
	DryRun bool `toml:"dry_run"`

	// AutoRemove drops orphaned dependencies as part of transactions.
	AutoRemove bool `toml:"auto_remove"`

	// FixBroken asks the engine to repair broken installs before
	// new transactions.
	FixBroken bool `toml:"fix_broken"`

	// FullUpgrade allows installs and removals during upgrade
	// (dist-upgrade) instead of the safe upgrade.
	FullUpgrade bool `toml:"full_upgrade"`
}

// OutputConfig contains presentation settings.
type OutputConfig struct {
	// Color enables colored output (the NO_COLOR env var wins).
	Color bool `toml:"color"`

	// Unicode enables unicode symbols in output.
	Unicode bool `toml:"unicode"`

	// Verbose prints every engine command before running it.
	Verbose bool `toml:"verbose"`
}

// AptConfig contains settings forwarded to the engine.
type AptConfig struct {
	// InstallRecommends installs recommended packages alongside.
	InstallRecommends bool `toml:"install_recommends"`

	// InstallSuggests installs suggested packages alongside.
	InstallSuggests bool `toml:"install_suggests"`

	// Options are raw engine options passed as -o Key=Value.
	Options []string `toml:"options"`
}

// PathsConfig locates the engine's on-disk caches. Overridable so tests
// can point clean at temporary directories.
type PathsConfig struct {
	ArchiveDir         string `toml:"archive_dir"`
	PartialDir         string `toml:"partial_dir"`
	ListsDir           string `toml:"lists_dir"`
	ListsPartialDir    string `toml:"lists_partial_dir"`
	PackageCache       string `toml:"package_cache"`
	SourcePackageCache string `toml:"source_package_cache"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		General: GeneralConfig{
			AssumeYes:   false,
			DryRun:      false,
			AutoRemove:  true,
			FixBroken:   true,
			FullUpgrade: true,
		},
		Output: OutputConfig{
			Color:   true,
			Unicode: true,
			Verbose: false,
		},
		Apt: AptConfig{
			InstallRecommends: true,
			InstallSuggests:   false,
		},
		Paths: PathsConfig{
			ArchiveDir:         "/var/cache/apt/archives",
			PartialDir:         "/var/cache/apt/archives/partial",
			ListsDir:           "/var/lib/apt/lists",
			ListsPartialDir:    "/var/lib/apt/lists/partial",
			PackageCache:       "/var/cache/apt/pkgcache.bin",
			SourcePackageCache: "/var/cache/apt/srcpkgcache.bin",
		},
		Aliases: map[string]string{},
	}
}

// Load loads the configuration from the default path, falling back to
// defaults when no file exists.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom loads the configuration from a specific path, falling back to
// defaults when no file exists.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

// SaveTo writes the configuration to a specific path.
func (c *Config) SaveTo(path string) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}

// ResolveAlias maps an aliased package name to its target.
func (c *Config) ResolveAlias(name string) string {
	if target, ok := c.Aliases[name]; ok {
		return target
	}
	return name
}

// ResolveAliases maps every name in a list through the alias table.
func (c *Config) ResolveAliases(names []string) []string {
	resolved := make([]string, len(names))
	for i, n := range names {
		resolved[i] = c.ResolveAlias(n)
	}
	return resolved
}

// ShouldUseColor reports whether output should be colored, respecting the
// NO_COLOR convention.
func (c *Config) ShouldUseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return c.Output.Color
}
