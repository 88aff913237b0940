package apt

import (
	"context"
	"path"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// Cache is a one-invocation view over the engine's package database. It
// caches nothing across runs; everything is re-read from the engine the
// next time the tool starts.
type Cache struct {
	engine Engine

	names     []string
	nameSet   map[string]struct{}
	installed map[string]Package
	auto      map[string]bool
}

// OpenCache opens a session against the engine and loads the name index.
func OpenCache(ctx context.Context, engine Engine) (*Cache, error) {
	names, err := engine.Names(ctx)
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}

	return &Cache{engine: engine, names: names, nameSet: set}, nil
}

// Engine exposes the underlying engine for direct calls.
func (c *Cache) Engine() Engine { return c.engine }

// Names returns every known package name, sorted.
func (c *Cache) Names() []string { return c.names }

// Contains reports whether the engine knows the name at all.
func (c *Cache) Contains(name string) bool {
	_, ok := c.nameSet[baseName(name)]
	return ok
}

// Installed returns the installed-package index, loading it on first use.
func (c *Cache) Installed(ctx context.Context) (map[string]Package, error) {
	if c.installed != nil {
		return c.installed, nil
	}
	pkgs, err := c.engine.ListInstalled(ctx)
	if err != nil {
		return nil, err
	}
	auto, err := c.engine.AutoInstalled(ctx)
	if err != nil {
		logrus.Debugf("auto-installed marks unavailable: %v", err)
		auto = map[string]bool{}
	}
	c.installed = make(map[string]Package, len(pkgs))
	for _, p := range pkgs {
		p.Auto = auto[p.Name]
		c.installed[p.Name] = p
	}
	c.auto = auto
	return c.installed, nil
}

// Upgradable asks the engine which packages a full upgrade would touch.
func (c *Cache) Upgradable(ctx context.Context) (*Changeset, error) {
	return c.engine.Plan(ctx, Transaction{Upgrade: true, Full: true})
}

// GlobFilter expands glob patterns against the name index. Non-pattern
// arguments pass through untouched; a pattern matching nothing is a
// not-found error naming the pattern.
func (c *Cache) GlobFilter(patterns []string) ([]string, error) {
	var out []string
	var missing []string

	for _, pat := range patterns {
		if !strings.ContainsAny(pat, "*?[") {
			out = append(out, pat)
			continue
		}

		matched := false
		for _, name := range c.names {
			if ok, _ := path.Match(pat, name); ok {
				out = append(out, name)
				matched = true
			}
		}
		if !matched {
			missing = append(missing, pat)
		} else {
			logrus.Debugf("glob %q expanded", pat)
		}
	}

	if len(missing) > 0 {
		return nil, &NotFoundError{Names: missing}
	}
	sort.Strings(out)
	return dedupe(out), nil
}

// VirtualResolution records a virtual name the cache substituted with its
// single provider, so the caller can tell the user.
type VirtualResolution struct {
	Virtual  string
	Provider string
}

// VirtualFilter replaces virtual package names with their concrete
// providers. A virtual name with exactly one provider is substituted; one
// with several is returned as *AmbiguousVirtualError for the caller to
// disambiguate; an unknown name is collected into a *NotFoundError.
func (c *Cache) VirtualFilter(ctx context.Context, names []string) ([]string, []VirtualResolution, error) {
	var out []string
	var resolved []VirtualResolution
	var missing []string

	for _, name := range names {
		if !c.Contains(name) {
			missing = append(missing, name)
			continue
		}

		pol, err := c.engine.Policy(ctx, baseName(name))
		if err != nil {
			missing = append(missing, name)
			continue
		}
		if pol.Installable() || pol.Installed != "" {
			out = append(out, name)
			continue
		}

		// Known but not installable: a virtual name, or a package that
		// vanished from the indexes.
		providers, err := c.engine.Providers(ctx, baseName(name))
		if err != nil || len(providers) == 0 {
			missing = append(missing, name)
			continue
		}
		if len(providers) > 1 {
			sort.Strings(providers)
			return nil, nil, &AmbiguousVirtualError{Name: name, Providers: providers}
		}
		resolved = append(resolved, VirtualResolution{Virtual: name, Provider: providers[0]})
		out = append(out, providers[0])
	}

	if len(missing) > 0 {
		return nil, nil, &NotFoundError{Names: missing}
	}
	return out, resolved, nil
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || sorted[i-1] != s {
			out = append(out, s)
		}
	}
	return out
}
