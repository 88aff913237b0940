package apt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEngine is an in-memory Engine for cache tests.
type fakeEngine struct {
	names     []string
	policies  map[string]*Policy
	providers map[string][]string
	installed []Package
	auto      map[string]bool

	planned []Transaction
	plan    *Changeset
	planErr error
}

func (f *fakeEngine) Refresh(ctx context.Context) error { return nil }

func (f *fakeEngine) Names(ctx context.Context) ([]string, error) { return f.names, nil }

func (f *fakeEngine) Policy(ctx context.Context, name string) (*Policy, error) {
	if pol, ok := f.policies[name]; ok {
		return pol, nil
	}
	return nil, &NotFoundError{Names: []string{name}}
}

func (f *fakeEngine) Show(ctx context.Context, name string) ([]Record, error) {
	return nil, &NotFoundError{Names: []string{name}}
}

func (f *fakeEngine) Dump(ctx context.Context) ([]Package, error) { return nil, nil }

func (f *fakeEngine) ListInstalled(ctx context.Context) ([]Package, error) {
	return f.installed, nil
}

func (f *fakeEngine) AutoInstalled(ctx context.Context) (map[string]bool, error) {
	return f.auto, nil
}

func (f *fakeEngine) Providers(ctx context.Context, name string) ([]string, error) {
	return f.providers[name], nil
}

func (f *fakeEngine) Plan(ctx context.Context, tx Transaction) (*Changeset, error) {
	f.planned = append(f.planned, tx)
	if f.planErr != nil {
		return nil, f.planErr
	}
	if f.plan != nil {
		return f.plan, nil
	}
	return &Changeset{}, nil
}

func (f *fakeEngine) Apply(ctx context.Context, tx Transaction, opts ApplyOpts) error {
	return nil
}

func newTestCache(t *testing.T, engine *fakeEngine) *Cache {
	t.Helper()
	cache, err := OpenCache(context.Background(), engine)
	require.NoError(t, err)
	return cache
}

func TestGlobFilterExpands(t *testing.T) {
	engine := &fakeEngine{names: []string{"curl", "libcurl3-gnutls", "libcurl4", "wget"}}
	cache := newTestCache(t, engine)

	names, err := cache.GlobFilter([]string{"libcurl*", "wget"})
	require.NoError(t, err)
	assert.Equal(t, []string{"libcurl3-gnutls", "libcurl4", "wget"}, names)
}

func TestGlobFilterMissingPattern(t *testing.T) {
	engine := &fakeEngine{names: []string{"curl"}}
	cache := newTestCache(t, engine)

	_, err := cache.GlobFilter([]string{"nomatch-*"})

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, []string{"nomatch-*"}, nf.Names)
}

func TestGlobFilterPassesPlainNames(t *testing.T) {
	engine := &fakeEngine{names: []string{"curl"}}
	cache := newTestCache(t, engine)

	// Plain names pass through even when unknown; the virtual filter or
	// the engine reports them later with full context.
	names, err := cache.GlobFilter([]string{"doesnotexist"})
	require.NoError(t, err)
	assert.Equal(t, []string{"doesnotexist"}, names)
}

func TestVirtualFilterSubstitutesSingleProvider(t *testing.T) {
	engine := &fakeEngine{
		names: []string{"editor", "nano"},
		policies: map[string]*Policy{
			"editor": {Name: "editor"},
			"nano":   {Name: "nano", Candidate: "7.2-1"},
		},
		providers: map[string][]string{"editor": {"nano"}},
	}
	cache := newTestCache(t, engine)

	names, resolved, err := cache.VirtualFilter(context.Background(), []string{"editor"})
	require.NoError(t, err)
	assert.Equal(t, []string{"nano"}, names)
	require.Len(t, resolved, 1)
	assert.Equal(t, "editor", resolved[0].Virtual)
	assert.Equal(t, "nano", resolved[0].Provider)
}

func TestVirtualFilterAmbiguous(t *testing.T) {
	engine := &fakeEngine{
		names: []string{"mail-transport-agent"},
		policies: map[string]*Policy{
			"mail-transport-agent": {Name: "mail-transport-agent"},
		},
		providers: map[string][]string{
			"mail-transport-agent": {"postfix", "exim4-daemon-light"},
		},
	}
	cache := newTestCache(t, engine)

	_, _, err := cache.VirtualFilter(context.Background(), []string{"mail-transport-agent"})

	var ambiguous *AmbiguousVirtualError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, "mail-transport-agent", ambiguous.Name)
	assert.Equal(t, []string{"exim4-daemon-light", "postfix"}, ambiguous.Providers)
}

func TestVirtualFilterUnknownName(t *testing.T) {
	engine := &fakeEngine{names: []string{"curl"}}
	cache := newTestCache(t, engine)

	_, _, err := cache.VirtualFilter(context.Background(), []string{"doesnotexist"})

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, []string{"doesnotexist"}, nf.Names)
}

func TestInstalledMergesAutoMarks(t *testing.T) {
	engine := &fakeEngine{
		names: []string{"curl", "libcurl4"},
		installed: []Package{
			{Name: "curl", Installed: "7.88.1-10"},
			{Name: "libcurl4", Installed: "7.88.1-10"},
		},
		auto: map[string]bool{"libcurl4": true},
	}
	cache := newTestCache(t, engine)

	installed, err := cache.Installed(context.Background())
	require.NoError(t, err)
	assert.False(t, installed["curl"].Auto)
	assert.True(t, installed["libcurl4"].Auto)
}
