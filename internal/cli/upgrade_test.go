package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rantnar/nala/internal/config"
	"github.com/rantnar/nala/pkg/apt"
)

// fakeEngine scripts Plan responses for command-flow tests.
type fakeEngine struct {
	apt.Engine

	planned   []apt.Transaction
	responses []planResponse
	applied   int
}

type planResponse struct {
	cs  *apt.Changeset
	err error
}

func (f *fakeEngine) Plan(ctx context.Context, tx apt.Transaction) (*apt.Changeset, error) {
	f.planned = append(f.planned, tx)
	if len(f.responses) == 0 {
		return &apt.Changeset{}, nil
	}
	resp := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return resp.cs, resp.err
}

func (f *fakeEngine) Apply(ctx context.Context, tx apt.Transaction, opts apt.ApplyOpts) error {
	f.applied++
	return nil
}

// setupUpgradeTest wires a scripted engine into the shared command state.
// Dry-run keeps applyPlanned from prompting or touching the system.
func setupUpgradeTest(t *testing.T, fake *fakeEngine, exclude []string) {
	t.Helper()

	prevCfg, prevEngine, prevExclude := cfg, engine, upgradeExclude
	t.Cleanup(func() {
		cfg, engine, upgradeExclude = prevCfg, prevEngine, prevExclude
	})

	cfg = config.Default()
	cfg.General.AssumeYes = true
	cfg.General.DryRun = true
	engine = fake
	upgradeExclude = exclude
}

func fullUpgradePlan() *apt.Changeset {
	return &apt.Changeset{
		Upgrade: []apt.Change{
			{Name: "curl", Kind: apt.KindUpgrade, Current: "7.88.1-9", Target: "7.88.1-10"},
			{Name: "libfoo", Kind: apt.KindUpgrade, Current: "1.0", Target: "1.1"},
			{Name: "linux-image-amd64", Kind: apt.KindUpgrade, Current: "6.1", Target: "6.2"},
		},
	}
}

func TestUpgradeExcludingNarrowsPlan(t *testing.T) {
	fake := &fakeEngine{responses: []planResponse{
		{cs: &apt.Changeset{Upgrade: []apt.Change{
			{Name: "curl", Kind: apt.KindUpgrade, Current: "7.88.1-9", Target: "7.88.1-10"},
			{Name: "libfoo", Kind: apt.KindUpgrade, Current: "1.0", Target: "1.1"},
		}}},
	}}
	setupUpgradeTest(t, fake, []string{"linux-*"})

	err := upgradeExcluding(context.Background(), fullUpgradePlan())
	require.NoError(t, err)

	require.Len(t, fake.planned, 1)
	assert.Equal(t, []string{"curl", "libfoo"}, fake.planned[0].Install)
	assert.False(t, fake.planned[0].Upgrade)
}

func TestUpgradeExcludingRetriesOnceAfterBreakage(t *testing.T) {
	broken := &apt.BrokenError{Packages: []apt.BrokenPackage{{Name: "libfoo"}}}
	fake := &fakeEngine{responses: []planResponse{
		{err: broken},
		{cs: &apt.Changeset{Upgrade: []apt.Change{
			{Name: "curl", Kind: apt.KindUpgrade, Current: "7.88.1-9", Target: "7.88.1-10"},
		}}},
	}}
	setupUpgradeTest(t, fake, []string{"linux-*"})

	err := upgradeExcluding(context.Background(), fullUpgradePlan())
	require.NoError(t, err)

	require.Len(t, fake.planned, 2)
	assert.Equal(t, []string{"curl", "libfoo"}, fake.planned[0].Install)
	assert.Equal(t, []string{"curl"}, fake.planned[1].Install)
}

func TestUpgradeExcludingGivesUpAfterOneRetry(t *testing.T) {
	broken := &apt.BrokenError{Packages: []apt.BrokenPackage{{Name: "curl"}}}
	fake := &fakeEngine{responses: []planResponse{
		{err: broken},
		{err: broken},
	}}
	setupUpgradeTest(t, fake, []string{"linux-*"})

	err := upgradeExcluding(context.Background(), fullUpgradePlan())

	var be *apt.BrokenError
	require.ErrorAs(t, err, &be)
	// The fallback is offered once; a second breakage ends the attempt.
	assert.Len(t, fake.planned, 2)
}

func TestUpgradeExcludingEverything(t *testing.T) {
	fake := &fakeEngine{}
	setupUpgradeTest(t, fake, []string{"*"})

	err := upgradeExcluding(context.Background(), fullUpgradePlan())
	require.NoError(t, err)
	assert.Empty(t, fake.planned)
}

func TestUpgradeExcludingPassesThroughOtherErrors(t *testing.T) {
	fake := &fakeEngine{responses: []planResponse{
		{err: errors.New("network is down")},
	}}
	setupUpgradeTest(t, fake, []string{"linux-*"})

	err := upgradeExcluding(context.Background(), fullUpgradePlan())
	assert.ErrorContains(t, err, "network is down")
	assert.Len(t, fake.planned, 1)
}

func TestSplitExcluded(t *testing.T) {
	cs := fullUpgradePlan()
	keep, handler := splitExcluded([]string{"linux-*", "libfoo"}, cs)

	assert.Equal(t, []string{"curl"}, keep)
	assert.True(t, handler.IsProtected("libfoo"))
	assert.True(t, handler.IsProtected("linux-image-amd64"))
	assert.False(t, handler.IsProtected("curl"))
	assert.ElementsMatch(t, []string{"libfoo", "linux-image-amd64"}, handler.ProtectedNames())
}

func TestBrokenNames(t *testing.T) {
	broken := &apt.BrokenError{Packages: []apt.BrokenPackage{
		{Name: "libfoo"}, {Name: "libbar"},
	}}
	names := brokenNames(broken, []string{"libfoo", "held-pkg"})
	assert.Equal(t, []string{"held-pkg", "libbar", "libfoo"}, names)
}
