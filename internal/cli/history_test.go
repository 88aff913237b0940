package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rantnar/nala/internal/config"
	"github.com/rantnar/nala/internal/history"
)

func TestUndoTargetDefaultsToNewest(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	store, err := history.Open()
	require.NoError(t, err)
	for _, name := range []string{"curl", "wget"} {
		entry := history.NewEntry(history.OpInstall, []string{name})
		entry.MarkSuccess()
		require.NoError(t, store.Record(entry))
	}
	require.NoError(t, store.Close())

	entry, err := undoTarget(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"wget"}, entry.Packages)

	byID, err := undoTarget([]string{"1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"curl"}, byID.Packages)
}

func TestUndoTargetEmptyJournal(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	_, err := undoTarget(nil)
	assert.ErrorContains(t, err, "journal is empty")
}

func TestRunConfigInitWritesFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	prevCfg := cfg
	t.Cleanup(func() { cfg = prevCfg })
	cfg = config.Default()
	cfg.General.AssumeYes = true

	require.NoError(t, runConfigInit(nil, nil))

	loaded, err := config.Load()
	require.NoError(t, err)
	assert.True(t, loaded.General.AssumeYes)
}
