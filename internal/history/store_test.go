package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenAt(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAssignsSequentialIDs(t *testing.T) {
	store := openTestStore(t)

	first := NewEntry(OpInstall, []string{"curl"})
	first.MarkSuccess()
	require.NoError(t, store.Record(first))

	second := NewEntry(OpRemove, []string{"wget"})
	second.MarkSuccess()
	require.NoError(t, store.Record(second))

	assert.Equal(t, uint64(1), first.ID)
	assert.Equal(t, uint64(2), second.ID)
}

func TestListNewestFirst(t *testing.T) {
	store := openTestStore(t)

	for _, name := range []string{"one", "two", "three"} {
		entry := NewEntry(OpInstall, []string{name})
		entry.MarkSuccess()
		require.NoError(t, store.Record(entry))
	}

	entries, err := store.List(0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, []string{"three"}, entries[0].Packages)
	assert.Equal(t, []string{"one"}, entries[2].Packages)

	limited, err := store.List(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestGetAndLast(t *testing.T) {
	store := openTestStore(t)

	entry := NewEntry(OpPurge, []string{"cruft"})
	entry.MarkFailed(assert.AnError)
	require.NoError(t, store.Record(entry))

	got, err := store.Get(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, OpPurge, got.Operation)
	assert.False(t, got.Success)
	assert.NotEmpty(t, got.Error)

	last, err := store.Last()
	require.NoError(t, err)
	assert.Equal(t, entry.ID, last.ID)

	_, err = store.Get(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClearResetsJournal(t *testing.T) {
	store := openTestStore(t)

	entry := NewEntry(OpInstall, []string{"curl"})
	entry.MarkSuccess()
	require.NoError(t, store.Record(entry))

	require.NoError(t, store.Clear())

	count, err := store.Count()
	require.NoError(t, err)
	assert.Zero(t, count)

	last, err := store.Last()
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestUndoable(t *testing.T) {
	install := NewEntry(OpInstall, []string{"curl"})
	install.MarkSuccess()
	assert.True(t, install.Undoable())
	assert.Equal(t, OpRemove, install.InverseOperation())

	purge := NewEntry(OpPurge, []string{"cruft"})
	purge.MarkSuccess()
	assert.True(t, purge.Undoable())
	assert.Equal(t, OpInstall, purge.InverseOperation())

	upgrade := NewEntry(OpUpgrade, nil)
	upgrade.MarkSuccess()
	assert.False(t, upgrade.Undoable())

	failed := NewEntry(OpInstall, []string{"curl"})
	failed.MarkFailed(assert.AnError)
	assert.False(t, failed.Undoable())
}
