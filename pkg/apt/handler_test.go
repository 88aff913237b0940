package apt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLocal(t *testing.T) {
	dir := t.TempDir()
	deb := filepath.Join(dir, "hello_2.10-3_amd64.deb")
	require.NoError(t, os.WriteFile(deb, []byte("not really a deb"), 0o644))

	handler := NewPackageHandler()
	names := handler.SplitLocal([]string{"curl", deb, filepath.Join(dir, "missing.deb")})

	assert.Equal(t, []string{"curl"}, names)
	assert.Equal(t, []string{deb}, handler.LocalDebs)
	assert.Equal(t, []string{filepath.Join(dir, "missing.deb")}, handler.NotFound)
}

func TestProtect(t *testing.T) {
	handler := NewPackageHandler()
	handler.Protect("linux-image-amd64", "curl:amd64")

	assert.True(t, handler.IsProtected("linux-image-amd64"))
	assert.True(t, handler.IsProtected("curl"))
	assert.False(t, handler.IsProtected("wget"))
	assert.Len(t, handler.ProtectedNames(), 2)
}

func TestTransactionRequested(t *testing.T) {
	tx := Transaction{Install: []string{"curl"}, Remove: []string{"wget"}}
	assert.Equal(t, []string{"curl", "wget"}, tx.Requested())
	assert.True(t, tx.IsRemoval())

	install := Transaction{Install: []string{"curl"}}
	assert.False(t, install.IsRemoval())

	autoremove := Transaction{AutoRemove: true}
	assert.True(t, autoremove.IsRemoval())
}
