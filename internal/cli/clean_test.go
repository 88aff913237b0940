package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rantnar/nala/internal/config"
)

// cacheFixture lays out a fake engine cache tree and returns its paths.
func cacheFixture(t *testing.T) config.PathsConfig {
	t.Helper()
	root := t.TempDir()

	paths := config.PathsConfig{
		ArchiveDir:         filepath.Join(root, "archives"),
		PartialDir:         filepath.Join(root, "archives", "partial"),
		ListsDir:           filepath.Join(root, "lists"),
		ListsPartialDir:    filepath.Join(root, "lists", "partial"),
		PackageCache:       filepath.Join(root, "pkgcache.bin"),
		SourcePackageCache: filepath.Join(root, "srcpkgcache.bin"),
	}

	for _, dir := range []string{paths.ArchiveDir, paths.PartialDir, paths.ListsDir, paths.ListsPartialDir} {
		require.NoError(t, os.MkdirAll(dir, 0o755))
	}
	for _, file := range []string{
		filepath.Join(paths.ArchiveDir, "curl_7.88.1-10_amd64.deb"),
		filepath.Join(paths.PartialDir, "wget_1.21.3-1_amd64.deb"),
		filepath.Join(paths.ListsDir, "deb.debian.org_debian_dists_stable_InRelease"),
		filepath.Join(paths.ListsPartialDir, "partial-list"),
		paths.PackageCache,
		paths.SourcePackageCache,
	} {
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	}

	return paths
}

func TestCleanPathsLists(t *testing.T) {
	paths := cacheFixture(t)

	require.NoError(t, cleanPaths(paths, true))

	// Only the list caches go; archives and binary caches stay.
	assert.Empty(t, dirFiles(t, paths.ListsDir))
	assert.Empty(t, dirFiles(t, paths.ListsPartialDir))
	assert.NotEmpty(t, dirFiles(t, paths.ArchiveDir))
	assert.NotEmpty(t, dirFiles(t, paths.PartialDir))
	assert.FileExists(t, paths.PackageCache)
	assert.FileExists(t, paths.SourcePackageCache)
}

func TestCleanPathsArchives(t *testing.T) {
	paths := cacheFixture(t)

	require.NoError(t, cleanPaths(paths, false))

	assert.Empty(t, dirFiles(t, paths.ArchiveDir))
	assert.Empty(t, dirFiles(t, paths.PartialDir))
	assert.NoFileExists(t, paths.PackageCache)
	assert.NoFileExists(t, paths.SourcePackageCache)

	// The package lists survive an archive clean.
	assert.NotEmpty(t, dirFiles(t, paths.ListsDir))
	assert.NotEmpty(t, dirFiles(t, paths.ListsPartialDir))
}

func TestCleanPathsMissingDirs(t *testing.T) {
	paths := config.PathsConfig{
		ArchiveDir:         filepath.Join(t.TempDir(), "nope"),
		PartialDir:         filepath.Join(t.TempDir(), "nope", "partial"),
		PackageCache:       filepath.Join(t.TempDir(), "nope.bin"),
		SourcePackageCache: filepath.Join(t.TempDir(), "nope2.bin"),
	}
	assert.NoError(t, cleanPaths(paths, false))
}

// dirFiles lists the plain files directly inside dir.
func dirFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, entry.Name())
		}
	}
	return files
}
