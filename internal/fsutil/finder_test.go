package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
}

func TestFindFilesByExtension(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.hcl"))
	writeFile(t, filepath.Join(root, "nested", "deep", "b.hcl"))
	writeFile(t, filepath.Join(root, "nested", "c.txt"))

	files, err := FindFilesByExtension(root, ".hcl")
	require.NoError(t, err)
	assert.Len(t, files, 2)

	assert.Panics(t, func() { _, _ = FindFilesByExtension(root, "") })
}

func TestFindFilesByName(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pkg-a", "package.hcl"))
	writeFile(t, filepath.Join(root, "pkg-b", "sub", "package.hcl"))
	writeFile(t, filepath.Join(root, "pkg-c", "package.hcl.bak"))
	writeFile(t, filepath.Join(root, "package.txt"))

	files, err := FindFilesByName(root, "package.hcl")
	require.NoError(t, err)
	assert.Len(t, files, 2)
	for _, f := range files {
		assert.Equal(t, "package.hcl", filepath.Base(f))
	}

	assert.Panics(t, func() { _, _ = FindFilesByName(root, "") })
}

func TestFindMissingRoot(t *testing.T) {
	t.Parallel()

	_, err := FindFilesByName(filepath.Join(t.TempDir(), "does-not-exist"), "package.hcl")
	assert.Error(t, err)
}
