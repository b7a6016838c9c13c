package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestFindFilesByExtension(t *testing.T) {
	// --- Arrange ---
	root := t.TempDir()
	touch(t, filepath.Join(root, "z.hcl"))
	touch(t, filepath.Join(root, "a", "b.hcl"))
	touch(t, filepath.Join(root, "a", "notes.txt"))
	touch(t, filepath.Join(root, "m.eqgen.hcl"))

	t.Run("walks directories in sorted order", func(t *testing.T) {
		files, err := FindFilesByExtension(root, ".hcl")

		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "a", "b.hcl"),
			filepath.Join(root, "m.eqgen.hcl"),
			filepath.Join(root, "z.hcl"),
		}, files)
	})

	t.Run("several extensions", func(t *testing.T) {
		files, err := FindFilesByExtension(filepath.Join(root, "a"), ".txt", ".hcl")

		require.NoError(t, err)
		assert.Len(t, files, 2)
	})

	t.Run("single file", func(t *testing.T) {
		path := filepath.Join(root, "z.hcl")
		files, err := FindFilesByExtension(path, ".hcl")

		require.NoError(t, err)
		assert.Equal(t, []string{path}, files)

		_, err = FindFilesByExtension(path, ".txt")
		assert.ErrorContains(t, err, "does not end with .txt")
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := FindFilesByExtension(filepath.Join(root, "nope"), ".hcl")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("empty extension panics", func(t *testing.T) {
		assert.Panics(t, func() { _, _ = FindFilesByExtension(root, "") })
	})
}
