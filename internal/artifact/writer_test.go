package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/specialistvlad/eqgen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_WriteAll(t *testing.T) {
	files := map[string]string{
		"model.h": "#pragma once\n",
		"model.c": "#include \"model.h\"\n",
	}

	testCases := []struct {
		name     string
		compress bool
		want     []string
	}{
		{name: "plain", want: []string{"model.c", "model.h"}},
		{name: "compressed", compress: true, want: []string{"model.c.zst", "model.h.zst"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			dir := filepath.Join(t.TempDir(), "out", "nested")
			w, err := NewWriter(dir, tc.compress)
			require.NoError(t, err)
			defer w.Close()

			// --- Act ---
			paths, err := w.WriteAll(testutil.Context(t), files)

			// --- Assert ---
			require.NoError(t, err)
			require.Len(t, paths, len(tc.want))
			for i, name := range tc.want {
				assert.Equal(t, filepath.Join(dir, name), paths[i])
			}
			for _, path := range paths {
				got, err := ReadFile(path)
				require.NoError(t, err)
				name := filepath.Base(path)
				if tc.compress {
					name = name[:len(name)-len(CompressedSuffix)]
				}
				assert.Equal(t, files[name], string(got))
			}
			assert.Equal(t, tc.compress, w.Compressed())
		})
	}
}

func TestWriter_CompressedFilesAreZstdFrames(t *testing.T) {
	// --- Arrange ---
	w, err := NewWriter(t.TempDir(), true)
	require.NoError(t, err)
	defer w.Close()

	// --- Act ---
	path, err := w.Write(testutil.Context(t), "report.json", []byte(`{"valid":true}`))
	require.NoError(t, err)

	// --- Assert ---
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	dec, err := zstd.NewReader(nil)
	require.NoError(t, err)
	defer dec.Close()
	out, err := dec.DecodeAll(raw, nil)
	require.NoError(t, err)
	assert.Equal(t, `{"valid":true}`, string(out))
}

func TestWriter_RejectsPaths(t *testing.T) {
	w, err := NewWriter(t.TempDir(), false)
	require.NoError(t, err)

	for _, name := range []string{"", "../escape.c", "sub/model.c"} {
		t.Run(name, func(t *testing.T) {
			_, err := w.Write(testutil.Context(t), name, []byte("x"))
			assert.ErrorContains(t, err, "invalid artifact name")
		})
	}
}
