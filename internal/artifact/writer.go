// Package artifact writes generated files and reports to an output
// directory, optionally compressed with zstd.
package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/klauspost/compress/zstd"
	"github.com/specialistvlad/eqgen/internal/ctxlog"
)

// CompressedSuffix is appended to the name of every compressed file.
const CompressedSuffix = ".zst"

// Writer puts files into one directory. It is not safe for concurrent use.
type Writer struct {
	dir     string
	encoder *zstd.Encoder
}

// NewWriter creates dir if needed. When compress is set every file is
// written as a single zstd frame under its name plus CompressedSuffix.
func NewWriter(dir string, compress bool) (*Writer, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	w := &Writer{dir: dir}
	if compress {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		w.encoder = enc
	}
	return w, nil
}

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

// Compressed reports whether files are zstd compressed.
func (w *Writer) Compressed() bool { return w.encoder != nil }

// Write stores data under name and returns the path written.
func (w *Writer) Write(ctx context.Context, name string, data []byte) (string, error) {
	if name == "" || filepath.Base(name) != name {
		return "", fmt.Errorf("invalid artifact name %q", name)
	}
	path := filepath.Join(w.dir, name)
	if w.encoder != nil {
		path += CompressedSuffix
		data = w.encoder.EncodeAll(data, make([]byte, 0, len(data)))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Debug("Artifact written.", "path", path, "bytes", len(data))
	return path, nil
}

// WriteAll stores every file in name order and returns the paths written.
func (w *Writer) WriteAll(ctx context.Context, files map[string]string) ([]string, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	slices.Sort(names)

	paths := make([]string, 0, len(names))
	for _, name := range names {
		path, err := w.Write(ctx, name, []byte(files[name]))
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Close releases the encoder.
func (w *Writer) Close() error {
	if w.encoder != nil {
		return w.encoder.Close()
	}
	return nil
}

// ReadFile reads an artifact back, decompressing it when path carries
// CompressedSuffix.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if filepath.Ext(path) != CompressedSuffix {
		return data, nil
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s: %w", path, err)
	}
	return out, nil
}
