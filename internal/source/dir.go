package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Dir reads seed files from the local filesystem.
// Relative names are resolved against Base; absolute names are used as-is.
type Dir struct {
	Base string
}

// NewDir returns a Dir rooted at base. An empty base means the working directory.
func NewDir(base string) *Dir {
	if base == "" {
		base = "."
	}
	return &Dir{Base: base}
}

// Path returns the filesystem path for name.
func (d *Dir) Path(name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(d.Base, filepath.FromSlash(name))
}

// Open implements Source.
func (d *Dir) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := d.Path(name)
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", p, ErrNotFound)
		}
		return nil, fmt.Errorf("open %s: %w", p, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", p, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%s is a directory", p)
	}

	return f, nil
}

// Describe implements Source.
func (d *Dir) Describe() string {
	abs, err := filepath.Abs(d.Base)
	if err != nil {
		return "dir:" + d.Base
	}
	return "dir:" + abs
}
