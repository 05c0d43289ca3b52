// Package source opens the CSV files a seeding run reads.
//
// A Source resolves relative file names (as listed in a Manifest) against a
// local directory or an S3 bucket. A missing file is reported as ErrNotFound
// so callers can treat it as an empty contribution instead of a failure.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/brewsandbytes/seeder/internal/config"
)

// ErrNotFound is returned by Open when the named file does not exist.
var ErrNotFound = errors.New("source file not found")

// Source opens seed files by relative name.
type Source interface {
	// Open returns the file content. The caller must close it.
	// Returns an error wrapping ErrNotFound if the file does not exist.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Describe returns a short human readable location, used in logs and reports.
	Describe() string
}

// New builds the Source selected by cfg.
func New(ctx context.Context, cfg config.SourceConfig) (Source, error) {
	switch cfg.Kind {
	case config.SourceDir, "":
		return NewDir(cfg.BaseDir), nil
	case config.SourceS3:
		return NewS3(ctx, S3Config{
			Bucket:    cfg.S3Bucket,
			Prefix:    cfg.S3Prefix,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		})
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Kind)
	}
}
