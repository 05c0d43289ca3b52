package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/brewsandbytes/seeder/internal/csv"
	"github.com/brewsandbytes/seeder/internal/source"
)

// countingReader tracks bytes read from the wrapped reader.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// loadTable reads and decodes one seed file. An absent file yields
// found=false and no error. Invalid UTF-8 is replaced with U+FFFD.
func loadTable(ctx context.Context, src source.Source, name string) (table csv.Table, size int64, found bool, err error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		if errors.Is(err, source.ErrNotFound) {
			return csv.Table{}, 0, false, nil
		}
		return csv.Table{}, 0, false, fmt.Errorf("read source %s: %w", name, err)
	}
	defer rc.Close()

	cr := &countingReader{r: rc}
	data, err := io.ReadAll(cr)
	if err != nil {
		return csv.Table{}, cr.n, true, fmt.Errorf("read source %s: %w", name, err)
	}

	return csv.Decode(strings.ToValidUTF8(string(data), "\uFFFD")), cr.n, true, nil
}
