package source

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDir_Open(t *testing.T) {
	base := t.TempDir()
	sub := filepath.Join(base, "server")
	if err := os.MkdirAll(filepath.Join(base, "database"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(base, "database", "mock_tribes.csv"), []byte("id,name\n1,Nomads\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	d := NewDir(sub)
	rc, err := d.Open(context.Background(), "../database/mock_tribes.csv")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Nomads") {
		t.Errorf("content = %q, want tribe row", data)
	}
}

func TestDir_OpenMissing(t *testing.T) {
	d := NewDir(t.TempDir())

	_, err := d.Open(context.Background(), "nope.csv")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Open() error = %v, want ErrNotFound", err)
	}
}

func TestDir_OpenDirectory(t *testing.T) {
	base := t.TempDir()
	if err := os.Mkdir(filepath.Join(base, "talking_points.csv"), 0o755); err != nil {
		t.Fatal(err)
	}

	_, err := NewDir(base).Open(context.Background(), "talking_points.csv")
	if err == nil {
		t.Fatal("Open() expected error for a directory")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("a directory is not a missing file")
	}
}

func TestDir_Path(t *testing.T) {
	d := NewDir("/srv/site/server")

	if got := d.Path("../database/x.csv"); got != "/srv/site/database/x.csv" {
		t.Errorf("Path(relative) = %q", got)
	}
	if got := d.Path("/data/x.csv"); got != "/data/x.csv" {
		t.Errorf("Path(absolute) = %q", got)
	}
	if got := NewDir("").Base; got != "." {
		t.Errorf("NewDir(\"\").Base = %q, want .", got)
	}
}
