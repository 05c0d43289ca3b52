package core

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// SkipReason explains why a CSV row was not inserted.
type SkipReason string

const (
	SkipMissingField      SkipReason = "missing_field"
	SkipInvalidID         SkipReason = "invalid_id"
	SkipUnknownProfession SkipReason = "unknown_profession"
)

// SkippedRow identifies one skipped row by its line in the source file.
type SkippedRow struct {
	Line   int        `json:"line"`
	Reason SkipReason `json:"reason"`
	Detail string     `json:"detail,omitempty"`
}

// FileResult holds the outcome of seeding one source file.
type FileResult struct {
	Table          string       `json:"table"`
	File           string       `json:"file"`
	Found          bool         `json:"found"`
	Bytes          int64        `json:"bytes"`
	Rows           int          `json:"rows"`
	Inserted       int          `json:"inserted"`
	Skipped        int          `json:"skipped"`
	Duplicates     int          `json:"duplicates"`
	MissingColumns []string     `json:"missing_columns,omitempty"`
	SkippedRows    []SkippedRow `json:"skipped_rows,omitempty"`
}

func (f *FileResult) skip(line int, reason SkipReason, detail string) {
	f.Skipped++
	f.SkippedRows = append(f.SkippedRows, SkippedRow{Line: line, Reason: reason, Detail: detail})
}

// Report summarizes one seeding run. A failed run still reports the
// counts reached before the failure.
type Report struct {
	RunID      string        `json:"run_id"`
	Source     string        `json:"source"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Duration   time.Duration `json:"-"`
	DurationMS int64         `json:"duration_ms"`

	Files []FileResult `json:"files"`

	Tribes        int `json:"tribes"`
	Professions   int `json:"professions"`
	TalkingPoints int `json:"talking_points"`

	Error string `json:"error,omitempty"`
}

// Succeeded reports whether the run completed without error.
func (r *Report) Succeeded() bool {
	return r.Error == ""
}

// Skipped returns the number of skipped rows across all files.
func (r *Report) Skipped() int {
	n := 0
	for _, f := range r.Files {
		n += f.Skipped
	}
	return n
}

func (r *Report) finish(at time.Time, err error) {
	r.FinishedAt = at
	r.Duration = at.Sub(r.StartedAt)
	r.DurationMS = r.Duration.Milliseconds()
	if err != nil {
		r.Error = err.Error()
	}
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteFile writes the report as JSON to path, creating parent directories.
func (r *Report) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := r.WriteJSON(f); err != nil {
		f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	return f.Close()
}

// Observer receives results as a run progresses.
type Observer interface {
	ObserveFile(FileResult)
	ObserveRun(*Report)
}

type noopObserver struct{}

func (noopObserver) ObserveFile(FileResult) {}
func (noopObserver) ObserveRun(*Report)     {}
