package core

import (
	"context"
	"fmt"
	"time"

	"github.com/brewsandbytes/seeder/internal/csv"
	"github.com/brewsandbytes/seeder/internal/logging"
	"github.com/brewsandbytes/seeder/internal/source"
)

// Seeder reseeds the catalog tables from CSV files.
type Seeder struct {
	store    Store
	src      source.Source
	files    source.Manifest
	observer Observer
	now      func() time.Time
	guard    *runGuard
}

// Option configures a Seeder.
type Option func(*Seeder)

// WithObserver reports file and run results to o.
func WithObserver(o Observer) Option {
	return func(s *Seeder) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithClock overrides the time source used for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Seeder) {
		s.now = now
	}
}

// NewSeeder creates a Seeder reading files from src at the locations in files.
func NewSeeder(store Store, src source.Source, files source.Manifest, opts ...Option) *Seeder {
	s := &Seeder{
		store:    store,
		src:      src,
		files:    files,
		observer: noopObserver{},
		now:      time.Now,
		guard:    newRunGuard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run performs one full reseed. Steps run strictly in order and the first
// store or source failure stops the run. Foreign key checks are re-enabled
// and the session released on every return path.
//
// The returned report is never nil; on failure it holds the counts reached
// before the error. A Run started while another is in flight on the same
// Seeder returns ErrRunInProgress without touching the store.
func (s *Seeder) Run(ctx context.Context) (report *Report, err error) {
	runID := logging.RunIDFromContext(ctx)
	if runID == "" {
		runID = logging.NewRunID()
		ctx = logging.WithRunID(ctx, runID)
	}
	logger := logging.FromContext(ctx)

	report = &Report{RunID: runID, Source: s.src.Describe(), StartedAt: s.now()}
	if holder, ok := s.guard.tryAcquire(runID); !ok {
		err = fmt.Errorf("%w (active run %s)", ErrRunInProgress, holder)
		report.finish(report.StartedAt, err)
		logger.Warn("seeding skipped", "error", err)
		return report, err
	}
	defer s.guard.release()

	defer func() {
		report.finish(s.now(), err)
		s.observer.ObserveRun(report)
		if err != nil {
			logger.Error("seeding failed", "error", err, "duration_ms", report.DurationMS)
			return
		}
		logger.Info("seeding completed",
			"tribes", report.Tribes,
			"professions", report.Professions,
			"talking_points", report.TalkingPoints,
			"skipped", report.Skipped(),
			"duration_ms", report.DurationMS,
		)
	}()

	logger.Info("seeding started", "source", report.Source)

	sess, err := s.store.Session(ctx)
	if err != nil {
		return report, fmt.Errorf("acquire session: %w", err)
	}

	// Cleanup must run even when ctx is already cancelled.
	cleanupCtx := context.WithoutCancel(ctx)
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			logger.Warn("release session", "error", cerr)
		}
	}()
	defer func() {
		if ferr := sess.SetForeignKeys(cleanupCtx, true); ferr != nil {
			logger.Error("re-enable foreign keys", "error", ferr)
			if err == nil {
				err = fmt.Errorf("re-enable foreign keys: %w", ferr)
			}
			return
		}
		logger.Debug("foreign keys enabled")
	}()

	if err = sess.SetForeignKeys(ctx, false); err != nil {
		return report, fmt.Errorf("disable foreign keys: %w", err)
	}
	logger.Debug("foreign keys disabled")

	if err = s.seedTribes(ctx, sess, report); err != nil {
		return report, err
	}

	if err = sess.DeleteTalkingPoints(ctx); err != nil {
		return report, fmt.Errorf("delete talking points: %w", err)
	}
	if err = sess.DeleteProfessions(ctx); err != nil {
		return report, fmt.Errorf("delete professions: %w", err)
	}

	index, err := s.seedProfessions(ctx, sess, report)
	if err != nil {
		return report, err
	}

	if err = s.seedTalkingPoints(ctx, sess, index, report); err != nil {
		return report, err
	}

	return report, nil
}

// openFile loads one file and starts its result entry. The boolean is false
// when the file is absent.
func (s *Seeder) openFile(ctx context.Context, table, name string) (csv.Table, *FileResult, bool, error) {
	result := &FileResult{Table: table, File: name}

	data, size, found, err := loadTable(ctx, s.src, name)
	result.Found = found
	result.Bytes = size
	if err != nil || !found {
		return csv.Table{}, result, found, err
	}

	result.Rows = len(data.Rows)
	if len(data.Header) > 0 {
		result.MissingColumns = MissingColumns(MustGet(table).FieldSpecs, data.Header)
	}
	return data, result, true, nil
}

// record appends a file result to the report and logs it.
func (s *Seeder) record(ctx context.Context, report *Report, result *FileResult) {
	report.Files = append(report.Files, *result)
	s.observer.ObserveFile(*result)

	logger := logging.WithFields(ctx, "table", result.Table, "file", result.File)
	if !result.Found {
		logger.Info("source file not found, skipping")
		return
	}
	if len(result.MissingColumns) > 0 {
		logger.Warn("source file is missing required columns", "columns", result.MissingColumns)
	}
	for _, row := range result.SkippedRows {
		logger.Debug("row skipped", "line", row.Line, "reason", row.Reason, "detail", row.Detail)
	}
	logger.Info("seeded file",
		"rows", result.Rows,
		"inserted", result.Inserted,
		"skipped", result.Skipped,
		"duplicates", result.Duplicates,
	)
}

// seedTribes replaces all tribes. An absent tribe file leaves the table untouched.
func (s *Seeder) seedTribes(ctx context.Context, sess Session, report *Report) error {
	data, result, found, err := s.openFile(ctx, TableTribes, s.files.Tribes)
	if err != nil {
		return err
	}
	if !found {
		s.record(ctx, report, result)
		return nil
	}

	if err := sess.DeleteTribes(ctx); err != nil {
		return fmt.Errorf("delete tribes: %w", err)
	}

	specs := MustGet(TableTribes).FieldSpecs
	for _, row := range data.Rows {
		if verr := ValidateRow(specs, row); verr != nil {
			result.skip(row.Line, SkipMissingField, verr.Error())
			continue
		}
		id, perr := parseLeadingInt(row.Get(colID))
		if perr != nil {
			result.skip(row.Line, SkipInvalidID, perr.Error())
			continue
		}

		tribe := Tribe{ID: id, Name: row.Get(colName), Description: row.Get(colDescription)}
		if err := sess.InsertTribe(ctx, tribe); err != nil {
			s.record(ctx, report, result)
			return fmt.Errorf("insert tribe %d (%s line %d): %w", id, result.File, row.Line, err)
		}
		result.Inserted++
		report.Tribes++
	}

	s.record(ctx, report, result)
	return nil
}

// seedProfessions inserts professions and indexes their assigned ids.
func (s *Seeder) seedProfessions(ctx context.Context, sess Session, report *Report) (*ProfessionIndex, error) {
	index := NewProfessionIndex()

	data, result, found, err := s.openFile(ctx, TableProfessions, s.files.Professions)
	if err != nil {
		return index, err
	}
	if !found {
		s.record(ctx, report, result)
		return index, nil
	}

	specs := MustGet(TableProfessions).FieldSpecs
	for _, row := range data.Rows {
		if verr := ValidateRow(specs, row); verr != nil {
			result.skip(row.Line, SkipMissingField, verr.Error())
			continue
		}

		p := Profession{
			MainGroup:      row.Get(colMainGroup),
			SecondaryLabel: row.Get(colSecondaryLabel),
			FunLabel:       row.Get(colFunLabels),
		}
		id, err := sess.InsertProfession(ctx, p)
		if err != nil {
			s.record(ctx, report, result)
			return index, fmt.Errorf("insert profession %q (%s line %d): %w", p.SecondaryLabel, result.File, row.Line, err)
		}
		p.ID = id
		index.Add(p)
		result.Inserted++
		report.Professions++
	}

	s.record(ctx, report, result)
	return index, nil
}

// seedTalkingPoints inserts talking points from every configured file in order.
func (s *Seeder) seedTalkingPoints(ctx context.Context, sess Session, index *ProfessionIndex, report *Report) error {
	specs := MustGet(TableTalkingPoints).FieldSpecs

	for _, name := range s.files.TalkingPoints {
		data, result, found, err := s.openFile(ctx, TableTalkingPoints, name)
		if err != nil {
			return err
		}
		if !found {
			s.record(ctx, report, result)
			continue
		}

		for _, row := range data.Rows {
			if verr := ValidateRow(specs, row); verr != nil {
				result.skip(row.Line, SkipMissingField, verr.Error())
				continue
			}

			label := row.Get(colSecondaryProfession)
			professionID, ok := index.Resolve(row.Get(colMainGroup), label)
			if !ok {
				result.skip(row.Line, SkipUnknownProfession, label)
				continue
			}

			tp := TalkingPoint{
				ID:           row.Get(colID),
				ProfessionID: professionID,
				TryThese:     parseFlag(row.Get(colTryThese)),
				AvoidThese:   parseFlag(row.Get(colAvoidThese)),
				Text:         row.Get(colText),
			}
			inserted, err := sess.InsertTalkingPoint(ctx, tp)
			if err != nil {
				s.record(ctx, report, result)
				return fmt.Errorf("insert talking point %q (%s line %d): %w", tp.ID, name, row.Line, err)
			}
			if !inserted {
				result.Duplicates++
				continue
			}
			result.Inserted++
			report.TalkingPoints++
		}

		s.record(ctx, report, result)
	}

	return nil
}
