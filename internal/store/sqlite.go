package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/brewsandbytes/seeder/internal/core"
	db "github.com/brewsandbytes/seeder/internal/database/sqlite"
	"github.com/brewsandbytes/seeder/internal/migrations"
)

// SQLite is a Backend on a single database file.
type SQLite struct {
	db     *sqlx.DB
	q      *db.Queries
	path   string
	closed atomic.Bool
}

// sqliteDSN enables foreign keys on every new connection and waits on locks
// instead of failing immediately. Pragmas already present in path are kept;
// missing ones are appended to its query string.
func sqliteDSN(path string) string {
	dsn := path
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}

	var pragmas []string
	if !strings.Contains(dsn, "_pragma=foreign_keys") {
		pragmas = append(pragmas, "_pragma=foreign_keys(1)")
	}
	if !strings.Contains(dsn, "_pragma=busy_timeout") {
		pragmas = append(pragmas, "_pragma=busy_timeout(5000)")
	}
	if len(pragmas) == 0 {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(pragmas, "&")
}

// OpenSQLite opens (creating if needed) the database file at path.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	conn, err := sqlx.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &SQLite{db: conn, q: db.New(conn), path: path}, nil
}

func (s *SQLite) Dialect() string { return migrations.DialectSQLite }

func (s *SQLite) DB() *sql.DB { return s.db.DB }

func (s *SQLite) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *SQLite) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}

// Session implements core.Store.
func (s *SQLite) Session(ctx context.Context) (core.Session, error) {
	if s.closed.Load() {
		return nil, core.ErrNoSession
	}
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire sqlite connection: %w", err)
	}
	return &sqliteSession{conn: conn, q: db.New(conn), fkOn: true}, nil
}

func (s *SQLite) ListTribes(ctx context.Context) ([]core.Tribe, error) {
	rows, err := s.q.ListTribes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]core.Tribe, len(rows))
	for i, r := range rows {
		out[i] = core.Tribe{ID: r.ID, Name: r.Name, Description: r.Description}
	}
	return out, nil
}

func (s *SQLite) ListProfessions(ctx context.Context) ([]core.Profession, error) {
	rows, err := s.q.ListProfessions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]core.Profession, len(rows))
	for i, r := range rows {
		out[i] = core.Profession{ID: r.ID, MainGroup: r.MainGroup, SecondaryLabel: r.SecondaryLabel, FunLabel: r.FunLabel}
	}
	return out, nil
}

func (s *SQLite) ListTalkingPoints(ctx context.Context, professionID *int64) ([]core.TalkingPoint, error) {
	var (
		rows []db.TalkingPoint
		err  error
	)
	if professionID != nil {
		rows, err = s.q.ListTalkingPointsByProfession(ctx, *professionID)
	} else {
		rows, err = s.q.ListTalkingPoints(ctx)
	}
	if err != nil {
		return nil, err
	}
	out := make([]core.TalkingPoint, len(rows))
	for i, r := range rows {
		out[i] = core.TalkingPoint{
			ID:           r.ID,
			ProfessionID: r.ProfessionID,
			TryThese:     r.TryThese,
			AvoidThese:   r.AvoidThese,
			Text:         r.Text,
		}
	}
	return out, nil
}

func (s *SQLite) CountRows(ctx context.Context, table string) (int64, error) {
	switch table {
	case core.TableTribes:
		return s.q.CountTribes(ctx)
	case core.TableProfessions:
		return s.q.CountProfessions(ctx)
	case core.TableTalkingPoints:
		return s.q.CountTalkingPoints(ctx)
	default:
		return 0, unknownTable(table)
	}
}

// sqliteSession pins one pooled connection.
type sqliteSession struct {
	conn *sqlx.Conn
	q    *db.Queries
	fkOn bool
}

func (s *sqliteSession) SetForeignKeys(ctx context.Context, enabled bool) error {
	var err error
	if enabled {
		err = s.q.EnableForeignKeys(ctx)
	} else {
		// Mark off first so a failed toggle still discards the connection.
		s.fkOn = false
		err = s.q.DisableForeignKeys(ctx)
	}
	if err != nil {
		return err
	}
	s.fkOn = enabled
	return nil
}

func (s *sqliteSession) DeleteTribes(ctx context.Context) error {
	return s.q.DeleteTribes(ctx)
}

func (s *sqliteSession) InsertTribe(ctx context.Context, t core.Tribe) error {
	return s.q.InsertTribe(ctx, db.InsertTribeParams{ID: t.ID, Name: t.Name, Description: t.Description})
}

func (s *sqliteSession) DeleteTalkingPoints(ctx context.Context) error {
	return s.q.DeleteTalkingPoints(ctx)
}

func (s *sqliteSession) DeleteProfessions(ctx context.Context) error {
	return s.q.DeleteProfessions(ctx)
}

func (s *sqliteSession) InsertProfession(ctx context.Context, p core.Profession) (int64, error) {
	return s.q.InsertProfession(ctx, db.InsertProfessionParams{
		MainGroup:      p.MainGroup,
		SecondaryLabel: p.SecondaryLabel,
		FunLabel:       p.FunLabel,
	})
}

func (s *sqliteSession) InsertTalkingPoint(ctx context.Context, tp core.TalkingPoint) (bool, error) {
	n, err := s.q.InsertTalkingPoint(ctx, db.InsertTalkingPointParams{
		ID:           tp.ID,
		ProfessionID: tp.ProfessionID,
		TryThese:     tp.TryThese,
		AvoidThese:   tp.AvoidThese,
		Text:         tp.Text,
	})
	return n == 1, err
}

func (s *sqliteSession) Close() error {
	if s.fkOn {
		return s.conn.Close()
	}
	// Returning ErrBadConn makes database/sql drop the connection, so Raw
	// reporting it back is the expected outcome.
	if err := s.conn.Raw(func(any) error { return driver.ErrBadConn }); err != nil && !errors.Is(err, driver.ErrBadConn) {
		slog.Debug("discard sqlite connection", "error", err)
	}
	if err := s.conn.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		return err
	}
	return nil
}
