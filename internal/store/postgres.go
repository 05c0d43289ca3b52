package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/brewsandbytes/seeder/internal/config"
	"github.com/brewsandbytes/seeder/internal/core"
	db "github.com/brewsandbytes/seeder/internal/database/postgres"
	"github.com/brewsandbytes/seeder/internal/migrations"
)

// Postgres is a Backend on a pgx connection pool.
type Postgres struct {
	pool   *pgxpool.Pool
	q      *db.Queries
	closed atomic.Bool

	sqlOnce sync.Once
	sqlDB   *sql.DB
}

// OpenPostgres connects a pool sized by cfg and verifies it with a ping.
func OpenPostgres(ctx context.Context, cfg config.DatabaseConfig) (*Postgres, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	maxConns, minConns := cfg.PoolSize()
	poolConfig.MaxConns = maxConns
	poolConfig.MinConns = minConns
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Postgres{pool: pool, q: db.New(pool)}, nil
}

func (p *Postgres) Dialect() string { return migrations.DialectPostgres }

// DB returns a database/sql view of the pool, created on first use.
func (p *Postgres) DB() *sql.DB {
	p.sqlOnce.Do(func() {
		p.sqlDB = stdlib.OpenDBFromPool(p.pool)
	})
	return p.sqlDB
}

func (p *Postgres) Ping(ctx context.Context) error { return p.pool.Ping(ctx) }

func (p *Postgres) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	var err error
	if p.sqlDB != nil {
		err = p.sqlDB.Close()
	}
	p.pool.Close()
	return err
}

// Session implements core.Store.
func (p *Postgres) Session(ctx context.Context) (core.Session, error) {
	if p.closed.Load() {
		return nil, core.ErrNoSession
	}
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	return &postgresSession{conn: conn, q: db.New(conn), fkOn: true}, nil
}

func (p *Postgres) ListTribes(ctx context.Context) ([]core.Tribe, error) {
	rows, err := p.q.ListTribes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]core.Tribe, len(rows))
	for i, r := range rows {
		out[i] = core.Tribe{ID: r.ID, Name: r.Name, Description: r.Description}
	}
	return out, nil
}

func (p *Postgres) ListProfessions(ctx context.Context) ([]core.Profession, error) {
	rows, err := p.q.ListProfessions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]core.Profession, len(rows))
	for i, r := range rows {
		out[i] = core.Profession{ID: r.ID, MainGroup: r.MainGroup, SecondaryLabel: r.SecondaryLabel, FunLabel: r.FunLabel}
	}
	return out, nil
}

func (p *Postgres) ListTalkingPoints(ctx context.Context, professionID *int64) ([]core.TalkingPoint, error) {
	var (
		rows []db.TalkingPoint
		err  error
	)
	if professionID != nil {
		rows, err = p.q.ListTalkingPointsByProfession(ctx, *professionID)
	} else {
		rows, err = p.q.ListTalkingPoints(ctx)
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

func (p *Postgres) CountRows(ctx context.Context, table string) (int64, error) {
	switch table {
	case core.TableTribes:
		return p.q.CountTribes(ctx)
	case core.TableProfessions:
		return p.q.CountProfessions(ctx)
	case core.TableTalkingPoints:
		return p.q.CountTalkingPoints(ctx)
	default:
		return 0, unknownTable(table)
	}
}

// postgresSession pins one pooled connection. Foreign keys are suspended
// through session_replication_role, which only affects this connection.
type postgresSession struct {
	conn *pgxpool.Conn
	q    *db.Queries
	fkOn bool
}

func (s *postgresSession) SetForeignKeys(ctx context.Context, enabled bool) error {
	var err error
	if enabled {
		err = s.q.ResetReplicaRole(ctx)
	} else {
		s.fkOn = false
		err = s.q.SetReplicaRole(ctx)
	}
	if err != nil {
		return err
	}
	s.fkOn = enabled
	return nil
}

func (s *postgresSession) DeleteTribes(ctx context.Context) error {
	return s.q.DeleteTribes(ctx)
}

func (s *postgresSession) InsertTribe(ctx context.Context, t core.Tribe) error {
	return s.q.InsertTribe(ctx, db.InsertTribeParams{ID: t.ID, Name: t.Name, Description: t.Description})
}

func (s *postgresSession) DeleteTalkingPoints(ctx context.Context) error {
	return s.q.DeleteTalkingPoints(ctx)
}

func (s *postgresSession) DeleteProfessions(ctx context.Context) error {
	return s.q.DeleteProfessions(ctx)
}

func (s *postgresSession) InsertProfession(ctx context.Context, p core.Profession) (int64, error) {
	return s.q.InsertProfession(ctx, db.InsertProfessionParams{
		MainGroup:      p.MainGroup,
		SecondaryLabel: p.SecondaryLabel,
		FunLabel:       p.FunLabel,
	})
}

func (s *postgresSession) InsertTalkingPoint(ctx context.Context, tp core.TalkingPoint) (bool, error) {
	n, err := s.q.InsertTalkingPoint(ctx, db.InsertTalkingPointParams{
		ID:           tp.ID,
		ProfessionID: tp.ProfessionID,
		TryThese:     tp.TryThese,
		AvoidThese:   tp.AvoidThese,
		Text:         tp.Text,
	})
	return n == 1, err
}

func (s *postgresSession) Close() error {
	if s.fkOn {
		s.conn.Release()
		return nil
	}
	// Never hand a replica-mode connection back to the pool.
	raw := s.conn.Hijack()
	return raw.Close(context.Background())
}
