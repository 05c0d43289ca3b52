// Package store implements the catalog store on SQLite or PostgreSQL.
//
// Each backend hands out sessions that pin one connection for the length of
// a seeding run, so toggling foreign key enforcement affects only that run.
// A connection whose enforcement could not be restored is discarded instead
// of being returned to the pool.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/brewsandbytes/seeder/internal/config"
	"github.com/brewsandbytes/seeder/internal/core"
	"github.com/brewsandbytes/seeder/internal/migrations"
)

// Backend is a catalog store.
type Backend interface {
	core.Store
	core.Catalog

	// Dialect names the SQL dialect for migrations.
	Dialect() string

	// DB exposes a database/sql handle for schema migrations.
	DB() *sql.DB

	Ping(ctx context.Context) error
	Close() error
}

// Open connects to the database selected by cfg.
func Open(ctx context.Context, cfg config.DatabaseConfig) (Backend, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		return OpenSQLite(ctx, cfg.URL)
	case config.DriverPostgres:
		return OpenPostgres(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// Migrate applies pending schema migrations to b.
func Migrate(ctx context.Context, b Backend) (int, error) {
	return migrations.Up(ctx, b.DB(), b.Dialect())
}

func unknownTable(table string) error {
	return fmt.Errorf("unknown table %q", table)
}
