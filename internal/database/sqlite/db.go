// Package sqlite holds the catalog queries for the SQLite store.
package sqlite

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by *sqlx.DB, *sqlx.Conn and *sqlx.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithDB(db DBTX) *Queries {
	return &Queries{db: db}
}
