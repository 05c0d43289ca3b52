package core

import (
	"context"
	"errors"
)

// ErrNoSession is returned by a Store that can no longer hand out sessions,
// typically because it was closed.
var ErrNoSession = errors.New("no store session available")

// Tribe is a remote-worker persona. Its id comes from the source file.
type Tribe struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Profession is an occupation with a broad group and a specific label.
// ID is assigned by the store on insert.
type Profession struct {
	ID             int64  `json:"id"`
	MainGroup      string `json:"main_group"`
	SecondaryLabel string `json:"secondary_label"`
	FunLabel       string `json:"fun_label"`
}

// TalkingPoint is a phrase to try or avoid with a given profession.
type TalkingPoint struct {
	ID           string `json:"id"`
	ProfessionID int64  `json:"profession_id"`
	TryThese     bool   `json:"try_these"`
	AvoidThese   bool   `json:"avoid_these"`
	Text         string `json:"text"`
}

// Session owns one store connection for the length of a seeding run.
// Statements run one at a time, each in the store's implicit transaction.
type Session interface {
	// SetForeignKeys enables or disables referential integrity checks
	// for this connection.
	SetForeignKeys(ctx context.Context, enabled bool) error

	DeleteTribes(ctx context.Context) error
	InsertTribe(ctx context.Context, t Tribe) error

	DeleteTalkingPoints(ctx context.Context) error
	DeleteProfessions(ctx context.Context) error

	// InsertProfession inserts p (ignoring p.ID) and returns the assigned id.
	InsertProfession(ctx context.Context, p Profession) (int64, error)

	// InsertTalkingPoint inserts tp unless a row with the same id exists.
	// Reports whether a row was written.
	InsertTalkingPoint(ctx context.Context, tp TalkingPoint) (bool, error)

	// Close releases the connection back to the store.
	Close() error
}

// Store hands out seeding sessions.
type Store interface {
	Session(ctx context.Context) (Session, error)
}

// Catalog is the read side of the store.
type Catalog interface {
	ListTribes(ctx context.Context) ([]Tribe, error)
	ListProfessions(ctx context.Context) ([]Profession, error)

	// ListTalkingPoints returns all talking points, or only those of
	// one profession when professionID is non-nil.
	ListTalkingPoints(ctx context.Context, professionID *int64) ([]TalkingPoint, error)

	// CountRows returns the row count of a registered table.
	CountRows(ctx context.Context, table string) (int64, error)
}
