package sqlite

import (
	"context"
)

const disableForeignKeys = `PRAGMA foreign_keys = OFF`

// PRAGMA foreign_keys has no effect inside a transaction.
func (q *Queries) DisableForeignKeys(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, disableForeignKeys)
	return err
}

const enableForeignKeys = `PRAGMA foreign_keys = ON`

func (q *Queries) EnableForeignKeys(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, enableForeignKeys)
	return err
}

const foreignKeysEnabled = `PRAGMA foreign_keys`

func (q *Queries) ForeignKeysEnabled(ctx context.Context) (bool, error) {
	var on int64
	err := q.db.GetContext(ctx, &on, foreignKeysEnabled)
	return on == 1, err
}

const deleteTribes = `DELETE FROM tribes`

func (q *Queries) DeleteTribes(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteTribes)
	return err
}

const insertTribe = `INSERT INTO tribes (id, name, description) VALUES (?, ?, ?)`

type InsertTribeParams struct {
	ID          int64
	Name        string
	Description string
}

func (q *Queries) InsertTribe(ctx context.Context, arg InsertTribeParams) error {
	_, err := q.db.ExecContext(ctx, insertTribe, arg.ID, arg.Name, arg.Description)
	return err
}

const deleteTalkingPoints = `DELETE FROM talking_points`

func (q *Queries) DeleteTalkingPoints(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteTalkingPoints)
	return err
}

const deleteProfessions = `DELETE FROM professions`

func (q *Queries) DeleteProfessions(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteProfessions)
	return err
}

const insertProfession = `INSERT INTO professions (main_group, secondary_label, fun_label) VALUES (?, ?, ?) RETURNING id`

type InsertProfessionParams struct {
	MainGroup      string
	SecondaryLabel string
	FunLabel       string
}

func (q *Queries) InsertProfession(ctx context.Context, arg InsertProfessionParams) (int64, error) {
	var id int64
	err := q.db.GetContext(ctx, &id, insertProfession, arg.MainGroup, arg.SecondaryLabel, arg.FunLabel)
	return id, err
}

const insertTalkingPoint = `INSERT INTO talking_points (id, profession_id, try_these, avoid_these, text)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (id) DO NOTHING`

type InsertTalkingPointParams struct {
	ID           string
	ProfessionID int64
	TryThese     bool
	AvoidThese   bool
	Text         string
}

// InsertTalkingPoint returns the number of rows written: 0 when the id exists.
func (q *Queries) InsertTalkingPoint(ctx context.Context, arg InsertTalkingPointParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, insertTalkingPoint,
		arg.ID,
		arg.ProfessionID,
		arg.TryThese,
		arg.AvoidThese,
		arg.Text,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listTribes = `SELECT id, name, description FROM tribes ORDER BY id`

func (q *Queries) ListTribes(ctx context.Context) ([]Tribe, error) {
	var items []Tribe
	err := q.db.SelectContext(ctx, &items, listTribes)
	return items, err
}

const listProfessions = `SELECT id, main_group, secondary_label, fun_label FROM professions ORDER BY id`

func (q *Queries) ListProfessions(ctx context.Context) ([]Profession, error) {
	var items []Profession
	err := q.db.SelectContext(ctx, &items, listProfessions)
	return items, err
}

const listTalkingPoints = `SELECT id, profession_id, try_these, avoid_these, text FROM talking_points ORDER BY profession_id, id`

func (q *Queries) ListTalkingPoints(ctx context.Context) ([]TalkingPoint, error) {
	var items []TalkingPoint
	err := q.db.SelectContext(ctx, &items, listTalkingPoints)
	return items, err
}

const listTalkingPointsByProfession = `SELECT id, profession_id, try_these, avoid_these, text FROM talking_points
WHERE profession_id = ?
ORDER BY id`

func (q *Queries) ListTalkingPointsByProfession(ctx context.Context, professionID int64) ([]TalkingPoint, error) {
	var items []TalkingPoint
	err := q.db.SelectContext(ctx, &items, listTalkingPointsByProfession, professionID)
	return items, err
}

const countTribes = `SELECT count(*) FROM tribes`

func (q *Queries) CountTribes(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.GetContext(ctx, &n, countTribes)
	return n, err
}

const countProfessions = `SELECT count(*) FROM professions`

func (q *Queries) CountProfessions(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.GetContext(ctx, &n, countProfessions)
	return n, err
}

const countTalkingPoints = `SELECT count(*) FROM talking_points`

func (q *Queries) CountTalkingPoints(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.GetContext(ctx, &n, countTalkingPoints)
	return n, err
}
