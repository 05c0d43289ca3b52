package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Replica mode skips foreign key triggers for the session.
// Changing it requires superuser.
const setReplicaRole = `SET session_replication_role = replica`

func (q *Queries) SetReplicaRole(ctx context.Context) error {
	_, err := q.db.Exec(ctx, setReplicaRole)
	return err
}

const resetReplicaRole = `SET session_replication_role = DEFAULT`

func (q *Queries) ResetReplicaRole(ctx context.Context) error {
	_, err := q.db.Exec(ctx, resetReplicaRole)
	return err
}

const showReplicaRole = `SHOW session_replication_role`

func (q *Queries) ShowReplicaRole(ctx context.Context) (string, error) {
	var role string
	err := q.db.QueryRow(ctx, showReplicaRole).Scan(&role)
	return role, err
}

const deleteTribes = `DELETE FROM tribes`

func (q *Queries) DeleteTribes(ctx context.Context) error {
	_, err := q.db.Exec(ctx, deleteTribes)
	return err
}

const insertTribe = `INSERT INTO tribes (id, name, description) VALUES ($1, $2, $3)`

type InsertTribeParams struct {
	ID          int64
	Name        string
	Description string
}

func (q *Queries) InsertTribe(ctx context.Context, arg InsertTribeParams) error {
	_, err := q.db.Exec(ctx, insertTribe, arg.ID, arg.Name, arg.Description)
	return err
}

const deleteTalkingPoints = `DELETE FROM talking_points`

func (q *Queries) DeleteTalkingPoints(ctx context.Context) error {
	_, err := q.db.Exec(ctx, deleteTalkingPoints)
	return err
}

const deleteProfessions = `DELETE FROM professions`

func (q *Queries) DeleteProfessions(ctx context.Context) error {
	_, err := q.db.Exec(ctx, deleteProfessions)
	return err
}

const insertProfession = `INSERT INTO professions (main_group, secondary_label, fun_label) VALUES ($1, $2, $3) RETURNING id`

type InsertProfessionParams struct {
	MainGroup      string
	SecondaryLabel string
	FunLabel       string
}

func (q *Queries) InsertProfession(ctx context.Context, arg InsertProfessionParams) (int64, error) {
	row := q.db.QueryRow(ctx, insertProfession, arg.MainGroup, arg.SecondaryLabel, arg.FunLabel)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const insertTalkingPoint = `INSERT INTO talking_points (id, profession_id, try_these, avoid_these, text)
VALUES ($1, $2, $3, $4, $5)
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
	tag, err := q.db.Exec(ctx, insertTalkingPoint,
		arg.ID,
		arg.ProfessionID,
		arg.TryThese,
		arg.AvoidThese,
		arg.Text,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const listTribes = `SELECT id, name, description FROM tribes ORDER BY id`

func (q *Queries) ListTribes(ctx context.Context) ([]Tribe, error) {
	rows, err := q.db.Query(ctx, listTribes)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Tribe])
}

const listProfessions = `SELECT id, main_group, secondary_label, fun_label FROM professions ORDER BY id`

func (q *Queries) ListProfessions(ctx context.Context) ([]Profession, error) {
	rows, err := q.db.Query(ctx, listProfessions)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Profession])
}

const listTalkingPoints = `SELECT id, profession_id, try_these, avoid_these, text FROM talking_points ORDER BY profession_id, id`

func (q *Queries) ListTalkingPoints(ctx context.Context) ([]TalkingPoint, error) {
	rows, err := q.db.Query(ctx, listTalkingPoints)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[TalkingPoint])
}

const listTalkingPointsByProfession = `SELECT id, profession_id, try_these, avoid_these, text FROM talking_points
WHERE profession_id = $1
ORDER BY id`

func (q *Queries) ListTalkingPointsByProfession(ctx context.Context, professionID int64) ([]TalkingPoint, error) {
	rows, err := q.db.Query(ctx, listTalkingPointsByProfession, professionID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[TalkingPoint])
}

const countTribes = `SELECT count(*) FROM tribes`

func (q *Queries) CountTribes(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countTribes).Scan(&n)
	return n, err
}

const countProfessions = `SELECT count(*) FROM professions`

func (q *Queries) CountProfessions(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countProfessions).Scan(&n)
	return n, err
}

const countTalkingPoints = `SELECT count(*) FROM talking_points`

func (q *Queries) CountTalkingPoints(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countTalkingPoints).Scan(&n)
	return n, err
}
