package postgres

type Tribe struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
}

type Profession struct {
	ID             int64  `db:"id"`
	MainGroup      string `db:"main_group"`
	SecondaryLabel string `db:"secondary_label"`
	FunLabel       string `db:"fun_label"`
}

type TalkingPoint struct {
	ID           string `db:"id"`
	ProfessionID int64  `db:"profession_id"`
	TryThese     bool   `db:"try_these"`
	AvoidThese   bool   `db:"avoid_these"`
	Text         string `db:"text"`
}
