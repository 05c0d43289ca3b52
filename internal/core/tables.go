package core

// Registered table keys. These are also the store table names.
const (
	TableTribes        = "tribes"
	TableProfessions   = "professions"
	TableTalkingPoints = "talking_points"
)

// CSV column names.
const (
	colID                  = "id"
	colName                = "name"
	colDescription         = "description"
	colMainGroup           = "main_group"
	colSecondaryLabel      = "secondary_label"
	colFunLabels           = "fun_labels"
	colSecondaryProfession = "secondary_profession"
	colTryThese            = "try_these"
	colAvoidThese          = "avoid_these"
	colText                = "text"
)

func init() {
	Register(TableDefinition{
		Info: TableInfo{Key: TableTribes, Label: "Tribes", Order: 1},
		FieldSpecs: []FieldSpec{
			{Name: colID, Required: true},
			{Name: colName, Required: true},
			{Name: colDescription},
		},
	})

	Register(TableDefinition{
		Info: TableInfo{Key: TableProfessions, Label: "Professions", Order: 2},
		FieldSpecs: []FieldSpec{
			{Name: colMainGroup, Required: true},
			{Name: colSecondaryLabel, Required: true},
			{Name: colFunLabels},
		},
	})

	Register(TableDefinition{
		Info: TableInfo{Key: TableTalkingPoints, Label: "Talking Points", Order: 3},
		FieldSpecs: []FieldSpec{
			{Name: colID, Required: true},
			{Name: colSecondaryProfession, Required: true},
			{Name: colMainGroup},
			{Name: colTryThese},
			{Name: colAvoidThese},
			{Name: colText},
		},
	})
}
