package structure

type Table struct {
	Schema       string
	Name         string
	Columns      []*Column
	PrimaryKey   []string
	Indexes      []*Index
	Dependencies []string // referenced tables of the same schema, for ordering
}

type Column struct {
	Name       string
	Type       string // normalized by the dialect
	IsNullable bool
	Default    *string
	Extra      string // AUTO_INCREMENT, identity clause, ...
}

type Index struct {
	Name    string
	Unique  bool
	Columns []string // in key order
}
