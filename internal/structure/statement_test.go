package structure_test

import (
	"testing"

	"db-struct-check/internal/check"
	"db-struct-check/internal/dialect"
	"db-struct-check/internal/structure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sampleTable() *structure.Table {
	return &structure.Table{
		Schema: "struct_check_test_1",
		Name:   "not_match_index",
		Columns: []*structure.Column{
			{Name: "id", Type: "int", Extra: "AUTO_INCREMENT"},
			{Name: "col1", Type: "varchar(10)", IsNullable: true},
			{Name: "col2", Type: "int", Default: strPtr("0")},
		},
		PrimaryKey: []string{"id"},
		Indexes: []*structure.Index{
			{Name: "i1", Columns: []string{"col1"}},
			{Name: "u2", Unique: true, Columns: []string{"col2", "col1"}},
		},
	}
}

func TestTableSQL(t *testing.T) {
	tests := []struct {
		driver string
		want   string
	}{
		{"mysql", "CREATE TABLE IF NOT EXISTS `struct_check_test_1`.`not_match_index` (`id` int NOT NULL AUTO_INCREMENT, `col1` varchar(10), `col2` int NOT NULL DEFAULT 0, PRIMARY KEY (`id`))"},
		{"postgres", `CREATE TABLE IF NOT EXISTS "struct_check_test_1"."not_match_index" ("id" int NOT NULL AUTO_INCREMENT, "col1" varchar(10), "col2" int NOT NULL DEFAULT 0, PRIMARY KEY ("id"))`},
		{"sqlserver", `CREATE TABLE IF NOT EXISTS [struct_check_test_1].[not_match_index] ([id] int NOT NULL AUTO_INCREMENT, [col1] varchar(10), [col2] int NOT NULL DEFAULT 0, PRIMARY KEY ([id]))`},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			d, err := dialect.GetDialect(tt.driver)
			require.NoError(t, err)
			assert.Equal(t, tt.want, structure.TableSQL(sampleTable(), d))
		})
	}
}

func TestTableSQL_NoPrimaryKey(t *testing.T) {
	d, err := dialect.GetDialect("mysql")
	require.NoError(t, err)

	tbl := &structure.Table{
		Schema:  "s",
		Name:    "t",
		Columns: []*structure.Column{{Name: "v", Type: "text", IsNullable: true}},
	}
	assert.Equal(t, "CREATE TABLE IF NOT EXISTS `s`.`t` (`v` text)", structure.TableSQL(tbl, d))
}

func TestIndexSQL(t *testing.T) {
	d, err := dialect.GetDialect("mysql")
	require.NoError(t, err)
	tbl := sampleTable()

	assert.Equal(t, "CREATE INDEX `i1` ON `struct_check_test_1`.`not_match_index` (`col1`)",
		structure.IndexSQL(tbl, tbl.Indexes[0], d))
	assert.Equal(t, "CREATE UNIQUE INDEX `u2` ON `struct_check_test_1`.`not_match_index` (`col2`,`col1`)",
		structure.IndexSQL(tbl, tbl.Indexes[1], d))
}

func TestStatements(t *testing.T) {
	d, err := dialect.GetDialect("mysql")
	require.NoError(t, err)

	other := &structure.Table{Schema: "struct_check_test_1", Name: "a_first", Columns: []*structure.Column{{Name: "id", Type: "int"}}}
	set, err := structure.Statements([]*structure.Table{sampleTable(), other}, d)
	require.NoError(t, err)

	var keys []string
	for _, k := range set.Keys() {
		keys = append(keys, k.String())
	}
	assert.Equal(t, []string{
		"table.struct_check_test_1.not_match_index",
		"index.struct_check_test_1.not_match_index.i1",
		"index.struct_check_test_1.not_match_index.u2",
		"table.struct_check_test_1.a_first",
	}, keys)

	sql, ok := set.Get(check.IndexKey("struct_check_test_1", "not_match_index", "u2"))
	require.True(t, ok)
	assert.Contains(t, sql, "(`col2`,`col1`)")
}

func TestStatements_UniqueIndexFollowsIndexKind(t *testing.T) {
	d, err := dialect.GetDialect("mysql")
	require.NoError(t, err)

	set, err := structure.Statements([]*structure.Table{sampleTable()}, d)
	require.NoError(t, err)

	tablesOnly, err := check.NewFilter([]string{"table"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []check.Key{check.TableKey("struct_check_test_1", "not_match_index")},
		set.Filter(tablesOnly).Keys())

	indexesOnly, err := check.NewFilter([]string{"index"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []check.Key{
		check.IndexKey("struct_check_test_1", "not_match_index", "i1"),
		check.IndexKey("struct_check_test_1", "not_match_index", "u2"),
	}, set.Filter(indexesOnly).Keys())
}

func TestStatements_DuplicateIndex(t *testing.T) {
	d, err := dialect.GetDialect("mysql")
	require.NoError(t, err)

	tbl := sampleTable()
	tbl.Indexes = append(tbl.Indexes, &structure.Index{Name: "i1", Columns: []string{"col2"}})

	_, err = structure.Statements([]*structure.Table{tbl}, d)
	assert.ErrorIs(t, err, check.ErrDuplicateKey)
}

func TestRouter(t *testing.T) {
	r := structure.NewRouter([]structure.Route{{Src: "src_db", Dst: "dst_db"}}, nil)

	assert.Equal(t, "dst_db", r.DstSchema("src_db"))
	assert.Equal(t, "other", r.DstSchema("other"))
	assert.Equal(t, "src_db", r.SrcSchema("dst_db"))

	tables := []*structure.Table{{Schema: "dst_db", Name: "t"}, {Schema: "other", Name: "u"}}
	r.RenameToSource(tables)
	assert.Equal(t, "src_db", tables[0].Schema)
	assert.Equal(t, "other", tables[1].Schema)

	var nilRouter *structure.Router
	assert.Equal(t, "x", nilRouter.DstSchema("x"))
}

func TestRouter_MixedCase(t *testing.T) {
	r := structure.NewRouter([]structure.Route{{Src: "SalesDB", Dst: "SalesDB_Dst"}}, nil)
	assert.Equal(t, "SalesDB_Dst", r.DstSchema("SalesDB"))
	assert.Equal(t, "salesdb", r.DstSchema("salesdb"))
	assert.Equal(t, "SalesDB", r.SrcSchema("SalesDB_Dst"))

	ora, err := dialect.GetDialect("oracle")
	require.NoError(t, err)
	r = structure.NewRouter([]structure.Route{{Src: "hr", Dst: "Hr_Dst"}}, ora.GetSchemaName)

	// the analyzer reports oracle schemas in upper case
	assert.Equal(t, "HR_DST", r.DstSchema("hr"))
	assert.Equal(t, "HR_DST", r.DstSchema("HR"))
	tables := []*structure.Table{{Schema: "HR_DST", Name: "EMP"}}
	r.RenameToSource(tables)
	assert.Equal(t, "HR", tables[0].Schema)
}
