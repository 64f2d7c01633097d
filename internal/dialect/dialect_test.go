package dialect

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDialect(t *testing.T) {
	cases := map[string]string{
		"mysql":     "mysql",
		"postgres":  "postgres",
		"sqlserver": "sqlserver",
		"mssql":     "mssql",
		"oracle":    "oracle",
		"sqlite3":   "sqlite3",
	}
	for driver, name := range cases {
		d, err := GetDialect(driver)
		require.NoError(t, err, driver)
		assert.Equal(t, name, d.Name())
	}

	_, err := GetDialect("db2")
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestQuoteIdent(t *testing.T) {
	cases := []struct {
		driver string
		in     string
		want   string
	}{
		{"mysql", "col", "`col`"},
		{"mysql", "we`ird", "`we``ird`"},
		{"postgres", "Col", `"Col"`},
		{"postgres", `a"b`, `"a""b"`},
		{"sqlserver", "a]b", "[a]]b]"},
		{"oracle", "ID", `"ID"`},
		{"sqlite3", "t", `"t"`},
	}
	for _, c := range cases {
		d, err := GetDialect(c.driver)
		require.NoError(t, err)
		assert.Equal(t, c.want, d.QuoteIdent(c.in), "%s %q", c.driver, c.in)
	}
}

func TestNormalizeType(t *testing.T) {
	my := &MysqlDialect{}
	assert.Equal(t, "int", my.NormalizeType("INT(11)"))
	assert.Equal(t, "bigint unsigned", my.NormalizeType("bigint(20) unsigned"))
	assert.Equal(t, "int(5) unsigned zerofill", my.NormalizeType("int(5) unsigned zerofill"))
	assert.Equal(t, "varchar(255)", my.NormalizeType("varchar(255)"))

	pg := &PostgresDialect{}
	assert.Equal(t, "integer", pg.NormalizeType("int4"))
	assert.Equal(t, "character varying(10)", pg.NormalizeType("character varying(10)"))

	lite := &SQLiteDialect{}
	assert.Equal(t, "varchar(20)", lite.NormalizeType(" VARCHAR(20) "))
}

func TestGetSchemaName(t *testing.T) {
	assert.Equal(t, "public", (&PostgresDialect{}).GetSchemaName(""))
	assert.Equal(t, "dbo", (&MSSQLDialect{}).GetSchemaName(""))
	assert.Equal(t, "main", (&SQLiteDialect{}).GetSchemaName(""))
	assert.Equal(t, "SCOTT", (&OracleDialect{}).GetSchemaName("scott"))
	assert.Equal(t, "shop", (&MysqlDialect{}).GetSchemaName("shop"))
}

// Each catalog query binds the schema exactly once.
func TestQueriesBindSchemaOnce(t *testing.T) {
	marker := map[string]string{
		"mysql":     "?",
		"postgres":  "$1",
		"sqlserver": "@p1",
		"oracle":    ":1",
		"sqlite3":   "?",
	}
	for driver, m := range marker {
		d, err := GetDialect(driver)
		require.NoError(t, err)
		queries := []string{
			d.GetTablesQuery("s"),
			d.GetColumnsQuery("s"),
			d.GetPrimaryKeysQuery("s"),
			d.GetForeignKeysQuery("s"),
			d.GetIndexesQuery("s"),
		}
		for _, q := range queries {
			assert.Equal(t, 1, strings.Count(q, m), "%s: %s", driver, q)
		}
	}
}
