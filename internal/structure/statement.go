package structure

import (
	"fmt"
	"strings"

	"db-struct-check/internal/check"
	"db-struct-check/internal/dialect"
)

// Statements renders one normalized DDL per table and per index. Tables keep
// the given order and each table's indexes follow it.
func Statements(tables []*Table, d dialect.Dialect) (*check.Set, error) {
	set := check.NewSet()
	for _, t := range tables {
		if err := set.Add(check.TableKey(t.Schema, t.Name), TableSQL(t, d)); err != nil {
			return nil, err
		}
		for _, idx := range t.Indexes {
			if err := set.Add(check.IndexKey(t.Schema, t.Name, idx.Name), IndexSQL(t, idx, d)); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}

// TableSQL renders CREATE TABLE with columns in ordinal order and the primary key.
func TableSQL(t *Table, d dialect.Dialect) string {
	defs := make([]string, 0, len(t.Columns)+1)
	for _, c := range t.Columns {
		defs = append(defs, columnSQL(c, d))
	}
	if len(t.PrimaryKey) > 0 {
		defs = append(defs, fmt.Sprintf("PRIMARY KEY (%s)", quoteList(t.PrimaryKey, d, ",")))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s.%s (%s)",
		d.QuoteIdent(t.Schema), d.QuoteIdent(t.Name), strings.Join(defs, ", "))
}

func columnSQL(c *Column, d dialect.Dialect) string {
	var sb strings.Builder
	sb.WriteString(d.QuoteIdent(c.Name))
	sb.WriteString(" ")
	sb.WriteString(c.Type)
	if !c.IsNullable {
		sb.WriteString(" NOT NULL")
	}
	if c.Default != nil {
		sb.WriteString(" DEFAULT ")
		sb.WriteString(*c.Default)
	}
	if c.Extra != "" {
		sb.WriteString(" ")
		sb.WriteString(c.Extra)
	}
	return sb.String()
}

// IndexSQL renders CREATE INDEX; column order is significant.
func IndexSQL(t *Table, idx *Index, d dialect.Dialect) string {
	kind := "INDEX"
	if idx.Unique {
		kind = "UNIQUE INDEX"
	}
	return fmt.Sprintf("CREATE %s %s ON %s.%s (%s)",
		kind, d.QuoteIdent(idx.Name), d.QuoteIdent(t.Schema), d.QuoteIdent(t.Name), quoteList(idx.Columns, d, ","))
}

func quoteList(names []string, d dialect.Dialect, sep string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = d.QuoteIdent(n)
	}
	return strings.Join(quoted, sep)
}
