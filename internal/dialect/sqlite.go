package dialect

type SQLiteDialect struct{}

// SQLite reads its catalog through the table-valued pragma functions.
// The schema argument is the attached database name ("main" by default).

func (d *SQLiteDialect) Name() string {
	return "sqlite3"
}

func (d *SQLiteDialect) GetTablesQuery(schema string) string {
	return `SELECT name FROM pragma_table_list WHERE schema = ? AND type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`
}

func (d *SQLiteDialect) GetColumnsQuery(schema string) string {
	return `SELECT tl.name, p.name, p.type, CASE WHEN p."notnull" = 1 THEN 'NO' ELSE 'YES' END, p.dflt_value, ''
FROM pragma_table_list tl
JOIN pragma_table_info(tl.name, tl.schema) p
WHERE tl.schema = ? AND tl.type = 'table' AND tl.name NOT LIKE 'sqlite_%'
ORDER BY tl.name, p.cid`
}

func (d *SQLiteDialect) GetPrimaryKeysQuery(schema string) string {
	return `SELECT tl.name, p.name
FROM pragma_table_list tl
JOIN pragma_table_info(tl.name, tl.schema) p
WHERE tl.schema = ? AND tl.type = 'table' AND p.pk > 0
ORDER BY tl.name, p.pk`
}

func (d *SQLiteDialect) GetForeignKeysQuery(schema string) string {
	return `SELECT tl.name, 'fk_' || f.id, f."from", f."table", f."to"
FROM pragma_table_list tl
JOIN pragma_foreign_key_list(tl.name, tl.schema) f
WHERE tl.schema = ? AND tl.type = 'table'
ORDER BY tl.name, f.id, f.seq`
}

func (d *SQLiteDialect) GetIndexesQuery(schema string) string {
	return `SELECT tl.name, il.name, CASE WHEN il."unique" = 1 THEN 0 ELSE 1 END, ii.name, ii.seqno + 1
FROM pragma_table_list tl
JOIN pragma_index_list(tl.name, tl.schema) il
JOIN pragma_index_info(il.name, tl.schema) ii
WHERE tl.schema = ? AND tl.type = 'table' AND tl.name NOT LIKE 'sqlite_%' AND il.origin <> 'pk'
ORDER BY tl.name, il.name, ii.seqno`
}

func (d *SQLiteDialect) CurrentSchemaQuery() string {
	return `SELECT 'main'`
}

func (d *SQLiteDialect) QuoteIdent(name string) string {
	return quoteWith(name, `"`, `"`)
}

func (d *SQLiteDialect) NormalizeType(sqlType string) string {
	return DefaultNormalizeType(sqlType)
}

func (d *SQLiteDialect) GetSchemaName(input string) string {
	if input == "" {
		return "main"
	}
	return input
}
