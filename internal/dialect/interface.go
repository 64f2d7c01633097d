package dialect

// Dialect abstracts database-specific catalog access.
//
// Every metadata query takes the schema name as its only bind argument and
// returns rows in a fixed shape so the structure analyzer can stay generic:
//
//	tables:       TABLE_NAME
//	columns:      TABLE_NAME, COLUMN_NAME, COLUMN_TYPE, IS_NULLABLE, COLUMN_DEFAULT, EXTRA
//	primary keys: TABLE_NAME, COLUMN_NAME (in key order)
//	foreign keys: TABLE_NAME, CONSTRAINT_NAME, COLUMN_NAME, REF_TABLE, REF_COLUMN
//	indexes:      TABLE_NAME, INDEX_NAME, NON_UNIQUE, COLUMN_NAME, SEQ (primary key excluded)
type Dialect interface {
	// Name is the database/sql driver name the dialect was built for.
	Name() string

	// Metadata Queries (Schema Introspection)
	GetTablesQuery(schema string) string
	GetColumnsQuery(schema string) string
	GetPrimaryKeysQuery(schema string) string
	GetForeignKeysQuery(schema string) string
	GetIndexesQuery(schema string) string
	CurrentSchemaQuery() string

	// DDL Rendering
	QuoteIdent(name string) string

	// Helpers
	NormalizeType(sqlType string) string
	GetSchemaName(input string) string
}
