package dialect

import (
	"strings"
)

type OracleDialect struct{}

// Oracle has no separate schema namespace: a schema is the owning user.
// All catalog queries read the ALL_* views filtered by OWNER.

func (d *OracleDialect) Name() string {
	return "oracle"
}

func (d *OracleDialect) GetTablesQuery(schema string) string {
	return `SELECT TABLE_NAME FROM ALL_TABLES WHERE OWNER = :1 ORDER BY TABLE_NAME`
}

func (d *OracleDialect) GetColumnsQuery(schema string) string {
	return `
SELECT
    t.TABLE_NAME,
    t.COLUMN_NAME,
    t.DATA_TYPE || CASE
        WHEN t.DATA_TYPE IN ('VARCHAR2', 'NVARCHAR2', 'CHAR', 'NCHAR') THEN '(' || t.CHAR_LENGTH || ')'
        WHEN t.DATA_TYPE = 'RAW' THEN '(' || t.DATA_LENGTH || ')'
        WHEN t.DATA_TYPE = 'NUMBER' AND t.DATA_PRECISION IS NOT NULL THEN '(' || t.DATA_PRECISION || ',' || NVL(t.DATA_SCALE, 0) || ')'
        ELSE ''
    END,
    CASE t.NULLABLE WHEN 'Y' THEN 'YES' ELSE 'NO' END,
    t.DATA_DEFAULT,
    CASE WHEN t.IDENTITY_COLUMN = 'YES' THEN 'GENERATED AS IDENTITY' ELSE '' END
FROM ALL_TAB_COLUMNS t
WHERE t.OWNER = :1
ORDER BY t.TABLE_NAME, t.COLUMN_ID`
}

func (d *OracleDialect) GetPrimaryKeysQuery(schema string) string {
	return `
SELECT cc.TABLE_NAME, cc.COLUMN_NAME
FROM ALL_CONS_COLUMNS cc
JOIN ALL_CONSTRAINTS uc ON cc.OWNER = uc.OWNER AND cc.CONSTRAINT_NAME = uc.CONSTRAINT_NAME
WHERE uc.CONSTRAINT_TYPE = 'P' AND uc.OWNER = :1
ORDER BY cc.TABLE_NAME, cc.POSITION`
}

func (d *OracleDialect) GetForeignKeysQuery(schema string) string {
	return `
SELECT
    c.TABLE_NAME,
    c.CONSTRAINT_NAME,
    cc.COLUMN_NAME,
    r.TABLE_NAME AS REF_TABLE,
    rcc.COLUMN_NAME AS REF_COLUMN
FROM ALL_CONSTRAINTS c
JOIN ALL_CONS_COLUMNS cc
    ON c.CONSTRAINT_NAME = cc.CONSTRAINT_NAME
    AND c.OWNER = cc.OWNER
JOIN ALL_CONSTRAINTS r
    ON c.R_CONSTRAINT_NAME = r.CONSTRAINT_NAME
    AND c.R_OWNER = r.OWNER
JOIN ALL_CONS_COLUMNS rcc
    ON r.CONSTRAINT_NAME = rcc.CONSTRAINT_NAME
    AND r.OWNER = rcc.OWNER
    AND cc.POSITION = rcc.POSITION
WHERE c.CONSTRAINT_TYPE = 'R'
AND c.OWNER = :1`
}

func (d *OracleDialect) GetIndexesQuery(schema string) string {
	// Indexes backing the primary key are reported through the table itself.
	return `
SELECT
    ic.TABLE_NAME,
    ic.INDEX_NAME,
    CASE WHEN i.UNIQUENESS = 'UNIQUE' THEN 0 ELSE 1 END,
    ic.COLUMN_NAME,
    ic.COLUMN_POSITION
FROM ALL_IND_COLUMNS ic
JOIN ALL_INDEXES i ON i.OWNER = ic.INDEX_OWNER AND i.INDEX_NAME = ic.INDEX_NAME
WHERE ic.TABLE_OWNER = :1
AND NOT EXISTS (
    SELECT 1 FROM ALL_CONSTRAINTS pc
    WHERE pc.OWNER = i.TABLE_OWNER AND pc.INDEX_NAME = i.INDEX_NAME AND pc.CONSTRAINT_TYPE = 'P'
)
ORDER BY ic.TABLE_NAME, ic.INDEX_NAME, ic.COLUMN_POSITION`
}

func (d *OracleDialect) CurrentSchemaQuery() string {
	return `SELECT SYS_CONTEXT('USERENV', 'CURRENT_SCHEMA') FROM DUAL`
}

func (d *OracleDialect) QuoteIdent(name string) string {
	return quoteWith(name, `"`, `"`)
}

func (d *OracleDialect) NormalizeType(sqlType string) string {
	return DefaultNormalizeType(sqlType)
}

// GetSchemaName upper-cases the owner; unquoted Oracle identifiers are stored that way.
func (d *OracleDialect) GetSchemaName(input string) string {
	return strings.ToUpper(input)
}
