package structure

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"db-struct-check/internal/dialect"

	"go.uber.org/zap"
)

// Analyzer reads table and index metadata of one schema through a Dialect.
type Analyzer struct {
	db  *sql.DB
	d   dialect.Dialect
	log *zap.Logger
}

func NewAnalyzer(db *sql.DB, d dialect.Dialect, log *zap.Logger) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{db: db, d: d, log: log}
}

// CurrentSchema asks the connection for its default schema.
func (a *Analyzer) CurrentSchema(ctx context.Context) (string, error) {
	var name sql.NullString
	if err := a.db.QueryRowContext(ctx, a.d.CurrentSchemaQuery()).Scan(&name); err != nil {
		return "", fmt.Errorf("failed to get current schema: %w", err)
	}
	return a.d.GetSchemaName(name.String), nil
}

// Analyze returns the tables of schemaName in dependency order.
func (a *Analyzer) Analyze(ctx context.Context, schemaName string) ([]*Table, error) {
	// Delegate schema resolution to the dialect
	target := a.d.GetSchemaName(schemaName)
	log := a.log.With(zap.String("schema", target), zap.String("dialect", a.d.Name()))

	tableMap := make(map[string]*Table)
	var tables []*Table

	// --- Step 1: Fetch Tables ---
	err := a.query(ctx, a.d.GetTablesQuery(target), target, func(rows *sql.Rows) error {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("failed to scan table name: %w", err)
		}
		t := &Table{Schema: target, Name: name, Dependencies: []string{}}
		tableMap[name] = t
		tables = append(tables, t)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}

	// --- Step 2: Fetch Columns ---
	err = a.query(ctx, a.d.GetColumnsQuery(target), target, func(rows *sql.Rows) error {
		var tName, cName, cType, isNull, def, extra sql.NullString
		if err := rows.Scan(&tName, &cName, &cType, &isNull, &def, &extra); err != nil {
			return fmt.Errorf("failed to scan column (table: %s): %w", tName.String, err)
		}
		t, ok := tableMap[tName.String]
		if !ok || !cName.Valid {
			return nil // views and skipped rows
		}
		col := &Column{
			Name:       cName.String,
			Type:       a.d.NormalizeType(cType.String),
			IsNullable: strings.EqualFold(isNull.String, "YES"),
			Extra:      strings.TrimSpace(extra.String),
		}
		if def.Valid {
			v := strings.TrimSpace(def.String)
			col.Default = &v
		}
		t.Columns = append(t.Columns, col)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}

	// --- Step 3: Fetch Primary Keys ---
	err = a.query(ctx, a.d.GetPrimaryKeysQuery(target), target, func(rows *sql.Rows) error {
		var tName, cName string
		if err := rows.Scan(&tName, &cName); err != nil {
			return fmt.Errorf("failed to scan primary key: %w", err)
		}
		if t, ok := tableMap[tName]; ok {
			t.PrimaryKey = append(t.PrimaryKey, cName)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query primary keys: %w", err)
	}

	// --- Step 4: Fetch Indexes ---
	err = a.query(ctx, a.d.GetIndexesQuery(target), target, func(rows *sql.Rows) error {
		var tName, iName, cName sql.NullString
		var nonUnique, seq sql.NullInt64
		if err := rows.Scan(&tName, &iName, &nonUnique, &cName, &seq); err != nil {
			return fmt.Errorf("failed to scan index: %w", err)
		}
		t, ok := tableMap[tName.String]
		if !ok || !iName.Valid {
			return nil
		}
		// rows arrive grouped by index, ordered by position
		var idx *Index
		if n := len(t.Indexes); n > 0 && t.Indexes[n-1].Name == iName.String {
			idx = t.Indexes[n-1]
		} else {
			idx = &Index{Name: iName.String, Unique: nonUnique.Int64 == 0}
			t.Indexes = append(t.Indexes, idx)
		}
		idx.Columns = append(idx.Columns, cName.String)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query indexes: %w", err)
	}

	// --- Step 5: Fetch Foreign Keys ---
	err = a.query(ctx, a.d.GetForeignKeysQuery(target), target, func(rows *sql.Rows) error {
		var tName, cConst, cName, rTable, rCol sql.NullString
		if err := rows.Scan(&tName, &cConst, &cName, &rTable, &rCol); err != nil {
			return fmt.Errorf("failed to scan foreign key: %w", err)
		}
		if !tName.Valid || !rTable.Valid || tName.String == rTable.String {
			return nil
		}
		t, ok := tableMap[tName.String]
		if !ok {
			return nil
		}
		// Only known tables take part in ordering; external references are ignored.
		if _, exists := tableMap[rTable.String]; exists && !contains(t.Dependencies, rTable.String) {
			t.Dependencies = append(t.Dependencies, rTable.String)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query foreign keys: %w", err)
	}

	log.Debug("schema analyzed", zap.Int("tables", len(tables)))
	return sortTables(tables, func(name string, score int) {
		log.Info("breaking circular dependency", zap.String("table", name), zap.Int("score", score))
	}), nil
}

func (a *Analyzer) query(ctx context.Context, query, arg string, scan func(*sql.Rows) error) error {
	rows, err := a.db.QueryContext(ctx, query, arg)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
