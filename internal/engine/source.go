package engine

import (
	"context"
	"database/sql"
	"fmt"

	"db-struct-check/internal/check"
	"db-struct-check/internal/dialect"
	"db-struct-check/internal/snapshot"
	"db-struct-check/internal/structure"

	"go.uber.org/zap"
)

// Source produces the normalized statements of one side for a schema.
// Schemas are always named from the source side.
type Source interface {
	Name() string
	Load(ctx context.Context, schema string) (*check.Set, error)
	// Schemas lists the schemas checked when none are configured.
	Schemas(ctx context.Context) ([]string, error)
}

// DBSource extracts statements from a live connection.
type DBSource struct {
	Label   string
	DB      *sql.DB
	Dialect dialect.Dialect
	// Router is set on the destination side when schema names differ.
	Router *structure.Router
	Logger *zap.Logger
}

func (s *DBSource) Name() string {
	return s.Label
}

func (s *DBSource) Load(ctx context.Context, schema string) (*check.Set, error) {
	target := s.Router.DstSchema(schema)
	tables, err := structure.NewAnalyzer(s.DB, s.Dialect, s.Logger).Analyze(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Label, err)
	}
	if s.Router != nil {
		s.Router.RenameToSource(tables)
	}
	set, err := structure.Statements(tables, s.Dialect)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Label, err)
	}
	return set, nil
}

// Schemas returns the connection's current schema.
func (s *DBSource) Schemas(ctx context.Context) ([]string, error) {
	name, err := structure.NewAnalyzer(s.DB, s.Dialect, s.Logger).CurrentSchema(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Label, err)
	}
	if name == "" {
		return nil, nil
	}
	return []string{s.Router.SrcSchema(name)}, nil
}

// SnapshotSource serves statements saved by the extract command.
type SnapshotSource struct {
	Label string
	set   *check.Set
	d     dialect.Dialect
}

func NewSnapshotSource(label, path string) (*SnapshotSource, error) {
	f, err := snapshot.Load(path)
	if err != nil {
		return nil, err
	}
	set, err := f.Set()
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	d, err := dialect.GetDialect(f.Driver)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	return &SnapshotSource{Label: label, set: set, d: d}, nil
}

func (s *SnapshotSource) Name() string {
	return s.Label
}

// Load returns the entries of schema, named the way the snapshot's dialect
// stores it (HR for hr on oracle).
func (s *SnapshotSource) Load(_ context.Context, schema string) (*check.Set, error) {
	schema = s.d.GetSchemaName(schema)
	out := check.NewSet()
	for _, k := range s.set.Keys() {
		if k.Schema != schema {
			continue
		}
		sql, _ := s.set.Get(k)
		if err := out.Add(k, sql); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Schemas returns the distinct schemas of the snapshot in file order.
func (s *SnapshotSource) Schemas(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, k := range s.set.Keys() {
		if !seen[k.Schema] {
			seen[k.Schema] = true
			out = append(out, k.Schema)
		}
	}
	return out, nil
}

// Extract loads every schema from s into one set, in schema order.
func Extract(ctx context.Context, s Source, schemas []string) (*check.Set, error) {
	schemas = dedupe(schemas)
	if len(schemas) == 0 {
		return nil, ErrNoSchemas
	}
	all := check.NewSet()
	for _, schema := range schemas {
		set, err := s.Load(ctx, schema)
		if err != nil {
			return nil, fmt.Errorf("schema %s: %w", schema, err)
		}
		if err := all.Merge(set); err != nil {
			return nil, err
		}
	}
	return all, nil
}
