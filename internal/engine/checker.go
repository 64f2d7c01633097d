package engine

import (
	"context"
	"errors"
	"fmt"

	"db-struct-check/internal/check"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

var (
	ErrNoSchemas      = errors.New("no schemas to check")
	ErrSchemaNotFound = errors.New("schema has no tables on either side")
)

// Checker compares a source against a destination schema by schema.
type Checker struct {
	Src      Source
	Dst      Source
	Filter   *check.Filter
	Parallel int
	Logger   *zap.Logger
}

// Run checks every schema and merges the outcomes in the given order.
// onProgress is called once per finished schema, possibly from several
// goroutines at once.
func (c *Checker) Run(ctx context.Context, schemas []string, onProgress func(schema string)) (*check.Outcome, error) {
	schemas = dedupe(schemas)
	if len(schemas) == 0 {
		return nil, ErrNoSchemas
	}
	log := c.Logger
	if log == nil {
		log = zap.NewNop()
	}
	parallel := c.Parallel
	if parallel < 1 {
		parallel = 1
	}

	results := make([]*check.Outcome, len(schemas))
	p := pool.New().WithContext(ctx).WithMaxGoroutines(parallel).WithCancelOnError().WithFirstError()
	for i, schema := range schemas {
		i, schema := i, schema
		p.Go(func(ctx context.Context) error {
			out, err := c.checkSchema(ctx, log.With(zap.String("schema", schema)), schema)
			if err != nil {
				return fmt.Errorf("schema %s: %w", schema, err)
			}
			results[i] = out
			if onProgress != nil {
				onProgress(schema)
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	merged := &check.Outcome{}
	for _, out := range results {
		merged.Append(out)
	}
	return merged, nil
}

func (c *Checker) checkSchema(ctx context.Context, log *zap.Logger, schema string) (*check.Outcome, error) {
	src, err := c.Src.Load(ctx, schema)
	if err != nil {
		return nil, err
	}
	dst, err := c.Dst.Load(ctx, schema)
	if err != nil {
		return nil, err
	}
	// both sides empty is a misspelled or miscased schema, never a match
	if src.Len() == 0 && dst.Len() == 0 {
		return nil, ErrSchemaNotFound
	}

	out := check.Classify(src.Filter(c.Filter), dst.Filter(c.Filter))
	log.Info("schema checked",
		zap.Int("src_objects", src.Len()),
		zap.Int("dst_objects", dst.Len()),
		zap.Int("miss", len(out.Misses)),
		zap.Int("diff", len(out.Diffs)),
		zap.Int("extra", len(out.Extras)))
	return out, nil
}

func dedupe(schemas []string) []string {
	seen := make(map[string]bool, len(schemas))
	var out []string
	for _, s := range schemas {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
