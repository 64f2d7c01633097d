package check

import (
	"fmt"
	"path"
	"strings"
)

// Filter selects which objects take part in a check.
// Table patterns use path.Match syntax and are matched case-insensitively.
type Filter struct {
	kinds   map[Kind]bool
	include []string
	exclude []string
}

// NewFilter builds a filter. Empty kinds means every kind.
func NewFilter(kinds []string, includeTables, excludeTables []string) (*Filter, error) {
	f := &Filter{kinds: make(map[Kind]bool)}
	for _, s := range kinds {
		k, err := ParseKind(s)
		if err != nil {
			return nil, fmt.Errorf("do_structures: %w", err)
		}
		f.kinds[k] = true
	}
	for _, p := range includeTables {
		if _, err := path.Match(p, ""); err != nil {
			return nil, fmt.Errorf("include_tables %q: %w", p, err)
		}
		f.include = append(f.include, strings.ToLower(p))
	}
	for _, p := range excludeTables {
		if _, err := path.Match(p, ""); err != nil {
			return nil, fmt.Errorf("exclude_tables %q: %w", p, err)
		}
		f.exclude = append(f.exclude, strings.ToLower(p))
	}
	return f, nil
}

// Allow reports whether key passes the filter. A nil filter allows everything.
func (f *Filter) Allow(key Key) bool {
	if f == nil {
		return true
	}
	if len(f.kinds) > 0 && !f.kinds[key.Kind] {
		return false
	}
	name := strings.ToLower(key.Table)
	if len(f.include) > 0 && !matchAny(f.include, name) {
		return false
	}
	return !matchAny(f.exclude, name)
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := path.Match(p, name); ok {
			return true
		}
	}
	return false
}
