// Package check classifies schema objects of a source and a destination
// database into miss, diff and extra outcomes and renders them as check logs.
package check

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidKey   = errors.New("invalid object key")
	ErrDuplicateKey = errors.New("duplicate object key")
)

// Kind is the type of a comparable schema object.
type Kind string

const (
	KindTable Kind = "table"
	KindIndex Kind = "index"
)

// ParseKind accepts the names used in keys and in the do_structures setting.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindTable:
		return KindTable, nil
	case KindIndex:
		return KindIndex, nil
	default:
		return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidKey, s)
	}
}

// Key identifies one object within a comparison run.
// Name is only set for indexes.
type Key struct {
	Kind   Kind
	Schema string
	Table  string
	Name   string
}

func TableKey(schema, table string) Key {
	return Key{Kind: KindTable, Schema: schema, Table: table}
}

func IndexKey(schema, table, name string) Key {
	return Key{Kind: KindIndex, Schema: schema, Table: table, Name: name}
}

// String renders the dotted form, e.g. index.db.tb.idx_name.
func (k Key) String() string {
	if k.Kind == KindIndex {
		return fmt.Sprintf("%s.%s.%s.%s", k.Kind, k.Schema, k.Table, k.Name)
	}
	return fmt.Sprintf("%s.%s.%s", k.Kind, k.Schema, k.Table)
}

// ParseKey is the inverse of Key.String. The last part keeps any extra dots.
func ParseKey(s string) (Key, error) {
	head, rest, ok := strings.Cut(s, ".")
	if !ok {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	kind, err := ParseKind(head)
	if err != nil {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}

	want := 2
	if kind == KindIndex {
		want = 3
	}
	parts := strings.SplitN(rest, ".", want)
	if len(parts) != want {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	for _, p := range parts {
		if p == "" {
			return Key{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
		}
	}

	k := Key{Kind: kind, Schema: parts[0], Table: parts[1]}
	if kind == KindIndex {
		k.Name = parts[2]
	}
	return k, nil
}
