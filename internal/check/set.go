package check

import "fmt"

// Set is an insertion-ordered mapping from object key to normalized DDL.
type Set struct {
	keys []Key
	sqls map[Key]string
}

func NewSet() *Set {
	return &Set{sqls: make(map[Key]string)}
}

// Add appends a key. Keys must be unique within a set.
func (s *Set) Add(key Key, sql string) error {
	if _, ok := s.sqls[key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, key)
	}
	s.keys = append(s.keys, key)
	s.sqls[key] = sql
	return nil
}

// Get returns the DDL stored for key.
func (s *Set) Get(key Key) (string, bool) {
	sql, ok := s.sqls[key]
	return sql, ok
}

// Keys returns the keys in insertion order.
func (s *Set) Keys() []Key {
	out := make([]Key, len(s.keys))
	copy(out, s.keys)
	return out
}

func (s *Set) Len() int {
	return len(s.keys)
}

// Filter returns a new set holding only the keys accepted by f.
func (s *Set) Filter(f *Filter) *Set {
	out := NewSet()
	for _, k := range s.keys {
		if f.Allow(k) {
			out.keys = append(out.keys, k)
			out.sqls[k] = s.sqls[k]
		}
	}
	return out
}

// Merge appends every entry of other, failing on the first duplicate.
func (s *Set) Merge(other *Set) error {
	for _, k := range other.keys {
		if err := s.Add(k, other.sqls[k]); err != nil {
			return err
		}
	}
	return nil
}
