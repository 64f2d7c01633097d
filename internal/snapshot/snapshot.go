// Package snapshot stores extracted structure statements in a YAML file so a
// check can run against a side that is not reachable at check time.
package snapshot

import (
	"errors"
	"fmt"
	"os"

	"db-struct-check/internal/check"
	"db-struct-check/internal/dialect"

	"gopkg.in/yaml.v3"
)

var ErrMissingDriver = errors.New("snapshot has no driver")

// Entry is one object key with its normalized DDL.
type Entry struct {
	Key string `yaml:"key"`
	SQL string `yaml:"sql"`
}

// File is the on-disk layout of a snapshot.
type File struct {
	Driver  string  `yaml:"driver"`
	Entries []Entry `yaml:"entries"`
}

// New captures set in insertion order.
func New(driver string, set *check.Set) *File {
	f := &File{Driver: driver}
	for _, k := range set.Keys() {
		sql, _ := set.Get(k)
		f.Entries = append(f.Entries, Entry{Key: k.String(), SQL: sql})
	}
	return f
}

// Set rebuilds the ordered statement set.
func (f *File) Set() (*check.Set, error) {
	set := check.NewSet()
	for i, e := range f.Entries {
		k, err := check.ParseKey(e.Key)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if err := set.Add(k, e.SQL); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return set, nil
}

// Save writes set to path, replacing any existing file.
func Save(path, driver string, set *check.Set) error {
	out, err := yaml.Marshal(New(driver, set))
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Load reads a snapshot written by Save.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}
	// no entries is valid: an empty side makes every object of the other side a miss or extra
	if f.Driver == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrMissingDriver)
	}
	if _, err := dialect.GetDialect(f.Driver); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &f, nil
}
