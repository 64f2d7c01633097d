package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"db-struct-check/internal/check"
	"db-struct-check/internal/dialect"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad(t *testing.T) {
	set := check.NewSet()
	require.NoError(t, set.Add(check.TableKey("db", "zeta"), "CREATE TABLE IF NOT EXISTS `db`.`zeta` (`id` int NOT NULL, PRIMARY KEY (`id`))"))
	require.NoError(t, set.Add(check.IndexKey("db", "zeta", "i1"), "CREATE INDEX `i1` ON `db`.`zeta` (`id`)"))
	require.NoError(t, set.Add(check.TableKey("db", "alpha"), `CREATE TABLE IF NOT EXISTS "db"."alpha" ("v" text DEFAULT 'a: b')`))

	path := filepath.Join(t.TempDir(), "src.yaml")
	require.NoError(t, Save(path, "mysql", set))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mysql", f.Driver)

	got, err := f.Set()
	require.NoError(t, err)
	assert.Equal(t, set.Keys(), got.Keys())
	for _, k := range set.Keys() {
		want, _ := set.Get(k)
		have, ok := got.Get(k)
		require.True(t, ok)
		assert.Equal(t, want, have)
	}
	assert.True(t, check.Classify(set, got).Clean())
}

func TestLoadEdgeCases(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("empty", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		require.NoError(t, Save(path, "sqlite3", check.NewSet()))
		f, err := Load(path)
		require.NoError(t, err)
		set, err := f.Set()
		require.NoError(t, err)
		assert.Zero(t, set.Len())
	})

	t.Run("missing driver", func(t *testing.T) {
		path := filepath.Join(dir, "nodriver.yaml")
		require.NoError(t, os.WriteFile(path, []byte("entries: []\n"), 0o644))
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrMissingDriver)
	})

	t.Run("unknown driver", func(t *testing.T) {
		path := filepath.Join(dir, "db2.yaml")
		require.NoError(t, os.WriteFile(path, []byte("driver: db2\nentries: []\n"), 0o644))
		_, err := Load(path)
		assert.ErrorIs(t, err, dialect.ErrUnsupportedDriver)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("entries: [\n"), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestFileSetRejectsBadEntries(t *testing.T) {
	f := &File{Entries: []Entry{{Key: "view.db.v", SQL: "x"}}}
	_, err := f.Set()
	assert.ErrorIs(t, err, check.ErrInvalidKey)

	f = &File{Entries: []Entry{
		{Key: "table.db.t", SQL: "a"},
		{Key: "table.db.t", SQL: "b"},
	}}
	_, err = f.Set()
	assert.ErrorIs(t, err, check.ErrDuplicateKey)
}
