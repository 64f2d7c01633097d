package structure_test

import (
	"context"
	"database/sql"
	"testing"

	"db-struct-check/internal/check"
	"db-struct-check/internal/dialect"
	"db-struct-check/internal/structure"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const sqliteFixture = `
CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT NOT NULL, email TEXT);
CREATE UNIQUE INDEX ux_users_email ON users (email);
CREATE TABLE orders (
	id INTEGER PRIMARY KEY,
	user_id INTEGER NOT NULL REFERENCES users(id),
	amount REAL DEFAULT 0
);
CREATE INDEX ix_orders_user ON orders (user_id, amount);
`

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// every new connection would open a fresh in-memory database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(sqliteFixture)
	require.NoError(t, err)
	return db
}

func TestAnalyzeSQLite(t *testing.T) {
	db := openSQLite(t)
	d, err := dialect.GetDialect("sqlite3")
	require.NoError(t, err)

	a := structure.NewAnalyzer(db, d, zaptest.NewLogger(t))
	ctx := context.Background()

	current, err := a.CurrentSchema(ctx)
	require.NoError(t, err)
	assert.Equal(t, "main", current)

	tables, err := a.Analyze(ctx, "")
	require.NoError(t, err)
	require.Len(t, tables, 2)

	// users is referenced by orders
	assert.Equal(t, "users", tables[0].Name)
	assert.Equal(t, "orders", tables[1].Name)
	assert.Equal(t, []string{"users"}, tables[1].Dependencies)
	assert.Empty(t, tables[0].Dependencies)

	set, err := structure.Statements(tables, d)
	require.NoError(t, err)

	var keys []string
	for _, k := range set.Keys() {
		keys = append(keys, k.String())
	}
	assert.Equal(t, []string{
		"table.main.users",
		"index.main.users.ux_users_email",
		"table.main.orders",
		"index.main.orders.ix_orders_user",
	}, keys)

	sqlOf := func(k check.Key) string {
		s, ok := set.Get(k)
		require.True(t, ok, k.String())
		return s
	}
	assert.Equal(t,
		`CREATE TABLE IF NOT EXISTS "main"."users" ("id" integer, "name" text NOT NULL, "email" text, PRIMARY KEY ("id"))`,
		sqlOf(check.TableKey("main", "users")))
	assert.Equal(t,
		`CREATE TABLE IF NOT EXISTS "main"."orders" ("id" integer, "user_id" integer NOT NULL, "amount" real DEFAULT 0, PRIMARY KEY ("id"))`,
		sqlOf(check.TableKey("main", "orders")))
	assert.Equal(t,
		`CREATE UNIQUE INDEX "ux_users_email" ON "main"."users" ("email")`,
		sqlOf(check.IndexKey("main", "users", "ux_users_email")))
	assert.Equal(t,
		`CREATE INDEX "ix_orders_user" ON "main"."orders" ("user_id","amount")`,
		sqlOf(check.IndexKey("main", "orders", "ix_orders_user")))
}

func TestAnalyzeSQLite_ReorderedIndexIsDiff(t *testing.T) {
	src := openSQLite(t)
	dst := openSQLite(t)
	_, err := dst.Exec(`DROP INDEX ix_orders_user; CREATE INDEX ix_orders_user ON orders (amount, user_id);`)
	require.NoError(t, err)

	d, err := dialect.GetDialect("sqlite3")
	require.NoError(t, err)

	load := func(db *sql.DB) *check.Set {
		tables, err := structure.NewAnalyzer(db, d, nil).Analyze(context.Background(), "main")
		require.NoError(t, err)
		set, err := structure.Statements(tables, d)
		require.NoError(t, err)
		return set
	}

	out := check.Classify(load(src), load(dst))
	assert.Empty(t, out.Misses)
	assert.Empty(t, out.Extras)
	require.Len(t, out.Diffs, 1)
	assert.Equal(t, "index.main.orders.ix_orders_user", out.Diffs[0].Key.String())
}
