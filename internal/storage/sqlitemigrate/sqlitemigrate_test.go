package sqlitemigrate

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "m.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestApplyRunsOnce(t *testing.T) {
	db := openDB(t)
	fsys := fstest.MapFS{
		"001_a.sql": {Data: []byte("-- +migrate Up\nCREATE TABLE a (id INTEGER);\n-- +migrate Down\nDROP TABLE a;\n")},
		"002_b.sql": {Data: []byte("CREATE TABLE b (id INTEGER);")},
		"README.md": {Data: []byte("not sql")},
	}
	ctx := context.Background()
	require.NoError(t, Apply(ctx, db, fsys, ""))
	require.NoError(t, Apply(ctx, db, fsys, "."))

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&n))
	assert.Equal(t, 2, n)
	_, err := db.Exec("INSERT INTO a (id) VALUES (1)")
	assert.NoError(t, err)
}

func TestApplyReportsBadSQL(t *testing.T) {
	db := openDB(t)
	err := Apply(context.Background(), db, fstest.MapFS{"001.sql": {Data: []byte("CREATE NONSENSE")}}, "")
	assert.Error(t, err)
	assert.Error(t, Apply(context.Background(), nil, fstest.MapFS{}, ""))
}

func TestUpSection(t *testing.T) {
	assert.Equal(t, "\nUP\n", UpSection("-- +migrate Up\nUP\n-- +migrate Down\nDOWN"))
	assert.Equal(t, "PLAIN", UpSection("PLAIN"))
}
