package migrate

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

func TestExtractUp(t *testing.T) {
	content := "-- +migrate Up\nCREATE TABLE a (id INTEGER);\n-- +migrate Down\nDROP TABLE a;\n"
	assert.Equal(t, "\nCREATE TABLE a (id INTEGER);\n", ExtractUp(content))
	assert.Equal(t, "SELECT 1;", ExtractUp("SELECT 1;"))
}

func TestApplySQLite(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "migrate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	fsys := fstest.MapFS{
		"001_items.sql": {Data: []byte("-- +migrate Up\nCREATE TABLE items (id INTEGER PRIMARY KEY);\n-- +migrate Down\nDROP TABLE items;\n")},
		"002_seed.sql":  {Data: []byte("INSERT INTO items (id) VALUES (1);")},
		"README.md":     {Data: []byte("ignored")},
	}
	ctx := context.Background()
	require.NoError(t, Apply(ctx, db, fsys, SQLite))
	require.NoError(t, Apply(ctx, db, fsys, SQLite), "second run must be a no-op")

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM items").Scan(&count))
	assert.Equal(t, 1, count)
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 2, count)
}
