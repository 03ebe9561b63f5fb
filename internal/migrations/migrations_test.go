package migrations

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/scewiki/internal/dbx"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "m.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestUp_CreatesSchema(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	require.NoError(t, Up(ctx, db, dbx.DialectSQLite))
	// second run is a no-op
	require.NoError(t, Up(ctx, db, dbx.DialectSQLite))

	for _, table := range []string{"users", "sce_objects", "posts", "credentials", "verification_codes", "counters", "metadata"} {
		var name string
		err := db.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
	}

	var next int64
	require.NoError(t, db.QueryRowContext(ctx, `SELECT value FROM counters WHERE name = 'next_id'`).Scan(&next))
	assert.Equal(t, int64(1), next)
}

func TestUp_PropagatesGooseError(t *testing.T) {
	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	var gotDir string
	gooseUpContext = func(_ context.Context, _ *sql.DB, dir string, _ ...goose.OptionsFunc) error {
		gotDir = dir
		return errors.New("boom")
	}

	err := Up(context.Background(), openSQLite(t), dbx.DialectPostgres)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrate: boom")
	assert.Equal(t, ".", gotDir)
}
