// Package repotest opens migrated SQLite databases for repository tests.
package repotest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/scewiki/internal/dbx"
	"github.com/dmitrijs2005/scewiki/internal/migrations"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// OpenSQLite returns a migrated database file under t.TempDir. A file is
// used instead of :memory: so every pooled connection sees the same data.
func OpenSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "scewiki.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Up(context.Background(), db, dbx.DialectSQLite))
	return db
}
