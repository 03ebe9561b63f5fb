package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/scewiki/internal/dbx"
	"github.com/dmitrijs2005/scewiki/internal/kv"
	"github.com/dmitrijs2005/scewiki/internal/migrations"
	"github.com/dmitrijs2005/scewiki/internal/repositories/credentials"
	"github.com/dmitrijs2005/scewiki/internal/repositories/objects"
	"github.com/dmitrijs2005/scewiki/internal/repositories/posts"
	"github.com/dmitrijs2005/scewiki/internal/repositories/sequence"
	"github.com/dmitrijs2005/scewiki/internal/repositories/users"
	"github.com/dmitrijs2005/scewiki/internal/repositories/verifications"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// SQLRepositoryManager keeps every entity in its own table. Updates run in
// one transaction.
type SQLRepositoryManager struct {
	db      *sql.DB
	dialect dbx.Dialect
}

// NewSQLRepositoryManager wraps an open database. For SQLite the pool is
// limited to one connection so that writers queue instead of failing with
// "database is locked".
func NewSQLRepositoryManager(db *sql.DB, dialect dbx.Dialect) *SQLRepositoryManager {
	if dialect == dbx.DialectSQLite {
		db.SetMaxOpenConns(1)
	}
	return &SQLRepositoryManager{db: db, dialect: dialect}
}

func (m *SQLRepositoryManager) repositories(db dbx.DBTX) Repositories {
	db = dbx.WithDialect(db, m.dialect)
	return Repositories{
		Users:       users.NewSQLRepository(db),
		Objects:     objects.NewSQLRepository(db),
		Posts:       posts.NewSQLRepository(db),
		Credentials: credentials.NewSQLRepository(db),
		Codes:       verifications.NewSQLRepository(db),
		Sequence:    sequence.NewSQLRepository(db),
	}
}

func (m *SQLRepositoryManager) Update(ctx context.Context, fn UnitOfWork) error {
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, m.repositories(tx))
	})
}

func (m *SQLRepositoryManager) View(ctx context.Context, fn UnitOfWork) error {
	return fn(ctx, m.repositories(m.db))
}

func (m *SQLRepositoryManager) Metadata() kv.Store {
	return kv.NewSQLStore(dbx.WithDialect(m.db, m.dialect))
}

// RunMigrations applies the embedded goose migrations.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context) error {
	return migrations.Up(ctx, m.db, m.dialect)
}

func (m *SQLRepositoryManager) Close() error {
	return m.db.Close()
}
