// Package migrations embeds the goose SQL migrations. The statements use
// only types and syntax shared by SQLite and PostgreSQL.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/dmitrijs2005/scewiki/internal/dbx"
	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var Migrations embed.FS

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Up applies every pending migration to db.
func Up(ctx context.Context, db *sql.DB, dialect dbx.Dialect) error {
	goose.SetBaseFS(Migrations)
	if err := goose.SetDialect(dialect.GooseDialect()); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
