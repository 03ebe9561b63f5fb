package dbx

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
)

// Dialect names the SQL flavour a repository talks to. Queries are written
// once with '?' placeholders; PostgreSQL connections rebind them to $n.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "pgx"
)

// GooseDialect returns the goose dialect name for d.
func (d Dialect) GooseDialect() string {
	if d == DialectPostgres {
		return "pgx"
	}
	return "sqlite3"
}

// Rebind rewrites '?' placeholders into $1..$n. Queries must not contain
// literal question marks.
func Rebind(query string) string {
	if !strings.Contains(query, "?") {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// WithDialect returns a DBTX that speaks d. SQLite handles are returned as-is.
func WithDialect(db DBTX, d Dialect) DBTX {
	if d != DialectPostgres {
		return db
	}
	return &reboundDB{db: db}
}

type reboundDB struct {
	db DBTX
}

func (r *reboundDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return r.db.ExecContext(ctx, Rebind(query), args...)
}

func (r *reboundDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return r.db.QueryContext(ctx, Rebind(query), args...)
}

func (r *reboundDB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return r.db.QueryRowContext(ctx, Rebind(query), args...)
}
