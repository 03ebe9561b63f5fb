// Package app wires configuration, storage, services and the shell into a
// runnable archive.
package app

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/scewiki/internal/cli"
	"github.com/dmitrijs2005/scewiki/internal/common"
	"github.com/dmitrijs2005/scewiki/internal/config"
	"github.com/dmitrijs2005/scewiki/internal/cryptox"
	"github.com/dmitrijs2005/scewiki/internal/dbx"
	"github.com/dmitrijs2005/scewiki/internal/document"
	"github.com/dmitrijs2005/scewiki/internal/filex"
	"github.com/dmitrijs2005/scewiki/internal/kv"
	"github.com/dmitrijs2005/scewiki/internal/logging"
	"github.com/dmitrijs2005/scewiki/internal/mailer"
	"github.com/dmitrijs2005/scewiki/internal/migrations"
	"github.com/dmitrijs2005/scewiki/internal/repositories/repomanager"
	"github.com/dmitrijs2005/scewiki/internal/services"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	manager repomanager.RepositoryManager

	users    *services.UserService
	content  *services.ContentService
	sessions *services.SessionService
	archive  *services.ArchiveService
}

// Seam for tests.
var newS3Store = func(ctx context.Context, c kv.S3Config) (kv.Store, error) {
	return kv.NewS3Store(ctx, c)
}

// NewApp opens the configured storage, brings its schema up to date and
// builds the services. Logs go to logOut.
func NewApp(ctx context.Context, c *config.Config, logOut io.Writer) (*App, error) {
	logger, err := logging.New(logging.Options{Backend: c.LogBackend, Level: c.LogLevel, JSON: c.LogJSON}, logOut)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	m, err := openStorage(ctx, c, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}
	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	secret, err := sessionSecret(ctx, c, m.Metadata())
	if err != nil {
		_ = m.Close()
		return nil, err
	}

	return &App{
		config:   c,
		logger:   logger,
		manager:  m,
		users:    services.NewUserService(m, mailer.NewLogSender(logger, c.MailDelay), logger),
		content:  services.NewContentService(m, logger),
		sessions: services.NewSessionService(m.Metadata(), m, secret, c.SessionTTL, logger),
		archive:  services.NewArchiveService(m, logger),
	}, nil
}

func openStorage(ctx context.Context, c *config.Config, log logging.Logger) (repomanager.RepositoryManager, error) {
	if c.Storage == config.StorageSQL {
		db, dialect, err := openDB(c)
		if err != nil {
			return nil, err
		}
		return repomanager.NewSQLRepositoryManager(db, dialect), nil
	}

	var (
		store  kv.Store
		closer io.Closer
	)
	switch c.KVBackend {
	case config.KVSQL:
		db, dialect, err := openDB(c)
		if err != nil {
			return nil, err
		}
		if dialect == dbx.DialectSQLite {
			db.SetMaxOpenConns(1)
		}
		if err := migrations.Up(ctx, db, dialect); err != nil {
			_ = db.Close()
			return nil, err
		}
		store, closer = kv.NewSQLStore(dbx.WithDialect(db, dialect)), db
	case config.KVS3:
		s, err := newS3Store(ctx, kv.S3Config{
			User:     c.S3User,
			Password: c.S3Password,
			Bucket:   c.S3Bucket,
			Region:   c.S3Region,
			Endpoint: c.S3Endpoint,
			Prefix:   c.S3Prefix,
		})
		if err != nil {
			return nil, err
		}
		store = s
	default:
		store = kv.NewMemoryStore()
	}

	var opts []document.Option
	if c.DocumentKey != "" {
		opts = append(opts, document.WithSealKey(cryptox.DocumentKey(c.DocumentKey)))
	}
	docs := document.NewStore(store, log, opts...)
	return repomanager.NewDocumentRepositoryManager(docs, store, closer), nil
}

func openDB(c *config.Config) (*sql.DB, dbx.Dialect, error) {
	dialect := dbx.DialectSQLite
	if c.Driver == "pgx" {
		dialect = dbx.DialectPostgres
	}

	if dialect == dbx.DialectSQLite && isFileDSN(c.DSN) {
		if _, err := filex.EnsureParentDir(c.DSN); err != nil {
			return nil, "", err
		}
	}

	db, err := sql.Open(c.Driver, c.DSN)
	if err != nil {
		return nil, "", fmt.Errorf("db open error: %w", err)
	}
	return db, dialect, nil
}

func isFileDSN(dsn string) bool {
	return dsn != "" && dsn != ":memory:" && !strings.HasPrefix(dsn, "file:")
}

// sessionSecret returns the configured secret or, failing that, one
// generated on first start and kept in the metadata store.
func sessionSecret(ctx context.Context, c *config.Config, store kv.Store) ([]byte, error) {
	if c.SessionSecret != "" {
		return []byte(c.SessionSecret), nil
	}

	stored, err := store.Get(ctx, common.SessionSecretKey)
	if err != nil {
		return nil, fmt.Errorf("read session secret: %w", err)
	}
	if stored != nil {
		return stored, nil
	}

	s, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, fmt.Errorf("generate session secret: %w", err)
	}
	if err := store.Set(ctx, common.SessionSecretKey, []byte(s)); err != nil {
		return nil, fmt.Errorf("save session secret: %w", err)
	}
	return []byte(s), nil
}

// RunShell serves the interactive shell on in/out until exit or ctx is done.
func (app *App) RunShell(ctx context.Context, in io.Reader, out io.Writer) error {
	app.logger.Debug(ctx, "starting shell", "storage", app.config.Storage)
	return cli.NewApp(app.users, app.content, app.sessions, in, out).Run(ctx)
}

// Migrate brings the storage schema up to date. NewApp already does this;
// the command exists for operators preparing a database ahead of time.
func (app *App) Migrate(ctx context.Context) error {
	if err := app.manager.RunMigrations(ctx); err != nil {
		return err
	}
	app.logger.Info(ctx, "storage is up to date", "storage", app.config.Storage)
	return nil
}

// Export writes the archive to w as an indented JSON document.
func (app *App) Export(ctx context.Context, w io.Writer) error {
	doc, err := app.archive.Export(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Close releases the storage and flushes the logger.
func (app *App) Close() error {
	err := app.manager.Close()
	if s, ok := app.logger.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
	return err
}
