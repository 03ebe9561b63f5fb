package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/dmitrijs2005/scewiki/internal/dbx"
	"github.com/dmitrijs2005/scewiki/internal/document"
	"github.com/dmitrijs2005/scewiki/internal/kv"
	"github.com/dmitrijs2005/scewiki/internal/logging"
	"github.com/dmitrijs2005/scewiki/internal/models"
	"github.com/dmitrijs2005/scewiki/internal/repositories/repomanager"
	"github.com/dmitrijs2005/scewiki/internal/repositories/repotest"
	"github.com/stretchr/testify/require"
)

// fakeMailer records every code it is asked to send.
type fakeMailer struct {
	mu    sync.Mutex
	codes map[string][]string
	err   error
}

func newFakeMailer() *fakeMailer { return &fakeMailer{codes: map[string][]string{}} }

func (f *fakeMailer) SendVerification(_ context.Context, email, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.codes[email] = append(f.codes[email], code)
	return nil
}

func (f *fakeMailer) last(email string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.codes[email]
	if len(c) == 0 {
		return ""
	}
	return c[len(c)-1]
}

type env struct {
	manager  repomanager.RepositoryManager
	mailer   *fakeMailer
	logs     *bytes.Buffer
	users    *UserService
	content  *ContentService
	sessions *SessionService
	archive  *ArchiveService
	docs     *document.Store
}

func newEnv(t *testing.T, m repomanager.RepositoryManager, docs *document.Store, logs *bytes.Buffer) *env {
	t.Helper()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	mailer := newFakeMailer()
	return &env{
		manager:  m,
		mailer:   mailer,
		logs:     logs,
		docs:     docs,
		users:    NewUserService(m, mailer, log),
		content:  NewContentService(m, log),
		sessions: NewSessionService(m.Metadata(), m, []byte("test-secret"), 0, log),
		archive:  NewArchiveService(m, log),
	}
}

func newSQLEnv(t *testing.T) *env {
	db := repotest.OpenSQLite(t)
	return newEnv(t, repomanager.NewSQLRepositoryManager(db, dbx.DialectSQLite), nil, &bytes.Buffer{})
}

func newDocumentEnv(t *testing.T) *env {
	logs := &bytes.Buffer{}
	mem := kv.NewMemoryStore()
	docs := document.NewStore(mem, logging.NewSlogLogger(slog.New(slog.NewTextHandler(logs, nil))))
	m := repomanager.NewDocumentRepositoryManager(docs, mem, nil)
	require.NoError(t, m.RunMigrations(context.Background()))
	return newEnv(t, m, docs, logs)
}

// forEachBackend runs fn against both storage backends.
func forEachBackend(t *testing.T, fn func(t *testing.T, e *env)) {
	t.Run("sql", func(t *testing.T) { fn(t, newSQLEnv(t)) })
	t.Run("document", func(t *testing.T) { fn(t, newDocumentEnv(t)) })
}

func (e *env) register(t *testing.T, email string) *models.User {
	t.Helper()
	u, err := e.users.Register(context.Background(), email, "name-"+email, "pw-"+email)
	require.NoError(t, err)
	return u
}

// brokenManager fails every unit of work with a storage error.
type brokenManager struct {
	repomanager.RepositoryManager
}

var errStorage = errors.New("disk on fire")

func (brokenManager) Update(context.Context, repomanager.UnitOfWork) error { return errStorage }
func (brokenManager) View(context.Context, repomanager.UnitOfWork) error   { return errStorage }
func (brokenManager) Metadata() kv.Store                                   { return kv.NewMemoryStore() }
