package repomanager

import (
	"context"
	"io"
	"sync"

	"github.com/dmitrijs2005/scewiki/internal/document"
	"github.com/dmitrijs2005/scewiki/internal/kv"
	"github.com/dmitrijs2005/scewiki/internal/models"
	"github.com/dmitrijs2005/scewiki/internal/repositories/credentials"
	"github.com/dmitrijs2005/scewiki/internal/repositories/objects"
	"github.com/dmitrijs2005/scewiki/internal/repositories/posts"
	"github.com/dmitrijs2005/scewiki/internal/repositories/sequence"
	"github.com/dmitrijs2005/scewiki/internal/repositories/users"
	"github.com/dmitrijs2005/scewiki/internal/repositories/verifications"
)

// DocumentRepositoryManager keeps users, objects and posts in one archive
// document and the side values (password hashes, codes, session) as
// separate keys of the same store.
//
// Each unit of work is load, mutate, save under a mutex, so writers in one
// process never lose each other's updates. Side keys are written straight
// through and are not rolled back when the unit of work fails.
type DocumentRepositoryManager struct {
	mu     sync.Mutex
	docs   *document.Store
	store  kv.Store
	closer io.Closer
}

// NewDocumentRepositoryManager builds a manager over store. closer, when not
// nil, releases whatever backs store.
func NewDocumentRepositoryManager(docs *document.Store, store kv.Store, closer io.Closer) *DocumentRepositoryManager {
	return &DocumentRepositoryManager{docs: docs, store: store, closer: closer}
}

func (m *DocumentRepositoryManager) Update(ctx context.Context, fn UnitOfWork) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.docs.Load(ctx)
	if err != nil {
		return err
	}

	if err := fn(ctx, m.repositories(doc)); err != nil {
		return err
	}

	return m.docs.Save(ctx, doc)
}

func (m *DocumentRepositoryManager) View(ctx context.Context, fn UnitOfWork) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.docs.Load(ctx)
	if err != nil {
		return err
	}
	return fn(ctx, m.repositories(doc))
}

func (m *DocumentRepositoryManager) repositories(doc *models.Document) Repositories {
	return Repositories{
		Users:       users.NewDocumentRepository(doc),
		Objects:     objects.NewDocumentRepository(doc),
		Posts:       posts.NewDocumentRepository(doc),
		Credentials: credentials.NewKVRepository(m.store),
		Codes:       verifications.NewKVRepository(m.store),
		Sequence:    sequence.NewDocumentRepository(doc),
	}
}

func (m *DocumentRepositoryManager) Metadata() kv.Store {
	return m.store
}

// RunMigrations makes sure a document exists.
func (m *DocumentRepositoryManager) RunMigrations(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, err := m.docs.Load(ctx)
	return err
}

func (m *DocumentRepositoryManager) Close() error {
	if m.closer == nil {
		return nil
	}
	return m.closer.Close()
}
