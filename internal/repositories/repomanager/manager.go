// Package repomanager groups the archive repositories and runs units of work
// against one of two backends: per-entity SQL tables inside a transaction,
// or the single archive document loaded and saved under a process lock.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/scewiki/internal/kv"
	"github.com/dmitrijs2005/scewiki/internal/repositories/credentials"
	"github.com/dmitrijs2005/scewiki/internal/repositories/objects"
	"github.com/dmitrijs2005/scewiki/internal/repositories/posts"
	"github.com/dmitrijs2005/scewiki/internal/repositories/sequence"
	"github.com/dmitrijs2005/scewiki/internal/repositories/users"
	"github.com/dmitrijs2005/scewiki/internal/repositories/verifications"
)

// Repositories is the set of repositories bound to one unit of work.
type Repositories struct {
	Users       users.Repository
	Objects     objects.Repository
	Posts       posts.Repository
	Credentials credentials.Repository
	Codes       verifications.Repository
	Sequence    sequence.Repository
}

// UnitOfWork receives repositories bound to the current unit of work.
type UnitOfWork func(ctx context.Context, r Repositories) error

type RepositoryManager interface {
	// Update runs fn atomically: either every change fn makes is persisted
	// or, when fn returns an error, none of the entity changes are.
	Update(ctx context.Context, fn UnitOfWork) error
	// View runs fn with read access.
	View(ctx context.Context, fn UnitOfWork) error
	// Metadata returns the key/value store used for the current session.
	Metadata() kv.Store
	RunMigrations(ctx context.Context) error
	Close() error
}
