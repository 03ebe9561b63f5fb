// Package services holds the archive's domain operations: accounts, email
// verification, the shell session, role-gated content and export.
//
// Every operation that depends on who is acting takes an explicit Session
// and re-reads that user from storage, so a role change takes effect on the
// next call. Failures are reported with the sentinel errors of package
// common; unexpected storage errors are logged and surface as
// common.ErrorInternal.
package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/scewiki/internal/common"
	"github.com/dmitrijs2005/scewiki/internal/logging"
	"github.com/dmitrijs2005/scewiki/internal/models"
	"github.com/dmitrijs2005/scewiki/internal/repositories/repomanager"
)

// Session identifies the acting user. The zero value is an anonymous visitor.
type Session struct {
	UserID string
}

// SessionFor returns the session of u, or an anonymous one for nil.
func SessionFor(u *models.User) Session {
	if u == nil {
		return Session{}
	}
	return Session{UserID: u.ID}
}

func (s Session) Anonymous() bool { return s.UserID == "" }

// actor resolves sess to a stored user. Anonymous sessions and sessions of
// users that no longer exist are unauthorized.
func actor(ctx context.Context, r repomanager.Repositories, sess Session) (*models.User, error) {
	if sess.Anonymous() {
		return nil, common.ErrorUnauthorized
	}
	u, err := r.Users.GetByID(ctx, sess.UserID)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorUnauthorized
	}
	return u, err
}

func requireAdmin(ctx context.Context, r repomanager.Repositories, sess Session) (*models.User, error) {
	u, err := actor(ctx, r, sess)
	if err != nil {
		return nil, err
	}
	if !u.IsAdmin() {
		return nil, common.ErrorUnauthorized
	}
	return u, nil
}

var domainErrors = []error{
	common.ErrorNotFound,
	common.ErrorAlreadyExists,
	common.ErrorUnauthorized,
	common.ErrorInvalid,
	common.ErrorInternal,
}

// result passes domain errors through unchanged and turns anything else
// into common.ErrorInternal after logging it.
func result(ctx context.Context, log logging.Logger, op string, err error) error {
	if err == nil {
		return nil
	}
	for _, known := range domainErrors {
		if errors.Is(err, known) {
			return err
		}
	}
	log.Error(ctx, op+" failed", "error", err)
	return common.ErrorInternal
}
