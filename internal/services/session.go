package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/scewiki/internal/auth"
	"github.com/dmitrijs2005/scewiki/internal/common"
	"github.com/dmitrijs2005/scewiki/internal/kv"
	"github.com/dmitrijs2005/scewiki/internal/logging"
	"github.com/dmitrijs2005/scewiki/internal/models"
	"github.com/dmitrijs2005/scewiki/internal/repositories/repomanager"
)

// SessionService remembers who is logged in to the shell between runs. The
// session is a signed token stored under common.CurrentUserKey; no stored
// token means nobody is logged in.
type SessionService struct {
	store       kv.Store
	repomanager repomanager.RepositoryManager
	secret      []byte
	ttl         time.Duration
	log         logging.Logger
}

func NewSessionService(store kv.Store, m repomanager.RepositoryManager, secret []byte, ttl time.Duration, log logging.Logger) *SessionService {
	return &SessionService{store: store, repomanager: m, secret: secret, ttl: ttl, log: log}
}

// Current returns the logged-in user. A missing, expired or forged token,
// or one naming a user that no longer exists, is common.ErrorUnauthorized.
func (s *SessionService) Current(ctx context.Context) (*models.User, error) {
	raw, err := s.store.Get(ctx, common.CurrentUserKey)
	if err != nil {
		return nil, result(ctx, s.log, "read session", err)
	}
	if raw == nil {
		return nil, common.ErrorUnauthorized
	}

	userID, err := auth.GetUserIDFromToken(string(raw), s.secret)
	if err != nil {
		s.log.Debug(ctx, "session token rejected", "error", err)
		return nil, common.ErrorUnauthorized
	}

	var user *models.User
	err = s.repomanager.View(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		var err error
		user, err = r.Users.GetByID(ctx, userID)
		return err
	})
	if errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorUnauthorized
	}
	if err != nil {
		return nil, result(ctx, s.log, "read session", err)
	}
	return user, nil
}

// Set makes u the logged-in user. A nil u logs out.
func (s *SessionService) Set(ctx context.Context, u *models.User) error {
	if u == nil {
		return s.Clear(ctx)
	}
	token, err := auth.GenerateToken(u.ID, s.secret, s.ttl)
	if err != nil {
		return result(ctx, s.log, "sign session", err)
	}
	return result(ctx, s.log, "save session", s.store.Set(ctx, common.CurrentUserKey, []byte(token)))
}

// Clear logs out.
func (s *SessionService) Clear(ctx context.Context) error {
	return result(ctx, s.log, "clear session", s.store.Delete(ctx, common.CurrentUserKey))
}
