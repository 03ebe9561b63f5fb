package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/scewiki/internal/common"
	"github.com/dmitrijs2005/scewiki/internal/cryptox"
	"github.com/dmitrijs2005/scewiki/internal/logging"
	"github.com/dmitrijs2005/scewiki/internal/mailer"
	"github.com/dmitrijs2005/scewiki/internal/models"
	"github.com/dmitrijs2005/scewiki/internal/repositories/repomanager"
	"github.com/dmitrijs2005/scewiki/internal/timex"
)

// UserService handles registration, login, email verification and roles.
type UserService struct {
	repomanager repomanager.RepositoryManager
	mailer      mailer.Sender
	log         logging.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewUserService(m repomanager.RepositoryManager, sender mailer.Sender, log logging.Logger) *UserService {
	return &UserService{repomanager: m, mailer: sender, log: log}
}

// Seams for tests.
var (
	hashPassword     = cryptox.HashPassword
	verifyPassword   = cryptox.VerifyPassword
	verificationCode = common.MakeVerificationCode
)

// Register creates an account. The first account of an archive becomes a
// verified ADMIN; every later one is an unverified READER that is sent a
// verification code. A failed send is logged and does not undo the
// registration; the user can ask for the code again.
func (s *UserService) Register(ctx context.Context, email, username, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)

	switch {
	case email == "" || !strings.Contains(email, "@"):
		return nil, fmt.Errorf("%w: email must contain @", common.ErrorInvalid)
	case username == "":
		return nil, fmt.Errorf("%w: username is required", common.ErrorInvalid)
	case password == "":
		return nil, fmt.Errorf("%w: password is required", common.ErrorInvalid)
	}

	hash, err := hashPassword([]byte(password))
	if err != nil {
		return nil, result(ctx, s.log, "hash password", err)
	}

	var (
		user *models.User
		code string
	)
	err = s.repomanager.Update(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		if _, err := r.Users.GetByEmail(ctx, email); err == nil {
			return common.ErrorAlreadyExists
		} else if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		count, err := r.Users.Count(ctx)
		if err != nil {
			return err
		}
		first := count == 0

		n, err := r.Sequence.Next(ctx)
		if err != nil {
			return err
		}

		user = &models.User{
			ID:            models.FormatID(models.KindUser, n),
			Email:         email,
			Username:      username,
			Role:          models.RoleReader,
			EmailVerified: false,
			CreatedAt:     timex.Now(),
		}
		if first {
			user.Role = models.RoleAdmin
			user.EmailVerified = true
		}

		if err := r.Users.Create(ctx, user, n); err != nil {
			return err
		}
		if err := r.Credentials.Set(ctx, user.ID, hash); err != nil {
			return err
		}

		if first {
			return nil
		}
		code, err = verificationCode()
		if err != nil {
			return err
		}
		return r.Codes.Set(ctx, user.ID, code)
	})
	if err != nil {
		return nil, result(ctx, s.log, "register", err)
	}

	s.log.Info(ctx, "user registered", "user", user.ID, "role", user.Role)
	if code != "" {
		s.sendCode(ctx, user, code)
	}
	return user, nil
}

func (s *UserService) sendCode(ctx context.Context, u *models.User, code string) {
	if err := s.mailer.SendVerification(ctx, u.Email, code); err != nil {
		s.log.Warn(ctx, "verification email not sent", "user", u.ID, "error", err)
	}
}

// VerifyEmail marks userID verified when code matches the pending code
// exactly. The code is consumed, so it cannot be used twice.
func (s *UserService) VerifyEmail(ctx context.Context, userID, code string) error {
	err := s.repomanager.Update(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		if _, err := r.Users.GetByID(ctx, userID); err != nil {
			return err
		}

		stored, err := r.Codes.Get(ctx, userID)
		if errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("%w: no pending verification code", common.ErrorInvalid)
		}
		if err != nil {
			return err
		}
		if stored != code {
			return fmt.Errorf("%w: wrong verification code", common.ErrorInvalid)
		}

		if err := r.Users.SetEmailVerified(ctx, userID, true); err != nil {
			return err
		}
		return r.Codes.Delete(ctx, userID)
	})
	return result(ctx, s.log, "verify email", err)
}

// ResendVerification replaces the pending code of an unverified user with a
// fresh one and sends it.
func (s *UserService) ResendVerification(ctx context.Context, userID string) error {
	var (
		user *models.User
		code string
	)
	err := s.repomanager.Update(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		var err error
		if user, err = r.Users.GetByID(ctx, userID); err != nil {
			return err
		}
		if user.EmailVerified {
			return fmt.Errorf("%w: email already verified", common.ErrorInvalid)
		}
		if code, err = verificationCode(); err != nil {
			return err
		}
		return r.Codes.Set(ctx, userID, code)
	})
	if err != nil {
		return result(ctx, s.log, "resend verification", err)
	}

	s.sendCode(ctx, user, code)
	return nil
}

// Authenticate returns the user whose email and password match. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user *models.User
	err := s.repomanager.View(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		u, err := r.Users.GetByEmail(ctx, strings.TrimSpace(email))
		if errors.Is(err, common.ErrorNotFound) {
			s.burnVerify(password)
			return common.ErrorUnauthorized
		}
		if err != nil {
			return err
		}

		hash, err := r.Credentials.Get(ctx, u.ID)
		if errors.Is(err, common.ErrorNotFound) {
			s.burnVerify(password)
			return common.ErrorUnauthorized
		}
		if err != nil {
			return err
		}

		ok, err := verifyPassword(hash, []byte(password))
		if err != nil {
			return err
		}
		if !ok {
			return common.ErrorUnauthorized
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, result(ctx, s.log, "authenticate", err)
	}
	return user, nil
}

// burnVerify spends the same work as a real password check, so a missing
// account takes as long to reject as a wrong password.
func (s *UserService) burnVerify(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = hashPassword(common.GenerateRandByteArray(16))
	})
	_, _ = verifyPassword(s.dummyHash, []byte(password))
}

// GetUser returns a user record. Users may read their own record; admins
// may read any.
func (s *UserService) GetUser(ctx context.Context, sess Session, id string) (*models.User, error) {
	var user *models.User
	err := s.repomanager.View(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		me, err := actor(ctx, r, sess)
		if err != nil {
			return err
		}
		if me.ID != id && !me.IsAdmin() {
			return common.ErrorUnauthorized
		}
		if me.ID == id {
			user = me
			return nil
		}
		user, err = r.Users.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, result(ctx, s.log, "get user", err)
	}
	return user, nil
}

// ListUsers returns every account in registration order. Admin only.
func (s *UserService) ListUsers(ctx context.Context, sess Session) ([]*models.User, error) {
	var list []*models.User
	err := s.repomanager.View(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		if _, err := requireAdmin(ctx, r, sess); err != nil {
			return err
		}
		var err error
		list, err = r.Users.List(ctx)
		return err
	})
	if err != nil {
		return nil, result(ctx, s.log, "list users", err)
	}
	return list, nil
}

// UpdateUserRole overwrites the role of userID. Admin only.
func (s *UserService) UpdateUserRole(ctx context.Context, sess Session, userID string, role models.Role) error {
	err := s.repomanager.Update(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		if _, err := requireAdmin(ctx, r, sess); err != nil {
			return err
		}
		if !role.Valid() {
			return fmt.Errorf("%w: unknown role %q", common.ErrorInvalid, role)
		}
		return r.Users.UpdateRole(ctx, userID, role)
	})
	if err != nil {
		return result(ctx, s.log, "update role", err)
	}

	s.log.Info(ctx, "role updated", "user", userID, "role", role, "by", sess.UserID)
	return nil
}
