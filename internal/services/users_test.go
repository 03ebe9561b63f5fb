package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/scewiki/internal/common"
	"github.com/dmitrijs2005/scewiki/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_FirstIsAdminRestAreReaders(t *testing.T) {
	forEachBackend(t, func(t *testing.T, e *env) {
		a := e.register(t, "a@x")
		b := e.register(t, "b@x")
		c := e.register(t, "c@x")

		assert.Equal(t, models.RoleAdmin, a.Role)
		assert.True(t, a.EmailVerified)
		assert.Equal(t, "user_1", a.ID)

		for _, u := range []*models.User{b, c} {
			assert.Equal(t, models.RoleReader, u.Role)
			assert.False(t, u.EmailVerified)
		}
		assert.Equal(t, "user_2", b.ID)
		assert.Equal(t, "user_3", c.ID)

		assert.Empty(t, e.mailer.last("a@x"), "first user gets no code")
		assert.Len(t, e.mailer.last("b@x"), common.VerificationCodeLength)
		assert.Regexp(t, `^[A-Z0-9]{6}$`, e.mailer.last("c@x"))
	})
}

func TestRegister_DuplicateEmailLeavesUsersUnchanged(t *testing.T) {
	forEachBackend(t, func(t *testing.T, e *env) {
		ctx := context.Background()
		e.register(t, "a@x")
		e.register(t, "b@x")

		_, err := e.users.Register(ctx, "b@x", "other", "pw")
		assert.ErrorIs(t, err, common.ErrorAlreadyExists)

		admin := Session{UserID: "user_1"}
		list, err := e.users.ListUsers(ctx, admin)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})
}

func TestRegister_Invalid(t *testing.T) {
	forEachBackend(t, func(t *testing.T, e *env) {
		ctx := context.Background()
		cases := []struct{ email, username, password string }{
			{"", "n", "p"},
			{"no-at-sign", "n", "p"},
			{"a@x", " ", "p"},
			{"a@x", "n", ""},
		}
		for _, c := range cases {
			_, err := e.users.Register(ctx, c.email, c.username, c.password)
			assert.ErrorIs(t, err, common.ErrorInvalid, "%+v", c)
		}
	})
}

func TestRegister_MailerFailureIsNotFatal(t *testing.T) {
	e := newDocumentEnv(t)
	e.register(t, "a@x")

	e.mailer.err = errors.New("smtp down")
	b, err := e.users.Register(context.Background(), "b@x", "bob", "pw")
	require.NoError(t, err)
	assert.Equal(t, "user_2", b.ID)
	assert.Contains(t, e.logs.String(), "verification email not sent")

	e.mailer.err = nil
	require.NoError(t, e.users.ResendVerification(context.Background(), b.ID))
	require.NoError(t, e.users.VerifyEmail(context.Background(), b.ID, e.mailer.last("b@x")))
}

func TestRegister_StoresHashNotPassword(t *testing.T) {
	e := newDocumentEnv(t)
	u := e.register(t, "a@x")

	raw, err := e.manager.Metadata().Get(context.Background(), common.PasswordKeyPrefix+u.ID)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "pw-a@x")
	assert.Contains(t, string(raw), "argon2id$")
}

func TestAuthenticate(t *testing.T) {
	forEachBackend(t, func(t *testing.T, e *env) {
		ctx := context.Background()
		a := e.register(t, "a@x")

		got, err := e.users.Authenticate(ctx, "a@x", "pw-a@x")
		require.NoError(t, err)
		assert.Equal(t, a.ID, got.ID)

		_, err = e.users.Authenticate(ctx, "a@x", "wrong")
		assert.ErrorIs(t, err, common.ErrorUnauthorized)

		_, err = e.users.Authenticate(ctx, "ghost@x", "pw-a@x")
		assert.ErrorIs(t, err, common.ErrorUnauthorized)
	})
}

func TestVerifyEmail(t *testing.T) {
	forEachBackend(t, func(t *testing.T, e *env) {
		ctx := context.Background()
		e.register(t, "a@x")
		b := e.register(t, "b@x")
		code := e.mailer.last("b@x")

		err := e.users.VerifyEmail(ctx, b.ID, "WRONG1")
		assert.ErrorIs(t, err, common.ErrorInvalid)

		err = e.users.VerifyEmail(ctx, b.ID, "")
		assert.ErrorIs(t, err, common.ErrorInvalid)

		got, err := e.users.GetUser(ctx, SessionFor(b), b.ID)
		require.NoError(t, err)
		assert.False(t, got.EmailVerified, "a wrong code must not change state")

		require.NoError(t, e.users.VerifyEmail(ctx, b.ID, code))

		got, err = e.users.GetUser(ctx, SessionFor(b), b.ID)
		require.NoError(t, err)
		assert.True(t, got.EmailVerified)

		err = e.users.VerifyEmail(ctx, b.ID, code)
		assert.ErrorIs(t, err, common.ErrorInvalid, "replay must fail")

		err = e.users.VerifyEmail(ctx, "user_99", code)
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})
}

func TestResendVerification(t *testing.T) {
	forEachBackend(t, func(t *testing.T, e *env) {
		ctx := context.Background()
		a := e.register(t, "a@x")
		b := e.register(t, "b@x")
		old := e.mailer.last("b@x")

		require.NoError(t, e.users.ResendVerification(ctx, b.ID))
		fresh := e.mailer.last("b@x")
		require.Len(t, e.mailer.codes["b@x"], 2)

		if old != fresh {
			assert.ErrorIs(t, e.users.VerifyEmail(ctx, b.ID, old), common.ErrorInvalid)
		}
		require.NoError(t, e.users.VerifyEmail(ctx, b.ID, fresh))

		assert.ErrorIs(t, e.users.ResendVerification(ctx, b.ID), common.ErrorInvalid)
		assert.ErrorIs(t, e.users.ResendVerification(ctx, a.ID), common.ErrorInvalid)
		assert.ErrorIs(t, e.users.ResendVerification(ctx, "user_42"), common.ErrorNotFound)
	})
}

func TestUpdateUserRole(t *testing.T) {
	forEachBackend(t, func(t *testing.T, e *env) {
		ctx := context.Background()
		a := e.register(t, "a@x")
		b := e.register(t, "b@x")
		c := e.register(t, "c@x")

		assert.ErrorIs(t, e.users.UpdateUserRole(ctx, SessionFor(a), "user_404", models.RoleResearcher), common.ErrorNotFound)
		assert.ErrorIs(t, e.users.UpdateUserRole(ctx, SessionFor(a), b.ID, models.Role("OVERLORD")), common.ErrorInvalid)
		assert.ErrorIs(t, e.users.UpdateUserRole(ctx, SessionFor(b), c.ID, models.RoleAdmin), common.ErrorUnauthorized)
		assert.ErrorIs(t, e.users.UpdateUserRole(ctx, Session{}, c.ID, models.RoleAdmin), common.ErrorUnauthorized)

		require.NoError(t, e.users.UpdateUserRole(ctx, SessionFor(a), b.ID, models.RoleResearcher))

		list, err := e.users.ListUsers(ctx, SessionFor(a))
		require.NoError(t, err)
		roles := map[string]models.Role{}
		for _, u := range list {
			roles[u.ID] = u.Role
		}
		assert.Equal(t, map[string]models.Role{
			a.ID: models.RoleAdmin,
			b.ID: models.RoleResearcher,
			c.ID: models.RoleReader,
		}, roles)
	})
}

func TestGetUserAndListUsers_Access(t *testing.T) {
	forEachBackend(t, func(t *testing.T, e *env) {
		ctx := context.Background()
		a := e.register(t, "a@x")
		b := e.register(t, "b@x")
		c := e.register(t, "c@x")

		_, err := e.users.GetUser(ctx, SessionFor(b), c.ID)
		assert.ErrorIs(t, err, common.ErrorUnauthorized)

		got, err := e.users.GetUser(ctx, SessionFor(a), c.ID)
		require.NoError(t, err)
		assert.Equal(t, "c@x", got.Email)

		_, err = e.users.GetUser(ctx, SessionFor(a), "user_404")
		assert.ErrorIs(t, err, common.ErrorNotFound)

		_, err = e.users.ListUsers(ctx, SessionFor(b))
		assert.ErrorIs(t, err, common.ErrorUnauthorized)

		_, err = e.users.ListUsers(ctx, Session{UserID: "user_404"})
		assert.ErrorIs(t, err, common.ErrorUnauthorized)
	})
}

func TestUserService_StorageErrorsAreInternal(t *testing.T) {
	e := newDocumentEnv(t)
	svc := NewUserService(brokenManager{}, e.mailer, e.users.log)

	_, err := svc.Register(context.Background(), "a@x", "a", "pw")
	assert.ErrorIs(t, err, common.ErrorInternal)
	assert.NotErrorIs(t, err, errStorage)

	_, err = svc.Authenticate(context.Background(), "a@x", "pw")
	assert.ErrorIs(t, err, common.ErrorInternal)
	assert.Contains(t, e.logs.String(), "disk on fire")
}
