// Package cli implements the interactive scewiki shell: a line-oriented
// REPL over the archive's domain services.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/scewiki/internal/common"
	"github.com/dmitrijs2005/scewiki/internal/models"
	"github.com/dmitrijs2005/scewiki/internal/services"
)

// UserService is the account surface the shell needs.
type UserService interface {
	Register(ctx context.Context, email, username, password string) (*models.User, error)
	VerifyEmail(ctx context.Context, userID, code string) error
	ResendVerification(ctx context.Context, userID string) error
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetUser(ctx context.Context, sess services.Session, id string) (*models.User, error)
	ListUsers(ctx context.Context, sess services.Session) ([]*models.User, error)
	UpdateUserRole(ctx context.Context, sess services.Session, userID string, role models.Role) error
}

type ContentService interface {
	CreateObject(ctx context.Context, sess services.Session, in models.NewSCEObject) (*models.SCEObject, error)
	CreatePost(ctx context.Context, sess services.Session, in models.NewPost) (*models.Post, error)
	ListObjects(ctx context.Context, f models.ObjectFilter) ([]*models.SCEObject, error)
	GetObject(ctx context.Context, id string) (*models.SCEObject, error)
	ListPosts(ctx context.Context, f models.PostFilter) ([]*models.Post, error)
	GetPost(ctx context.Context, id string) (*models.Post, error)
}

type SessionService interface {
	Current(ctx context.Context) (*models.User, error)
	Set(ctx context.Context, u *models.User) error
	Clear(ctx context.Context) error
}

// App is the shell state: the services it drives, its terminal streams and
// the user logged in, if any.
type App struct {
	users    UserService
	content  ContentService
	sessions SessionService

	reader *bufio.Reader
	out    io.Writer

	current *models.User
}

func NewApp(users UserService, content ContentService, sessions SessionService, in io.Reader, out io.Writer) *App {
	return &App{
		users:    users,
		content:  content,
		sessions: sessions,
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

// Run restores the stored session and serves commands until exit, EOF or
// ctx cancellation.
func (a *App) Run(ctx context.Context) error {
	if err := a.restoreSession(ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "SCE Foundation archive (type 'help' for commands)")
	if a.current != nil {
		fmt.Fprintf(a.out, "Welcome back, %s.\n", a.current.Username)
	}

	runREPL(ctx, a, a.status, a.reader, a.out)
	return nil
}

func (a *App) restoreSession(ctx context.Context) error {
	u, err := a.sessions.Current(ctx)
	switch {
	case err == nil:
		a.current = u
	case errors.Is(err, common.ErrorUnauthorized):
		a.current = nil
	default:
		return fmt.Errorf("restore session: %w", err)
	}
	return nil
}

func (a *App) session() services.Session {
	return services.SessionFor(a.current)
}

func (a *App) isLoggedIn() bool { return a.current != nil }

func (a *App) isAdmin() bool { return a.current.IsAdmin() }

func (a *App) status() string {
	if a.current == nil {
		return "guest"
	}
	s := fmt.Sprintf("%s %s", a.current.Username, a.current.Role)
	if !a.current.EmailVerified {
		s += " unverified"
	}
	return s
}

// refresh reloads the logged-in user so role and verification changes
// show up in the prompt.
func (a *App) refresh(ctx context.Context) {
	if a.current == nil {
		return
	}
	if u, err := a.sessions.Current(ctx); err == nil {
		a.current = u
	} else if errors.Is(err, common.ErrorUnauthorized) {
		a.current = nil
	}
}
