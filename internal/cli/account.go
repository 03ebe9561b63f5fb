package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/scewiki/internal/common"
	"github.com/dmitrijs2005/scewiki/internal/models"
)

// getSimpleText and getPassword point to the interactive input helpers and
// can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// errLoginRequired is returned by commands that need a logged-in user.
var errLoginRequired = fmt.Errorf("%w: log in first", common.ErrorUnauthorized)

// Register asks for email, username and password, creates the account and
// logs it in.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.users.Register(ctx, email, username, string(password))
	if err != nil {
		return err
	}
	if err := a.login(ctx, u); err != nil {
		return err
	}

	if u.IsAdmin() {
		fmt.Fprintln(a.out, "Registered as administrator with full access.")
	} else {
		fmt.Fprintln(a.out, "Registered. A verification code was sent to", u.Email+"; type 'verify' to enter it.")
	}
	return nil
}

// Login asks for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.users.Authenticate(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return fmt.Errorf("%w: wrong email or password", common.ErrorInvalid)
		}
		return err
	}
	if err := a.login(ctx, u); err != nil {
		return err
	}

	if u.IsAdmin() {
		fmt.Fprintln(a.out, "Logged in as administrator with full access.")
	} else {
		fmt.Fprintln(a.out, "Logged in.")
	}
	if !u.CanReadContent() {
		fmt.Fprintln(a.out, "Your email is not verified yet; type 'verify' to enter the code.")
	}
	return nil
}

func (a *App) login(ctx context.Context, u *models.User) error {
	if err := a.sessions.Set(ctx, u); err != nil {
		return err
	}
	a.current = u
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Clear(ctx); err != nil {
		return err
	}
	a.current = nil
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	u, err := a.users.GetUser(ctx, a.session(), a.current.ID)
	if err != nil {
		return err
	}
	a.current = u
	printUser(a.out, u)
	return nil
}

// Verify asks for the emailed code and confirms the current user's email.
func (a *App) Verify(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errLoginRequired
	}
	if a.current.EmailVerified {
		fmt.Fprintln(a.out, "Your email is already verified.")
		return nil
	}

	code, err := getSimpleText(a.reader, "Enter the 6-character code from the email", a.out)
	if err != nil {
		return err
	}
	if err := a.users.VerifyEmail(ctx, a.current.ID, code); err != nil {
		return err
	}

	a.refresh(ctx)
	fmt.Fprintln(a.out, "Email verified. Full access to the archive is open.")
	return nil
}

// Resend issues a new verification code for the current user.
func (a *App) Resend(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errLoginRequired
	}
	if err := a.users.ResendVerification(ctx, a.current.ID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "A new code was sent to", a.current.Email)
	return nil
}
