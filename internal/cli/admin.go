package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/scewiki/internal/common"
	"github.com/dmitrijs2005/scewiki/internal/models"
)

func (a *App) ListUsers(ctx context.Context) error {
	list, err := a.users.ListUsers(ctx, a.session())
	if err != nil {
		return err
	}
	for _, u := range list {
		verified := "verified"
		if !u.EmailVerified {
			verified = "unverified"
		}
		fmt.Fprintf(a.out, "%-10s %-11s %-10s %-20s %s\n", u.ID, u.Role, verified, u.Username, u.Email)
	}
	return nil
}

func (a *App) SetRole(ctx context.Context, userID, role string) error {
	r, err := models.ParseRole(role)
	if err != nil {
		return fmt.Errorf("%w: role must be one of %s", common.ErrorInvalid, roleNames())
	}
	if err := a.users.UpdateUserRole(ctx, a.session(), userID, r); err != nil {
		return err
	}
	a.refresh(ctx)
	fmt.Fprintf(a.out, "%s is now %s\n", userID, r)
	return nil
}

func printUser(w io.Writer, u *models.User) {
	fmt.Fprintf(w, "ID:       %s\n", u.ID)
	fmt.Fprintf(w, "Username: %s\n", u.Username)
	fmt.Fprintf(w, "Email:    %s\n", u.Email)
	fmt.Fprintf(w, "Role:     %s\n", u.Role)
	fmt.Fprintf(w, "Verified: %t\n", u.EmailVerified)
	fmt.Fprintf(w, "Since:    %s\n", u.CreatedAt.Format("2006-01-02 15:04"))
}
