// Package users stores archive accounts. Two implementations exist: a SQL
// table and a slice inside the single archive document.
package users

import (
	"context"

	"github.com/dmitrijs2005/scewiki/internal/models"
)

type Repository interface {
	// Create appends user. seq orders users in listings and equals the
	// counter value the id was built from.
	Create(ctx context.Context, user *models.User, seq int64) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Count(ctx context.Context) (int64, error)
	UpdateRole(ctx context.Context, id string, role models.Role) error
	SetEmailVerified(ctx context.Context, id string, verified bool) error
}
