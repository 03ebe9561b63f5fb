// Package posts stores news, research and report articles.
package posts

import (
	"context"

	"github.com/dmitrijs2005/scewiki/internal/models"
)

type Repository interface {
	Create(ctx context.Context, post *models.Post, seq int64) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
}
