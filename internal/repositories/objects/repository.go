// Package objects stores anomaly records.
package objects

import (
	"context"

	"github.com/dmitrijs2005/scewiki/internal/models"
)

type Repository interface {
	Create(ctx context.Context, obj *models.SCEObject, seq int64) error
	GetByID(ctx context.Context, id string) (*models.SCEObject, error)
	List(ctx context.Context) ([]*models.SCEObject, error)
}
