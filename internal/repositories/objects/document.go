package objects

import (
	"context"

	"github.com/dmitrijs2005/scewiki/internal/common"
	"github.com/dmitrijs2005/scewiki/internal/models"
)

// DocumentRepository works on the objects slice of a loaded archive document.
type DocumentRepository struct {
	doc *models.Document
}

func NewDocumentRepository(doc *models.Document) *DocumentRepository {
	return &DocumentRepository{doc: doc}
}

func (r *DocumentRepository) Create(_ context.Context, o *models.SCEObject, _ int64) error {
	stored := *o
	r.doc.Objects = append(r.doc.Objects, &stored)
	return nil
}

func (r *DocumentRepository) GetByID(_ context.Context, id string) (*models.SCEObject, error) {
	for _, o := range r.doc.Objects {
		if o.ID == id {
			c := *o
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *DocumentRepository) List(context.Context) ([]*models.SCEObject, error) {
	result := make([]*models.SCEObject, 0, len(r.doc.Objects))
	for _, o := range r.doc.Objects {
		c := *o
		result = append(result, &c)
	}
	return result, nil
}
