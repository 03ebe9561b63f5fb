package posts

import (
	"context"

	"github.com/dmitrijs2005/scewiki/internal/common"
	"github.com/dmitrijs2005/scewiki/internal/models"
)

type DocumentRepository struct {
	doc *models.Document
}

func NewDocumentRepository(doc *models.Document) *DocumentRepository {
	return &DocumentRepository{doc: doc}
}

func (r *DocumentRepository) Create(_ context.Context, p *models.Post, _ int64) error {
	stored := *p
	r.doc.Posts = append(r.doc.Posts, &stored)
	return nil
}

func (r *DocumentRepository) GetByID(_ context.Context, id string) (*models.Post, error) {
	for _, p := range r.doc.Posts {
		if p.ID == id {
			c := *p
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *DocumentRepository) List(context.Context) ([]*models.Post, error) {
	result := make([]*models.Post, 0, len(r.doc.Posts))
	for _, p := range r.doc.Posts {
		c := *p
		result = append(result, &c)
	}
	return result, nil
}
