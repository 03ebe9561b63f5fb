package sequence

import (
	"context"

	"github.com/dmitrijs2005/scewiki/internal/models"
)

// DocumentRepository advances the nextId field of a loaded document.
type DocumentRepository struct {
	doc *models.Document
}

func NewDocumentRepository(doc *models.Document) *DocumentRepository {
	return &DocumentRepository{doc: doc}
}

func (r *DocumentRepository) Next(context.Context) (int64, error) {
	n := r.doc.NextID
	r.doc.NextID++
	return n, nil
}

func (r *DocumentRepository) Peek(context.Context) (int64, error) {
	return r.doc.NextID, nil
}
