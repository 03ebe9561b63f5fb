package services

import (
	"context"

	"github.com/dmitrijs2005/scewiki/internal/logging"
	"github.com/dmitrijs2005/scewiki/internal/models"
	"github.com/dmitrijs2005/scewiki/internal/repositories/repomanager"
)

// ArchiveService exports the archive in the single-document format,
// whatever backend holds it. Password hashes and pending codes are not part
// of the document.
type ArchiveService struct {
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewArchiveService(m repomanager.RepositoryManager, log logging.Logger) *ArchiveService {
	return &ArchiveService{repomanager: m, log: log}
}

func (s *ArchiveService) Export(ctx context.Context) (*models.Document, error) {
	doc := models.NewDocument()
	err := s.repomanager.View(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		var err error
		if doc.Users, err = r.Users.List(ctx); err != nil {
			return err
		}
		if doc.Objects, err = r.Objects.List(ctx); err != nil {
			return err
		}
		if doc.Posts, err = r.Posts.List(ctx); err != nil {
			return err
		}
		doc.NextID, err = r.Sequence.Peek(ctx)
		return err
	})
	if err != nil {
		return nil, result(ctx, s.log, "export", err)
	}
	return doc, nil
}
