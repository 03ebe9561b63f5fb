package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/scewiki/internal/common"
	"github.com/dmitrijs2005/scewiki/internal/logging"
	"github.com/dmitrijs2005/scewiki/internal/models"
	"github.com/dmitrijs2005/scewiki/internal/repositories/repomanager"
	"github.com/dmitrijs2005/scewiki/internal/timex"
)

// ContentService creates and reads anomaly records and posts. Anyone may
// read; only admins may create.
type ContentService struct {
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewContentService(m repomanager.RepositoryManager, log logging.Logger) *ContentService {
	return &ContentService{repomanager: m, log: log}
}

func (s *ContentService) CreateObject(ctx context.Context, sess Session, in models.NewSCEObject) (*models.SCEObject, error) {
	var obj *models.SCEObject
	err := s.repomanager.Update(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		admin, err := requireAdmin(ctx, r, sess)
		if err != nil {
			return err
		}
		if err := in.Validate(); err != nil {
			return fmt.Errorf("%w: %v", common.ErrorInvalid, err)
		}

		n, err := r.Sequence.Next(ctx)
		if err != nil {
			return err
		}
		obj = &models.SCEObject{
			ID:             models.FormatID(models.KindObject, n),
			Number:         in.Number,
			Name:           in.Name,
			ObjectClass:    in.ObjectClass,
			Description:    in.Description,
			Containment:    in.Containment,
			AdditionalInfo: in.AdditionalInfo,
			CreatedAt:      timex.Now(),
			CreatedBy:      admin.ID,
		}
		return r.Objects.Create(ctx, obj, n)
	})
	if err != nil {
		return nil, result(ctx, s.log, "create object", err)
	}

	s.log.Info(ctx, "object created", "id", obj.ID, "number", obj.Number, "by", obj.CreatedBy)
	return obj, nil
}

func (s *ContentService) CreatePost(ctx context.Context, sess Session, in models.NewPost) (*models.Post, error) {
	var post *models.Post
	err := s.repomanager.Update(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		admin, err := requireAdmin(ctx, r, sess)
		if err != nil {
			return err
		}
		if err := in.Validate(); err != nil {
			return fmt.Errorf("%w: %v", common.ErrorInvalid, err)
		}

		n, err := r.Sequence.Next(ctx)
		if err != nil {
			return err
		}
		post = &models.Post{
			ID:        models.FormatID(models.KindPost, n),
			Title:     in.Title,
			Content:   in.Content,
			Category:  in.Category,
			CreatedAt: timex.Now(),
			CreatedBy: admin.ID,
		}
		return r.Posts.Create(ctx, post, n)
	})
	if err != nil {
		return nil, result(ctx, s.log, "create post", err)
	}

	s.log.Info(ctx, "post created", "id", post.ID, "by", post.CreatedBy)
	return post, nil
}

// ListObjects returns the objects f matches, oldest first. Listings are
// public.
func (s *ContentService) ListObjects(ctx context.Context, f models.ObjectFilter) ([]*models.SCEObject, error) {
	var list []*models.SCEObject
	err := s.repomanager.View(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		all, err := r.Objects.List(ctx)
		if err != nil {
			return err
		}
		list = make([]*models.SCEObject, 0, len(all))
		for _, o := range all {
			if f.Match(o) {
				list = append(list, o)
			}
		}
		return nil
	})
	if err != nil {
		return nil, result(ctx, s.log, "list objects", err)
	}
	return list, nil
}

func (s *ContentService) GetObject(ctx context.Context, id string) (*models.SCEObject, error) {
	var obj *models.SCEObject
	err := s.repomanager.View(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		var err error
		obj, err = r.Objects.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, result(ctx, s.log, "get object", err)
	}
	return obj, nil
}

func (s *ContentService) ListPosts(ctx context.Context, f models.PostFilter) ([]*models.Post, error) {
	var list []*models.Post
	err := s.repomanager.View(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		all, err := r.Posts.List(ctx)
		if err != nil {
			return err
		}
		list = make([]*models.Post, 0, len(all))
		for _, p := range all {
			if f.Match(p) {
				list = append(list, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, result(ctx, s.log, "list posts", err)
	}
	return list, nil
}

func (s *ContentService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	var post *models.Post
	err := s.repomanager.View(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		var err error
		post, err = r.Posts.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, result(ctx, s.log, "get post", err)
	}
	return post, nil
}
