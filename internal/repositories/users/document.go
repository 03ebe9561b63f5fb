package users

import (
	"context"

	"github.com/dmitrijs2005/scewiki/internal/common"
	"github.com/dmitrijs2005/scewiki/internal/models"
)

// DocumentRepository works on the users slice of an archive document that
// the caller loads and saves.
type DocumentRepository struct {
	doc *models.Document
}

func NewDocumentRepository(doc *models.Document) *DocumentRepository {
	return &DocumentRepository{doc: doc}
}

func (r *DocumentRepository) Create(_ context.Context, user *models.User, _ int64) error {
	for _, u := range r.doc.Users {
		if u.ID == user.ID || u.Email == user.Email {
			return common.ErrorAlreadyExists
		}
	}
	stored := *user
	r.doc.Users = append(r.doc.Users, &stored)
	return nil
}

func (r *DocumentRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

func (r *DocumentRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email })
}

func (r *DocumentRepository) find(match func(*models.User) bool) (*models.User, error) {
	for _, u := range r.doc.Users {
		if match(u) {
			c := *u
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *DocumentRepository) List(context.Context) ([]*models.User, error) {
	result := make([]*models.User, 0, len(r.doc.Users))
	for _, u := range r.doc.Users {
		c := *u
		result = append(result, &c)
	}
	return result, nil
}

func (r *DocumentRepository) Count(context.Context) (int64, error) {
	return int64(len(r.doc.Users)), nil
}

func (r *DocumentRepository) UpdateRole(_ context.Context, id string, role models.Role) error {
	return r.update(id, func(u *models.User) { u.Role = role })
}

func (r *DocumentRepository) SetEmailVerified(_ context.Context, id string, verified bool) error {
	return r.update(id, func(u *models.User) { u.EmailVerified = verified })
}

func (r *DocumentRepository) update(id string, fn func(*models.User)) error {
	for _, u := range r.doc.Users {
		if u.ID == id {
			fn(u)
			return nil
		}
	}
	return common.ErrorNotFound
}
