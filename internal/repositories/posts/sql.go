package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/scewiki/internal/common"
	"github.com/dmitrijs2005/scewiki/internal/dbx"
	"github.com/dmitrijs2005/scewiki/internal/models"
)

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

const selectPost = `SELECT id, title, content, category, created_at, created_by FROM posts`

func (r *SQLRepository) Create(ctx context.Context, p *models.Post, seq int64) error {
	query :=
		`INSERT INTO posts (id, seq, title, content, category, created_at, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, p.ID, seq, p.Title, p.Content, string(p.Category), p.CreatedAt, p.CreatedBy)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	p, err := scanPost(r.db.QueryRowContext(ctx, selectPost+` WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *SQLRepository) List(ctx context.Context) ([]*models.Post, error) {
	rows, err := r.db.QueryContext(ctx, selectPost+` ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	var (
		p        models.Post
		category string
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &category, &p.CreatedAt, &p.CreatedBy); err != nil {
		return nil, err
	}
	p.Category = models.PostCategory(category)
	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}
