package verifications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/scewiki/internal/common"
	"github.com/dmitrijs2005/scewiki/internal/dbx"
)

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Set(ctx context.Context, userID, code string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO verification_codes (user_id, code) VALUES (?, ?)
		ON CONFLICT (user_id) DO UPDATE SET code = excluded.code
	`, userID, code)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) Get(ctx context.Context, userID string) (string, error) {
	var code string
	err := r.db.QueryRowContext(ctx, `SELECT code FROM verification_codes WHERE user_id = ?`, userID).Scan(&code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return code, nil
}

func (r *SQLRepository) Delete(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM verification_codes WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
