package objects

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

const selectObject = `SELECT id, number, name, object_class, description, containment, additional_info, created_at, created_by FROM sce_objects`

func (r *SQLRepository) Create(ctx context.Context, o *models.SCEObject, seq int64) error {
	query :=
		`INSERT INTO sce_objects (id, seq, number, name, object_class, description, containment, additional_info, created_at, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		o.ID, seq, o.Number, o.Name, string(o.ObjectClass), o.Description, o.Containment, o.AdditionalInfo, o.CreatedAt, o.CreatedBy)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id string) (*models.SCEObject, error) {
	o, err := scanObject(r.db.QueryRowContext(ctx, selectObject+` WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return o, nil
}

func (r *SQLRepository) List(ctx context.Context) ([]*models.SCEObject, error) {
	rows, err := r.db.QueryContext(ctx, selectObject+` ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.SCEObject{}
	for rows.Next() {
		o, err := scanObject(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func scanObject(row interface{ Scan(...any) error }) (*models.SCEObject, error) {
	var (
		o     models.SCEObject
		class string
	)
	err := row.Scan(&o.ID, &o.Number, &o.Name, &class, &o.Description, &o.Containment, &o.AdditionalInfo, &o.CreatedAt, &o.CreatedBy)
	if err != nil {
		return nil, err
	}
	o.ObjectClass = models.ObjectClass(class)
	o.CreatedAt = o.CreatedAt.UTC()
	return &o, nil
}
