package objects

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/scewiki/internal/common"
	"github.com/dmitrijs2005/scewiki/internal/models"
	"github.com/dmitrijs2005/scewiki/internal/repositories/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLGetByID_Errors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewSQLRepository(db)

	mock.ExpectQuery(`FROM sce_objects WHERE id = \?`).WithArgs("object_1").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`FROM sce_objects WHERE id = \?`).WithArgs("object_2").WillReturnError(errors.New("db down"))

	_, err = repo.GetByID(context.Background(), "object_1")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.GetByID(context.Background(), "object_2")
	assert.ErrorContains(t, err, "db error: db down")
}

func TestRepository_CreateGetList(t *testing.T) {
	impls := map[string]func(t *testing.T) Repository{
		"sql":      func(t *testing.T) Repository { return NewSQLRepository(repotest.OpenSQLite(t)) },
		"document": func(*testing.T) Repository { return NewDocumentRepository(models.NewDocument()) },
	}

	for name, open := range impls {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := open(t)
			at := time.Date(2024, 2, 29, 23, 59, 59, 999999000, time.UTC)

			first := &models.SCEObject{ID: "object_3", Number: "SCE-173", Name: "Statue", ObjectClass: models.ClassEuclid,
				Description: "concrete", Containment: "watch it", CreatedAt: at, CreatedBy: "user_1"}
			second := &models.SCEObject{ID: "object_4", Number: "SCE-682", Name: "Lizard", ObjectClass: models.ClassKeter,
				Description: "hostile", Containment: "acid", AdditionalInfo: "do not feed", CreatedAt: at.Add(time.Hour), CreatedBy: "user_1"}
			require.NoError(t, repo.Create(ctx, first, 3))
			require.NoError(t, repo.Create(ctx, second, 4))

			got, err := repo.GetByID(ctx, "object_4")
			require.NoError(t, err)
			assert.Equal(t, second, got)

			_, err = repo.GetByID(ctx, "object_5")
			assert.ErrorIs(t, err, common.ErrorNotFound)

			list, err := repo.List(ctx)
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, []string{"object_3", "object_4"}, []string{list[0].ID, list[1].ID})
		})
	}
}
