package credentials

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/scewiki/internal/common"
	"github.com/dmitrijs2005/scewiki/internal/kv"
	"github.com/dmitrijs2005/scewiki/internal/repositories/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_SetGet(t *testing.T) {
	mem := kv.NewMemoryStore()
	impls := map[string]Repository{
		"sql": NewSQLRepository(repotest.OpenSQLite(t)),
		"kv":  NewKVRepository(mem),
	}

	for name, repo := range impls {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := repo.Get(ctx, "user_1")
			assert.ErrorIs(t, err, common.ErrorNotFound)

			require.NoError(t, repo.Set(ctx, "user_1", "argon2id$a$b"))
			require.NoError(t, repo.Set(ctx, "user_1", "argon2id$c$d"))

			got, err := repo.Get(ctx, "user_1")
			require.NoError(t, err)
			assert.Equal(t, "argon2id$c$d", got)
		})
	}

	raw, _ := mem.Get(context.Background(), "sce_user_password_user_1")
	assert.Equal(t, "argon2id$c$d", string(raw))
}

func TestSQLGet_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT password_hash FROM credentials`).WithArgs("user_1").WillReturnError(errors.New("db down"))

	_, err = NewSQLRepository(db).Get(context.Background(), "user_1")
	assert.ErrorContains(t, err, "db error: db down")
	assert.False(t, errors.Is(err, common.ErrorNotFound))
}
