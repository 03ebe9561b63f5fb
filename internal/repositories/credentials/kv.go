package credentials

import (
	"context"

	"github.com/dmitrijs2005/scewiki/internal/common"
	"github.com/dmitrijs2005/scewiki/internal/kv"
)

// KVRepository stores each hash under sce_user_password_<id>.
type KVRepository struct {
	store kv.Store
}

func NewKVRepository(store kv.Store) *KVRepository {
	return &KVRepository{store: store}
}

func (r *KVRepository) Set(ctx context.Context, userID, passwordHash string) error {
	return r.store.Set(ctx, common.PasswordKeyPrefix+userID, []byte(passwordHash))
}

func (r *KVRepository) Get(ctx context.Context, userID string) (string, error) {
	v, err := r.store.Get(ctx, common.PasswordKeyPrefix+userID)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", common.ErrorNotFound
	}
	return string(v), nil
}
