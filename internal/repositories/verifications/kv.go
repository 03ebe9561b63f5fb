package verifications

import (
	"context"

	"github.com/dmitrijs2005/scewiki/internal/common"
	"github.com/dmitrijs2005/scewiki/internal/kv"
)

// KVRepository stores each code under sce_verification_code_<id>.
type KVRepository struct {
	store kv.Store
}

func NewKVRepository(store kv.Store) *KVRepository {
	return &KVRepository{store: store}
}

func key(userID string) string { return common.VerificationCodeKeyPrefix + userID }

func (r *KVRepository) Set(ctx context.Context, userID, code string) error {
	return r.store.Set(ctx, key(userID), []byte(code))
}

func (r *KVRepository) Get(ctx context.Context, userID string) (string, error) {
	v, err := r.store.Get(ctx, key(userID))
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", common.ErrorNotFound
	}
	return string(v), nil
}

func (r *KVRepository) Delete(ctx context.Context, userID string) error {
	return r.store.Delete(ctx, key(userID))
}
