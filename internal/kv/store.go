// Package kv provides the key/value stores the archive keeps small values
// in: the single-document blob, the current session and, in document mode,
// the per-user side keys. Get on a missing key returns (nil, nil).
package kv

import "context"

// Store is a flat byte-valued key/value store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
