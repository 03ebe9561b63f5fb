// Package credentials keeps encoded password hashes apart from user records,
// so exporting the archive never exposes them.
package credentials

import "context"

type Repository interface {
	Set(ctx context.Context, userID, passwordHash string) error
	// Get returns common.ErrorNotFound when the user has no stored hash.
	Get(ctx context.Context, userID string) (string, error)
}
