// Package verifications keeps the pending email verification code of each
// unverified user. At most one code per user exists at a time.
package verifications

import "context"

type Repository interface {
	// Set stores code for userID, replacing any previous one.
	Set(ctx context.Context, userID, code string) error
	// Get returns common.ErrorNotFound when no code is pending.
	Get(ctx context.Context, userID string) (string, error)
	Delete(ctx context.Context, userID string) error
}
