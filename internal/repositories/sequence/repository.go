// Package sequence hands out the archive-wide id counter shared by users,
// objects and posts. Values start at 1 and are never reused.
package sequence

import "context"

type Repository interface {
	// Next returns the current value and advances the counter.
	Next(ctx context.Context) (int64, error)
	// Peek returns the value Next would hand out.
	Peek(ctx context.Context) (int64, error)
}
