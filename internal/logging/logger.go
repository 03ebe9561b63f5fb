// Package logging is the structured logger every archive component writes
// to. Backends are log/slog and go.uber.org/zap, chosen by New.
package logging

import "context"

// Logger takes a message and alternating keys and values:
//
//	log.Info(ctx, "user registered", "user", u.ID, "role", u.Role)
//
// Adapters that cannot use ctx ignore it.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a logger that adds args to every entry.
	With(args ...any) Logger
}
