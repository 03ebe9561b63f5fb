// Package mailer delivers email verification codes.
package mailer

import (
	"context"
	"time"

	"github.com/dmitrijs2005/scewiki/internal/logging"
)

// Sender delivers a verification code to an address.
type Sender interface {
	SendVerification(ctx context.Context, email, code string) error
}

// LogSender has no transport: after a simulated delivery delay it logs the
// destination and the code, which is where a local user reads it from.
type LogSender struct {
	log   logging.Logger
	delay time.Duration
}

func NewLogSender(log logging.Logger, delay time.Duration) *LogSender {
	return &LogSender{log: log, delay: delay}
}

func (s *LogSender) SendVerification(ctx context.Context, email, code string) error {
	if s.delay > 0 {
		t := time.NewTimer(s.delay)
		defer t.Stop()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}

	s.log.Info(ctx, "verification email sent", "to", email, "code", code)
	return nil
}
