package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Supported backends.
const (
	BackendSlog = "slog"
	BackendZap  = "zap"
)

// Options selects and tunes a Logger.
type Options struct {
	Backend string // "slog" (default) or "zap"
	Level   string // debug, info, warn, error
	JSON    bool   // slog only: JSON instead of text handler
}

// New builds a Logger writing to w.
func New(opts Options, w io.Writer) (Logger, error) {
	switch strings.ToLower(opts.Backend) {
	case "", BackendSlog:
		level, err := slogLevel(opts.Level)
		if err != nil {
			return nil, err
		}
		ho := &slog.HandlerOptions{Level: level}
		var h slog.Handler
		if opts.JSON {
			h = slog.NewJSONHandler(w, ho)
		} else {
			h = slog.NewTextHandler(w, ho)
		}
		return NewSlogLogger(slog.New(h)), nil

	case BackendZap:
		level, err := zapcore.ParseLevel(levelOrInfo(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(w),
			level,
		)
		return NewZapLogger(zap.New(core)), nil

	default:
		return nil, fmt.Errorf("unknown log backend %q", opts.Backend)
	}
}

func levelOrInfo(level string) string {
	if level == "" {
		return "info"
	}
	return level
}

func slogLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(levelOrInfo(level))); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return l, nil
}
