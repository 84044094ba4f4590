// Package logging wires [log/slog] to the tool configuration. All
// diagnostics go to stderr so stdout stays reserved for filtered text;
// at the default info level a normal run logs nothing at all.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/hupe1980/stripimports/internal/config"
)

// Setup builds a logger from cfg, writing to stderr, and installs it as
// the process default.
func Setup(cfg *config.Config) *slog.Logger {
	return SetupWithWriter(cfg, os.Stderr)
}

// SetupWithWriter is Setup with an explicit destination. Tests use it
// to capture or discard output.
func SetupWithWriter(cfg *config.Config, w io.Writer) *slog.Logger {
	logger := slog.New(newHandler(cfg, w))
	slog.SetDefault(logger)

	return logger
}

// newHandler selects the handler for the configured output format.
func newHandler(cfg *config.Config, w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.EffectiveLogLevel())}

	if cfg.LogFormat == config.LogFormatJSON {
		return slog.NewJSONHandler(w, opts)
	}

	return slog.NewTextHandler(w, opts)
}

// ParseLevel maps a configured level name to its slog.Level. Unknown
// names fall back to info.
func ParseLevel(level string) slog.Level {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarn:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithSource returns a child logger tagged with the input source name,
// keeping per-source diagnostics attributable in multi-file runs.
func WithSource(logger *slog.Logger, name string) *slog.Logger {
	return logger.With(slog.String("source", name))
}

type ctxKey struct{}

// NewContext returns a child context carrying logger.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger carried by ctx, or slog.Default()
// when none is set.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}

	return slog.Default()
}
