package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// HandlerOptions configures the slog handler.
type HandlerOptions struct {
	Level  slog.Leveler
	Writer io.Writer
}

// NewHandler creates a text slog handler with source locations enabled.
// Passing nil uses stdout at info level.
func NewHandler(opts *HandlerOptions) slog.Handler {
	if opts == nil {
		opts = &HandlerOptions{}
	}
	if opts.Level == nil {
		opts.Level = slog.LevelInfo
	}
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	return slog.NewTextHandler(opts.Writer, &slog.HandlerOptions{
		Level:     opts.Level,
		AddSource: true,
	})
}

type ctxKey struct{}

// WithLogger stores a request-scoped logger in the context.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// FromContext returns the request-scoped logger, falling back to the default.
func FromContext(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return log
	}

	return slog.Default()
}
