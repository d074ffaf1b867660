package logutil

import (
	"context"
	"log/slog"
)

type logContextKey struct{}

func WithLogContext(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, logContextKey{}, log)
}

// FromContext returns the logger stored by WithLogContext, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	log, ok := ctx.Value(logContextKey{}).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return log
}
