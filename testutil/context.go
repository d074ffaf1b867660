package testutil

import (
	"context"
	"log/slog"
	"testing"

	"github.com/authenticvision/filetools/logutil"
)

type contextConfig struct {
	logLevel slog.Level
}

type ContextOption func(config *contextConfig)

func WithLogLevel(level slog.Level) ContextOption {
	return func(config *contextConfig) {
		config.logLevel = level
	}
}

var Trace = WithLogLevel(logutil.LevelTrace)

// Context returns t.Context() carrying a logger that writes to the test output.
func Context(t *testing.T, opts ...ContextOption) context.Context {
	conf := contextConfig{
		logLevel: slog.LevelDebug,
	}
	for _, opt := range opts {
		opt(&conf)
	}

	logHandler, err := logutil.NewHandlerTo(t.Output(), logutil.FormatText, conf.logLevel)
	if err != nil {
		t.Fatalf("failed to create log handler: %v", err)
		return nil // unreachable
	}

	return logutil.WithLogContext(t.Context(), slog.New(logHandler))
}
