package anndataset

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with dataset-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogWrite logs a dataset write operation.
func (l *Logger) LogWrite(ctx context.Context, name string, numPoints int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "dataset write failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "dataset written",
			"name", name,
			"points", numPoints,
		)
	}
}

// LogLoad logs a dataset load operation.
func (l *Logger) LogLoad(ctx context.Context, name string, numPoints int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "dataset load failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "dataset loaded",
			"name", name,
			"points", numPoints,
		)
	}
}
