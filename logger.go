package graphblas

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with graphblas-specific context.
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

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithSize adds a domain size field to the logger.
func (l *Logger) WithSize(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("size", n),
	}
}

// LogEWiseMult logs an element-wise multiply. Tag the logger WithSize for
// the domain size.
func (l *Logger) LogEWiseMult(ctx context.Context, output string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "ewise mult failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "ewise mult dispatched",
			"output", output,
		)
	}
}

// LogVectorCreate logs creation of an input vector.
func (l *Logger) LogVectorCreate(ctx context.Context, storage string, size, nvals int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "vector create failed",
			"storage", storage,
			"size", size,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "vector created",
			"storage", storage,
			"size", size,
			"nvals", nvals,
		)
	}
}

// LogClose logs release of a context's device resources.
func (l *Logger) LogClose(ctx context.Context, peakBytes int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "close failed",
			"peak_bytes", peakBytes,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "context closed",
			"peak_bytes", peakBytes,
		)
	}
}
