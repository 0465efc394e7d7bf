package pidalloc

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with pidalloc-specific context.
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithID adds an ID field to the logger.
func (l *Logger) WithID(id uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("id", id),
	}
}

// LogCreated logs the construction of an allocator.
func (l *Logger) LogCreated(order, capacity int) {
	l.Debug("allocator created",
		"order", order,
		"capacity", capacity,
	)
}

// LogExhausted logs a failed allocation. The pool is full, which callers
// handle as a normal outcome, so this is debug level.
func (l *Logger) LogExhausted(ctx context.Context, capacity, requested int) {
	if !l.Enabled(ctx, slog.LevelDebug) {
		return
	}
	l.DebugContext(ctx, "id pool exhausted",
		"capacity", capacity,
		"requested", requested,
	)
}

// LogLeak logs an ID reclaimed by the garbage collector because its handle
// was dropped without Release.
func (l *Logger) LogLeak(id uint64) {
	if !l.Enabled(context.Background(), slog.LevelWarn) {
		return
	}
	l.WithID(id).Warn("id reclaimed without Release")
}

// LogInvalidRecycle logs a recycle of an ID the store did not consider
// allocated.
func (l *Logger) LogInvalidRecycle(id uint64) {
	if !l.Enabled(context.Background(), slog.LevelError) {
		return
	}
	l.WithID(id).Error("recycle of unallocated id")
}

// LogReset logs an Allocator.Reset.
func (l *Logger) LogReset(released int) {
	l.Info("allocator reset",
		"released", released,
	)
}
