package spatial

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with the field names used across this package.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, uses a text handler to stderr at info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that writes JSON records to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that writes human-readable records to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, nil))
}

// WithAlgorithm tags the logger with an algorithm name.
func (l *Logger) WithAlgorithm(algo Algorithm) *Logger {
	return &Logger{Logger: l.Logger.With("algorithm", string(algo))}
}

// LogResolve logs the concrete algorithm chosen for a requested selector.
func (l *Logger) LogResolve(ctx context.Context, capability string, requested, resolved Algorithm) {
	l.DebugContext(ctx, "searcher constructed",
		"capability", capability,
		"requested", string(requested),
		"resolved", string(resolved),
	)
}

// LogQueryBatch logs a parallel batch of queries.
func (l *Logger) LogQueryBatch(ctx context.Context, queries, workers int, elapsed time.Duration, err error) {
	if err != nil {
		l.WarnContext(ctx, "query batch aborted",
			"queries", queries,
			"workers", workers,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "query batch completed",
		"queries", queries,
		"workers", workers,
		"elapsed", elapsed,
	)
}
