package duocache

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with duocache-specific context.
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

// WithTopLevel adds a top_level_id field to the logger.
func (l *Logger) WithTopLevel(topLevelID string) *Logger {
	return &Logger{
		Logger: l.Logger.With("top_level_id", topLevelID),
	}
}

// WithCacheID adds a cache_id field to the logger.
func (l *Logger) WithCacheID(cacheID string) *Logger {
	return &Logger{
		Logger: l.Logger.With("cache_id", cacheID),
	}
}

// WithKind adds a kind field to the logger.
func (l *Logger) WithKind(kind Kind) *Logger {
	return &Logger{
		Logger: l.Logger.With("kind", kind.String()),
	}
}

// LogGet logs a Cache.Get outcome.
func (l *Logger) LogGet(ctx context.Context, cacheID string, kind Kind, hit bool, fromDisk bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "get failed",
			"cache_id", cacheID,
			"kind", kind.String(),
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "get completed",
		"cache_id", cacheID,
		"kind", kind.String(),
		"hit", hit,
		"from_disk", fromDisk,
	)
}

// LogPut logs a Cache.Put / Cache.PutString outcome.
func (l *Logger) LogPut(ctx context.Context, cacheID string, kind Kind, resp PutResponse) {
	if resp == PutError {
		l.ErrorContext(ctx, "put failed",
			"cache_id", cacheID,
			"kind", kind.String(),
			"result", resp.String(),
		)
		return
	}
	l.DebugContext(ctx, "put completed",
		"cache_id", cacheID,
		"kind", kind.String(),
		"result", resp.String(),
	)
}

// LogEvict logs an eviction from a memory tier.
func (l *Logger) LogEvict(cacheID string, kind Kind, sizeBytes int64) {
	l.Debug("evicted from memory tier",
		"cache_id", cacheID,
		"kind", kind.String(),
		"size_bytes", sizeBytes,
	)
}

// LogDiskDisabled logs, once, that the disk tier could not be enabled.
func (l *Logger) LogDiskDisabled(reason string, args ...any) {
	l.Error("disk cache disabled: "+reason, args...)
}
