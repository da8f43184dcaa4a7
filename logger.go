package tategaki

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with tategaki-specific context. It is used
// ambiently around dictionary load, validation and cache events; the
// tokenization hot path (Worker.Tokenize) never logs.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler. If handler is
// nil, uses the default text handler to stderr.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithPath adds the dictionary path field to the logger.
func (l *Logger) WithPath(path string) *Logger {
	return &Logger{Logger: l.Logger.With("path", path)}
}

// WithHash adds a metadata hash field to the logger.
func (l *Logger) WithHash(hash string) *Logger {
	return &Logger{Logger: l.Logger.With("hash", hash)}
}

// LogLoad logs a dictionary load, distinguishing a validated load from
// a cache-trusted one.
func (l *Logger) LogLoad(ctx context.Context, path string, trustedCache bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "dictionary load failed",
			"path", path,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "dictionary loaded",
		"path", path,
		"trusted_cache", trustedCache,
	)
}

// LogCacheHit logs whether a local or global cache marker short-circuited
// structural validation for a given metadata hash.
func (l *Logger) LogCacheHit(ctx context.Context, hash string, hit bool) {
	l.DebugContext(ctx, "cache marker lookup",
		"hash", hash,
		"hit", hit,
	)
}

// LogValidate logs the outcome of structural validation.
func (l *Logger) LogValidate(ctx context.Context, path string, err error) {
	if err != nil {
		l.WarnContext(ctx, "dictionary validation failed",
			"path", path,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "dictionary validated", "path", path)
}

// LogAlignmentFallback logs that Load had to copy the archived root
// into a freshly aligned buffer because the mapped offset did not
// satisfy persistence.RootAlignment.
func (l *Logger) LogAlignmentFallback(ctx context.Context, path string) {
	l.WarnContext(ctx, "dictionary root misaligned, copied to an aligned buffer",
		"path", path,
	)
}

// LogZstdDecompress logs a zstd decompress-to-cache operation.
func (l *Logger) LogZstdDecompress(ctx context.Context, src, cached string, bytesOut int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "zstd decompress failed",
			"src", src,
			"cached", cached,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "zstd decompressed to cache",
		"src", src,
		"cached", cached,
		"bytes", bytesOut,
	)
}
