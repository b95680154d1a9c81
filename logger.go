package crc32c

import (
	"context"
	"log/slog"
	"os"

	"github.com/hupe1980/crc32c/internal/cpuid"
)

// Logger wraps slog.Logger with crc32c-specific helpers.
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
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithEngine adds an engine field to the logger.
func (l *Logger) WithEngine(k Kind) *Logger {
	return &Logger{
		Logger: l.Logger.With("engine", k.String()),
	}
}

// WithInput adds an input field to the logger (a path, URL or blob name).
func (l *Logger) WithInput(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("input", name),
	}
}

// LogChecksum logs a completed checksum.
func (l *Logger) LogChecksum(ctx context.Context, name string, size int64, crc uint32, err error) {
	if err != nil {
		l.ErrorContext(ctx, "checksum failed",
			"input", name,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "checksum completed",
		"input", name,
		"size", size,
		"crc32c", crc,
	)
}

// LogVerify logs a verification result.
func (l *Logger) LogVerify(ctx context.Context, name string, err error) {
	switch {
	case err == nil:
		l.DebugContext(ctx, "checksum verified",
			"input", name,
		)
	case IsChecksumMismatch(err):
		l.WarnContext(ctx, "checksum mismatch",
			"input", name,
			"error", err,
		)
	default:
		l.ErrorContext(ctx, "verify failed",
			"input", name,
			"error", err,
		)
	}
}

// LogFeatures logs the CPU capabilities relevant to engine selection.
func (l *Logger) LogFeatures(ctx context.Context, f cpuid.Features) {
	l.InfoContext(ctx, "cpu features",
		"goarch", f.GOARCH,
		"sse42", f.SSE42,
		"pclmulqdq", f.PCLMULQDQ,
		"arm64_crc32", f.ARM64CRC32,
	)
	if !f.Consistent() {
		l.WarnContext(ctx, "cpuid probe disagrees with x/sys/cpu",
			"cpuid_sse42", f.SSE42,
			"sys_sse42", f.SysSSE42,
		)
	}
}
