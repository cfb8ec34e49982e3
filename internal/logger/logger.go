// Package logger provides the structured logger used for diagnostics.
//
// User-facing progress goes to stderr through the CLI; this logger carries
// the details (request ids, timings, classified errors) and is quiet unless
// asked with --verbose or log-level.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ErrInvalidLevel indicates an unknown log level name.
var ErrInvalidLevel = errors.New("invalid log level")

// ErrInvalidFormat indicates an unknown log format name.
var ErrInvalidFormat = errors.New("invalid log format")

// Config holds the configuration of the logger.
type Config struct {
	Level  slog.Level
	Format string
	Writer io.Writer // defaults to os.Stderr
}

// contextKey is used for context values.
type contextKey string

const (
	// ContextKeyRequestID is the key for request ID in the context.
	ContextKeyRequestID contextKey = "request_id"
	// ContextKeyOperation is the key for operation name in the context.
	ContextKeyOperation contextKey = "operation"
	// ContextKeyFile is the key for the file being processed.
	ContextKeyFile contextKey = "file"
)

// Logger wraps slog.Logger.
type Logger struct {
	*slog.Logger
}

// New creates a new logger with the given config.
func New(config Config) *Logger {
	w := config.Writer
	if w == nil {
		w = os.Stderr
	}

	if config.Format == FormatJSON {
		opts := &slog.HandlerOptions{
			Level: config.Level,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.Attr{
						Key:   a.Key,
						Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
					}
				}
				return a
			},
		}
		return &Logger{Logger: slog.New(slog.NewJSONHandler(w, opts))}
	}

	opts := &tint.Options{
		Level:      config.Level,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(w),
	}
	return &Logger{Logger: slog.New(tint.NewHandler(w, opts))}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))}
}

// FromConfig builds a logger configuration from config values.
// Empty values default to warn level and text format.
func FromConfig(logLevel, logFormat string) (Config, error) {
	config := Config{
		Level:  slog.LevelWarn,
		Format: FormatText,
	}

	switch strings.ToLower(strings.TrimSpace(logLevel)) {
	case "":
	case "debug":
		config.Level = slog.LevelDebug
	case "info":
		config.Level = slog.LevelInfo
	case "warn", "warning":
		config.Level = slog.LevelWarn
	case "error":
		config.Level = slog.LevelError
	default:
		return Config{}, fmt.Errorf("%q (use debug, info, warn or error): %w", logLevel, ErrInvalidLevel)
	}

	switch strings.ToLower(strings.TrimSpace(logFormat)) {
	case "", FormatText:
	case FormatJSON:
		config.Format = FormatJSON
	default:
		return Config{}, fmt.Errorf("%q (use text or json): %w", logFormat, ErrInvalidFormat)
	}

	return config, nil
}

// WithContext creates a new logger with context-specific attributes.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	logger := l.Logger

	if requestID, ok := ctx.Value(ContextKeyRequestID).(string); ok && requestID != "" {
		logger = logger.With(slog.String("request_id", requestID))
	}

	if operation, ok := ctx.Value(ContextKeyOperation).(string); ok && operation != "" {
		logger = logger.With(slog.String("operation", operation))
	}

	if file, ok := ctx.Value(ContextKeyFile).(string); ok && file != "" {
		logger = logger.With(slog.String("file", file))
	}

	return &Logger{Logger: logger}
}

// WithComponent creates a new logger with a component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.With(slog.String("component", component))}
}

// LogError logs an error with additional context.
func (l *Logger) LogError(ctx context.Context, err error, msg string, args ...any) {
	allArgs := append([]any{"error", err}, args...)
	l.WithContext(ctx).Error(msg, allArgs...)
}

// isTerminal reports whether w is a character device such as a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
