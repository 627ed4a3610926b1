// Package logging provides structured logging for the breakout application.
// It wraps zap to provide consistent logging patterns with correlation IDs,
// error context preservation, and redaction of sensitive attributes.
package logging

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger with context-aware helpers.
type Logger struct {
	z     *zap.Logger
	level zap.AtomicLevel
}

// NewLogger creates a new Logger with JSON output on stderr. The level is
// read from BREAKOUT_LOG_LEVEL (DEBUG, INFO, WARN, ERROR) and defaults to INFO.
func NewLogger() *Logger {
	return NewLoggerWithLevel(getLogLevelFromEnv())
}

// NewLoggerWithLevel creates a JSON stderr logger at the given level.
func NewLoggerWithLevel(level zapcore.Level) *Logger {
	atom := zap.NewAtomicLevelAt(level)
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), atom)
	return &Logger{z: zap.New(core), level: atom}
}

// NewLoggerWithCore wraps an existing core, mostly for tests.
func NewLoggerWithCore(core zapcore.Core) *Logger {
	return &Logger{z: zap.New(core), level: zap.NewAtomicLevelAt(zapcore.DebugLevel)}
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *Logger {
	return &Logger{z: zap.NewNop(), level: zap.NewAtomicLevelAt(zapcore.FatalLevel)}
}

// SetLevel changes the minimum level at runtime.
func (l *Logger) SetLevel(level zapcore.Level) {
	l.level.SetLevel(level)
}

// With returns a child logger that always carries the given attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{z: l.z.With(toFields(args)...), level: l.level}
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.z.Sync()
}

// LogWithContext logs a message with automatic correlation ID extraction from context.
func (l *Logger) LogWithContext(ctx context.Context, level zapcore.Level, msg string, args ...any) {
	ce := l.z.Check(level, msg)
	if ce == nil {
		return
	}
	fields := toFields(args)
	if correlationID := GetCorrelationID(ctx); correlationID != "" {
		fields = append(fields, zap.String("correlation_id", correlationID))
	}
	ce.Write(fields...)
}

// Info logs an informational message with context.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, zapcore.InfoLevel, msg, args...)
}

// Warn logs a warning message with context.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, zapcore.WarnLevel, msg, args...)
}

// Error logs an error message with context and proper error formatting.
func (l *Logger) Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.LogWithContext(ctx, zapcore.ErrorLevel, msg, args...)
}

// Debug logs a debug message with context.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, zapcore.DebugLevel, msg, args...)
}

// correlationIDKey is the context key for correlation IDs
type correlationIDKey struct{}

// WithCorrelationID adds a correlation ID to the context.
// If no correlation ID is provided, a new one will be generated.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	if correlationID == "" {
		correlationID = GenerateCorrelationID()
	}
	return context.WithValue(ctx, correlationIDKey{}, correlationID)
}

// GetCorrelationID extracts the correlation ID from the context.
// Returns empty string if no correlation ID is present.
func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return id
	}
	return ""
}

// GenerateCorrelationID creates a new random correlation ID.
func GenerateCorrelationID() string {
	return uuid.NewString()
}

// ParseLevel converts a level name into a zap level, defaulting to info.
func ParseLevel(name string) zapcore.Level {
	switch strings.ToUpper(name) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "WARN", "WARNING":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// getLogLevelFromEnv determines the log level from environment variables.
func getLogLevelFromEnv() zapcore.Level {
	return ParseLevel(os.Getenv("BREAKOUT_LOG_LEVEL"))
}

// sensitiveKeys are attribute names whose values are never written.
var sensitiveKeys = []string{
	"password", "passwd", "pwd",
	"token", "auth", "authorization",
	"secret", "private", "cookie",
}

// toFields turns alternating key/value arguments into zap fields,
// masking sensitive keys.
func toFields(args []any) []zap.Field {
	fields := make([]zap.Field, 0, len(args)/2+1)
	for i := 0; i < len(args); i++ {
		if f, ok := args[i].(zap.Field); ok {
			fields = append(fields, sanitizeField(f))
			continue
		}
		key, ok := args[i].(string)
		if !ok || i+1 >= len(args) {
			fields = append(fields, zap.Any("!BADKEY", args[i]))
			continue
		}
		fields = append(fields, sanitizeField(zap.Any(key, args[i+1])))
		i++
	}
	return fields
}

// sanitizeField masks values stored under sensitive keys.
func sanitizeField(f zap.Field) zap.Field {
	if isSensitiveKey(f.Key) {
		return zap.String(f.Key, "[REDACTED]")
	}
	return f
}

// isSensitiveKey matches a sensitive name as a whole word of the key
// ("private_key", "auth") or as its suffix ("apitoken"), never inside a
// longer word ("author").
func isSensitiveKey(key string) bool {
	key = strings.ToLower(key)
	words := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || r == ' '
	})
	for _, sensitive := range sensitiveKeys {
		if strings.HasSuffix(key, sensitive) {
			return true
		}
		for _, w := range words {
			if w == sensitive {
				return true
			}
		}
	}
	return false
}

// WrapError wraps an error with additional context information.
// This preserves the original error while adding descriptive context.
func WrapError(err error, context string, args ...any) error {
	if err == nil {
		return nil
	}
	if len(args) > 0 {
		context = fmt.Sprintf(context, args...)
	}
	return fmt.Errorf("%s: %w", context, err)
}
