package log

import (
	"context"
)

type logCtxKey struct{}

// Context returns a copy of the parent context in which the logger associated
// with it is the one given.
//
// Usually you'll call Context with the logger returned by
// NewProductionLogger. Once you have a context with a logger, all additional
// logging should be made by using the static methods exported by this
// package.
func Context(ctx context.Context, log Logger) context.Context {
	return context.WithValue(ctx, logCtxKey{}, log)
}

// FromContext returns the logger instance contained in a context via the
// usage of the log.Context function.
//
// If the context contains no logger, then nil is returned.
func FromContext(ctx context.Context) Logger {
	l, _ := ctx.Value(logCtxKey{}).(Logger)
	return l
}

// Sugar wraps the context logger to provide a more ergonomic, but slightly
// slower, API.
func Sugar(ctx context.Context) *SugaredLogger {
	return getLogger(ctx).Sugar()
}

// Named adds a new path segment to the context logger's name.
func Named(ctx context.Context, s string) context.Context {
	logger := getLogger(ctx).Named(s)
	return context.WithValue(ctx, logCtxKey{}, logger)
}

// With creates a child logger with the given structured context and stores it
// in the returned context.
func With(ctx context.Context, fields ...Field) context.Context {
	logger := getLogger(ctx).With(fields...)
	return context.WithValue(ctx, logCtxKey{}, logger)
}

// WithLevel creates a child logger that logs on the given level and stores it
// in the returned context.
func WithLevel(ctx context.Context, lvl Level) context.Context {
	logger := getLogger(ctx).WithLevel(lvl)
	return context.WithValue(ctx, logCtxKey{}, logger)
}

// Debug logs a message at DebugLevel. The message includes any fields passed
// at the log site, as well as any fields accumulated on the logger.
func Debug(ctx context.Context, msg string, fields ...Field) {
	getLogger(ctx).Debug(msg, fields...)
}

// Info logs a message at InfoLevel.
func Info(ctx context.Context, msg string, fields ...Field) {
	getLogger(ctx).Info(msg, fields...)
}

// Warn logs a message at WarnLevel.
func Warn(ctx context.Context, msg string, fields ...Field) {
	getLogger(ctx).Warn(msg, fields...)
}

// Error logs a message at ErrorLevel.
func Error(ctx context.Context, msg string, fields ...Field) {
	getLogger(ctx).Error(msg, fields...)
}

// Panic logs a message at PanicLevel, then panics, even if logging at
// PanicLevel is disabled.
func Panic(ctx context.Context, msg string, fields ...Field) {
	getLogger(ctx).Panic(msg, fields...)
}

// Fatal logs a message at FatalLevel, then calls os.Exit(1), even if logging
// at FatalLevel is disabled.
func Fatal(ctx context.Context, msg string, fields ...Field) {
	getLogger(ctx).Fatal(msg, fields...)
}

func getLogger(ctx context.Context) Logger {
	l, ok := ctx.Value(logCtxKey{}).(Logger)
	if ok {
		return l
	}
	return DefaultLogger
}
