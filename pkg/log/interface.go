package log

import (
	"go.uber.org/zap"
)

// A SugaredLogger wraps the base Logger functionality in a slower, but less
// verbose, API. Any Logger can be converted to a SugaredLogger with its Sugar
// method.
type SugaredLogger = zap.SugaredLogger

// Logger is the interface that wraps the methods needed for a valid logger
// implementation.
type Logger interface {
	// Named adds a new path segment to the logger's name. Segments are joined
	// by periods. By default, Loggers are unnamed.
	Named(s string) Logger

	// Sugar wraps the logger to provide a more ergonomic, but slightly slower,
	// API.
	Sugar() *SugaredLogger

	// With creates a child logger and adds structured context to it. Fields
	// added to the child don't affect the parent, and vice versa.
	With(fields ...Field) Logger

	// WithLevel creates a child logger that logs on the given level.
	// The child logger contains all fields from the parent.
	WithLevel(lvl Level) Logger

	// Debug logs a message at DebugLevel. The message includes any fields
	// passed at the log site, as well as any fields accumulated on the logger.
	Debug(msg string, fields ...Field)

	// Info logs a message at InfoLevel.
	Info(msg string, fields ...Field)

	// Warn logs a message at WarnLevel.
	Warn(msg string, fields ...Field)

	// Error logs a message at ErrorLevel.
	Error(msg string, fields ...Field)

	// Panic logs a message at PanicLevel, then panics, even if logging at
	// PanicLevel is disabled.
	Panic(msg string, fields ...Field)

	// Fatal logs a message at FatalLevel, then calls os.Exit(1), even if
	// logging at FatalLevel is disabled.
	Fatal(msg string, fields ...Field)

	// Level reports the minimum enabled level for this logger.
	Level() Level
}
