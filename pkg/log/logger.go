package log

import (
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLogger is the logger used by the package-level logging functions when
// given a context with no associated log instance.
//
// DefaultLogger by default discards all logs. You can change its
// implementation by setting this variable to an instantiated logger of your
// own.
var DefaultLogger Logger = &logger{
	Logger: zap.NewNop(),
}

// NewProductionLogger is a reasonable production logging configuration.
// Logging is enabled at the given level and above. The level can be later
// adjusted dynamically at runtime through the AtomicLevel.
//
// It uses a JSON encoder, writes to standard error, and includes stacktraces
// on logs of ErrorLevel and above.
func NewProductionLogger(lvl *AtomicLevel, opts ...Option) Logger {
	cfg := logConfig{
		caller:     true,
		callerSkip: 1,
		stacktrace: true,
		encoderFactory: func(config zapcore.EncoderConfig) zapcore.Encoder {
			return zapcore.NewJSONEncoder(config)
		},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	var zapOptions []zap.Option

	if cfg.caller {
		zapOptions = append(zapOptions, zap.AddCaller(), zap.AddCallerSkip(cfg.callerSkip))
	}

	if cfg.stacktrace {
		zapOptions = append(zapOptions, zap.AddStacktrace(zap.ErrorLevel))
	}

	zapOptions = append(zapOptions, wrapCoreWithLevel(lvl))

	l := zap.New(newZapCoreAtLevel(zap.DebugLevel, cfg), zapOptions...)

	return &logger{
		Logger: l,
	}
}

// logger provides fast, leveled, structured logging. All methods are safe
// for concurrent use.
type logger struct {
	*zap.Logger
}

var _ Logger = (*logger)(nil)

// WithLevel creates a child logger that logs on the given level.
// The child logger contains all fields from the parent.
func (l *logger) WithLevel(level Level) Logger {
	lvl := zap.NewAtomicLevelAt(level)
	child := l.Logger.WithOptions(wrapCoreWithLevel(&lvl))
	return &logger{
		Logger: child,
	}
}

// With creates a child logger and adds structured context to it. Fields added
// to the child don't affect the parent, and vice versa.
func (l *logger) With(fields ...Field) Logger {
	child := l.Logger.With(fields...)
	return &logger{
		Logger: child,
	}
}

// Named adds a new path segment to the logger's name. Segments are joined by
// periods. By default, Loggers are unnamed.
func (l *logger) Named(s string) Logger {
	child := l.Logger.Named(s)
	return &logger{
		Logger: child,
	}
}

// Level reports the minimum enabled level for this logger.
func (l *logger) Level() Level {
	return zapcore.LevelOf(l.Core())
}

// WriteSyncer groups the Write and Sync methods a log destination must
// implement.
type WriteSyncer interface {
	io.Writer
	Sync() error
}

type encoderFactory func(config zapcore.EncoderConfig) zapcore.Encoder

type logConfig struct {
	caller     bool
	callerSkip int
	stacktrace bool
	writer     WriteSyncer

	encoderFactory encoderFactory
}

// Option configures a Logger.
type Option func(s *logConfig)

// WithCaller lets the caller configure whether to include a "caller" tag in
// the log specifying the package/file:line in which the log occurred.
//
// Default value is true; obtaining the caller has a runtime cost.
func WithCaller(t bool) Option {
	return func(s *logConfig) {
		s.caller = t
	}
}

// WithCallerSkip configures the number of callers skipped by the caller
// annotation, avoiding always reporting wrapper code as the caller.
//
// Default value is 1.
func WithCallerSkip(skip int) Option {
	return func(s *logConfig) {
		s.callerSkip = skip
	}
}

// WithStacktraceOnError lets the caller configure whether to include a
// stacktrace on Error or higher log levels.
//
// Default value is true; obtaining the stacktrace has a non-trivial runtime
// cost.
func WithStacktraceOnError(b bool) Option {
	return func(s *logConfig) {
		s.stacktrace = b
	}
}

// WithJSONEncoding tells the logger to use JSON as its encoding.
//
// This is the default setting.
func WithJSONEncoding() Option {
	return func(s *logConfig) {
		s.encoderFactory = func(config zapcore.EncoderConfig) zapcore.Encoder {
			return zapcore.NewJSONEncoder(config)
		}
	}
}

// WithConsoleEncoding tells the logger to use a user-friendly console encoding
// as its encoding.
func WithConsoleEncoding() Option {
	return func(s *logConfig) {
		s.encoderFactory = func(config zapcore.EncoderConfig) zapcore.Encoder {
			return zapcore.NewConsoleEncoder(config)
		}
	}
}

// WithWriter lets the caller configure which WriteSyncer it wants the logger
// to write the logs to.
//
// Default value is to write to Stderr.
func WithWriter(w WriteSyncer) Option {
	return func(s *logConfig) {
		s.writer = w
	}
}

func newZapCoreAtLevel(lvl Level, cfg logConfig) zapcore.Core {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout(time.RFC3339Nano),
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	writer := cfg.writer
	if writer == nil {
		writer = os.Stderr
	}

	return zapcore.NewCore(cfg.encoderFactory(encoderConfig), zapcore.Lock(zapcore.AddSync(writer)), lvl)
}
