package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/wonny/fundscope/pkg/config"
)

// Logger is a structured logger wrapper around zerolog
// ⭐ SSOT: 모든 로깅은 이 패키지를 통해서만 수행
type Logger struct {
	zlog zerolog.Logger
}

// New creates a new Logger instance from config.
// Logs go to stderr so that CLI reports on stdout stay machine-readable.
func New(cfg *config.Config) *Logger {
	return NewWithWriter(os.Stderr, cfg.LogLevel, cfg.LogFormat, cfg.Env)
}

// NewWithWriter creates a Logger writing to w
// ⭐ SSOT: zerolog 인스턴스는 여기서만 생성
func NewWithWriter(w io.Writer, level, format, env string) *Logger {
	output := w
	if format == "console" || format == "pretty" {
		// Human-readable console output
		output = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}

	// Level is per logger, not global, so concurrent tests and hosts don't interfere
	zlog := zerolog.New(output).
		Level(parseLogLevel(level)).
		With().
		Timestamp().
		Str("env", env).
		Logger()

	return &Logger{zlog: zlog}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop()}
}

// parseLogLevel converts string log level to zerolog.Level
func parseLogLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string) {
	l.zlog.Debug().Msg(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string) {
	l.zlog.Info().Msg(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string) {
	l.zlog.Warn().Msg(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string) {
	l.zlog.Error().Msg(msg)
}

// Fatal logs a fatal message and exits
func (l *Logger) Fatal(msg string) {
	l.zlog.Fatal().Msg(msg)
}

// WithField returns a new logger with an additional field
func (l *Logger) WithField(key string, value interface{}) *Logger {
	newLogger := l.zlog.With().Interface(key, value).Logger()
	return &Logger{zlog: newLogger}
}

// WithFields returns a new logger with multiple fields
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	ctx := l.zlog.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &Logger{zlog: ctx.Logger()}
}

// WithError returns a new logger with an error field
func (l *Logger) WithError(err error) *Logger {
	newLogger := l.zlog.With().Err(err).Logger()
	return &Logger{zlog: newLogger}
}

// Zerolog returns the underlying zerolog.Logger
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zlog
}
