package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	defaultLogger *Logger
	mu            sync.RWMutex
)

func init() {
	// per-logger levels do the filtering
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	defaultLogger = New(os.Stdout, FormatConsole, LogLevelDebug)
}

type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
	LogLevelTrace
)

func (level LogLevel) String() string {
	switch level {
	case LogLevelError:
		return "error"
	case LogLevelWarn:
		return "warn"
	case LogLevelInfo:
		return "info"
	case LogLevelDebug:
		return "debug"
	case LogLevelTrace:
		return "trace"
	default:
		return "unknown"
	}
}

func (level LogLevel) zerolog() zerolog.Level {
	switch level {
	case LogLevelError:
		return zerolog.ErrorLevel
	case LogLevelWarn:
		return zerolog.WarnLevel
	case LogLevelInfo:
		return zerolog.InfoLevel
	case LogLevelDebug:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// ParseLogLevel parses a log level string into a LogLevel.
// Valid log levels are: error, warn, info, debug, trace.
func ParseLogLevel(level string) (LogLevel, error) {
	switch level {
	case "error":
		return LogLevelError, nil
	case "warn":
		return LogLevelWarn, nil
	case "info":
		return LogLevelInfo, nil
	case "debug":
		return LogLevelDebug, nil
	case "trace":
		return LogLevelTrace, nil
	default:
		return LogLevelError, fmt.Errorf("unknown log level: %s", level)
	}
}

// Format selects how entries are written.
type Format int

const (
	// FormatConsole writes human readable lines.
	FormatConsole Format = iota
	// FormatJSON writes one JSON object per entry.
	FormatJSON
)

type Logger struct {
	logger zerolog.Logger
	level  LogLevel
}

func New(out io.Writer, format Format, level LogLevel) *Logger {
	w := out
	if format == FormatConsole {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return &Logger{
		logger: zerolog.New(w).With().Timestamp().Logger().Level(level.zerolog()),
		level:  level,
	}
}

// SetDefaultLogger replaces the logger used by the package level functions.
func SetDefaultLogger(l *Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = l
}

func SetLevel(level LogLevel) {
	mu.Lock()
	defaultLogger.SetLevel(level)
	mu.Unlock()
	Info("Log level set to %s", level)
}

func (l *Logger) SetLevel(level LogLevel) {
	l.level = level
	l.logger = l.logger.Level(level.zerolog())
}

func (l *Logger) Level() LogLevel {
	return l.level
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.logger.Error().Msgf(format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.logger.Warn().Msgf(format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.logger.Info().Msgf(format, args...)
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}

func (l *Logger) Trace(format string, args ...interface{}) {
	l.logger.Trace().Msgf(format, args...)
}

func current() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

func Info(format string, args ...interface{}) {
	current().Info(format, args...)
}

func Error(format string, args ...interface{}) {
	current().Error(format, args...)
}

func Warn(format string, args ...interface{}) {
	current().Warn(format, args...)
}

func Debug(format string, args ...interface{}) {
	current().Debug(format, args...)
}

func Trace(format string, args ...interface{}) {
	current().Trace(format, args...)
}
