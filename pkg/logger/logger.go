package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger keeps the printf-style call sites used across the services while
// emitting structured zerolog output underneath.
type Logger struct {
	zl zerolog.Logger
}

// New returns a JSON logger writing to stdout at info level.
func New() *Logger {
	return NewWithConfig("info", "json", os.Stdout)
}

// NewWithConfig builds a logger for the given level and format ("json" or "console").
func NewWithConfig(level, format string, w io.Writer) *Logger {
	if w == nil {
		w = os.Stdout
	}
	if strings.EqualFold(format, "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	return &Logger{
		zl: zerolog.New(w).Level(lvl).With().Timestamp().Logger(),
	}
}

// With returns a child logger that tags every entry with key=value.
func (l *Logger) With(key, value string) *Logger {
	return &Logger{zl: l.zl.With().Str(key, value).Logger()}
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.zl.Debug().Msgf(format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.zl.Info().Msgf(format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.zl.Warn().Msgf(format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.zl.Error().Msgf(format, v...)
}
