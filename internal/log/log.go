// Package log builds the zerolog logger shared by the CLI and the search engine.
package log

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps zerolog.Logger with the writer it owns.
type Logger struct {
	zerolog.Logger
	closer io.Closer
}

// Options controls where and how log lines are written.
type Options struct {
	Level  string
	Pretty bool
	// File, when set, sends logs to a rotated file instead of Output.
	File   string
	Output io.Writer
}

// New creates a logger. Unknown levels fall back to info.
func New(opts Options) *Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}

	var (
		out    io.Writer = opts.Output
		closer io.Closer
	)
	if out == nil {
		out = os.Stderr
	}
	if opts.File != "" {
		rotated := newRotatingWriter(opts.File)
		out, closer = rotated, rotated
	} else if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}

	return &Logger{
		Logger: zerolog.New(out).Level(level).With().Timestamp().Logger(),
		closer: closer,
	}
}

// Component returns a child logger tagged with the component name.
func (l *Logger) Component(name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func newRotatingWriter(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filepath.Clean(path),
		MaxSize:    100,
		MaxBackups: 14,
		MaxAge:     14,
		Compress:   true,
		LocalTime:  true,
	}
}
