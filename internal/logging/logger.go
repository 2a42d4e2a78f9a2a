// Package logging provides the structured file logger used by the terminal UI.
// The screen owns stdout, so logs always go to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

const timeFormat = "2006-01-02 15:04:05.000"

// Logger is a zerolog logger bound to an optional log file.
type Logger struct {
	zerolog.Logger
	file *os.File
}

// Open creates (or appends to) the log file at path.
func Open(path string, debug bool) (*Logger, error) {
	if path == "" {
		return nil, fmt.Errorf("empty log path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &Logger{Logger: newLogger(f, debug), file: f}, nil
}

// New returns a logger writing to w without owning it.
func New(w io.Writer, debug bool) *Logger {
	return &Logger{Logger: newLogger(w, debug)}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

func newLogger(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: timeFormat,
	}
	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("app", "bucketui").
		Logger()
}

// Component returns a child logger tagged with a component name.
func (l *Logger) Component(name string) zerolog.Logger {
	if l == nil {
		return zerolog.Nop()
	}
	return l.With().Str("component", name).Logger()
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
