// Package logging provides the leveled diagnostics channel shared by the
// datamodel and store packages. Recoverable problems (an attribute value
// that cannot be stored, an entry of a type that cannot be written) are
// reported here and the operation continues; structural errors are
// returned to the caller instead.
package logging

import (
	"io"
	"log"
	"sync"
)

// Level selects how much diagnostic output is emitted.
type Level int

const (
	// LevelError reports only failures that abort an operation.
	LevelError Level = iota
	// LevelWarn additionally reports values that were skipped or dropped.
	// This is the default.
	LevelWarn
	// LevelInfo additionally reports progress information.
	LevelInfo
)

var prefixes = map[Level]string{
	LevelError: "ERROR ",
	LevelWarn:  "WARN ",
	LevelInfo:  "INFO ",
}

// Logger is a small leveled logger. The zero value is not usable; call New.
type Logger struct {
	mu    sync.Mutex
	level Level
	out   *log.Logger
}

// New returns a Logger writing to w at LevelWarn.
func New(w io.Writer) *Logger {
	return &Logger{level: LevelWarn, out: log.New(w, "", log.LstdFlags)}
}

// Level returns the current level.
func (l *Logger) Level() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// SetLevel changes the verbosity. Out-of-range values are clamped.
func (l *Logger) SetLevel(level Level) {
	if level < LevelError {
		level = LevelError
	}
	if level > LevelInfo {
		level = LevelInfo
	}
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// SetOutput redirects diagnostic output to w.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	l.out.SetOutput(w)
	l.mu.Unlock()
}

func (l *Logger) printf(level Level, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level > l.level {
		return
	}
	l.out.SetPrefix(prefixes[level])
	l.out.Printf(format, v...)
}

// Errorf reports a failure.
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.printf(LevelError, format, v...)
}

// Warnf reports a recoverable problem.
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.printf(LevelWarn, format, v...)
}

// Infof reports progress information.
func (l *Logger) Infof(format string, v ...interface{}) {
	l.printf(LevelInfo, format, v...)
}
