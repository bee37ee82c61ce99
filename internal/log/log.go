// Package log provides leveled logging for the TUI and the command line.
package log

import (
	"fmt"
	"strings"
	"sync"
)

// Level represents log levels.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the upper-case level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a level name to a Level. Unknown names map to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Output interface for log messages.
type Output interface {
	Write(level, message string)
}

// Logger handles log messages.
type Logger struct {
	mu        sync.RWMutex
	level     Level
	output    Output
	component string
	parent    *Logger
}

var defaultLogger = &Logger{level: LevelInfo}

// Default returns the default logger.
func Default() *Logger {
	return defaultLogger
}

// New returns a logger writing to output at level.
func New(level Level, output Output) *Logger {
	return &Logger{level: level, output: output}
}

// Component returns a child logger that prefixes messages with name.
// Level and output changes on the parent are seen by the child.
func (l *Logger) Component(name string) *Logger {
	return &Logger{component: name, parent: l}
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	root := l.root()
	root.mu.Lock()
	defer root.mu.Unlock()
	root.level = level
}

// SetOutput sets the output destination for log messages.
func (l *Logger) SetOutput(output Output) {
	root := l.root()
	root.mu.Lock()
	defer root.mu.Unlock()
	root.output = output
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

func (l *Logger) root() *Logger {
	for l.parent != nil {
		l = l.parent
	}
	return l
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	root := l.root()
	root.mu.RLock()
	defer root.mu.RUnlock()

	if level < root.level {
		return
	}

	if root.output == nil {
		return
	}

	message := fmt.Sprintf(format, args...)
	if l.component != "" {
		message = l.component + ": " + message
	}
	root.output.Write(level.String(), message)
}

// Package-level functions use the default logger
func Debug(format string, args ...interface{}) { defaultLogger.Debug(format, args...) }
func Info(format string, args ...interface{})  { defaultLogger.Info(format, args...) }
func Warn(format string, args ...interface{})  { defaultLogger.Warn(format, args...) }
func Error(format string, args ...interface{}) { defaultLogger.Error(format, args...) }
