// Package logger provides leveled, module-tagged logging for the service.
//
// Every package logs through the shared default logger with its own module
// tag, so one LOG_LEVEL setting controls the whole process.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level represents the severity of a log message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelSilent // no output
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

var levelColors = map[Level]string{
	LevelDebug: "\033[36m",
	LevelInfo:  "\033[32m",
	LevelWarn:  "\033[33m",
	LevelError: "\033[31m",
}

const resetColor = "\033[0m"

// ParseLevel converts a level name ("debug", "INFO", ...) to a Level.
// Unknown names fall back to LevelInfo.
func ParseLevel(name string) Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "SILENT", "OFF":
		return LevelSilent
	default:
		return LevelInfo
	}
}

// Logger writes leveled messages with a per-call module tag.
type Logger struct {
	mu       sync.Mutex
	level    Level
	useColor bool
	std      *log.Logger
}

// New creates a Logger writing to output (os.Stderr when nil).
func New(level Level, output io.Writer, useColor bool) *Logger {
	if output == nil {
		output = os.Stderr
	}
	return &Logger{
		level:    level,
		useColor: useColor,
		std:      log.New(output, "", log.Ldate|log.Ltime|log.Lmicroseconds),
	}
}

// SetLevel changes the minimum level that will be written.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) log(level Level, module, format string, args ...interface{}) {
	l.mu.Lock()
	min := l.level
	l.mu.Unlock()
	if level < min || level == LevelSilent {
		return
	}

	prefix := "[" + levelNames[level] + "]"
	if l.useColor {
		prefix = levelColors[level] + prefix + resetColor
	}
	if module != "" {
		prefix = fmt.Sprintf("%s [%s]", prefix, module)
	}
	l.std.Printf("%s %s", prefix, fmt.Sprintf(format, args...))
}

// Debug logs a debug message.
func (l *Logger) Debug(module, format string, args ...interface{}) {
	l.log(LevelDebug, module, format, args...)
}

// Info logs an info message.
func (l *Logger) Info(module, format string, args ...interface{}) {
	l.log(LevelInfo, module, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(module, format string, args ...interface{}) {
	l.log(LevelWarn, module, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(module, format string, args ...interface{}) {
	l.log(LevelError, module, format, args...)
}

var (
	defaultLogger = New(LevelInfo, os.Stderr, false)
	initOnce      sync.Once
)

// Init configures the process-wide default logger. Only the first call
// takes effect.
func Init(level Level, output io.Writer, useColor bool) {
	initOnce.Do(func() {
		defaultLogger = New(level, output, useColor)
	})
}

// SetLevel sets the default logger's level.
func SetLevel(level Level) { defaultLogger.SetLevel(level) }

// Debug logs a debug message via the default logger.
func Debug(module, format string, args ...interface{}) {
	defaultLogger.Debug(module, format, args...)
}

// Info logs an info message via the default logger.
func Info(module, format string, args ...interface{}) {
	defaultLogger.Info(module, format, args...)
}

// Warn logs a warning message via the default logger.
func Warn(module, format string, args ...interface{}) {
	defaultLogger.Warn(module, format, args...)
}

// Error logs an error message via the default logger.
func Error(module, format string, args ...interface{}) {
	defaultLogger.Error(module, format, args...)
}
