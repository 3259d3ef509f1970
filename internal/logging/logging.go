// Package logging provides the small leveled stderr logger used throughout
// workmux for operational messages (reconciliation deletions, best-effort
// persistence failures, fork-remote creation). Command output itself never
// goes through this package: stdout is reserved for data other tools parse.
package logging

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// Level is a logging verbosity level.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

func parseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "error":
		return LevelError
	default:
		return LevelWarn
	}
}

var (
	mu      sync.Mutex
	current = parseLevel(os.Getenv("WORKMUX_LOG"))
)

// SetLevel overrides the active log level, primarily for tests.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	current = l
}

func enabled(l Level) bool {
	mu.Lock()
	defer mu.Unlock()
	return l <= current
}

func write(level, format string, args []any) {
	fmt.Fprintf(os.Stderr, "workmux: %s: %s\n", level, fmt.Sprintf(format, args...))
}

// Debugf logs a debug-level message.
func Debugf(format string, args ...any) {
	if enabled(LevelDebug) {
		write("debug", format, args)
	}
}

// Infof logs an info-level message.
func Infof(format string, args ...any) {
	if enabled(LevelInfo) {
		write("info", format, args)
	}
}

// Warnf logs a warn-level message.
func Warnf(format string, args ...any) {
	if enabled(LevelWarn) {
		write("warn", format, args)
	}
}

// Errorf logs an error-level message.
func Errorf(format string, args ...any) {
	if enabled(LevelError) {
		write("error", format, args)
	}
}
