// Package logging adapts the teacher's pkg/styles color helper into
// leveled, timestamped lines for the recommendation engine and its HTTP
// collaborator, grounded on api-coordinator's ad-hoc styles.PrintFS calls
// scattered across handler/service constructors.
package logging

import (
	"fmt"
	"time"

	"goflix/pkg/styles"
)

// Logger prefixes every line with a component tag, mirroring how the
// teacher's handlers log with a fixed subsystem name ("auth", "health").
type Logger struct {
	component string
}

// New returns a Logger tagged with component, e.g. "engine" or "httpapi".
func New(component string) *Logger {
	return &Logger{component: component}
}

func (l *Logger) line(style, level, format string, a ...interface{}) {
	ts := time.Now().UTC().Format(time.RFC3339)
	msg := fmt.Sprintf(format, a...)
	styles.PrintFS(style, "%s [%s] %-5s %s", ts, l.component, level, msg)
}

// Info logs routine progress: server start, request counts.
func (l *Logger) Info(format string, a ...interface{}) { l.line("info", "INFO", format, a...) }

// Success logs a completed operation worth calling out, matching the
// teacher's "success" style for things like a clean shutdown.
func (l *Logger) Success(format string, a ...interface{}) {
	l.line("success", "OK", format, a...)
}

// Warn logs a recoverable anomaly: a rejected event, a cache miss storm.
func (l *Logger) Warn(format string, a ...interface{}) { l.line("warn", "WARN", format, a...) }

// Error logs an invariant violation or unexpected failure (§7 Internal
// errors are logged here before the offending update is discarded).
func (l *Logger) Error(format string, a ...interface{}) { l.line("error", "ERROR", format, a...) }
