// Package joblog writes the per-job plain-text orchestration log.
//
// Every orchestrating command logs through the same append-only file so a
// job's full history reads in one place. The line format is a wire contract
// shared with the log viewer's plain-text tail:
//
//	<ISO-8601 UTC timestamp> [job=<id>] [stage=<source>] <LEVEL> <message>
//
// One line per call, open-append, prior content never rewritten.
package joblog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mapgenworks/mapgenctl/internal/paths"
)

// Logger appends structured lines to one job's orchestration log.
type Logger struct {
	jobID string
	path  string
}

// New creates a logger for jobID under logRoot, creating the job's log
// directory so the first write cannot fail on a missing parent.
func New(logRoot, jobID string) (*Logger, error) {
	path := paths.JobLogPath(logRoot, jobID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create job log dir: %w", err)
	}
	return &Logger{jobID: jobID, path: path}, nil
}

// Path returns the log file this logger appends to.
func (l *Logger) Path() string {
	return l.path
}

// Log appends one line for the given stage at the given level.
func (l *Logger) Log(stage, level, message string) error {
	line := fmt.Sprintf("%s [job=%s] [stage=%s] %s %s\n",
		timestamp(), l.jobID, stage, strings.ToUpper(level), message)

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open job log: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("append job log: %w", err)
	}
	return nil
}

// Info logs an informational message.
func (l *Logger) Info(stage, message string) error {
	return l.Log(stage, "INFO", message)
}

// Warn logs an unusual but non-fatal condition.
func (l *Logger) Warn(stage, message string) error {
	return l.Log(stage, "WARN", message)
}

// Error logs a failure.
func (l *Logger) Error(stage, message string) error {
	return l.Log(stage, "ERROR", message)
}

// timestamp returns the current UTC time as 2006-01-02T15:04:05Z.
func timestamp() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05Z")
}
