// Package diag provides the optional diagnostics logger.
//
// The log viewer owns the terminal, so conditions the UI hides (dropped
// entries under backpressure, discovery activity, poll errors) are recorded
// here instead. Disabled, the logger is a no-op with no open file handle.
package diag

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// logFileName is created under the log root when diagnostics are enabled.
const logFileName = "mapgenctl-debug.log"

// New returns a zerolog logger writing JSON lines under logRoot when
// enabled, and a Nop logger otherwise. The returned close function is
// always safe to call.
func New(logRoot string, enabled bool) (zerolog.Logger, func(), error) {
	if !enabled {
		return zerolog.Nop(), func() {}, nil
	}

	if err := os.MkdirAll(logRoot, 0o755); err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("create log root: %w", err)
	}

	path := filepath.Join(logRoot, logFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("open diagnostics log: %w", err)
	}

	logger := zerolog.New(f).With().Timestamp().Logger()
	return logger, func() { f.Close() }, nil
}
