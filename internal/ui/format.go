package ui

import (
	"fmt"
	"strings"

	"github.com/mapgenworks/mapgenctl/internal/logstream"
)

// timestampPlaceholder stands in for entries whose emitter recorded no
// timestamp; keeping the column width stable keeps the transcript aligned.
const timestampPlaceholder = "--------"

// formatEntry renders one merged entry as a single display line with a
// fixed field order: timestamp, source, level, message.
func formatEntry(e logstream.Entry) string {
	ts := e.Timestamp
	if ts == "" {
		ts = timestampPlaceholder
	}
	source := e.Source
	if source == "" {
		source = "unknown"
	}
	level := strings.ToUpper(e.Level)
	if level == "" {
		level = "INFO"
	}
	return fmt.Sprintf("%s %-12s %-5s %s", ts, source, level, e.Message)
}

// colorizeLine styles a formatted transcript line by its severity. The
// layout is left untouched so columns stay aligned.
func colorizeLine(line string, styles Styles) string {
	switch {
	case strings.Contains(line, " ERROR "):
		return styles.Danger.Render(line)
	case strings.Contains(line, " WARN "):
		return styles.Warning.Render(line)
	default:
		return styles.Text.Render(line)
	}
}

// truncate cuts a line to fit the terminal width.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	return s[:max]
}
