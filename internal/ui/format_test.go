package ui

import (
	"strings"
	"testing"

	"github.com/mapgenworks/mapgenctl/internal/logstream"
)

func TestFormatEntryFieldOrder(t *testing.T) {
	line := formatEntry(logstream.Entry{
		Timestamp: "2024-01-15T12:00:00Z",
		Source:    "heightmap",
		Level:     "info",
		Message:   "generation started",
	})

	if !strings.HasPrefix(line, "2024-01-15T12:00:00Z ") {
		t.Fatalf("timestamp not first: %q", line)
	}
	for _, want := range []string{"heightmap", "INFO", "generation started"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}
	if strings.Index(line, "heightmap") > strings.Index(line, "INFO") {
		t.Errorf("source should precede level: %q", line)
	}
}

func TestFormatEntryDefaults(t *testing.T) {
	line := formatEntry(logstream.Entry{Message: "hello"})

	if !strings.HasPrefix(line, timestampPlaceholder+" ") {
		t.Errorf("missing timestamp placeholder: %q", line)
	}
	if !strings.Contains(line, "unknown") {
		t.Errorf("missing source default: %q", line)
	}
	if !strings.Contains(line, " INFO ") {
		t.Errorf("missing level default: %q", line)
	}
}

func TestFormatEntryUppercasesLevel(t *testing.T) {
	line := formatEntry(logstream.Entry{Level: "warn", Message: "x"})
	if !strings.Contains(line, " WARN ") {
		t.Errorf("level not upper-cased: %q", line)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 3, "hel"},
		{"hello", 0, ""},
		{"hello", -1, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestColorizeLinePreservesContent(t *testing.T) {
	styles := DefaultTheme().Styles()
	for _, line := range []string{
		"2024-01-15T12:00:00Z heightmap    ERROR disk full",
		"2024-01-15T12:00:00Z heightmap    WARN  retrying",
		"2024-01-15T12:00:00Z heightmap    INFO  ok",
	} {
		got := colorizeLine(line, styles)
		if got == "" {
			t.Errorf("colorizeLine(%q) returned empty", line)
		}
	}
}
