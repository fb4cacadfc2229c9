package logstream

import (
	"strconv"
	"time"
)

// Entry is one normalized log line from any pipeline source. Entries are
// immutable once produced by a tail; the merger and presenter only read them.
type Entry struct {
	JobID  string
	Source string

	// Timestamp is the emitter's own timestamp, normalized to RFC 3339 UTC
	// where possible. Empty when the source did not record one.
	Timestamp string
	// When is the parsed Timestamp. Zero when Timestamp is empty or could
	// not be parsed; ordering then falls back to Arrival.
	When time.Time

	Level   string
	Event   string
	Message string

	// Raw preserves the original payload for diagnostics: the decoded
	// object for structured lines, the unparsed line for plain text.
	Raw any

	// Arrival is the local time this process observed the entry. It carries
	// Go's monotonic clock reading, so comparisons between entries from the
	// same process are truncation-safe.
	Arrival time.Time

	// Seq increases strictly within one tail's lifetime. It is a
	// deterministic tie-breaker, not comparable across sources.
	Seq uint64
}

// HasTimestamp reports whether the emitter recorded an explicit timestamp.
func (e Entry) HasTimestamp() bool {
	return e.Timestamp != ""
}

// orderKey is the time the merger sorts this entry by: the emitter timestamp
// when it parsed, otherwise the local arrival time.
func (e Entry) orderKey() time.Time {
	if !e.When.IsZero() {
		return e.When
	}
	return e.Arrival
}

// normalizeTimestamp converts a structured record's ts value into a display
// string and a parsed time. Stage engines write unix milliseconds; older
// emitters write RFC 3339 strings. Anything else is kept verbatim with a
// zero parsed time.
func normalizeTimestamp(v any) (string, time.Time) {
	switch ts := v.(type) {
	case nil:
		return "", time.Time{}
	case float64:
		t := time.UnixMilli(int64(ts)).UTC()
		return t.Format(time.RFC3339), t
	case int64:
		t := time.UnixMilli(ts).UTC()
		return t.Format(time.RFC3339), t
	case string:
		if ts == "" {
			return "", time.Time{}
		}
		return ts, parseTimestamp(ts)
	default:
		return "", time.Time{}
	}
}

// parseTimestamp parses an emitter timestamp string. Returns the zero time
// when the string matches no known layout.
func parseTimestamp(s string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	// Bare unix milliseconds, as some stage logs record them.
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil && ms > 0 {
		return time.UnixMilli(ms).UTC()
	}
	return time.Time{}
}
