package logstream

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"regexp"
	"strings"
	"time"
)

// tailKind selects the wire format a FileTail parses. The set of formats is
// closed: stage engines emit JSONL, the orchestrator emits plain text.
type tailKind int

const (
	structuredKind tailKind = iota
	plainTextKind
)

// plainLinePattern matches the orchestration log wire format:
// <timestamp> [job=<id>] [stage=<source>] <LEVEL> <message>
var plainLinePattern = regexp.MustCompile(
	`^(\S+)\s+\[job=([^\]]+)\]\s+\[stage=([^\]]+)\]\s+(\w+)\s+(.*)$`)

// FileTail incrementally reads one growing log file and emits Entry values.
// Poll never blocks on I/O readiness and never fails: a missing or
// unreadable file is simply "no new entries", and state is retained so the
// next poll retries from the same position.
type FileTail struct {
	path   string
	jobID  string
	source string
	kind   tailKind

	offset  int64
	partial []byte
	seq     uint64
}

// NewStructuredTail tails a JSONL stage log. source is the default source
// name; a stage field inside a record overrides it per entry.
func NewStructuredTail(path, jobID, source string) *FileTail {
	return &FileTail{path: path, jobID: jobID, source: source, kind: structuredKind}
}

// NewPlainTextTail tails the plain-text orchestration log.
func NewPlainTextTail(path, jobID, source string) *FileTail {
	return &FileTail{path: path, jobID: jobID, source: source, kind: plainTextKind}
}

// Source returns the tail's default source name.
func (t *FileTail) Source() string {
	return t.source
}

// Poll reads any bytes appended since the last call and returns the complete
// entries they form. Malformed lines are dropped; a trailing line without a
// terminator is buffered until a later poll completes it.
func (t *FileTail) Poll() []Entry {
	lines := t.readNewLines()
	if len(lines) == 0 {
		return nil
	}

	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		var (
			entry Entry
			ok    bool
		)
		switch t.kind {
		case plainTextKind:
			entry, ok = t.parsePlainLine(line)
		default:
			entry, ok = t.parseStructuredLine(line)
		}
		if !ok {
			continue
		}
		t.seq++
		entry.Seq = t.seq
		entry.Arrival = time.Now()
		entries = append(entries, entry)
	}
	return entries
}

// readNewLines returns complete lines appended since the last poll. A
// shrunken file means truncation or replacement: the offset resets and any
// buffered fragment is discarded rather than diffed against new content.
func (t *FileTail) readNewLines() []string {
	info, err := os.Stat(t.path)
	if err != nil {
		return nil
	}

	size := info.Size()
	if size < t.offset {
		t.offset = 0
		t.partial = nil
	}
	if size == t.offset {
		return nil
	}

	f, err := os.Open(t.path)
	if err != nil {
		return nil
	}
	defer f.Close()

	if _, err := f.Seek(t.offset, io.SeekStart); err != nil {
		return nil
	}
	data, err := io.ReadAll(f)
	if err != nil {
		// Partial reads are retried from the same offset next poll.
		return nil
	}
	t.offset += int64(len(data))

	buf := append(t.partial, data...)
	t.partial = nil

	var lines []string
	for {
		idx := bytes.IndexByte(buf, '\n')
		if idx < 0 {
			break
		}
		line := strings.TrimSuffix(string(buf[:idx]), "\r")
		lines = append(lines, strings.ToValidUTF8(line, "�"))
		buf = buf[idx+1:]
	}
	if len(buf) > 0 {
		t.partial = append([]byte(nil), buf...)
	}
	return lines
}

func (t *FileTail) parseStructuredLine(line string) (Entry, bool) {
	var record map[string]any
	if err := json.Unmarshal([]byte(line), &record); err != nil {
		return Entry{}, false
	}

	source := t.source
	if stage, ok := record["stage"].(string); ok && stage != "" {
		source = stage
	}
	timestamp, when := normalizeTimestamp(record["ts"])

	return Entry{
		JobID:     t.jobID,
		Source:    source,
		Timestamp: timestamp,
		When:      when,
		Level:     stringField(record, "level"),
		Event:     stringField(record, "event"),
		Message:   stringField(record, "msg"),
		Raw:       record,
	}, true
}

func (t *FileTail) parsePlainLine(line string) (Entry, bool) {
	m := plainLinePattern.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, false
	}

	return Entry{
		JobID:     m[2],
		Source:    m[3],
		Timestamp: m[1],
		When:      parseTimestamp(m[1]),
		Level:     m[4],
		Message:   m[5],
		Raw:       line,
	}, true
}

func stringField(record map[string]any, key string) string {
	s, _ := record[key].(string)
	return s
}
