package logstream

// Transcript is a bounded, append-only sequence of formatted display lines.
// Past capacity the oldest line is evicted. It is owned by the presenter
// loop and is not safe for concurrent use.
type Transcript struct {
	lines []string
	start int
	count int
}

// NewTranscript creates a transcript holding at most capacity lines.
// Capacity must be positive.
func NewTranscript(capacity int) *Transcript {
	if capacity <= 0 {
		capacity = 1
	}
	return &Transcript{lines: make([]string, capacity)}
}

// Append adds a line, evicting the oldest when full.
func (t *Transcript) Append(line string) {
	idx := (t.start + t.count) % len(t.lines)
	t.lines[idx] = line
	if t.count < len(t.lines) {
		t.count++
		return
	}
	t.start = (t.start + 1) % len(t.lines)
}

// Len returns the number of retained lines.
func (t *Transcript) Len() int {
	return t.count
}

// Last returns up to n of the most recent lines, oldest first.
func (t *Transcript) Last(n int) []string {
	if n <= 0 || t.count == 0 {
		return nil
	}
	if n > t.count {
		n = t.count
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = t.lines[(t.start+t.count-n+i)%len(t.lines)]
	}
	return out
}
