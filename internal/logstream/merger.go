package logstream

import (
	"container/heap"
	"time"
)

const (
	// DefaultMaxBuffer bounds the merger's memory; past it, ordering is
	// sacrificed to keep draining.
	DefaultMaxBuffer = 200
	// DefaultMaxDelay is how long an untimestamped entry is held in case a
	// timestamped entry that precedes it is still in flight.
	DefaultMaxDelay = 500 * time.Millisecond
)

// Merger reorders entries from all sources into a single stream that is
// time-ordered to the extent possible without unbounded delay. It is owned
// by the presenter loop and is not safe for concurrent use.
type Merger struct {
	buf       mergeHeap
	maxBuffer int
	maxDelay  time.Duration
	ingested  uint64

	now func() time.Time
}

// NewMerger creates a merger with the given bounds. Non-positive values fall
// back to the defaults.
func NewMerger(maxBuffer int, maxDelay time.Duration) *Merger {
	if maxBuffer <= 0 {
		maxBuffer = DefaultMaxBuffer
	}
	if maxDelay <= 0 {
		maxDelay = DefaultMaxDelay
	}
	return &Merger{maxBuffer: maxBuffer, maxDelay: maxDelay, now: time.Now}
}

// Ingest inserts an entry into the pending buffer. O(log n).
func (m *Merger) Ingest(e Entry) {
	m.ingested++
	heap.Push(&m.buf, mergeItem{key: e.orderKey(), seq: m.ingested, entry: e})
}

// Pending returns how many entries are buffered but not yet drained.
func (m *Merger) Pending() int {
	return m.buf.Len()
}

// Drain returns the entries that are ready for display, oldest key first.
// The head of the buffer is released when any of these holds:
//
//  1. the buffer is over its size bound (forced, ordering best-effort),
//  2. the head carries an explicit timestamp (its order is authoritative),
//  3. the head has waited longer than the delay bound.
//
// Otherwise draining stops: the remaining entries are untimestamped and
// still inside the window where a timestamped predecessor could arrive.
// Entries never reorder once drained, and calling Drain more often only
// lowers latency, never changes the final order.
func (m *Merger) Drain() []Entry {
	now := m.now()
	var out []Entry

	for m.buf.Len() > 0 {
		head := m.buf.items[0].entry

		switch {
		case m.buf.Len() > m.maxBuffer:
			// forced drain
		case head.HasTimestamp():
		case !head.Arrival.After(now.Add(-m.maxDelay)):
		default:
			return out
		}

		out = append(out, heap.Pop(&m.buf).(mergeItem).entry)
	}
	return out
}

type mergeItem struct {
	key   time.Time
	seq   uint64
	entry Entry
}

// mergeHeap is a min-heap over (key, ingest sequence).
type mergeHeap struct {
	items []mergeItem
}

func (h mergeHeap) Len() int { return len(h.items) }

func (h mergeHeap) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if !a.key.Equal(b.key) {
		return a.key.Before(b.key)
	}
	return a.seq < b.seq
}

func (h mergeHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *mergeHeap) Push(x any) { h.items = append(h.items, x.(mergeItem)) }

func (h *mergeHeap) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}
