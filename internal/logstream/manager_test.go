package logstream

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drainChannel(ch chan Entry) []Entry {
	var out []Entry
	for {
		select {
		case e := <-ch:
			out = append(out, e)
		default:
			return out
		}
	}
}

func TestTailManagerDiscoversSourcesDynamically(t *testing.T) {
	jobDir := t.TempDir()
	ch := make(chan Entry, 64)
	m := NewTailManager("job-1", jobDir, ch, zerolog.Nop())

	// Nothing exists yet: a tick is a no-op, not an error.
	m.Tick()
	assert.Empty(t, m.Sources())

	appendFile(t, filepath.Join(jobDir, "mapgenctl.log"),
		"2024-01-15T12:00:00Z [job=job-1] [stage=mapgenctl] INFO submitted\n")
	m.Tick()
	assert.Equal(t, []string{"mapgenctl"}, m.Sources())

	// A stage starts later and its log appears.
	appendFile(t, filepath.Join(jobDir, "heightmap.log.jsonl"),
		`{"ts":1705320000000,"stage":"heightmap","level":"Info","msg":"started"}`+"\n")
	m.Tick()
	assert.Equal(t, []string{"mapgenctl", "heightmap"}, m.Sources())

	entries := drainChannel(ch)
	require.Len(t, entries, 2)
	assert.Equal(t, "submitted", entries[0].Message)
	assert.Equal(t, "started", entries[1].Message)
}

func TestTailManagerNeverRecreatesTails(t *testing.T) {
	jobDir := t.TempDir()
	ch := make(chan Entry, 64)
	m := NewTailManager("job-1", jobDir, ch, zerolog.Nop())

	path := filepath.Join(jobDir, "tiler.log.jsonl")
	appendFile(t, path, `{"ts":1,"msg":"one"}`+"\n")
	m.Tick()
	m.Tick()
	m.Tick()

	// If discovery recreated the tail, the file would be re-read from
	// offset zero and "one" would repeat.
	entries := drainChannel(ch)
	require.Len(t, entries, 1)
	assert.Equal(t, "one", entries[0].Message)
}

func TestTailManagerDropsWhenChannelFull(t *testing.T) {
	jobDir := t.TempDir()
	ch := make(chan Entry, 1)
	m := NewTailManager("job-1", jobDir, ch, zerolog.Nop())

	appendFile(t, filepath.Join(jobDir, "weather.log.jsonl"),
		`{"ts":1,"msg":"a"}`+"\n"+`{"ts":2,"msg":"b"}`+"\n"+`{"ts":3,"msg":"c"}`+"\n")
	m.Tick()

	assert.Equal(t, uint64(2), m.Dropped())
	entries := drainChannel(ch)
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].Message)
}

func TestTailManagerIgnoresUnrelatedFiles(t *testing.T) {
	jobDir := t.TempDir()
	ch := make(chan Entry, 8)
	m := NewTailManager("job-1", jobDir, ch, zerolog.Nop())

	require.NoError(t, os.WriteFile(filepath.Join(jobDir, "notes.txt"), []byte("x\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(jobDir, "dump.bin"), []byte{0x00}, 0o644))
	m.Tick()

	assert.Empty(t, m.Sources())
	assert.Empty(t, drainChannel(ch))
}
