// Package logtail reads the last lines of a log file for one-shot display.
//
// Unlike the incremental tails in logstream, this is a stateless read used
// by the run-progress view to show the newest orchestration log lines under
// the stage checklist. A ring buffer keeps memory at O(maxLines) regardless
// of file size.
package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
)

// Tail returns at most maxLines lines from the end of the file at path, in
// file order. A missing file yields nil, nil: logs that do not exist yet
// are a normal pipeline state, not an error.
func Tail(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	ring := make([]string, maxLines)
	next := 0
	total := 0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		ring[next] = scanner.Text()
		next = (next + 1) % maxLines
		total++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if total <= maxLines {
		return ring[:total], nil
	}

	// The ring wrapped: the oldest retained line sits at next.
	out := make([]string, maxLines)
	for i := range out {
		out[i] = ring[(next+i)%maxLines]
	}
	return out, nil
}
