package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/mapgenworks/mapgenctl/internal/paths"
)

// stageDirs returns the inbox, outbox, and archive paths for a stage, in a
// fixed display order.
func stageDirs(pipelineRoot, stage string) ([]struct{ name, path string }, error) {
	inbox, err := paths.StageInbox(pipelineRoot, stage)
	if err != nil {
		return nil, err
	}
	outbox, err := paths.StageOutbox(pipelineRoot, stage)
	if err != nil {
		return nil, err
	}
	archive, err := paths.StageArchive(pipelineRoot, stage)
	if err != nil {
		return nil, err
	}
	return []struct{ name, path string }{
		{"inbox", inbox},
		{"outbox", outbox},
		{"archive", archive},
	}, nil
}

// Clean removes all files from a stage's inbox, outbox, and archive.
// Development resets only; directories themselves are kept.
func Clean(pipelineRoot, stage string, out io.Writer) error {
	dirs, err := stageDirs(pipelineRoot, stage)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "[mapgenctl] Cleaning stage: %s\n", stage)
	for _, d := range dirs {
		entries, err := os.ReadDir(d.path)
		if err != nil {
			fmt.Fprintf(out, "  %s: %s (missing, skipped)\n", d.name, d.path)
			continue
		}
		removed := 0
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if err := os.Remove(filepath.Join(d.path, entry.Name())); err == nil {
				removed++
			}
		}
		fmt.Fprintf(out, "  %s: removed %d files\n", d.name, removed)
	}
	fmt.Fprintln(out, "[mapgenctl] Clean complete")
	return nil
}

// Watch polls a stage's directories once per interval and prints filename
// additions and removals until ctx is cancelled.
func Watch(ctx context.Context, pipelineRoot, stage string, interval time.Duration, out io.Writer) error {
	dirs, err := stageDirs(pipelineRoot, stage)
	if err != nil {
		return err
	}

	for _, d := range dirs {
		if err := os.MkdirAll(d.path, 0o755); err != nil {
			return fmt.Errorf("create %s dir: %w", d.name, err)
		}
	}

	fmt.Fprintf(out, "[mapgenctl] Watching stage: %s\n", stage)
	previous := make(map[string]map[string]bool, len(dirs))
	for _, d := range dirs {
		fmt.Fprintf(out, "  %s: %s\n", d.name, d.path)
		previous[d.name] = listNames(d.path)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "[mapgenctl] Watch stopped")
			return nil
		case <-ticker.C:
		}

		for _, d := range dirs {
			current := listNames(d.path)
			for _, name := range sortedDiff(current, previous[d.name]) {
				fmt.Fprintf(out, "[%s:%s] + %s\n", stage, d.name, name)
			}
			for _, name := range sortedDiff(previous[d.name], current) {
				fmt.Fprintf(out, "[%s:%s] - %s\n", stage, d.name, name)
			}
			previous[d.name] = current
		}
	}
}

func listNames(dir string) map[string]bool {
	names := make(map[string]bool)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return names
	}
	for _, entry := range entries {
		names[entry.Name()] = true
	}
	return names
}

// sortedDiff returns the names present in a but not in b, sorted.
func sortedDiff(a, b map[string]bool) []string {
	var out []string
	for name := range a {
		if !b[name] {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
