package pipeline

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mapgenworks/mapgenctl/internal/paths"
)

// JobInfo summarizes one job discovered under the log root.
type JobInfo struct {
	JobID        string
	Stages       []string
	LastModified time.Time
}

// DiscoverJobs scans the log root for jobs that have stage logs and returns
// them newest-activity first. Directories without stage logs are skipped; a
// missing log root yields an empty list, not an error.
func DiscoverJobs(logRoot string) []JobInfo {
	entries, err := os.ReadDir(paths.JobsDir(logRoot))
	if err != nil {
		return nil
	}

	var jobs []JobInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		jobDir := filepath.Join(paths.JobsDir(logRoot), entry.Name())
		matches, err := filepath.Glob(filepath.Join(jobDir, "*.log.jsonl"))
		if err != nil || len(matches) == 0 {
			continue
		}

		info := JobInfo{JobID: entry.Name()}
		for _, path := range matches {
			info.Stages = append(info.Stages, strings.TrimSuffix(filepath.Base(path), ".log.jsonl"))
			if fi, err := os.Stat(path); err == nil && fi.ModTime().After(info.LastModified) {
				info.LastModified = fi.ModTime()
			}
		}
		sort.Strings(info.Stages)
		jobs = append(jobs, info)
	}

	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].LastModified.After(jobs[j].LastModified)
	})
	return jobs
}
