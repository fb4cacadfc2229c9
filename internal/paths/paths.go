// Package paths resolves the canonical filesystem locations of the
// map-generation pipeline. The pipeline is filesystem-driven: each stage
// reads job descriptors from its inbox and writes artifacts to its outbox,
// so every component must agree on where those directories live.
package paths

import (
	"fmt"
	"path/filepath"
)

// stageDirectories maps logical stage names to their directory names under
// the pipeline root. Most stages use capitalized names; weather is special.
var stageDirectories = map[string]string{
	"heightmap":   "Heightmap",
	"tiler":       "Tiler",
	"weather":     "WeatherAnalyses",
	"treeplanter": "TreePlanter",
}

// StageDir returns the root directory of a pipeline stage. An unknown stage
// name is a caller programming error and returns an error rather than a
// guessed path.
func StageDir(pipelineRoot, stage string) (string, error) {
	dir, ok := stageDirectories[stage]
	if !ok {
		return "", fmt.Errorf("unknown pipeline stage %q", stage)
	}
	return filepath.Join(pipelineRoot, dir), nil
}

// StageInbox returns the directory where job descriptors are submitted to a
// stage.
func StageInbox(pipelineRoot, stage string) (string, error) {
	dir, err := StageDir(pipelineRoot, stage)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "inbox"), nil
}

// StageOutbox returns the directory where a stage writes completed
// artifacts. Artifact presence here is the only completion signal.
func StageOutbox(pipelineRoot, stage string) (string, error) {
	dir, err := StageDir(pipelineRoot, stage)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "outbox"), nil
}

// StageArchive returns the directory where processed job files are moved
// after completion.
func StageArchive(pipelineRoot, stage string) (string, error) {
	dir, err := StageDir(pipelineRoot, stage)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "archive"), nil
}

// JobsDir returns the directory holding per-job log directories.
func JobsDir(logRoot string) string {
	return filepath.Join(logRoot, "jobs")
}

// JobLogDir returns the log directory for one job. All of a job's logs,
// the plain-text orchestration log and the per-stage JSONL logs, live here.
func JobLogDir(logRoot, jobID string) string {
	return filepath.Join(JobsDir(logRoot), jobID)
}

// JobLogPath returns the plain-text orchestration log file for a job.
func JobLogPath(logRoot, jobID string) string {
	return filepath.Join(JobLogDir(logRoot, jobID), "mapgenctl.log")
}
