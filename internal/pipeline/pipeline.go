package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mapgenworks/mapgenctl/internal/paths"
)

// Stages lists the pipeline stages in execution order. The order defines
// progress display and the valid values for run's --until flag.
var Stages = []string{"heightmap", "tiler", "weather", "treeplanter"}

// artifactSuffixes maps each stage to the file suffix of its authoritative
// output artifact. Presence of that artifact in the stage's outbox is the
// only completion signal.
var artifactSuffixes = map[string]string{
	"heightmap":   ".heightmap",
	"tiler":       ".maptiles",
	"weather":     ".weather",
	"treeplanter": ".worldpayload",
}

// IsStage reports whether name is a known pipeline stage.
func IsStage(name string) bool {
	_, ok := artifactSuffixes[name]
	return ok
}

// Request is the job descriptor written into the heightmap inbox. Stage
// engines parse it by these exact keys.
type Request struct {
	JobID          string `json:"job_id"`
	MapWidthCells  int    `json:"map_width_in_cells"`
	MapHeightCells int    `json:"map_height_in_cells"`
	RequestedAtUTC string `json:"requested_at_utc"`
}

// Submit writes a new job descriptor into the heightmap inbox and returns
// the generated job id. The inbox is created if missing.
func Submit(pipelineRoot string, width, height int) (string, error) {
	inbox, err := paths.StageInbox(pipelineRoot, "heightmap")
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(inbox, 0o755); err != nil {
		return "", fmt.Errorf("create inbox: %w", err)
	}

	jobID := uuid.NewString()
	req := Request{
		JobID:          jobID,
		MapWidthCells:  width,
		MapHeightCells: height,
		RequestedAtUTC: time.Now().UTC().Format("2006-01-02T15:04:05") + "Z",
	}

	data, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode job request: %w", err)
	}
	if err := os.WriteFile(filepath.Join(inbox, jobID+".json"), data, 0o644); err != nil {
		return "", fmt.Errorf("write job request: %w", err)
	}
	return jobID, nil
}

// StageComplete reports whether a stage has produced its output artifact
// for the given job. Unknown stages are a caller error.
func StageComplete(pipelineRoot, stage, jobID string) (bool, error) {
	suffix, ok := artifactSuffixes[stage]
	if !ok {
		return false, fmt.Errorf("unknown pipeline stage %q", stage)
	}
	outbox, err := paths.StageOutbox(pipelineRoot, stage)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(filepath.Join(outbox, jobID+suffix))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	// Transient stat failure reads as "not yet complete"; the next poll
	// retries.
	return false, nil
}

// Completion returns the completion state of every stage for a job.
func Completion(pipelineRoot, jobID string) map[string]bool {
	done := make(map[string]bool, len(Stages))
	for _, stage := range Stages {
		ok, err := StageComplete(pipelineRoot, stage, jobID)
		done[stage] = err == nil && ok
	}
	return done
}
