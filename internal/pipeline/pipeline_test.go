package pipeline

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeArtifact(t *testing.T, root, stageDir, name string) {
	t.Helper()
	dir := filepath.Join(root, stageDir, "outbox")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestSubmitWritesJobDescriptor(t *testing.T) {
	root := t.TempDir()

	jobID, err := Submit(root, 64, 48)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if jobID == "" {
		t.Fatal("Submit returned empty job id")
	}

	data, err := os.ReadFile(filepath.Join(root, "Heightmap", "inbox", jobID+".json"))
	if err != nil {
		t.Fatalf("reading descriptor: %v", err)
	}

	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		t.Fatalf("descriptor is not valid JSON: %v", err)
	}
	if req.JobID != jobID {
		t.Errorf("job_id = %q, want %q", req.JobID, jobID)
	}
	if req.MapWidthCells != 64 || req.MapHeightCells != 48 {
		t.Errorf("dimensions = %dx%d, want 64x48", req.MapWidthCells, req.MapHeightCells)
	}
	if !strings.HasSuffix(req.RequestedAtUTC, "Z") {
		t.Errorf("requested_at_utc = %q, want UTC suffix", req.RequestedAtUTC)
	}
}

func TestStageCompletion(t *testing.T) {
	root := t.TempDir()
	jobID := "job-42"

	tests := []struct {
		stage    string
		stageDir string
		artifact string
	}{
		{"heightmap", "Heightmap", jobID + ".heightmap"},
		{"tiler", "Tiler", jobID + ".maptiles"},
		{"weather", "WeatherAnalyses", jobID + ".weather"},
		{"treeplanter", "TreePlanter", jobID + ".worldpayload"},
	}

	for _, tt := range tests {
		t.Run(tt.stage, func(t *testing.T) {
			done, err := StageComplete(root, tt.stage, jobID)
			if err != nil {
				t.Fatalf("StageComplete: %v", err)
			}
			if done {
				t.Fatal("stage should not be complete before artifact exists")
			}

			writeArtifact(t, root, tt.stageDir, tt.artifact)

			done, err = StageComplete(root, tt.stage, jobID)
			if err != nil {
				t.Fatalf("StageComplete: %v", err)
			}
			if !done {
				t.Fatal("stage should be complete once artifact exists")
			}
		})
	}
}

func TestStageCompleteUnknownStage(t *testing.T) {
	if _, err := StageComplete(t.TempDir(), "clouds", "job"); err == nil {
		t.Fatal("expected error for unknown stage")
	}
}

func TestCompletionCoversAllStages(t *testing.T) {
	root := t.TempDir()
	writeArtifact(t, root, "Heightmap", "job-1.heightmap")

	done := Completion(root, "job-1")
	if len(done) != len(Stages) {
		t.Fatalf("Completion returned %d stages, want %d", len(done), len(Stages))
	}
	if !done["heightmap"] {
		t.Error("heightmap should be complete")
	}
	if done["tiler"] || done["weather"] || done["treeplanter"] {
		t.Error("later stages should be incomplete")
	}
}

func TestCleanRemovesFiles(t *testing.T) {
	root := t.TempDir()
	for _, sub := range []string{"inbox", "outbox", "archive"} {
		dir := filepath.Join(root, "Tiler", sub)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "stale.json"), []byte("{}"), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}

	var out bytes.Buffer
	if err := Clean(root, "tiler", &out); err != nil {
		t.Fatalf("Clean: %v", err)
	}

	for _, sub := range []string{"inbox", "outbox", "archive"} {
		entries, err := os.ReadDir(filepath.Join(root, "Tiler", sub))
		if err != nil {
			t.Fatalf("ReadDir: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("%s not emptied: %d entries remain", sub, len(entries))
		}
	}
	if !strings.Contains(out.String(), "removed 1 files") {
		t.Errorf("output missing removal count: %q", out.String())
	}
}

func TestDiscoverJobsSortsByActivity(t *testing.T) {
	logRoot := t.TempDir()
	jobsDir := filepath.Join(logRoot, "jobs")

	writeLog := func(jobID, name string, mtime time.Time) {
		dir := filepath.Join(jobsDir, jobID)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		if err := os.Chtimes(path, mtime, mtime); err != nil {
			t.Fatalf("Chtimes: %v", err)
		}
	}

	now := time.Now()
	writeLog("old-job", "heightmap.log.jsonl", now.Add(-time.Hour))
	writeLog("new-job", "heightmap.log.jsonl", now)
	writeLog("new-job", "tiler.log.jsonl", now.Add(-time.Minute))

	// A directory with no stage logs is not a job.
	if err := os.MkdirAll(filepath.Join(jobsDir, "empty-job"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	jobs := DiscoverJobs(logRoot)
	if len(jobs) != 2 {
		t.Fatalf("DiscoverJobs returned %d jobs, want 2", len(jobs))
	}
	if jobs[0].JobID != "new-job" || jobs[1].JobID != "old-job" {
		t.Errorf("order = [%s, %s], want newest first", jobs[0].JobID, jobs[1].JobID)
	}
	if len(jobs[0].Stages) != 2 || jobs[0].Stages[0] != "heightmap" || jobs[0].Stages[1] != "tiler" {
		t.Errorf("stages = %v", jobs[0].Stages)
	}
}

func TestDiscoverJobsMissingRoot(t *testing.T) {
	if jobs := DiscoverJobs(filepath.Join(t.TempDir(), "nope")); jobs != nil {
		t.Fatalf("expected nil for missing root, got %v", jobs)
	}
}
