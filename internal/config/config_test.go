package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("MAPGEN_LOG_ROOT", "")
	t.Setenv("MAPGEN_ROOT", "")

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	wantLog, err := expandPath(defaultLogRoot)
	if err != nil {
		t.Fatalf("expandPath: %v", err)
	}
	if cfg.LogRoot != wantLog {
		t.Fatalf("LogRoot = %q, want %q", cfg.LogRoot, wantLog)
	}
	wantPipe, err := expandPath(defaultPipelineRoot)
	if err != nil {
		t.Fatalf("expandPath: %v", err)
	}
	if cfg.PipelineRoot != wantPipe {
		t.Fatalf("PipelineRoot = %q, want %q", cfg.PipelineRoot, wantPipe)
	}
	if cfg.Debug {
		t.Fatal("Debug should default to false")
	}
}

func TestLoad_ParsesConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("MAPGEN_LOG_ROOT", "")
	t.Setenv("MAPGEN_ROOT", "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
log_root = "~/mapgen/logs"
pipeline_root = "/srv/MapGenerator"
debug = true
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LogRoot != filepath.Join(home, "mapgen", "logs") {
		t.Fatalf("LogRoot = %q, want under HOME", cfg.LogRoot)
	}
	if cfg.PipelineRoot != "/srv/MapGenerator" {
		t.Fatalf("PipelineRoot = %q", cfg.PipelineRoot)
	}
	if !cfg.Debug {
		t.Fatal("Debug should be true")
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`log_root = "/from/file"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	t.Setenv("MAPGEN_LOG_ROOT", "/from/env")
	t.Setenv("MAPGEN_ROOT", "/pipe/env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LogRoot != "/from/env" {
		t.Fatalf("LogRoot = %q, want env override", cfg.LogRoot)
	}
	if cfg.PipelineRoot != "/pipe/env" {
		t.Fatalf("PipelineRoot = %q, want env override", cfg.PipelineRoot)
	}
}

func TestLoad_RejectsInvalidTOML(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`log_root = [broken`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
