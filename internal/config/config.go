package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the resolved settings mapgenctl runs with. It is built
// once at startup and passed explicitly; nothing reads the environment
// after Load returns.
type Config struct {
	// LogRoot is the directory containing per-job log directories
	// (<LogRoot>/jobs/<job-id>/).
	LogRoot string
	// PipelineRoot is the directory containing the stage directories with
	// their inbox/outbox/archive layout.
	PipelineRoot string
	// Debug enables the diagnostics log file under LogRoot.
	Debug bool
}

const (
	defaultConfigPath   = "~/.config/mapgenctl/config.toml"
	defaultLogRoot      = "./logs"
	defaultPipelineRoot = "./MapGenerator"

	logRootEnv      = "MAPGEN_LOG_ROOT"
	pipelineRootEnv = "MAPGEN_ROOT"
)

// Load resolves the configuration: a repo-local .env file is folded into the
// environment first, then the TOML config file is read (missing file falls
// back to defaults), then environment variables override both.
func Load(path string) (Config, error) {
	// Values already present in the environment win over .env entries.
	_ = godotenv.Load()

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{LogRoot: defaultLogRoot, PipelineRoot: defaultPipelineRoot}

	data, err := os.ReadFile(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No config file is a normal setup.
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		var raw struct {
			LogRoot      string `toml:"log_root"`
			PipelineRoot string `toml:"pipeline_root"`
			Debug        bool   `toml:"debug"`
		}
		if err := toml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		if v := strings.TrimSpace(raw.LogRoot); v != "" {
			cfg.LogRoot = v
		}
		if v := strings.TrimSpace(raw.PipelineRoot); v != "" {
			cfg.PipelineRoot = v
		}
		cfg.Debug = raw.Debug
	}

	if v := strings.TrimSpace(os.Getenv(logRootEnv)); v != "" {
		cfg.LogRoot = v
	}
	if v := strings.TrimSpace(os.Getenv(pipelineRootEnv)); v != "" {
		cfg.PipelineRoot = v
	}

	cfg.LogRoot = mustExpand(cfg.LogRoot)
	cfg.PipelineRoot = mustExpand(cfg.PipelineRoot)
	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
