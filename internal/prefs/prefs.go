// Package prefs handles mapgenctl user preferences persistence.
// Preferences are stored in ~/.config/mapgenctl/prefs.toml, separate from
// the pipeline configuration so cosmetic choices never touch path
// resolution.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences for the terminal views.
type Prefs struct {
	Theme string `toml:"theme"`
}

const (
	defaultPrefsPath = "~/.config/mapgenctl/prefs.toml"
	defaultTheme     = "dark"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from the given path. A missing or unreadable file
// is not an error; preferences degrade to defaults so the views always
// start.
func Load(path string) Prefs {
	p := Prefs{Theme: defaultTheme}

	resolved, err := resolvePath(path)
	if err != nil {
		return p
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return p
	}
	if err := toml.Unmarshal(data, &p); err != nil {
		return Prefs{Theme: defaultTheme}
	}
	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = defaultTheme
	}
	return p
}

// Save writes preferences to the given path, creating directories as
// needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is empty")
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
