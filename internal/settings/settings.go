// Package settings loads and saves the modprof settings file, which records
// where the user's Cemu installation and game dump live.
package settings

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Settings holds the user-editable application settings.
type Settings struct {
	// CemuDir is the Cemu installation directory.
	CemuDir string `yaml:"cemu_dir,omitempty"`
	// MlcDir overrides the mlc save directory. When empty, the mlc
	// directory is resolved as <cemu_dir>/mlc01.
	MlcDir string `yaml:"mlc_dir,omitempty"`
	// GameDir is the base game content directory.
	GameDir string `yaml:"game_dir,omitempty"`
}

// Load reads a settings file. A missing file is not an error; it yields
// zero-value settings so first-run flows can prompt for directories.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("reading settings: %w", err)
	}
	return Parse(data)
}

// Parse parses settings YAML.
func Parse(data []byte) (Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parsing settings: %w", err)
	}
	return s, nil
}

// Save writes the settings file, creating its parent directory if needed.
func Save(path string, s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating settings dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// ResolveMlcDir returns the effective mlc directory: the explicit override
// when set, otherwise the mlc_path recorded in Cemu's own settings.xml,
// otherwise <cemu_dir>/mlc01. Returns an error when no Cemu directory is
// configured.
func (s Settings) ResolveMlcDir() (string, error) {
	if s.MlcDir != "" {
		return s.MlcDir, nil
	}
	if s.CemuDir == "" {
		return "", fmt.Errorf("no Cemu directory configured (run setup first)")
	}
	if mlc := cemuMlcPath(filepath.Join(s.CemuDir, "settings.xml")); mlc != "" {
		return mlc, nil
	}
	return filepath.Join(s.CemuDir, "mlc01"), nil
}

// cemuMlcPath reads the mlc_path element from Cemu's settings.xml. A
// missing, unparsable, or mlc_path-less file yields "", and callers fall
// back to the default mlc01 location, matching Cemu's own behavior.
func cemuMlcPath(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var cfg struct {
		MlcPath string `xml:"mlc_path"`
	}
	if err := xml.Unmarshal(data, &cfg); err != nil {
		return ""
	}
	return strings.TrimSpace(cfg.MlcPath)
}
