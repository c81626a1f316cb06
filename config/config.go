// Package config persists deckgen defaults as a JSON file under the
// user config directory. Command-line flags override everything here.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config structure
type Config struct {
	DefaultTemplate string            `json:"defaultTemplate,omitempty"` // template used when a manifest names none
	FontPath        string            `json:"fontPath,omitempty"`        // TrueType font for chart labels
	DPI             int               `json:"dpi"`                       // figure raster resolution
	OutputDir       string            `json:"outputDir,omitempty"`       // default directory for built decks
	ColorMap        map[string]string `json:"colorMap,omitempty"`        // table cell value -> ARGB color
	DetailedLog     bool              `json:"detailedLog"`
}

// Default returns a config with defaults applied.
func Default() Config {
	return Config{DPI: 200}
}

// Dir returns the config directory, creating it if needed.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	dir := filepath.Join(base, "deckgen")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config dir: %w", err)
	}
	return dir, nil
}

func configPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config file, returning defaults when it does not
// exist yet.
func Load() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads a config file from an explicit path.
func LoadFrom(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 200
	}
	return cfg, nil
}

// Save writes the config file.
func Save(cfg Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	return SaveTo(cfg, path)
}

// SaveTo writes a config file to an explicit path.
func SaveTo(cfg Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
