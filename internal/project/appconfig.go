package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/cubepack/internal/model"
)

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.cubepack/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".cubepack")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	return writeJSON(path, config)
}

// LoadAppConfig reads an AppConfig from the given path. Keys missing from
// the file keep their default value. If the file does not exist, it returns
// DefaultAppConfig with no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, err
	}
	config := model.DefaultAppConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, err
	}
	// Ensure RecentFiles is never nil
	if config.RecentFiles == nil {
		config.RecentFiles = []string{}
	}
	return config, nil
}

// AddRecentFile moves path to the front of the recent file list, keeping at
// most max entries.
func AddRecentFile(config model.AppConfig, path string, max int) model.AppConfig {
	recent := []string{path}
	for _, p := range config.RecentFiles {
		if p != path && len(recent) < max {
			recent = append(recent, p)
		}
	}
	config.RecentFiles = recent
	return config
}

// writeJSON writes v as indented JSON, creating parent directories.
func writeJSON(path string, v interface{}) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
