package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/piwi3910/cubepack/internal/model"
)

// ErrInvalidBackup is returned for files that are not a readable backup.
var ErrInvalidBackup = errors.New("invalid backup file")

const backupVersion = "1.0.0"

// BackupData bundles the config file and the container catalog.
type BackupData struct {
	Version   string          `json:"version"`
	CreatedAt string          `json:"created_at"`
	Config    model.AppConfig `json:"config"`
	Catalog   model.Catalog   `json:"catalog"`
}

// ExportAllData writes config and cat to one backup file.
func ExportAllData(exportPath string, config model.AppConfig, cat model.Catalog) error {
	backup := BackupData{
		Version:   backupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Catalog:   cat,
	}
	if err := writeJSON(exportPath, backup); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads and checks a backup file. Only 1.x backups are
// accepted, and every catalog container must have valid dimensions.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}

	backup := BackupData{Config: model.DefaultAppConfig()}
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if err := backup.check(); err != nil {
		return BackupData{}, err
	}
	if backup.Config.RecentFiles == nil {
		backup.Config.RecentFiles = []string{}
	}
	return backup, nil
}

func (b BackupData) check() error {
	switch {
	case b.Version == "":
		return fmt.Errorf("%w: missing version field", ErrInvalidBackup)
	case !strings.HasPrefix(b.Version, "1."):
		return fmt.Errorf("%w: unsupported version %s", ErrInvalidBackup, b.Version)
	}
	for _, c := range b.Catalog.Containers {
		if c.ID == "" {
			return fmt.Errorf("%w: container %q has no id", ErrInvalidBackup, c.Name)
		}
		if err := model.ValidateBins(c.ToBins(1)); err != nil {
			return fmt.Errorf("%w: container %q: %v", ErrInvalidBackup, c.Name, err)
		}
	}
	return nil
}

// RestoreBackup writes the config and catalog of a backup to their files.
func RestoreBackup(backup BackupData, configPath, catalogPath string) error {
	if err := SaveAppConfig(configPath, backup.Config); err != nil {
		return fmt.Errorf("failed to restore config: %w", err)
	}
	if err := SaveCatalog(catalogPath, backup.Catalog); err != nil {
		return fmt.Errorf("failed to restore catalog: %w", err)
	}
	return nil
}
