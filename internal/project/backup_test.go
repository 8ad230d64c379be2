package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/cubepack/internal/model"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestBackupRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.LogFormat = "text"
	cat := model.Catalog{Containers: []model.ContainerPreset{model.NewContainerPreset("Crate", 10, 20, 30)}}

	if err := ExportAllData(path, cfg, cat); err != nil {
		t.Fatalf("ExportAllData: %v", err)
	}
	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData: %v", err)
	}

	if backup.Version != backupVersion || backup.CreatedAt == "" {
		t.Errorf("unexpected header %q %q", backup.Version, backup.CreatedAt)
	}
	if backup.Config.LogFormat != "text" {
		t.Errorf("LogFormat: got %s", backup.Config.LogFormat)
	}
	if len(backup.Catalog.Containers) != 1 || backup.Catalog.Containers[0].Depth != 30 {
		t.Errorf("unexpected catalog %+v", backup.Catalog)
	}
}

func TestImportAllDataRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `{not json}`},
		{"missing version", `{"config":{"listen":":1"}}`},
		{"future version", `{"version":"2.0.0"}`},
		{"container without id", `{"version":"1.0.0","catalog":{"containers":[{"name":"x","width":1,"height":1,"depth":1}]}}`},
		{"negative container", `{"version":"1.0.0","catalog":{"containers":[{"id":"c","name":"x","width":-1,"height":1,"depth":1}]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "backup.json")
			writeFile(t, path, tt.data)
			_, err := ImportAllData(path)
			if !errors.Is(err, ErrInvalidBackup) {
				t.Errorf("expected ErrInvalidBackup, got %v", err)
			}
		})
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	_, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportAllDataFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	writeFile(t, path, `{"version":"1.0.0","config":{"listen":":9","recent_files":null}}`)

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData: %v", err)
	}
	if backup.Config.Listen != ":9" {
		t.Errorf("Listen: got %s", backup.Config.Listen)
	}
	if backup.Config.ItemOrder != model.ItemOrderVolume {
		t.Errorf("missing keys should keep defaults, got item order %q", backup.Config.ItemOrder)
	}
	if backup.Config.RecentFiles == nil {
		t.Error("RecentFiles should not be nil")
	}
}

func TestRestoreBackup(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.json")
	catPath := filepath.Join(dir, "catalog.json")

	backup := BackupData{
		Version: backupVersion,
		Config:  model.DefaultAppConfig(),
		Catalog: model.Catalog{Containers: []model.ContainerPreset{{ID: "c1", Name: "Bay", Width: 1, Height: 2, Depth: 3}}},
	}
	backup.Config.Listen = ":7777"

	if err := RestoreBackup(backup, cfgPath, catPath); err != nil {
		t.Fatalf("RestoreBackup: %v", err)
	}

	cfg, err := LoadAppConfig(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Listen != ":7777" {
		t.Errorf("Listen: got %s", cfg.Listen)
	}
	cat, err := LoadCatalog(catPath)
	if err != nil {
		t.Fatal(err)
	}
	if cat.FindByID("c1") == nil {
		t.Error("restored catalog is missing c1")
	}
}
