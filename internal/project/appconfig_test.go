package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/cubepack/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.Listen = ":9090"
	cfg.CandidateOrder = model.CandidateZYX
	cfg.PricePerM3 = 42000
	cfg.RecentFiles = []string{"/tmp/a.json", "/tmp/b.json"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.Listen != ":9090" {
		t.Errorf("expected Listen=:9090, got %s", loaded.Listen)
	}
	if loaded.CandidateOrder != model.CandidateZYX {
		t.Errorf("expected CandidateOrder=zyx, got %s", loaded.CandidateOrder)
	}
	if loaded.PricePerM3 != 42000 {
		t.Errorf("expected PricePerM3=42000, got %f", loaded.PricePerM3)
	}
	if len(loaded.RecentFiles) != 2 {
		t.Errorf("expected 2 recent files, got %d", len(loaded.RecentFiles))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.Listen != defaults.Listen {
		t.Errorf("expected default listen %s, got %s", defaults.Listen, cfg.Listen)
	}
	if cfg.ItemOrder != model.ItemOrderVolume {
		t.Errorf("expected item order volume, got %s", cfg.ItemOrder)
	}
}

func TestLoadAppConfigPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"listen":":1234"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.Listen != ":1234" {
		t.Errorf("expected Listen=:1234, got %s", cfg.Listen)
	}
	if cfg.MinimumCharge != model.DefaultQuoteRates().MinimumCharge {
		t.Errorf("expected default minimum charge, got %f", cfg.MinimumCharge)
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "dir", "config.json")

	cfg := model.DefaultAppConfig()
	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig should create parent dirs: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestLoadAppConfigNilRecentFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	data := []byte(`{"listen":":8000","recent_files":null}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.RecentFiles == nil {
		t.Error("RecentFiles should not be nil after loading")
	}
}

func TestAddRecentFile(t *testing.T) {
	cfg := model.DefaultAppConfig()
	cfg.RecentFiles = []string{"a", "b", "c"}

	cfg = AddRecentFile(cfg, "b", 3)
	if got := cfg.RecentFiles; len(got) != 3 || got[0] != "b" || got[1] != "a" || got[2] != "c" {
		t.Errorf("unexpected recent files %v", got)
	}

	cfg = AddRecentFile(cfg, "d", 2)
	if got := cfg.RecentFiles; len(got) != 2 || got[0] != "d" || got[1] != "b" {
		t.Errorf("unexpected recent files %v", got)
	}
}
