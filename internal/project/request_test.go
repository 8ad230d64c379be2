package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/cubepack/internal/model"
)

func TestSaveAndLoadRequest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "request.json")

	settings := model.PackSettings{CandidateOrder: model.CandidateYZX, ItemOrder: model.ItemOrderInput}
	req := model.PackingRequest{
		Bins:     []model.Bin{{ID: "truck", Width: 200, Height: 200, Depth: 400}},
		Items:    []model.Item{{ID: "a", Name: "Crate", Width: 50, Height: 50, Depth: 50, Color: "#ff0000"}},
		Settings: &settings,
	}

	if err := SaveRequest(path, req); err != nil {
		t.Fatalf("SaveRequest failed: %v", err)
	}

	loaded, err := LoadRequest(path)
	if err != nil {
		t.Fatalf("LoadRequest failed: %v", err)
	}
	if len(loaded.Bins) != 1 || loaded.Bins[0].ID != "truck" {
		t.Errorf("unexpected bins %+v", loaded.Bins)
	}
	if len(loaded.Items) != 1 || loaded.Items[0].Color != "#ff0000" {
		t.Errorf("unexpected items %+v", loaded.Items)
	}
	if loaded.Settings == nil || *loaded.Settings != settings {
		t.Errorf("unexpected settings %+v", loaded.Settings)
	}
}

func TestLoadRequestEmptyLists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "request.json")
	if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}

	req, err := LoadRequest(path)
	if err != nil {
		t.Fatalf("LoadRequest failed: %v", err)
	}
	if req.Bins == nil || req.Items == nil {
		t.Error("Bins and Items should not be nil after loading")
	}
	if req.Settings != nil {
		t.Error("expected no settings")
	}
}

func TestLoadRequestMissingFile(t *testing.T) {
	if _, err := LoadRequest(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSaveAndLoadResult(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "result.json")

	result := model.PackingResult{
		PackedBins: []model.PackedBin{{
			BinID:      "Bin 1",
			Bin:        model.Bin{Width: 100, Height: 100, Depth: 100},
			Items:      []model.Placement{model.NewPlacement(model.Item{ID: "a", Width: 50, Height: 50, Depth: 50}, model.Point{X: 0})},
			Efficiency: 12.5,
		}},
		UnpackedItems: []model.Item{{ID: "b", Width: 200, Height: 1, Depth: 1}},
	}
	quote := model.CalculateStorageQuote(result, model.DefaultQuoteRates())

	if err := SaveResult(path, model.DefaultSettings(), result, quote); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}

	file, err := LoadResult(path)
	if err != nil {
		t.Fatalf("LoadResult failed: %v", err)
	}
	if file.Version != resultFileVersion {
		t.Errorf("expected version %s, got %s", resultFileVersion, file.Version)
	}
	if file.Summary.PackedCount != 1 || file.Summary.UnpackedCount != 1 {
		t.Errorf("unexpected summary %+v", file.Summary)
	}
	if file.Quote.Status != model.QuotePartial {
		t.Errorf("expected partial quote, got %s", file.Quote.Status)
	}
	if len(file.Result.PackedBins) != 1 || file.Result.PackedBins[0].Items[0].ID != "a" {
		t.Errorf("unexpected result %+v", file.Result)
	}
}

func TestLoadResultMissingVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "result.json")
	if err := os.WriteFile(path, []byte(`{"result":{}}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadResult(path); err == nil {
		t.Fatal("expected error for missing version")
	}
}
