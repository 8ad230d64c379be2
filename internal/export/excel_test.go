package export

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/cubepack/internal/importer"
	"github.com/piwi3910/cubepack/internal/model"
	"github.com/xuri/excelize/v2"
)

func TestExportExcel_Sheets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.xlsx")

	result := buildTestResult()
	result.UnpackedItems = []model.Item{{ID: "u1", Name: "Too Big", Width: 300, Height: 300, Depth: 300}}

	if err := ExportExcel(path, result); err != nil {
		t.Fatalf("ExportExcel returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	want := []string{sheetPlacements, sheetBins, sheetUnpacked}
	if len(sheets) != len(want) {
		t.Fatalf("expected sheets %v, got %v", want, sheets)
	}
	for i := range want {
		if sheets[i] != want[i] {
			t.Errorf("sheet %d: expected %q, got %q", i, want[i], sheets[i])
		}
	}

	rows, err := f.GetRows(sheetPlacements)
	if err != nil {
		t.Fatalf("failed to read rows: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("expected header + 4 placements, got %d rows", len(rows))
	}
	if rows[1][0] != "Bin 1" || rows[1][1] != "p1" {
		t.Errorf("unexpected first placement row %v", rows[1])
	}

	binRows, _ := f.GetRows(sheetBins)
	if len(binRows) != 3 {
		t.Errorf("expected header + 2 bins, got %d rows", len(binRows))
	}
}

func TestExportExcel_NoUnpackedSheetWhenComplete(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.xlsx")

	if err := ExportExcel(path, buildTestResult()); err != nil {
		t.Fatalf("ExportExcel returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex(sheetUnpacked); idx != -1 {
		t.Errorf("expected no %s sheet", sheetUnpacked)
	}
}

func TestExportExcel_ReimportsPlacedItems(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.xlsx")

	if err := ExportExcel(path, buildTestResult()); err != nil {
		t.Fatalf("ExportExcel returned error: %v", err)
	}

	imported := importer.ImportExcel(path)
	if len(imported.Errors) > 0 {
		t.Fatalf("unexpected import errors: %v", imported.Errors)
	}
	if len(imported.Items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(imported.Items))
	}
	if imported.Items[0].ID != "p1" || imported.Items[0].Width != 100 {
		t.Errorf("unexpected first item %+v", imported.Items[0])
	}
}

func TestExportExcel_EmptyResult(t *testing.T) {
	dir := t.TempDir()
	if err := ExportExcel(filepath.Join(dir, "x.xlsx"), model.PackingResult{}); err == nil {
		t.Fatal("expected error for empty result, got nil")
	}
}
