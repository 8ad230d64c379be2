package export

import (
	"fmt"

	"github.com/piwi3910/cubepack/internal/model"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the Excel manifest.
const (
	sheetPlacements = "Placements"
	sheetBins       = "Bins"
	sheetUnpacked   = "Unpacked"
)

var placementHeaders = []interface{}{"Bin", "ID", "Name", "Width", "Height", "Depth", "X", "Y", "Z", "Color"}

// ExportExcel writes a workbook with one row per placement, a bin summary
// sheet and, when any remain, a sheet of unpacked items. The placement
// columns read back through the item importer.
func ExportExcel(path string, result model.PackingResult) error {
	if len(result.PackedBins) == 0 {
		return fmt.Errorf("no bins to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetPlacements); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	rows := [][]interface{}{placementHeaders}
	for _, pb := range result.PackedBins {
		for _, p := range pb.Items {
			rows = append(rows, []interface{}{pb.BinID, p.ID, p.Name, p.Width, p.Height, p.Depth, p.X, p.Y, p.Z, p.Color})
		}
	}
	if err := writeRows(f, sheetPlacements, rows); err != nil {
		return err
	}

	if _, err := f.NewSheet(sheetBins); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	rows = [][]interface{}{{"Bin", "Width", "Height", "Depth", "Items", "Used Volume", "Efficiency %"}}
	for _, pb := range result.PackedBins {
		rows = append(rows, []interface{}{pb.BinID, pb.Bin.Width, pb.Bin.Height, pb.Bin.Depth, len(pb.Items), pb.UsedVolume(), pb.Efficiency})
	}
	if err := writeRows(f, sheetBins, rows); err != nil {
		return err
	}

	if len(result.UnpackedItems) > 0 {
		if _, err := f.NewSheet(sheetUnpacked); err != nil {
			return fmt.Errorf("failed to create sheet: %w", err)
		}
		rows = [][]interface{}{{"ID", "Name", "Width", "Height", "Depth", "Color"}}
		for _, it := range result.UnpackedItems {
			rows = append(rows, []interface{}{it.ID, it.Name, it.Width, it.Height, it.Depth, it.Color})
		}
		if err := writeRows(f, sheetUnpacked, rows); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
