// Package export provides functionality for exporting packing results
// to various file formats.
package export

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/cubepack/internal/model"
)

// itemColor represents an RGB color for a placed item.
type itemColor struct {
	R, G, B int
}

// itemColors is the fallback palette for items without a color.
var itemColors = []itemColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// colorFor returns the item's own hex color, or a palette entry.
func colorFor(item model.Item, idx int) itemColor {
	s := strings.TrimPrefix(item.Color, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) == 6 {
		if v, err := strconv.ParseUint(s, 16, 32); err == nil {
			return itemColor{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}
		}
	}
	return itemColors[idx%len(itemColors)]
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	planWidth    = 130.0 // left column: floor plan
	tableLeft    = marginLeft + planWidth + 10.0
	rowHeight    = 5.0
)

// ExportPDF generates a PDF manifest of a packing result. Each attempted
// bin is rendered on its own page with a floor plan (x across, z down) and
// a table of placements, followed by a summary page.
func ExportPDF(path string, result model.PackingResult, quote model.StorageQuote) error {
	if len(result.PackedBins) == 0 {
		return fmt.Errorf("no bins to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, bin := range result.PackedBins {
		pdf.AddPage()
		renderBinPage(pdf, bin)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result, quote)

	return pdf.OutputFileAndClose(path)
}

// renderBinPage draws a single packed bin on the current PDF page.
func renderBinPage(pdf *fpdf.Fpdf, pb model.PackedBin) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s (%.0f x %.0f x %.0f)", pb.BinID, pb.Bin.Width, pb.Bin.Height, pb.Bin.Depth)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Items: %d | Used volume: %.0f | Bin volume: %.0f | Efficiency: %.2f%%",
		len(pb.Items), pb.UsedVolume(), pb.Bin.Volume(), pb.Efficiency)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawFloorPlan(pdf, pb)
	drawPlacementTable(pdf, pb)
}

// drawFloorPlan renders the x/z footprint of every placement, lowest y
// first so stacked items are drawn over the ones beneath them.
func drawFloorPlan(pdf *fpdf.Fpdf, pb model.PackedBin) {
	if pb.Bin.Width <= 0 || pb.Bin.Depth <= 0 {
		return
	}

	drawHeight := pageHeight - drawAreaTop - marginBottom - 10
	scale := math.Min(planWidth/pb.Bin.Width, drawHeight/pb.Bin.Depth)
	canvasW := pb.Bin.Width * scale
	canvasH := pb.Bin.Depth * scale
	offsetX := marginLeft
	offsetY := drawAreaTop

	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	order := make([]int, len(pb.Items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return pb.Items[order[a]].Y < pb.Items[order[b]].Y
	})

	for _, idx := range order {
		p := pb.Items[idx]
		col := colorFor(p.Item, idx)
		px := offsetX + p.X*scale
		py := offsetY + p.Z*scale
		pw := p.Width * scale
		ph := p.Depth * scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		// Index label (only if rectangle is large enough)
		if pw > 6 && ph > 5 {
			label := strconv.Itoa(idx + 1)
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)
			lw := pdf.GetStringWidth(label)
			pdf.SetXY(px+(pw-lw)/2, py+ph/2-2)
			pdf.CellFormat(lw, 4, label, "", 0, "C", false, 0, "")
		}
	}

	drawDimensionAnnotations(pdf, pb.Bin, offsetX, offsetY, canvasW, canvasH)
}

// drawDimensionAnnotations adds width and depth labels outside the plan.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, bin model.Bin, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("width %.0f", bin.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	depthLabel := fmt.Sprintf("depth %.0f", bin.Depth)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	dLabelW := pdf.GetStringWidth(depthLabel)
	pdf.SetXY(offsetX-3-dLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(dLabelW, 4, depthLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawPlacementTable lists the placements of a bin, continuing on further
// pages when it does not fit.
func drawPlacementTable(pdf *fpdf.Fpdf, pb model.PackedBin) {
	colWidths := []float64{8, 30, 30, 22, 32}
	headers := []string{"#", "ID", "Name", "W x H x D", "Origin"}

	drawHeader := func(y float64) float64 {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(230, 230, 230)
		x := tableLeft
		for i, h := range headers {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[i], rowHeight, h, "1", 0, "C", true, 0, "")
			x += colWidths[i]
		}
		pdf.SetFont("Helvetica", "", 8)
		return y + rowHeight
	}

	y := drawHeader(drawAreaTop)
	for i, p := range pb.Items {
		if y+rowHeight > pageHeight-marginBottom {
			pdf.AddPage()
			y = drawHeader(marginTop)
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		row := []string{
			strconv.Itoa(i + 1),
			truncate(pdf, p.ID, colWidths[1]-2),
			truncate(pdf, p.Name, colWidths[2]-2),
			fmt.Sprintf("%.0fx%.0fx%.0f", p.Width, p.Height, p.Depth),
			fmt.Sprintf("(%.0f, %.0f, %.0f)", p.X, p.Y, p.Z),
		}
		x := tableLeft
		for j, cell := range row {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], rowHeight, cell, "1", 0, "C", true, 0, "")
			x += colWidths[j]
		}
		y += rowHeight
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.PackingResult, quote model.StorageQuote) {
	summary := model.Summarize(result)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Packing Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Bins Attempted", strconv.Itoa(summary.BinsAttempted)},
		{"Bins Used", strconv.Itoa(summary.BinsUsed)},
		{"Items Packed", fmt.Sprintf("%d of %d", summary.PackedCount, summary.TotalItems)},
		{"Overall Efficiency", fmt.Sprintf("%.2f%%", summary.OverallEfficiency)},
		{"Mean Bin Efficiency", fmt.Sprintf("%.2f%% (sd %.2f)", summary.MeanEfficiency, summary.StdDevEfficiency)},
		{"Packed Volume", fmt.Sprintf("%.4f m3", quote.PackedVolumeM3)},
		{"Storage Quote", fmt.Sprintf("%.0f (%s)", quote.Price, quote.Status)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Bin Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{40, 60, 30, 35, 60}
	headers := []string{"Bin", "Dimensions", "Items", "Efficiency", "Used / Total Volume"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, pb := range result.PackedBins {
		xPos = marginLeft
		rowData := []string{
			pb.BinID,
			fmt.Sprintf("%.0f x %.0f x %.0f", pb.Bin.Width, pb.Bin.Height, pb.Bin.Depth),
			strconv.Itoa(len(pb.Items)),
			fmt.Sprintf("%.2f%%", pb.Efficiency),
			fmt.Sprintf("%.0f / %.0f", pb.UsedVolume(), pb.Bin.Volume()),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if len(result.UnpackedItems) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unpacked Items", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)

		for _, item := range result.UnpackedItems {
			if y+5 > pageHeight-marginBottom-5 {
				pdf.AddPage()
				y = marginTop
			}
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s %s: %.0f x %.0f x %.0f", item.ID, item.Name, item.Width, item.Height, item.Depth)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by cubepack", "", 0, "C", false, 0, "")
}

// truncate shortens s with an ellipsis so it fits in width w.
func truncate(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > w {
		s = s[:len(s)-1]
	}
	return s + "..."
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
