package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/Carcass/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	rowHeight    = 6.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	holeTableW   = 80.0
)

// ExportPDF writes a cut list report: a summary page with the cut list,
// purchase estimates and edge banding, followed by one page per drilled
// face showing its holes.
func ExportPDF(path string, r Report) error {
	if err := r.validate(); err != nil {
		return err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderSummaryPage(pdf, r)

	for i, face := range r.DrilledFaces() {
		pdf.AddPage()
		renderFacePage(pdf, face, i+1)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

func renderSummaryPage(pdf *fpdf.Fpdf, r Report) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, r.Name+" - Cut List", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	faces := r.DrilledFaces()
	entries := r.CutList()

	y := marginTop + 16
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, y)
	stats := fmt.Sprintf("Enclosure: %.0f x %.0f x %.0f mm | Pieces: %d | Drilled faces: %d | Holes: %d",
		r.Root.Width, r.Root.Height, r.Root.Depth, len(r.Pieces), len(faces), model.HoleCount(faces))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{12, 70, 45, 60, 20, 20, 40}
	headers := []string{"#", "Name", "Type", "L x W x T (mm)", "Qty", "Holes", "Area (m2)"}
	y = tableHeader(pdf, y, colWidths, headers)

	pdf.SetFont("Helvetica", "", 9)
	for i, e := range entries {
		if y+rowHeight > pageHeight-marginBottom {
			pdf.AddPage()
			y = tableHeader(pdf, marginTop, colWidths, headers)
			pdf.SetFont("Helvetica", "", 9)
		}
		row := []string{
			fmt.Sprintf("%d", i+1),
			e.Name,
			e.Type.DisplayName(),
			sizeLabel(e),
			fmt.Sprintf("%d", e.Quantity),
			fmt.Sprintf("%d", e.Holes),
			fmt.Sprintf("%.3f", e.Area()*float64(e.Quantity)/1e6),
		}
		y = tableRow(pdf, y, colWidths, row, i%2 == 0)
	}

	estimates := model.EstimateByThickness(entries, r.Settings)
	banding := model.CalculateEdgeBanding(entries, r.Settings.BandingWastePercent)

	needed := 8 + float64(len(estimates)+1)*rowHeight + 20
	if y+needed > pageHeight-marginBottom {
		pdf.AddPage()
		y = marginTop
	} else {
		y += 8
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Sheet Purchase Estimate", "", 0, "L", false, 0, "")
	y += 9

	estWidths := []float64{30, 45, 35, 35, 40}
	y = tableHeader(pdf, y, estWidths, []string{"Thickness", "Panel Area (m2)", "Exact", "Buy", "Cost"})
	pdf.SetFont("Helvetica", "", 9)
	for i, est := range estimates {
		cost := "-"
		if est.PricePerSheet > 0 {
			cost = fmt.Sprintf("%.2f", est.EstimatedCost)
		}
		y = tableRow(pdf, y, estWidths, []string{
			fmt.Sprintf("%.0f mm", est.Thickness),
			fmt.Sprintf("%.2f", est.TotalSquareMeters),
			fmt.Sprintf("%.2f", est.SheetsNeededExact),
			fmt.Sprintf("%d", est.SheetsWithWaste),
			cost,
		}, i%2 == 0)
	}

	y += 6
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(200, 5, fmt.Sprintf("Sheet %.0f x %.0f mm, kerf %.1f mm, waste %.0f%%. Edge banding: %.2f m (%.2f m with waste, %d edges).",
		r.Settings.SheetWidth, r.Settings.SheetHeight, r.Settings.KerfWidth, r.Settings.WastePercent,
		banding.TotalLinearM, banding.TotalWithWasteM, banding.EdgeCount), "", 0, "L", false, 0, "")

	if len(r.Warnings) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 6, "Layout warnings", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		for _, w := range r.Warnings {
			y += 5
			if y > pageHeight-marginBottom-5 {
				break
			}
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(250, 4, "- "+w, "", 0, "L", false, 0, "")
		}
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by Carcass", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func tableHeader(pdf *fpdf.Fpdf, y float64, widths []float64, headers []string) float64 {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, h := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(widths[i], rowHeight, h, "1", 0, "C", true, 0, "")
		x += widths[i]
	}
	return y + rowHeight
}

func tableRow(pdf *fpdf.Fpdf, y float64, widths []float64, cells []string, shaded bool) float64 {
	if shaded {
		pdf.SetFillColor(245, 245, 245)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}
	x := marginLeft
	for i, c := range cells {
		pdf.SetXY(x, y)
		pdf.CellFormat(widths[i], rowHeight, c, "1", 0, "C", true, 0, "")
		x += widths[i]
	}
	return y + rowHeight
}

// renderFacePage draws one drilled face to scale with its holes and a
// coordinate table. Face V runs up, so it is flipped for the page.
func renderFacePage(pdf *fpdf.Fpdf, face model.DrilledFace, num int) {
	frame := face.Frame

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Face %d: %s (%.0f x %.0f mm)", num, face.Label(), frame.Width, frame.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5,
		fmt.Sprintf("Piece %s | %s | %.0f mm thick | %d holes | origin lower-left",
			face.Piece.ID, face.Piece.Type.DisplayName(), face.Piece.Thickness, len(face.Points)),
		"", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight - holeTableW - 10
	drawHeight := pageHeight - drawAreaTop - marginBottom - 10
	scale := math.Min(drawWidth/math.Max(frame.Width, 1), drawHeight/math.Max(frame.Height, 1))

	canvasW := frame.Width * scale
	canvasH := frame.Height * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	col := parseHexColor(face.Piece.Color)
	pdf.SetFillColor(col.R, col.G, col.B)
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.4)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	pdf.SetFillColor(255, 255, 255)
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.2)
	for _, pt := range face.Points {
		cx := offsetX + pt.U*scale
		cy := offsetY + canvasH - pt.V*scale
		r := math.Max(pt.Diameter*scale/2, 0.6)
		pdf.Circle(cx, cy, r, "FD")
		pdf.Line(cx-r-1, cy, cx+r+1, cy)
		pdf.Line(cx, cy-r-1, cx, cy+r+1)
	}

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)
	wLabel := fmt.Sprintf("%.0f mm", frame.Width)
	wLabelW := pdf.GetStringWidth(wLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, wLabel, "", 0, "C", false, 0, "")

	hLabel := fmt.Sprintf("%.0f mm", frame.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(hLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, hLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()
	pdf.SetTextColor(0, 0, 0)

	drawHoleTable(pdf, face, pageWidth-marginRight-holeTableW, drawAreaTop)
}

func drawHoleTable(pdf *fpdf.Fpdf, face model.DrilledFace, x, y float64) {
	widths := []float64{10, 20, 20, 15, 15}
	headers := []string{"#", "U", "V", "Dia", "Depth"}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	cx := x
	for i, h := range headers {
		pdf.SetXY(cx, y)
		pdf.CellFormat(widths[i], 5, h, "1", 0, "C", true, 0, "")
		cx += widths[i]
	}
	y += 5

	pdf.SetFont("Helvetica", "", 7)
	for i, pt := range face.Points {
		if y+5 > pageHeight-marginBottom {
			pdf.SetXY(x, y)
			pdf.CellFormat(holeTableW, 5, fmt.Sprintf("... %d more", len(face.Points)-i), "", 0, "L", false, 0, "")
			return
		}
		cells := []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.1f", pt.U),
			fmt.Sprintf("%.1f", pt.V),
			fmt.Sprintf("%.0f", pt.Diameter),
			fmt.Sprintf("%.1f", pt.Depth),
		}
		cx = x
		for j, c := range cells {
			pdf.SetXY(cx, y)
			pdf.CellFormat(widths[j], 5, c, "1", 0, "C", false, 0, "")
			cx += widths[j]
		}
		y += 5
	}
}
