package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet names used by ExportXLSX.
const (
	SheetCutList = "Cut List"
	SheetPieces  = "Pieces"
	SheetHoles   = "Holes"
)

// ExportXLSX writes the cut list, every rendered piece and every hole to
// a workbook with one sheet each.
func ExportXLSX(path string, r Report) error {
	if err := r.validate(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetCutList); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{SheetPieces, SheetHoles} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	cutRows := [][]any{{"Name", "Type", "Length", "Width", "Thickness", "Quantity", "Holes", "Pieces"}}
	for _, e := range r.CutList() {
		ids := ""
		for i, id := range e.PieceIDs {
			if i > 0 {
				ids += ", "
			}
			ids += id
		}
		cutRows = append(cutRows, []any{e.Name, string(e.Type), e.Length, e.Width, e.Thickness, e.Quantity, e.Holes, ids})
	}

	pieceRows := [][]any{{"ID", "Name", "Type", "Space", "Source", "Width", "Height", "Depth", "X", "Y", "Z", "Holes"}}
	holeRows := [][]any{{"Piece", "Hole", "Pair", "Source", "Direction", "X", "Y", "Z", "Diameter", "Depth"}}
	for _, p := range r.Pieces {
		pieceRows = append(pieceRows, []any{
			p.ID, p.Name, string(p.Type), p.ParentSpaceID, p.SourceID,
			p.Dimensions.Width, p.Dimensions.Height, p.Dimensions.Depth,
			p.Position.X, p.Position.Y, p.Position.Z, len(p.Holes),
		})
		for _, h := range p.Holes {
			holeRows = append(holeRows, []any{
				p.ID, h.ID, h.PairID, string(h.Source), string(h.Direction),
				h.Position.X, h.Position.Y, h.Position.Z, h.Diameter, h.Depth,
			})
		}
	}

	sheets := []struct {
		name string
		rows [][]any
	}{
		{SheetCutList, cutRows},
		{SheetPieces, pieceRows},
		{SheetHoles, holeRows},
	}
	for _, s := range sheets {
		if err := writeRows(f, s.name, s.rows, header); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	if len(rows) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return fmt.Errorf("failed to address header: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}
	return nil
}
