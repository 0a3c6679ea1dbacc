// Package importer reads piece lists from CSV and Excel files. It supports
// automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/Carcass/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation. Pieces carry no
// IDs; the store assigns them when the pieces are added.
type ImportResult struct {
	Pieces   []model.Piece
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Type      int
	Thickness int
	Space     int
	Name      int
	Quantity  int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"type":      {"type", "piece type", "kind", "piece", "part"},
	"thickness": {"thickness", "thick", "t", "mm", "board"},
	"space":     {"space", "space id", "parent", "parent space", "compartment"},
	"name":      {"name", "label", "description", "desc"},
	"quantity":  {"quantity", "qty", "count", "pcs"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping (type, thickness, space, name, quantity) and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Type: -1, Thickness: -1, Space: -1, Name: -1, Quantity: -1}
	slots := map[string]*int{
		"type":      &mapping.Type,
		"thickness": &mapping.Thickness,
		"space":     &mapping.Space,
		"name":      &mapping.Name,
		"quantity":  &mapping.Quantity,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias && *slots[role] == -1 {
					*slots[role] = i
					isHeader = true
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Type: 0, Thickness: 1, Space: 2, Name: 3, Quantity: 4}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts pieces from a row using the given column mapping.
// Returns the pieces, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) ([]model.Piece, string, string) {
	typeStr := getCell(row, mapping.Type)
	if typeStr == "" {
		return nil, fmt.Sprintf("%s: Missing piece type", rowLabel), ""
	}
	t, ok := model.ParsePieceType(typeStr)
	if !ok {
		return nil, fmt.Sprintf("%s: Unknown piece type '%s'", rowLabel, typeStr), ""
	}
	if t.IsDerived() {
		return nil, fmt.Sprintf("%s: '%s' pieces are generated and cannot be imported", rowLabel, typeStr), ""
	}

	var thickness float64
	var warning string
	if s := getCell(row, mapping.Thickness); s != "" {
		v, err := strconv.ParseFloat(strings.TrimSuffix(strings.ToLower(s), "mm"), 64)
		if err != nil {
			return nil, fmt.Sprintf("%s: Invalid thickness '%s'", rowLabel, s), ""
		}
		if v <= 0 {
			return nil, fmt.Sprintf("%s: Thickness must be positive", rowLabel), ""
		}
		thickness = v
	}

	qty := 1
	if s := getCell(row, mapping.Quantity); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, s), ""
		}
		if v <= 0 {
			return nil, fmt.Sprintf("%s: Quantity must be positive", rowLabel), ""
		}
		qty = v
	}
	if qty > 1 && t.IsStructural() {
		warning = fmt.Sprintf("%s: %s is structural, importing one instead of %d", rowLabel, t.DisplayName(), qty)
		qty = 1
	}

	name := getCell(row, mapping.Name)
	if name == "" {
		name = t.DisplayName()
	}

	pieces := make([]model.Piece, qty)
	for i := range pieces {
		pieces[i] = model.Piece{
			Type:          t,
			Name:          name,
			Color:         t.Color(),
			Thickness:     thickness,
			ParentSpaceID: getCell(row, mapping.Space),
		}
	}
	return pieces, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Import reads a piece list, choosing the format from the file extension.
func Import(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return ImportExcel(path)
	default:
		return ImportCSV(path)
	}
}

// ImportCSV imports pieces from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}
	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports pieces from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	records, err := readCSV(reader, delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}
	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.Comment = '#'
	return reader.ReadAll()
}

// ImportExcel imports pieces from the first sheet of an Excel workbook.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
		if mapping.Type == -1 {
			result.Errors = append(result.Errors, "Required column not found in header: Type")
			return result
		}
	} else if _, ok := model.ParsePieceType(getCell(rows[0], 0)); !ok {
		startRow = 1
		result.Warnings = append(result.Warnings, "Unrecognized header row, skipping")
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		pieces, errMsg, warning := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		result.Pieces = append(result.Pieces, pieces...)
	}

	return result
}
