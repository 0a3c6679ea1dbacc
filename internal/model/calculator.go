package model

import "math"

// PurchaseEstimate holds the results of a sheet purchasing calculation.
type PurchaseEstimate struct {
	Thickness         float64 `json:"thickness"`           // Panel thickness the estimate covers (mm), 0 for mixed
	TotalPartArea     float64 `json:"total_part_area"`     // Total area of all panels (sq mm)
	TotalSquareMeters float64 `json:"total_square_meters"` // Total area in m²
	SheetArea         float64 `json:"sheet_area"`          // Area of one sheet (sq mm)
	SheetsNeededExact float64 `json:"sheets_needed_exact"` // Exact fractional number of sheets
	SheetsNeededMin   int     `json:"sheets_needed_min"`   // Minimum sheets (ceiling of exact)
	SheetsWithWaste   int     `json:"sheets_with_waste"`   // Recommended sheets including waste factor
	WastePercent      float64 `json:"waste_percent"`       // Waste factor applied (e.g., 15 for 15%)
	EstimatedCost     float64 `json:"estimated_cost"`      // Total cost if pricing available
	PricePerSheet     float64 `json:"price_per_sheet"`     // Price used for estimation
	KerfWidth         float64 `json:"kerf_width"`          // Kerf width used in calculation
}

const sqmmPerSquareMeter = 1e6

// CalculatePurchaseEstimate computes how many sheets to buy for a cut list.
// The estimate is area based: it accounts for kerf and a waste percentage
// but does not nest panels on sheets.
func CalculatePurchaseEstimate(entries []CutListEntry, sheetWidth, sheetHeight, kerfWidth, wastePercent, pricePerSheet float64) PurchaseEstimate {
	// Calculate total panel area including kerf allowance per panel
	var totalPartArea float64
	for _, e := range entries {
		w := e.Width + kerfWidth
		l := e.Length + kerfWidth
		totalPartArea += w * l * float64(e.Quantity)
	}

	sheetArea := sheetWidth * sheetHeight
	if sheetArea <= 0 {
		return PurchaseEstimate{
			TotalPartArea:     totalPartArea,
			TotalSquareMeters: totalPartArea / sqmmPerSquareMeter,
			WastePercent:      wastePercent,
		}
	}

	exactSheets := totalPartArea / sheetArea
	minSheets := int(math.Ceil(exactSheets))

	// Apply waste factor
	wasteFactor := 1.0 + (wastePercent / 100.0)
	sheetsWithWaste := int(math.Ceil(exactSheets * wasteFactor))
	if sheetsWithWaste < minSheets {
		sheetsWithWaste = minSheets
	}

	return PurchaseEstimate{
		TotalPartArea:     totalPartArea,
		TotalSquareMeters: totalPartArea / sqmmPerSquareMeter,
		SheetArea:         sheetArea,
		SheetsNeededExact: exactSheets,
		SheetsNeededMin:   minSheets,
		SheetsWithWaste:   sheetsWithWaste,
		WastePercent:      wastePercent,
		EstimatedCost:     float64(sheetsWithWaste) * pricePerSheet,
		PricePerSheet:     pricePerSheet,
		KerfWidth:         kerfWidth,
	}
}

// EstimateByThickness returns one estimate per panel thickness, since
// each thickness is bought as separate stock.
func EstimateByThickness(entries []CutListEntry, s DrillSettings) []PurchaseEstimate {
	var out []PurchaseEstimate
	for _, t := range Thicknesses(entries) {
		est := CalculatePurchaseEstimate(FilterByThickness(entries, t),
			s.SheetWidth, s.SheetHeight, s.KerfWidth, s.WastePercent, s.PricePerSheet)
		est.Thickness = t
		out = append(out, est)
	}
	return out
}
