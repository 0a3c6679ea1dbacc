package model

import (
	"math"
	"strings"
)

// EdgeBanding marks which edges of a panel face get banding tape.
// Length edges run along the panel's long side.
type EdgeBanding struct {
	LengthA bool `json:"length_a"`
	LengthB bool `json:"length_b"`
	WidthA  bool `json:"width_a"`
	WidthB  bool `json:"width_b"`
}

// HasAny reports whether any edge is banded.
func (e EdgeBanding) HasAny() bool {
	return e.LengthA || e.LengthB || e.WidthA || e.WidthB
}

// EdgeCount returns the number of banded edges.
func (e EdgeBanding) EdgeCount() int {
	n := 0
	for _, b := range []bool{e.LengthA, e.LengthB, e.WidthA, e.WidthB} {
		if b {
			n++
		}
	}
	return n
}

// LinearLength returns the banding length for one panel in mm.
func (e EdgeBanding) LinearLength(length, width float64) float64 {
	var total float64
	if e.LengthA {
		total += length
	}
	if e.LengthB {
		total += length
	}
	if e.WidthA {
		total += width
	}
	if e.WidthB {
		total += width
	}
	return total
}

func (e EdgeBanding) String() string {
	var parts []string
	if e.LengthA {
		parts = append(parts, "L1")
	}
	if e.LengthB {
		parts = append(parts, "L2")
	}
	if e.WidthA {
		parts = append(parts, "W1")
	}
	if e.WidthB {
		parts = append(parts, "W2")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// DefaultBanding returns the banding a panel of type t normally gets:
// carcass panels are banded on one visible long edge, shelves and
// dividers on their front edge, and cover panels all round. Slats and
// cleats are solid stock and get none.
func DefaultBanding(t PieceType) EdgeBanding {
	switch t {
	case PieceCapping, PieceExternal:
		return EdgeBanding{LengthA: true, LengthB: true, WidthA: true, WidthB: true}
	case PieceSlat, PieceCleat:
		return EdgeBanding{}
	default:
		return EdgeBanding{LengthA: true}
	}
}

// EdgeBandingSummary holds the calculated edge banding requirements for a project.
type EdgeBandingSummary struct {
	TotalLinearMM    float64 `json:"total_linear_mm"`     // Total banding length in mm (no waste)
	TotalLinearM     float64 `json:"total_linear_m"`      // Total banding length in meters (no waste)
	WastePercent     float64 `json:"waste_percent"`       // Waste percentage applied
	TotalWithWasteMM float64 `json:"total_with_waste_mm"` // Total with waste in mm
	TotalWithWasteM  float64 `json:"total_with_waste_m"`  // Total with waste in meters
	PartCount        int     `json:"part_count"`          // Number of individual panels needing banding
	EdgeCount        int     `json:"edge_count"`          // Total number of edges needing banding
}

// CalculateEdgeBanding computes the total edge banding needed for a cut list
// using DefaultBanding per entry. wastePercent is the additional percentage
// to add for waste (e.g., 10 for 10%).
func CalculateEdgeBanding(entries []CutListEntry, wastePercent float64) EdgeBandingSummary {
	var totalMM float64
	var partCount, edgeCount int

	for _, e := range entries {
		b := DefaultBanding(e.Type)
		if !b.HasAny() {
			continue
		}
		totalMM += b.LinearLength(e.Length, e.Width) * float64(e.Quantity)
		partCount += e.Quantity
		edgeCount += b.EdgeCount() * e.Quantity
	}

	wasteFactor := 1.0 + (wastePercent / 100.0)
	totalWithWaste := totalMM * wasteFactor

	return EdgeBandingSummary{
		TotalLinearMM:    totalMM,
		TotalLinearM:     totalMM / 1000.0,
		WastePercent:     wastePercent,
		TotalWithWasteMM: math.Ceil(totalWithWaste), // Round up
		TotalWithWasteM:  math.Ceil(totalWithWaste) / 1000.0,
		PartCount:        partCount,
		EdgeCount:        edgeCount,
	}
}
