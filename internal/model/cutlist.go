package model

import (
	"fmt"
	"math"
	"sort"
)

// CutListEntry is one line of a cut list: identical panels grouped together.
type CutListEntry struct {
	Type      PieceType `json:"type"`
	Name      string    `json:"name"`
	Thickness float64   `json:"thickness"` // mm
	Length    float64   `json:"length"`    // longest face edge, mm
	Width     float64   `json:"width"`     // shorter face edge, mm
	Quantity  int       `json:"quantity"`
	Holes     int       `json:"holes"` // holes per panel
	PieceIDs  []string  `json:"piece_ids"`
}

// Label returns a short human-readable description, e.g. "Shelf 764x600x18".
func (e CutListEntry) Label() string {
	return fmt.Sprintf("%s %.0fx%.0fx%.0f", e.Name, e.Length, e.Width, e.Thickness)
}

// Area returns the face area of one panel in square mm.
func (e CutListEntry) Area() float64 {
	return e.Length * e.Width
}

// FaceSize returns the thickness and face size of a piece, taking the
// smallest extent as thickness regardless of orientation.
func FaceSize(d Dimensions) (thickness, length, width float64) {
	ext := []float64{d.Width, d.Height, d.Depth}
	sort.Float64s(ext)
	return ext[0], ext[2], ext[1]
}

// roundMM rounds to a tenth of a millimetre so float noise does not split groups.
func roundMM(v float64) float64 {
	return math.Round(v*10) / 10
}

// BuildCutList groups rendered pieces with the same type, name, thickness,
// face size and hole count. Entries keep the order in which each group
// first appears.
func BuildCutList(pieces []Piece) []CutListEntry {
	type key struct {
		typ       PieceType
		name      string
		thickness float64
		length    float64
		width     float64
		holes     int
	}

	var entries []CutListEntry
	index := make(map[key]int)
	for _, p := range pieces {
		if p.Dimensions.IsDegenerate() {
			continue
		}
		t, l, w := FaceSize(p.Dimensions)
		k := key{p.Type, p.Name, roundMM(t), roundMM(l), roundMM(w), len(p.Holes)}
		if i, ok := index[k]; ok {
			entries[i].Quantity++
			entries[i].PieceIDs = append(entries[i].PieceIDs, p.ID)
			continue
		}
		index[k] = len(entries)
		entries = append(entries, CutListEntry{
			Type:      p.Type,
			Name:      p.Name,
			Thickness: k.thickness,
			Length:    k.length,
			Width:     k.width,
			Quantity:  1,
			Holes:     k.holes,
			PieceIDs:  []string{p.ID},
		})
	}
	return entries
}

// Thicknesses returns the distinct panel thicknesses in a cut list, ascending.
func Thicknesses(entries []CutListEntry) []float64 {
	seen := make(map[float64]bool)
	var out []float64
	for _, e := range entries {
		if !seen[e.Thickness] {
			seen[e.Thickness] = true
			out = append(out, e.Thickness)
		}
	}
	sort.Float64s(out)
	return out
}

// FilterByThickness returns the entries cut from stock of the given thickness.
func FilterByThickness(entries []CutListEntry, thickness float64) []CutListEntry {
	var out []CutListEntry
	for _, e := range entries {
		if e.Thickness == thickness {
			out = append(out, e)
		}
	}
	return out
}
