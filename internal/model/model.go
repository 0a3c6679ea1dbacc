package model

import (
	"strings"

	"github.com/google/uuid"
)

// PieceType is the closed set of panel kinds the layout engine knows about.
type PieceType string

const (
	PieceLateralLeft     PieceType = "lateral_left"
	PieceLateralRight    PieceType = "lateral_right"
	PieceLateralFront    PieceType = "lateral_front"
	PieceLateralBack     PieceType = "lateral_back"
	PieceBottom          PieceType = "bottom"
	PieceTop             PieceType = "top"
	PieceShelf           PieceType = "shelf"
	PieceDividerVertical PieceType = "divider_vertical"
	PieceSlat            PieceType = "slat"
	PieceCapping         PieceType = "capping"
	PieceCleat           PieceType = "cleat"
	PieceExternal        PieceType = "external_piece" // visible panel mounted over cleats
)

// pieceInfo is the catalogue entry for a piece type.
type pieceInfo struct {
	name  string
	color string
}

var pieceCatalog = map[PieceType]pieceInfo{
	PieceLateralLeft:     {name: "Left Side", color: "#8b5cf6"},
	PieceLateralRight:    {name: "Right Side", color: "#8b5cf6"},
	PieceLateralFront:    {name: "Front Panel", color: "#f59e0b"},
	PieceLateralBack:     {name: "Back Panel", color: "#facc15"},
	PieceBottom:          {name: "Bottom", color: "#ef4444"},
	PieceTop:             {name: "Top", color: "#ef4444"},
	PieceShelf:           {name: "Shelf", color: "#10b981"},
	PieceDividerVertical: {name: "Vertical Divider", color: "#3b82f6"},
	PieceSlat:            {name: "Slat", color: "#7e8d92"},
	PieceCapping:         {name: "Capping", color: "#a855f7"},
	PieceCleat:           {name: "Cleat", color: "#8b5a2b"},
	PieceExternal:        {name: "External Panel", color: "#2563eb"},
}

// StructuralTypes lists the six enclosure-defining kinds in a stable order.
var StructuralTypes = []PieceType{
	PieceLateralLeft, PieceLateralRight, PieceLateralFront,
	PieceLateralBack, PieceBottom, PieceTop,
}

// UserTypes lists the kinds a user may insert directly.
var UserTypes = append(append([]PieceType{}, StructuralTypes...), PieceShelf, PieceDividerVertical)

// StandardThicknesses are the stock panel thicknesses offered by default (mm).
var StandardThicknesses = []float64{15, 18, 25}

// Known reports whether t is part of the catalogue.
func (t PieceType) Known() bool {
	_, ok := pieceCatalog[t]
	return ok
}

// IsStructural reports whether t is one of the six enclosure panels.
func (t PieceType) IsStructural() bool {
	switch t {
	case PieceLateralLeft, PieceLateralRight, PieceLateralFront,
		PieceLateralBack, PieceBottom, PieceTop:
		return true
	}
	return false
}

// IsInternal reports whether t subdivides a void (shelf or divider).
func (t PieceType) IsInternal() bool {
	return t == PieceShelf || t == PieceDividerVertical
}

// IsDerived reports whether t is only ever produced by a generator.
func (t PieceType) IsDerived() bool {
	switch t {
	case PieceSlat, PieceCapping, PieceCleat, PieceExternal:
		return true
	}
	return false
}

// IsFlat reports whether t lies horizontally (thickness along Y).
func (t PieceType) IsFlat() bool {
	return t == PieceBottom || t == PieceTop || t == PieceShelf
}

// DisplayName returns the default human-readable name for t.
func (t PieceType) DisplayName() string {
	if info, ok := pieceCatalog[t]; ok {
		return info.name
	}
	return string(t)
}

// Color returns the default display colour (hex) for t.
func (t PieceType) Color() string {
	if info, ok := pieceCatalog[t]; ok {
		return info.color
	}
	return "#999999"
}

// ParsePieceType resolves a piece type from its identifier or display name,
// case-insensitively. Short aliases such as "left" or "divider" are accepted.
func ParsePieceType(s string) (PieceType, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "-", "_")
	switch norm {
	case "left", "left_side", "lateral_left":
		return PieceLateralLeft, true
	case "right", "right_side", "lateral_right":
		return PieceLateralRight, true
	case "front", "front_panel", "lateral_front":
		return PieceLateralFront, true
	case "back", "back_panel", "lateral_back":
		return PieceLateralBack, true
	case "bottom", "base":
		return PieceBottom, true
	case "top":
		return PieceTop, true
	case "shelf":
		return PieceShelf, true
	case "divider", "vertical_divider", "divider_vertical":
		return PieceDividerVertical, true
	}
	for t, info := range pieceCatalog {
		if strings.EqualFold(info.name, strings.TrimSpace(s)) || string(t) == norm {
			return t, true
		}
	}
	return "", false
}

// Piece is a physical panel. User pieces carry their type, thickness and
// owning space; position and dimensions are always recomputed by the
// layout engine.
type Piece struct {
	ID            string      `json:"id"`
	Type          PieceType   `json:"type"`
	Name          string      `json:"name"`
	Color         string      `json:"color"`
	Thickness     float64     `json:"thickness"` // mm
	Position      Position    `json:"position"`
	Dimensions    Dimensions  `json:"dimensions"`
	ParentSpaceID string      `json:"parent_space_id"`
	Holes         []Hole      `json:"holes,omitempty"`
	Generators    []Generator `json:"generators,omitempty"`
	SourceID      string      `json:"source_id,omitempty"` // generating piece for derived pieces
}

// NewPiece creates a user piece of type t in the given space.
func NewPiece(t PieceType, thickness float64, spaceID string) Piece {
	return Piece{
		ID:            uuid.New().String()[:8],
		Type:          t,
		Name:          t.DisplayName(),
		Color:         t.Color(),
		Thickness:     thickness,
		ParentSpaceID: spaceID,
	}
}

// Generator returns the generator of the given kind attached to p, if any.
func (p Piece) Generator(kind GeneratorKind) (Generator, bool) {
	for _, g := range p.Generators {
		if g.Kind == kind {
			return g, true
		}
	}
	return Generator{}, false
}

// IsGenerator reports whether p carries any generator.
func (p Piece) IsGenerator() bool {
	return len(p.Generators) > 0
}

// Clone returns a deep copy of p.
func (p Piece) Clone() Piece {
	cp := p
	if p.Holes != nil {
		cp.Holes = make([]Hole, len(p.Holes))
		copy(cp.Holes, p.Holes)
	}
	if p.Generators != nil {
		cp.Generators = make([]Generator, len(p.Generators))
		for i, g := range p.Generators {
			cp.Generators[i] = g.Clone()
		}
	}
	return cp
}

// ClonePieces returns a deep copy of a piece slice.
func ClonePieces(pieces []Piece) []Piece {
	if pieces == nil {
		return []Piece{}
	}
	cp := make([]Piece, len(pieces))
	for i, p := range pieces {
		cp[i] = p.Clone()
	}
	return cp
}

// RootSpaceID is the id of the enclosure's root space.
const RootSpaceID = "main"

// RootSpaceName is the display name of the root space.
const RootSpaceName = "Main Unit"

// Space is a node of the space tree. Spaces live in an arena and refer
// to each other by index.
type Space struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	OriginalDimensions Dimensions `json:"original_dimensions"`
	CurrentDimensions  Dimensions `json:"current_dimensions"` // remaining void
	Position           Position   `json:"position"`           // centre of the remaining void
	IsActive           bool       `json:"is_active"`
	Parent             int        `json:"parent"` // arena index, -1 for the root
	ParentSpaceID      string     `json:"parent_space_id,omitempty"`
	Children           []int      `json:"children,omitempty"`
}

// NewRootSpace returns the undivided root void for an enclosure.
func NewRootSpace(dims Dimensions) Space {
	return Space{
		ID:                 RootSpaceID,
		Name:               RootSpaceName,
		OriginalDimensions: dims,
		CurrentDimensions:  dims,
		IsActive:           true,
		Parent:             -1,
	}
}

// Project ties a design together for save/load.
type Project struct {
	Name             string        `json:"name"`
	Root             Dimensions    `json:"root"`
	DefaultThickness float64       `json:"default_thickness"` // mm
	Pieces           []Piece       `json:"pieces"`
	Settings         DrillSettings `json:"settings"`
	Selected         string        `json:"selected,omitempty"` // space new pieces go into
}

// DefaultRoot is the enclosure a new project starts with.
var DefaultRoot = Dimensions{Width: 800, Height: 2100, Depth: 600}

// DefaultThickness is the panel thickness new pieces get (mm).
const DefaultThickness = 18.0

func NewProject() Project {
	return Project{
		Name:             "Untitled",
		Root:             DefaultRoot,
		DefaultThickness: DefaultThickness,
		Pieces:           []Piece{},
		Settings:         DefaultDrillSettings(),
	}
}

// Clone returns a deep copy of the project.
func (p Project) Clone() Project {
	cp := p
	cp.Pieces = ClonePieces(p.Pieces)
	return cp
}

// FindPiece returns the index of the piece with the given id, or -1.
func (p Project) FindPiece(id string) int {
	for i := range p.Pieces {
		if p.Pieces[i].ID == id {
			return i
		}
	}
	return -1
}
