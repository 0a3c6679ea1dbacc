package layout

import (
	"fmt"
	"sort"

	"github.com/piwi3910/Carcass/internal/model"
)

// MinGap is the smallest extent (mm) a split may leave for a child space.
// Narrower gaps are dropped.
const MinGap = 1.0

// placementRule describes how a piece type sits in the void it is placed in.
type placementRule struct {
	axis model.Axis
	side float64 // -1 or +1 for structural pieces, 0 for internal pieces
}

var placementRules = map[model.PieceType]placementRule{
	model.PieceLateralLeft:     {model.AxisX, -1},
	model.PieceLateralRight:    {model.AxisX, +1},
	model.PieceBottom:          {model.AxisY, -1},
	model.PieceTop:             {model.AxisY, +1},
	model.PieceLateralFront:    {model.AxisZ, -1},
	model.PieceLateralBack:     {model.AxisZ, +1},
	model.PieceShelf:           {model.AxisY, 0},
	model.PieceDividerVertical: {model.AxisX, 0},
}

// GoverningAxis returns the axis a piece's thickness lies on.
func GoverningAxis(t model.PieceType) (model.Axis, bool) {
	r, ok := placementRules[t]
	return r.axis, ok
}

// PlacementPosition returns the centre of a piece of type t placed in the
// space's current void. Structural pieces sit against the void wall on
// their side; internal pieces sit at the void centre.
func PlacementPosition(space model.Space, t model.PieceType, thickness float64) model.Position {
	r, ok := placementRules[t]
	if !ok || r.side == 0 {
		return space.Position
	}
	half := space.CurrentDimensions.Along(r.axis) / 2
	return space.Position.Shift(r.axis, r.side*(half-thickness/2))
}

// PlacementDimensions returns the size of a piece of type t placed in the
// space's current void: thickness on the governing axis, the void's extent
// on the other two.
func PlacementDimensions(space model.Space, t model.PieceType, thickness float64) model.Dimensions {
	r, ok := placementRules[t]
	if !ok {
		return model.Dimensions{}
	}
	return space.CurrentDimensions.With(r.axis, thickness)
}

// ShrinkVoid returns space with the volume taken by a structural piece
// removed from its current void. Internal pieces leave the void unchanged.
func ShrinkVoid(space model.Space, piece model.Piece) model.Space {
	r, ok := placementRules[piece.Type]
	if !ok || r.side == 0 {
		return space
	}
	extent := space.CurrentDimensions.Along(r.axis)
	space.CurrentDimensions = space.CurrentDimensions.With(r.axis, extent-piece.Thickness)
	space.Position = space.Position.Shift(r.axis, -r.side*piece.Thickness/2)
	return space
}

// DistributeInternal positions internal pieces along axis so that the gaps
// before, between and after them are equal. A single piece lands on the
// void centre. The returned pieces are copies in input order.
func DistributeInternal(space model.Space, pieces []model.Piece, axis model.Axis) []model.Piece {
	out := make([]model.Piece, len(pieces))
	if len(pieces) == 0 {
		return out
	}

	extent := space.CurrentDimensions.Along(axis)
	var total float64
	for _, p := range pieces {
		total += p.Thickness
	}
	gap := (extent - total) / float64(len(pieces)+1)

	cursor := space.Position.Along(axis) - extent/2 + gap
	for i, p := range pieces {
		placed := p.Clone()
		placed.Dimensions = PlacementDimensions(space, p.Type, p.Thickness).With(axis, p.Thickness)
		placed.Position = space.Position.With(axis, cursor+p.Thickness/2)
		out[i] = placed
		cursor += p.Thickness + gap
	}
	return out
}

// SplitVoid divides the space's current void along axis at the given
// positioned dividers. Dividers are sorted by position; each gap between
// the void walls and divider faces becomes one child space, except gaps
// narrower than MinGap. Children inherit the perpendicular extents and
// are centred in their gap.
func SplitVoid(space model.Space, dividers []model.Piece, axis model.Axis) []model.Space {
	sorted := make([]model.Piece, len(dividers))
	copy(sorted, dividers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position.Along(axis) < sorted[j].Position.Along(axis)
	})

	center := space.Position.Along(axis)
	extent := space.CurrentDimensions.Along(axis)
	start := center - extent/2

	var children []model.Space
	emit := func(i int, end float64) {
		size := end - start
		if size < MinGap {
			return
		}
		dims := space.CurrentDimensions.With(axis, size)
		children = append(children, model.Space{
			ID:                 childID(space.ID, axis, i),
			Name:               childName(space.Name, axis, i),
			OriginalDimensions: dims,
			CurrentDimensions:  dims,
			Position:           space.Position.With(axis, start+size/2),
			IsActive:           true,
			Parent:             -1,
			ParentSpaceID:      space.ID,
		})
	}

	for i, d := range sorted {
		emit(i, d.Position.Along(axis)-d.Thickness/2)
		start = d.Position.Along(axis) + d.Thickness/2
	}
	emit(len(sorted), center+extent/2)
	return children
}

func childID(parent string, axis model.Axis, i int) string {
	switch axis {
	case model.AxisX:
		return fmt.Sprintf("%s_vsub_%d", parent, i)
	case model.AxisY:
		return fmt.Sprintf("%s_hsub_%d", parent, i)
	default:
		return fmt.Sprintf("%s_dsub_%d", parent, i)
	}
}

func childName(parent string, axis model.Axis, i int) string {
	switch axis {
	case model.AxisX:
		return fmt.Sprintf("%s / Column %d", parent, i+1)
	case model.AxisY:
		return fmt.Sprintf("%s / Row %d", parent, i+1)
	default:
		return fmt.Sprintf("%s / Section %d", parent, i+1)
	}
}
