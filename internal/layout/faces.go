package layout

import "github.com/piwi3910/Carcass/internal/model"

// Face is the external face of a panel: the one facing away from the void
// the panel encloses. Derived panels are mounted flush on it.
type Face struct {
	Normal model.Axis
	Sign   float64 // +1 when the face looks along +Normal
}

var externalFaces = map[model.PieceType]Face{
	model.PieceLateralLeft:  {model.AxisX, -1},
	model.PieceLateralRight: {model.AxisX, +1},
	model.PieceLateralFront: {model.AxisZ, -1},
	model.PieceLateralBack:  {model.AxisZ, +1},
	model.PieceBottom:       {model.AxisY, -1},
	model.PieceTop:          {model.AxisY, +1},
	model.PieceShelf:        {model.AxisY, +1},
}

// ExternalFace returns the external face of a piece type. Dividers and
// derived pieces have none.
func ExternalFace(t model.PieceType) (Face, bool) {
	f, ok := externalFaces[t]
	return f, ok
}

// Direction is the drilling direction of a hole entering this face.
func (f Face) Direction() model.Direction {
	return model.DirectionFor(f.Normal, f.Sign)
}

// InPlane returns the two axes spanning the face.
func (f Face) InPlane() (model.Axis, model.Axis) {
	switch f.Normal {
	case model.AxisX:
		return model.AxisY, model.AxisZ
	case model.AxisY:
		return model.AxisX, model.AxisZ
	default:
		return model.AxisX, model.AxisY
	}
}

// Mount returns the centre of a panel of the given thickness lying flush
// on the face of base, offset further out by gap.
func (f Face) Mount(base model.Piece, thickness, gap float64) model.Position {
	half := base.Dimensions.Along(f.Normal) / 2
	return base.Position.Shift(f.Normal, f.Sign*(half+gap+thickness/2))
}

// Surface returns the coordinate of the face plane relative to the base
// piece centre.
func (f Face) Surface(base model.Piece) float64 {
	return f.Sign * base.Dimensions.Along(f.Normal) / 2
}

// sideExtents returns the overhang on both ends of axis a, looked up with
// the given extension function, and the resulting centre shift.
func sideExtents(a model.Axis, ext func(model.Direction) float64) (neg, pos, shift float64) {
	neg = ext(model.DirectionFor(a, -1))
	pos = ext(model.DirectionFor(a, +1))
	return neg, pos, (pos - neg) / 2
}

// pair builds both halves of a dowel joint sharing an absolute point on
// the mating faces. onDerived and onBase are relative to each piece's centre.
func pair(pairID string, kind model.GeneratorKind, f Face, d model.DowelOptions, onDerived, onBase model.Position) (derived, base model.Hole) {
	derived = model.Hole{
		ID:        pairID + "_a",
		PairID:    pairID,
		Source:    kind,
		Position:  onDerived,
		Diameter:  d.Diameter,
		Depth:     d.Depth / 2,
		Direction: f.Direction().Opposite(),
	}
	base = model.Hole{
		ID:        pairID + "_b",
		PairID:    pairID,
		Source:    kind,
		Position:  onBase,
		Diameter:  d.Diameter,
		Depth:     d.Depth / 2,
		Direction: f.Direction(),
	}
	return derived, base
}

// Generated is the output of a derived-geometry generator.
type Generated struct {
	Pieces    []model.Piece
	BaseHoles []model.Hole // holes to merge into the generating piece
}

func derivedPiece(base model.Piece, id string, t model.PieceType, name string, thickness float64) model.Piece {
	return model.Piece{
		ID:            id,
		Type:          t,
		Name:          name,
		Color:         t.Color(),
		Thickness:     thickness,
		ParentSpaceID: base.ParentSpaceID,
		SourceID:      base.ID,
	}
}
