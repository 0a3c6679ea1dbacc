package layout

import (
	"fmt"

	"github.com/piwi3910/Carcass/internal/model"
)

// cleatAxes returns the axis cleat strips run along and the axis whose
// two edges carry them. Upright panels take vertical strips; flat panels
// take strips running left to right.
func cleatAxes(f Face) (length, cross model.Axis) {
	switch f.Normal {
	case model.AxisX:
		return model.AxisY, model.AxisZ
	case model.AxisZ:
		return model.AxisY, model.AxisX
	default:
		return model.AxisX, model.AxisZ
	}
}

type cleatEdge struct {
	suffix string
	name   string
	side   float64 // -1 for the front edge
}

// GenerateCleats places cleat strips on the front and/or back edge of the
// external face of base and, for the exposed appearance, the visible panel
// over them. On front and back panels the front edge is the left one.
// Only the six structural types are supported. No dowels are drilled.
func GenerateCleats(base model.Piece, cfg model.CleatConfig) Generated {
	if !base.Type.IsStructural() {
		return Generated{}
	}
	f, ok := ExternalFace(base.Type)
	if !ok || cfg.CleatThickness <= 0 || cfg.CleatWidth <= 0 {
		return Generated{}
	}
	length, cross := cleatAxes(f)

	lNeg, lPos, lShift := sideExtents(length, cfg.Extension)
	cNeg, cPos, cShift := sideExtents(cross, cfg.Extension)

	var edges []cleatEdge
	if cfg.Mounting != model.MountBack {
		edges = append(edges, cleatEdge{"front", "Cleat Front", -1})
	}
	if cfg.Mounting == model.MountBack || cfg.Mounting == model.MountBoth {
		edges = append(edges, cleatEdge{"back", "Cleat Back", +1})
	}

	var out Generated
	baseCross := base.Dimensions.Along(cross)
	for _, e := range edges {
		strip := derivedPiece(base, fmt.Sprintf("%s_cleat_%s", base.ID, e.suffix), model.PieceCleat, e.name, cfg.CleatThickness)
		strip.Dimensions = model.Dimensions{}.
			With(f.Normal, cfg.CleatThickness).
			With(length, base.Dimensions.Along(length)+lNeg+lPos).
			With(cross, cfg.CleatWidth+cNeg+cPos)
		strip.Position = f.Mount(base, cfg.CleatThickness, 0).
			Shift(length, lShift).
			Shift(cross, e.side*(baseCross/2-cfg.CleatWidth/2)+cShift)
		if !strip.Dimensions.IsDegenerate() {
			out.Pieces = append(out.Pieces, strip)
		}
	}

	if cfg.Appearance == model.AppearanceExposed && cfg.ExternalThickness > 0 {
		ext := derivedPiece(base, base.ID+"_external", model.PieceExternal,
			fmt.Sprintf("External Panel (%gmm)", cfg.ExternalThickness), cfg.ExternalThickness)
		ext.Dimensions = model.Dimensions{}.
			With(f.Normal, cfg.ExternalThickness).
			With(length, base.Dimensions.Along(length)+lNeg+lPos).
			With(cross, baseCross+cNeg+cPos)
		ext.Position = f.Mount(base, cfg.ExternalThickness, cfg.CleatThickness).
			Shift(length, lShift).
			Shift(cross, cShift)
		if !ext.Dimensions.IsDegenerate() {
			out.Pieces = append(out.Pieces, ext)
		}
	}
	return out
}
