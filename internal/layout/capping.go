package layout

import (
	"fmt"
	"math"

	"github.com/piwi3910/Carcass/internal/model"
)

// CappingHoles is the fixed number of dowel pairs joining a capping panel
// to its base.
const CappingHoles = 4

// GenerateCapping places one cover panel flush on the external face of
// base, grown on each side by the configured extension. With dowels
// enabled it drills four pairs at the face corners inset by EdgeOffset.
func GenerateCapping(base model.Piece, cfg model.CappingConfig) Generated {
	f, ok := ExternalFace(base.Type)
	if !ok || cfg.Thickness <= 0 {
		return Generated{}
	}
	u, v := f.InPlane()

	uNeg, uPos, uShift := sideExtents(u, cfg.Extension)
	vNeg, vPos, vShift := sideExtents(v, cfg.Extension)

	panel := derivedPiece(base, base.ID+"_capping", model.PieceCapping,
		fmt.Sprintf("Capping (%s)", base.Name), cfg.Thickness)
	panel.Dimensions = model.Dimensions{}.
		With(f.Normal, cfg.Thickness).
		With(u, base.Dimensions.Along(u)+uNeg+uPos).
		With(v, base.Dimensions.Along(v)+vNeg+vPos)
	panel.Position = f.Mount(base, cfg.Thickness, 0).Shift(u, uShift).Shift(v, vShift)
	if panel.Dimensions.IsDegenerate() {
		return Generated{}
	}

	out := Generated{}
	if d := cfg.Dowels; d != nil && !d.Disabled {
		du := math.Max(0, base.Dimensions.Along(u)/2-d.Offset())
		dv := math.Max(0, base.Dimensions.Along(v)/2-d.Offset())
		corners := [CappingHoles][2]float64{{-du, -dv}, {du, -dv}, {du, dv}, {-du, dv}}
		surface := f.Surface(base)
		for n, c := range corners {
			onCap := model.Position{}.
				With(f.Normal, -f.Sign*cfg.Thickness/2).
				With(u, c[0]-uShift).
				With(v, c[1]-vShift)
			onBase := model.Position{}.
				With(f.Normal, surface).
				With(u, c[0]).
				With(v, c[1])
			a, b := pair(fmt.Sprintf("%s_capping_%d", base.ID, n), model.GeneratorCapping, f, *d, onCap, onBase)
			panel.Holes = append(panel.Holes, a)
			out.BaseHoles = append(out.BaseHoles, b)
		}
	}
	out.Pieces = []model.Piece{panel}
	return out
}
