package layout

import (
	"fmt"
	"math"

	"github.com/piwi3910/Carcass/internal/model"
)

// slatAxes maps a face normal and slat direction to the axis slats are
// spread across and the axis they run along.
var slatAxes = map[model.Axis]map[model.SlatDirection][2]model.Axis{
	model.AxisY: {
		model.SlatsVertical:   {model.AxisZ, model.AxisX},
		model.SlatsHorizontal: {model.AxisX, model.AxisZ},
	},
	model.AxisX: {
		model.SlatsVertical:   {model.AxisZ, model.AxisY},
		model.SlatsHorizontal: {model.AxisY, model.AxisZ},
	},
	model.AxisZ: {
		model.SlatsVertical:   {model.AxisX, model.AxisY},
		model.SlatsHorizontal: {model.AxisY, model.AxisX},
	},
}

// SlatAxes returns the spread and length axes for slats of direction dir
// on a panel of type t.
func SlatAxes(t model.PieceType, dir model.SlatDirection) (spread, length model.Axis, ok bool) {
	f, ok := ExternalFace(t)
	if !ok {
		return 0, 0, false
	}
	if dir != model.SlatsHorizontal {
		dir = model.SlatsVertical
	}
	axes := slatAxes[f.Normal][dir]
	return axes[0], axes[1], true
}

// SlatCount returns the number of slats for the available span.
func SlatCount(cfg model.SlattedPanelConfig, available float64) int {
	if cfg.Mode == model.ModeCount {
		if cfg.Count < 1 {
			return 1
		}
		return cfg.Count
	}
	n := int(math.Floor((available + cfg.Gap()) / (cfg.Width + cfg.Gap())))
	if n < 1 {
		return 1
	}
	return n
}

// SlatSpacing returns the gap that makes count slats exactly fill available.
func SlatSpacing(count int, width, available float64) float64 {
	if count <= 1 {
		return 0
	}
	return (available - float64(count)*width) / float64(count-1)
}

// DowelOffsets returns n positions along a length, centred on zero and
// inset by edgeOffset at both ends. A single dowel is centred.
func DowelOffsets(n int, length, edgeOffset float64) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{0}
	}
	usable := length - 2*edgeOffset
	out := make([]float64, n)
	for j := range out {
		t := float64(j) / float64(n-1)
		out[j] = -usable/2 + t*usable
	}
	return out
}

// GenerateSlats lays a slat array flush on the external face of base.
// Unsupported piece types and degenerate input yield an empty result.
func GenerateSlats(base model.Piece, cfg model.SlattedPanelConfig) Generated {
	f, ok := ExternalFace(base.Type)
	if !ok {
		return Generated{}
	}
	spread, length, _ := SlatAxes(base.Type, cfg.Direction)

	available := base.Dimensions.Along(spread)
	slatLength := base.Dimensions.Along(length)
	if available <= 0 || slatLength <= model.Epsilon || cfg.Width <= 0 || cfg.SlatThickness <= 0 {
		return Generated{}
	}
	if cfg.Mode != model.ModeCount && cfg.Gap()+cfg.Width <= 0 {
		return Generated{}
	}

	count := SlatCount(cfg, available)
	spacing := SlatSpacing(count, cfg.Width, available)
	first := -available/2 + cfg.Width/2
	step := cfg.Width + spacing

	var dowels []float64
	if d := cfg.Dowels; d != nil && !d.Disabled && d.CountPerSlat > 0 {
		dowels = DowelOffsets(d.CountPerSlat, slatLength, d.Offset())
	}

	var out Generated
	surface := f.Surface(base)
	pairN := 0
	for i := 0; i < count; i++ {
		offset := first + float64(i)*step

		slat := derivedPiece(base, fmt.Sprintf("%s_slat_%d", base.ID, i), model.PieceSlat,
			fmt.Sprintf("Slat %d", i+1), cfg.SlatThickness)
		slat.Dimensions = model.Dimensions{}.
			With(f.Normal, cfg.SlatThickness).
			With(spread, cfg.Width).
			With(length, slatLength)
		slat.Position = f.Mount(base, cfg.SlatThickness, 0).Shift(spread, offset)

		for _, along := range dowels {
			onSlat := model.Position{}.
				With(f.Normal, -f.Sign*cfg.SlatThickness/2).
				With(length, along)
			onBase := model.Position{}.
				With(f.Normal, surface).
				With(spread, offset).
				With(length, along)
			a, b := pair(fmt.Sprintf("%s_slats_%d", base.ID, pairN), model.GeneratorSlats, f, *cfg.Dowels, onSlat, onBase)
			slat.Holes = append(slat.Holes, a)
			out.BaseHoles = append(out.BaseHoles, b)
			pairN++
		}
		out.Pieces = append(out.Pieces, slat)
	}
	return out
}
