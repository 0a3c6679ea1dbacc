package layout

import (
	"math"
	"testing"

	"github.com/piwi3910/Carcass/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basePiece(id string, t model.PieceType, dims model.Dimensions, pos model.Position) model.Piece {
	p := model.NewPiece(t, dims.Along(mustAxis(t)), model.RootSpaceID)
	p.ID = id
	p.Dimensions = dims
	p.Position = pos
	return p
}

func mustAxis(t model.PieceType) model.Axis {
	a, ok := GoverningAxis(t)
	if !ok {
		return model.AxisX
	}
	return a
}

// assertPaired checks that derived and base holes pair up one to one at
// the same absolute point with opposite directions and split depth.
func assertPaired(t *testing.T, derived []model.Piece, base model.Piece, baseHoles []model.Hole, totalDepth float64) {
	t.Helper()
	byPair := make(map[string]model.Hole)
	for _, h := range baseHoles {
		_, dup := byPair[h.PairID]
		require.False(t, dup, "pair %s drilled twice on base", h.PairID)
		byPair[h.PairID] = h
	}
	seen := 0
	for _, d := range derived {
		for _, h := range d.Holes {
			b, ok := byPair[h.PairID]
			require.True(t, ok, "hole %s has no counterpart", h.ID)
			assert.InDelta(t, totalDepth, h.Depth+b.Depth, tol)
			assert.Equal(t, h.Direction.Opposite(), b.Direction)
			assert.True(t, d.Position.Add(h.Position).ApproxEqual(base.Position.Add(b.Position), tol),
				"pair %s: %+v vs %+v", h.PairID, d.Position.Add(h.Position), base.Position.Add(b.Position))
			seen++
		}
	}
	assert.Equal(t, len(baseHoles), seen)
}

func TestGenerateSlats_BottomSpacingMode(t *testing.T) {
	base := basePiece("b1", model.PieceBottom, model.Dimensions{Width: 764, Height: 18, Depth: 600}, model.Position{})
	cfg := model.DefaultSlattedPanelConfig()
	cfg.Mode = model.ModeSpacing
	cfg.Spacing = model.Float(50)
	cfg.Width = 30
	cfg.Direction = model.SlatsVertical

	gen := GenerateSlats(base, cfg)
	require.Len(t, gen.Pieces, 8)

	spacing := SlatSpacing(8, 30, 600)
	assert.InDelta(t, 51.428571, spacing, 1e-5)

	first := gen.Pieces[0]
	assert.Equal(t, "b1_slat_0", first.ID)
	assert.Equal(t, "Slat 1", first.Name)
	assert.Equal(t, model.PieceSlat, first.Type)
	assert.Equal(t, "b1", first.SourceID)
	assert.Equal(t, model.Dimensions{Width: 764, Height: 15, Depth: 30}, first.Dimensions)
	// Bottom slats hang below the panel.
	assert.InDelta(t, -16.5, first.Position.Y, tol)
	assert.InDelta(t, -285, first.Position.Z, tol)
	assert.InDelta(t, 285, gen.Pieces[7].Position.Z, tol)

	for i := 1; i < len(gen.Pieces); i++ {
		step := gen.Pieces[i].Position.Z - gen.Pieces[i-1].Position.Z
		assert.InDelta(t, 30+spacing, step, tol)
	}
}

func TestGenerateSlats_DowelPairs(t *testing.T) {
	base := basePiece("b1", model.PieceBottom, model.Dimensions{Width: 764, Height: 18, Depth: 600}, model.Position{Y: -1041})
	cfg := model.DefaultSlattedPanelConfig()

	gen := GenerateSlats(base, cfg)
	require.Len(t, gen.Pieces, 8)
	require.Len(t, gen.BaseHoles, 16)

	for _, s := range gen.Pieces {
		require.Len(t, s.Holes, 2)
		assert.InDelta(t, -332, s.Holes[0].Position.X, tol)
		assert.InDelta(t, 332, s.Holes[1].Position.X, tol)
		assert.Equal(t, model.GeneratorSlats, s.Holes[0].Source)
	}
	assert.Equal(t, "b1_slats_0", gen.BaseHoles[0].PairID)
	assert.Equal(t, "b1_slats_0_b", gen.BaseHoles[0].ID)
	assert.Equal(t, model.DirDown, gen.BaseHoles[0].Direction)
	assert.InDelta(t, 10, gen.BaseHoles[0].Depth, tol)

	assertPaired(t, gen.Pieces, base, gen.BaseHoles, 20)
}

func TestGenerateSlats_LateralOrientations(t *testing.T) {
	base := basePiece("l", model.PieceLateralLeft, model.Dimensions{Width: 18, Height: 2064, Depth: 600}, model.Position{X: -391})

	vertical := model.DefaultSlattedPanelConfig()
	gen := GenerateSlats(base, vertical)
	require.Len(t, gen.Pieces, 8)
	assert.Equal(t, model.Dimensions{Width: 15, Height: 2064, Depth: 30}, gen.Pieces[0].Dimensions)
	assert.InDelta(t, -391-9-7.5, gen.Pieces[0].Position.X, tol)

	horizontal := vertical
	horizontal.Direction = model.SlatsHorizontal
	gen = GenerateSlats(base, horizontal)
	require.Len(t, gen.Pieces, int(math.Floor((2064+50)/80.0)))
	assert.Equal(t, model.Dimensions{Width: 15, Height: 30, Depth: 600}, gen.Pieces[0].Dimensions)

	assertPaired(t, gen.Pieces, base, gen.BaseHoles, 20)
}

func TestGenerateSlats_FrontFacesForward(t *testing.T) {
	base := basePiece("f", model.PieceLateralFront, model.Dimensions{Width: 764, Height: 2064, Depth: 18}, model.Position{Z: -291})
	gen := GenerateSlats(base, model.DefaultSlattedPanelConfig())
	require.NotEmpty(t, gen.Pieces)

	assert.InDelta(t, -291-9-7.5, gen.Pieces[0].Position.Z, tol)
	assert.Equal(t, model.DirFront, gen.BaseHoles[0].Direction)
	assert.Equal(t, model.DirBack, gen.Pieces[0].Holes[0].Direction)
}

func TestGenerateSlats_CountMode(t *testing.T) {
	base := basePiece("b", model.PieceTop, model.Dimensions{Width: 500, Height: 18, Depth: 400}, model.Position{})
	cfg := model.DefaultSlattedPanelConfig()
	cfg.Mode = model.ModeCount
	cfg.Count = 5

	gen := GenerateSlats(base, cfg)
	require.Len(t, gen.Pieces, 5)
	assert.InDelta(t, 16.5, gen.Pieces[0].Position.Y, tol)

	cfg.Count = 0
	gen = GenerateSlats(base, cfg)
	assert.Len(t, gen.Pieces, 1)
}

func TestGenerateSlats_NoDowels(t *testing.T) {
	base := basePiece("b", model.PieceShelf, model.Dimensions{Width: 500, Height: 18, Depth: 400}, model.Position{})
	cfg := model.DefaultSlattedPanelConfig()
	cfg.Dowels.Disabled = true

	gen := GenerateSlats(base, cfg)
	assert.NotEmpty(t, gen.Pieces)
	assert.Empty(t, gen.BaseHoles)
	for _, s := range gen.Pieces {
		assert.Empty(t, s.Holes)
	}
}

func TestGenerateSlats_EmptyResults(t *testing.T) {
	cfg := model.DefaultSlattedPanelConfig()

	divider := basePiece("d", model.PieceDividerVertical, model.Dimensions{Width: 18, Height: 500, Depth: 400}, model.Position{})
	assert.Empty(t, GenerateSlats(divider, cfg).Pieces)

	flat := basePiece("b", model.PieceBottom, model.Dimensions{Width: 500, Height: 18, Depth: 0}, model.Position{})
	assert.Empty(t, GenerateSlats(flat, cfg).Pieces)

	base := basePiece("b", model.PieceBottom, model.Dimensions{Width: 500, Height: 18, Depth: 400}, model.Position{})
	zeroWidth := cfg
	zeroWidth.Width = 0
	assert.Empty(t, GenerateSlats(base, zeroWidth).Pieces)
}

func TestSlatFit(t *testing.T) {
	tests := []struct {
		name      string
		mode      model.CalculationMode
		count     int
		spacing   float64
		width     float64
		available float64
	}{
		{"spacing scenario", model.ModeSpacing, 0, 50, 30, 600},
		{"spacing wide", model.ModeSpacing, 0, 20, 45, 1733.5},
		{"spacing tight", model.ModeSpacing, 0, 1, 30, 95},
		{"count", model.ModeCount, 7, 0, 40, 764},
		{"count overfull", model.ModeCount, 12, 0, 80, 764},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := model.SlattedPanelConfig{Mode: tt.mode, Count: tt.count, Spacing: model.Float(tt.spacing), Width: tt.width}
			n := SlatCount(cfg, tt.available)
			require.GreaterOrEqual(t, n, 2)
			s := SlatSpacing(n, tt.width, tt.available)
			assert.InDelta(t, tt.available, float64(n)*tt.width+float64(n-1)*s, 1e-9)
		})
	}
}

func TestSlatCount_Minimum(t *testing.T) {
	cfg := model.SlattedPanelConfig{Mode: model.ModeSpacing, Spacing: model.Float(50), Width: 30}
	assert.Equal(t, 1, SlatCount(cfg, 10))
	assert.Equal(t, 0.0, SlatSpacing(1, 30, 10))
}

func TestDowelOffsets(t *testing.T) {
	assert.Nil(t, DowelOffsets(0, 600, 50))
	assert.Equal(t, []float64{0}, DowelOffsets(1, 600, 50))
	assert.Equal(t, []float64{-250, 250}, DowelOffsets(2, 600, 50))
	assert.Equal(t, []float64{-250, 0, 250}, DowelOffsets(3, 600, 50))
}
