package layout

import (
	"testing"

	"github.com/piwi3910/Carcass/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lateral() model.Piece {
	return basePiece("L", model.PieceLateralLeft, model.Dimensions{Width: 18, Height: 2100, Depth: 600}, model.Position{})
}

func TestGenerateCleats_DefaultFrontHidden(t *testing.T) {
	gen := GenerateCleats(lateral(), model.DefaultCleatConfig())
	require.Len(t, gen.Pieces, 1)
	assert.Empty(t, gen.BaseHoles)

	strip := gen.Pieces[0]
	assert.Equal(t, "L_cleat_front", strip.ID)
	assert.Equal(t, model.PieceCleat, strip.Type)
	assert.Equal(t, "L", strip.SourceID)
	assert.Equal(t, model.Dimensions{Width: 18, Height: 2100, Depth: 50}, strip.Dimensions)
	assert.True(t, strip.Position.ApproxEqual(model.Position{X: -18, Z: -275}, tol), "got %+v", strip.Position)
	assert.Empty(t, strip.Holes)
}

func TestGenerateCleats_BothExposed(t *testing.T) {
	cfg := model.DefaultCleatConfig()
	cfg.Mounting = model.MountBoth
	cfg.Appearance = model.AppearanceExposed

	gen := GenerateCleats(lateral(), cfg)
	require.Len(t, gen.Pieces, 3)

	assert.Equal(t, "L_cleat_front", gen.Pieces[0].ID)
	assert.Equal(t, "L_cleat_back", gen.Pieces[1].ID)
	assert.InDelta(t, 275, gen.Pieces[1].Position.Z, tol)

	ext := gen.Pieces[2]
	assert.Equal(t, "L_external", ext.ID)
	assert.Equal(t, model.PieceExternal, ext.Type)
	assert.Equal(t, "External Panel (18mm)", ext.Name)
	assert.Equal(t, model.Dimensions{Width: 18, Height: 2100, Depth: 600}, ext.Dimensions)
	// Beyond the cleats: base half + cleat + half the panel.
	assert.True(t, ext.Position.ApproxEqual(model.Position{X: -36}, tol), "got %+v", ext.Position)
}

func TestGenerateCleats_BackOnly(t *testing.T) {
	cfg := model.DefaultCleatConfig()
	cfg.Mounting = model.MountBack

	gen := GenerateCleats(lateral(), cfg)
	require.Len(t, gen.Pieces, 1)
	assert.Equal(t, "L_cleat_back", gen.Pieces[0].ID)
	assert.InDelta(t, 275, gen.Pieces[0].Position.Z, tol)
}

func TestGenerateCleats_AutoExtend(t *testing.T) {
	cfg := model.DefaultCleatConfig()
	cfg.AutoExtend = true
	cfg.ExtensionAmount = model.Float(18)

	gen := GenerateCleats(lateral(), cfg)
	require.Len(t, gen.Pieces, 1)
	assert.InDelta(t, 2136, gen.Pieces[0].Dimensions.Height, tol)

	cfg.Mounting = model.MountBoth
	gen = GenerateCleats(lateral(), cfg)
	require.Len(t, gen.Pieces, 2)
	assert.InDelta(t, 2172, gen.Pieces[0].Dimensions.Height, tol)
}

func TestGenerateCleats_ExtensionsShiftStrip(t *testing.T) {
	cfg := model.DefaultCleatConfig()
	cfg.Extensions.Top = model.Float(40)

	gen := GenerateCleats(lateral(), cfg)
	require.Len(t, gen.Pieces, 1)
	assert.InDelta(t, 2140, gen.Pieces[0].Dimensions.Height, tol)
	assert.InDelta(t, 20, gen.Pieces[0].Position.Y, tol)
}

func TestGenerateCleats_FrontPanelUsesSideEdges(t *testing.T) {
	base := basePiece("F", model.PieceLateralFront, model.Dimensions{Width: 764, Height: 2064, Depth: 18}, model.Position{Z: -291})
	gen := GenerateCleats(base, model.DefaultCleatConfig())
	require.Len(t, gen.Pieces, 1)

	strip := gen.Pieces[0]
	assert.Equal(t, model.Dimensions{Width: 50, Height: 2064, Depth: 18}, strip.Dimensions)
	assert.True(t, strip.Position.ApproxEqual(model.Position{X: -357, Z: -309}, tol), "got %+v", strip.Position)
}

func TestGenerateCleats_FlatPanel(t *testing.T) {
	base := basePiece("T", model.PieceTop, model.Dimensions{Width: 764, Height: 18, Depth: 600}, model.Position{Y: 1041})
	gen := GenerateCleats(base, model.DefaultCleatConfig())
	require.Len(t, gen.Pieces, 1)

	strip := gen.Pieces[0]
	assert.Equal(t, model.Dimensions{Width: 764, Height: 18, Depth: 50}, strip.Dimensions)
	assert.True(t, strip.Position.ApproxEqual(model.Position{Y: 1059, Z: -275}, tol), "got %+v", strip.Position)
}

func TestGenerateCleats_StructuralOnly(t *testing.T) {
	shelf := basePiece("S", model.PieceShelf, model.Dimensions{Width: 764, Height: 18, Depth: 600}, model.Position{})
	assert.Empty(t, GenerateCleats(shelf, model.DefaultCleatConfig()).Pieces)

	cfg := model.DefaultCleatConfig()
	cfg.CleatWidth = 0
	assert.Empty(t, GenerateCleats(lateral(), cfg).Pieces)
}
