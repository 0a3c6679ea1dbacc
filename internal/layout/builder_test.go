package layout

import (
	"testing"

	"github.com/piwi3910/Carcass/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultRoot = model.Dimensions{Width: 800, Height: 2100, Depth: 600}

func piece(id string, t model.PieceType, spaceID string) model.Piece {
	p := model.NewPiece(t, 18, spaceID)
	p.ID = id
	return p
}

func carcass() []model.Piece {
	return []model.Piece{
		piece("left", model.PieceLateralLeft, model.RootSpaceID),
		piece("right", model.PieceLateralRight, model.RootSpaceID),
		piece("bottom", model.PieceBottom, model.RootSpaceID),
		piece("top", model.PieceTop, model.RootSpaceID),
	}
}

func TestBuild_EmptyRoot(t *testing.T) {
	r := Build(defaultRoot, nil)

	require.Len(t, r.Spaces, 1)
	assert.Equal(t, []int{0}, r.Active)
	assert.Empty(t, r.Pieces)
	assert.NotNil(t, r.Pieces)
	assert.Equal(t, defaultRoot, r.Root().CurrentDimensions)
	assert.True(t, r.IsActive(model.RootSpaceID))
}

func TestBuild_FourSidedCarcass(t *testing.T) {
	r := Build(defaultRoot, carcass())

	require.Len(t, r.Active, 1)
	leaf := r.ActiveSpaces()[0]
	assert.Equal(t, model.RootSpaceID, leaf.ID)
	assert.InDelta(t, 764, leaf.CurrentDimensions.Width, tol)
	assert.InDelta(t, 2064, leaf.CurrentDimensions.Height, tol)
	assert.InDelta(t, 600, leaf.CurrentDimensions.Depth, tol)
	assert.True(t, leaf.Position.ApproxEqual(model.Position{}, tol))
	assert.Equal(t, defaultRoot, leaf.OriginalDimensions)

	require.Len(t, r.Pieces, 4)
	left, _ := r.PieceByID("left")
	assert.Equal(t, model.Dimensions{Width: 18, Height: 2100, Depth: 600}, left.Dimensions)
	assert.InDelta(t, -391, left.Position.X, tol)

	right, _ := r.PieceByID("right")
	assert.InDelta(t, 391, right.Position.X, tol)

	bottom, _ := r.PieceByID("bottom")
	assert.Equal(t, model.Dimensions{Width: 764, Height: 18, Depth: 600}, bottom.Dimensions)
	assert.True(t, bottom.Position.ApproxEqual(model.Position{Y: -1041}, tol))

	top, _ := r.PieceByID("top")
	assert.True(t, top.Position.ApproxEqual(model.Position{Y: 1041}, tol))
	assert.Empty(t, r.Warnings)
}

func TestBuild_SlattedBottom(t *testing.T) {
	pieces := carcass()
	cfg := model.DefaultSlattedPanelConfig()
	pieces[2].Generators = []model.Generator{model.SlatGenerator(cfg)}

	r := Build(defaultRoot, pieces)

	var slats []model.Piece
	for _, p := range r.Pieces {
		if p.Type == model.PieceSlat {
			slats = append(slats, p)
		}
	}
	require.Len(t, slats, 8)

	bottom, ok := r.PieceByID("bottom")
	require.True(t, ok)
	assert.Len(t, bottom.Holes, 16)
	assertPaired(t, slats, bottom, bottom.Holes, 20)

	// Derived pieces follow their base in the output.
	idx := -1
	for i, p := range r.Pieces {
		if p.ID == "bottom" {
			idx = i
		}
	}
	assert.Equal(t, "bottom_slat_0", r.Pieces[idx+1].ID)
}

func TestBuild_DividersTakePriority(t *testing.T) {
	pieces := append(carcass(),
		piece("shelf", model.PieceShelf, model.RootSpaceID),
		piece("div", model.PieceDividerVertical, model.RootSpaceID),
	)
	r := Build(defaultRoot, pieces)

	root := r.Root()
	assert.False(t, root.IsActive)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "main_vsub_0", r.Spaces[root.Children[0]].ID)
	assert.Equal(t, "main_vsub_1", r.Spaces[root.Children[1]].ID)
	for _, s := range r.Spaces {
		assert.NotContains(t, s.ID, "_hsub_")
	}

	for _, s := range r.ActiveSpaces() {
		assert.InDelta(t, 373, s.CurrentDimensions.Width, tol)
		assert.InDelta(t, 2064, s.CurrentDimensions.Height, tol)
	}

	shelf, ok := r.PieceByID("shelf")
	require.True(t, ok, "shelf is still rendered")
	assert.InDelta(t, 0, shelf.Position.Y, tol)
	div, ok := r.PieceByID("div")
	require.True(t, ok)
	assert.Equal(t, model.Dimensions{Width: 18, Height: 2064, Depth: 600}, div.Dimensions)
	assert.NotEmpty(t, r.Warnings)
}

func TestBuild_ShelvesSplitIntoRows(t *testing.T) {
	pieces := append(carcass(),
		piece("s1", model.PieceShelf, model.RootSpaceID),
		piece("s2", model.PieceShelf, model.RootSpaceID),
	)
	r := Build(defaultRoot, pieces)

	require.Len(t, r.Active, 3)
	ids := []string{}
	for _, s := range r.ActiveSpaces() {
		ids = append(ids, s.ID)
		assert.InDelta(t, 676, s.CurrentDimensions.Height, tol)
		assert.Equal(t, 0, s.Parent)
	}
	assert.Equal(t, []string{"main_hsub_0", "main_hsub_1", "main_hsub_2"}, ids)
	assert.False(t, r.IsActive(model.RootSpaceID))
}

func TestBuild_NestedSpaces(t *testing.T) {
	pieces := append(carcass(),
		piece("div", model.PieceDividerVertical, model.RootSpaceID),
		piece("shelf", model.PieceShelf, "main_vsub_0"),
		piece("back", model.PieceLateralBack, "main_vsub_1"),
	)
	r := Build(defaultRoot, pieces)

	ids := []string{}
	for _, s := range r.ActiveSpaces() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"main_vsub_0_hsub_0", "main_vsub_0_hsub_1", "main_vsub_1"}, ids)

	col, ok := r.SpaceByID("main_vsub_0")
	require.True(t, ok)
	assert.False(t, col.IsActive)
	assert.Equal(t, "Main Unit / Column 1", col.Name)

	right, ok := r.SpaceByID("main_vsub_1")
	require.True(t, ok)
	assert.InDelta(t, 582, right.CurrentDimensions.Depth, tol)
	assert.InDelta(t, -9, right.Position.Z, tol)

	back, ok := r.PieceByID("back")
	require.True(t, ok)
	assert.Equal(t, model.Dimensions{Width: 373, Height: 2064, Depth: 18}, back.Dimensions)
}

func TestBuild_DuplicateStructuralIgnored(t *testing.T) {
	pieces := append(carcass(), piece("left2", model.PieceLateralLeft, model.RootSpaceID))
	r := Build(defaultRoot, pieces)

	_, ok := r.PieceByID("left2")
	assert.False(t, ok)
	assert.InDelta(t, 764, r.Root().CurrentDimensions.Width, tol)
	require.Len(t, r.Warnings, 1)
	assert.Contains(t, r.Warnings[0], "left2")
}

func TestBuild_InvalidPiecesWarn(t *testing.T) {
	zero := piece("thin", model.PieceBottom, model.RootSpaceID)
	zero.Thickness = 0
	pieces := []model.Piece{
		zero,
		piece("stray", model.PieceSlat, model.RootSpaceID),
		piece("orphan", model.PieceTop, "nowhere"),
	}
	r := Build(defaultRoot, pieces)

	assert.Empty(t, r.Pieces)
	assert.Len(t, r.Warnings, 3)
	assert.Equal(t, defaultRoot, r.Root().CurrentDimensions)
}

func TestBuild_DegenerateLeafNotActive(t *testing.T) {
	pieces := []model.Piece{
		piece("left", model.PieceLateralLeft, model.RootSpaceID),
		piece("right", model.PieceLateralRight, model.RootSpaceID),
	}
	r := Build(model.Dimensions{Width: 30, Height: 500, Depth: 400}, pieces)

	assert.True(t, r.Root().IsActive)
	assert.Empty(t, r.Active)
	assert.NotEmpty(t, r.Warnings)
}

func TestBuild_HolesMergedFromAllGenerators(t *testing.T) {
	pieces := carcass()
	pieces[0].Generators = []model.Generator{
		model.CappingGenerator(model.DefaultCappingConfig()),
		model.SlatGenerator(model.DefaultSlattedPanelConfig()),
		model.CleatGenerator(model.DefaultCleatConfig()),
	}
	r := Build(defaultRoot, pieces)

	left, ok := r.PieceByID("left")
	require.True(t, ok)

	bySource := map[model.GeneratorKind]int{}
	for _, h := range left.Holes {
		bySource[h.Source]++
	}
	assert.Equal(t, 16, bySource[model.GeneratorSlats])
	assert.Equal(t, CappingHoles, bySource[model.GeneratorCapping])
	assert.Zero(t, bySource[model.GeneratorCleats])

	_, ok = r.PieceByID("left_capping")
	assert.True(t, ok)
	_, ok = r.PieceByID("left_cleat_front")
	assert.True(t, ok)
}

func TestBuild_HolePairingSymmetry(t *testing.T) {
	pieces := carcass()
	pieces[0].Generators = []model.Generator{model.CappingGenerator(model.DefaultCappingConfig())}
	pieces[2].Generators = []model.Generator{model.SlatGenerator(model.DefaultSlattedPanelConfig())}
	pieces = append(pieces, piece("shelf", model.PieceShelf, model.RootSpaceID))
	pieces[4].Generators = []model.Generator{model.CappingGenerator(model.DefaultCappingConfig())}

	r := Build(defaultRoot, pieces)

	type half struct {
		abs model.Position
		h   model.Hole
	}
	pairs := map[string][]half{}
	for _, p := range r.Pieces {
		for _, h := range p.Holes {
			pairs[h.PairID] = append(pairs[h.PairID], half{p.Position.Add(h.Position), h})
		}
	}
	require.NotEmpty(t, pairs)
	for id, hs := range pairs {
		require.Len(t, hs, 2, "pair %s", id)
		assert.InDelta(t, 20, hs[0].h.Depth+hs[1].h.Depth, tol)
		assert.Equal(t, hs[0].h.Direction.Opposite(), hs[1].h.Direction)
		assert.True(t, hs[0].abs.ApproxEqual(hs[1].abs, tol), "pair %s", id)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	pieces := append(carcass(),
		piece("div", model.PieceDividerVertical, model.RootSpaceID),
		piece("shelf", model.PieceShelf, "main_vsub_1"),
	)
	pieces[1].Generators = []model.Generator{model.CleatGenerator(model.DefaultCleatConfig())}
	pieces[3].Generators = []model.Generator{model.SlatGenerator(model.DefaultSlattedPanelConfig())}

	first := Build(defaultRoot, pieces)
	second := Build(defaultRoot, pieces)
	assert.Equal(t, first, second)
}

func TestBuild_RecomputesStoredGeometry(t *testing.T) {
	pieces := carcass()
	pieces[0].Generators = []model.Generator{model.CappingGenerator(model.DefaultCappingConfig())}
	first := Build(defaultRoot, pieces)

	// Feed rendered user pieces back in: stale geometry and generated
	// holes must not leak into the next pass.
	var again []model.Piece
	for _, p := range first.Pieces {
		if p.SourceID == "" {
			p.Position = model.Position{X: 999}
			again = append(again, p)
		}
	}
	second := Build(defaultRoot, again)

	left, _ := second.PieceByID("left")
	assert.Len(t, left.Holes, CappingHoles)
	assert.InDelta(t, -391, left.Position.X, tol)
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	pieces := carcass()
	pieces[2].Generators = []model.Generator{model.SlatGenerator(model.DefaultSlattedPanelConfig())}
	before := model.ClonePieces(pieces)

	Build(defaultRoot, pieces)
	assert.Equal(t, before, pieces)
}

func TestBuild_MissingGeneratorConfig(t *testing.T) {
	pieces := carcass()
	pieces[0].Generators = []model.Generator{{Kind: model.GeneratorSlats}}
	r := Build(defaultRoot, pieces)

	assert.Len(t, r.Pieces, 4)
	assert.Len(t, r.Warnings, 1)
}

func TestSupports(t *testing.T) {
	assert.True(t, Supports(model.GeneratorSlats, model.PieceShelf))
	assert.True(t, Supports(model.GeneratorCapping, model.PieceLateralBack))
	assert.False(t, Supports(model.GeneratorCleats, model.PieceShelf))
	assert.False(t, Supports(model.GeneratorCapping, model.PieceDividerVertical))
	assert.True(t, Supports(model.GeneratorCleats, model.PieceTop))
}
