package layout

import (
	"testing"

	"github.com/piwi3910/Carcass/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-6

func rootSpace() model.Space {
	return model.NewRootSpace(model.Dimensions{Width: 800, Height: 2100, Depth: 600})
}

// placeInto places a structural piece the way the builder does and
// returns it together with the shrunk space.
func placeInto(space model.Space, t model.PieceType, thickness float64) (model.Piece, model.Space) {
	p := model.NewPiece(t, thickness, space.ID)
	p.Position = PlacementPosition(space, t, thickness)
	p.Dimensions = PlacementDimensions(space, t, thickness)
	return p, ShrinkVoid(space, p)
}

func TestPlacementPosition_Structural(t *testing.T) {
	s := rootSpace()

	tests := []struct {
		typ  model.PieceType
		want model.Position
	}{
		{model.PieceLateralLeft, model.Position{X: -391}},
		{model.PieceLateralRight, model.Position{X: 391}},
		{model.PieceBottom, model.Position{Y: -1041}},
		{model.PieceTop, model.Position{Y: 1041}},
		{model.PieceLateralFront, model.Position{Z: -291}},
		{model.PieceLateralBack, model.Position{Z: 291}},
		{model.PieceShelf, model.Position{}},
		{model.PieceDividerVertical, model.Position{}},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			got := PlacementPosition(s, tt.typ, 18)
			assert.True(t, got.ApproxEqual(tt.want, tol), "got %+v", got)
		})
	}
}

func TestPlacementDimensions_ThicknessOnGoverningAxis(t *testing.T) {
	s := rootSpace()

	assert.Equal(t, model.Dimensions{Width: 18, Height: 2100, Depth: 600}, PlacementDimensions(s, model.PieceLateralLeft, 18))
	assert.Equal(t, model.Dimensions{Width: 800, Height: 18, Depth: 600}, PlacementDimensions(s, model.PieceBottom, 18))
	assert.Equal(t, model.Dimensions{Width: 800, Height: 2100, Depth: 18}, PlacementDimensions(s, model.PieceLateralBack, 18))
	assert.Equal(t, model.Dimensions{Width: 18, Height: 2100, Depth: 600}, PlacementDimensions(s, model.PieceDividerVertical, 18))
	assert.Equal(t, model.Dimensions{}, PlacementDimensions(s, model.PieceSlat, 18))
}

func TestShrinkVoid_MovesCentreAwayFromPiece(t *testing.T) {
	_, s := placeInto(rootSpace(), model.PieceLateralLeft, 18)

	assert.InDelta(t, 782, s.CurrentDimensions.Width, tol)
	assert.InDelta(t, 9, s.Position.X, tol)
	assert.Equal(t, rootSpace().OriginalDimensions, s.OriginalDimensions)

	shelf := model.NewPiece(model.PieceShelf, 18, s.ID)
	assert.Equal(t, s, ShrinkVoid(s, shelf))
}

func TestVoidConservation(t *testing.T) {
	sequences := [][]model.PieceType{
		model.StructuralTypes,
		{model.PieceTop, model.PieceLateralRight, model.PieceLateralBack},
		{model.PieceBottom, model.PieceLateralFront, model.PieceLateralLeft, model.PieceTop},
	}
	thicknesses := []float64{15, 18, 25}

	for _, seq := range sequences {
		s := rootSpace()
		used := model.Dimensions{}
		for i, typ := range seq {
			th := thicknesses[i%len(thicknesses)]
			var p model.Piece
			p, s = placeInto(s, typ, th)
			axis, ok := GoverningAxis(typ)
			require.True(t, ok)
			used = used.With(axis, used.Along(axis)+p.Thickness)
		}
		for _, a := range []model.Axis{model.AxisX, model.AxisY, model.AxisZ} {
			assert.InDelta(t, s.OriginalDimensions.Along(a), used.Along(a)+s.CurrentDimensions.Along(a), tol,
				"axis %s in sequence %v", a, seq)
		}
	}
}

func TestNonOverlap_StructuralPieces(t *testing.T) {
	s := rootSpace()
	var placed []model.Piece
	for _, typ := range model.StructuralTypes {
		var p model.Piece
		p, s = placeInto(s, typ, 18)
		placed = append(placed, p)
	}

	extent := func(p model.Piece, a model.Axis) (float64, float64) {
		c := p.Position.Along(a)
		h := p.Dimensions.Along(a) / 2
		return c - h, c + h
	}
	for i := range placed {
		for j := i + 1; j < len(placed); j++ {
			a, _ := GoverningAxis(placed[i].Type)
			b, _ := GoverningAxis(placed[j].Type)
			if a != b {
				continue
			}
			lo1, hi1 := extent(placed[i], a)
			lo2, hi2 := extent(placed[j], a)
			assert.True(t, hi1 <= lo2+tol || hi2 <= lo1+tol,
				"%s [%v,%v] overlaps %s [%v,%v]", placed[i].Type, lo1, hi1, placed[j].Type, lo2, hi2)
		}
	}

	// The remaining void lies strictly inside the enclosure walls.
	assert.InDelta(t, 764, s.CurrentDimensions.Width, tol)
	assert.InDelta(t, 2064, s.CurrentDimensions.Height, tol)
	assert.InDelta(t, 564, s.CurrentDimensions.Depth, tol)
	assert.True(t, s.Position.ApproxEqual(model.Position{}, tol))
}

func TestDistributeInternal_EqualGaps(t *testing.T) {
	s := rootSpace()
	s.CurrentDimensions.Height = 2064

	shelves := []model.Piece{
		model.NewPiece(model.PieceShelf, 18, s.ID),
		model.NewPiece(model.PieceShelf, 18, s.ID),
	}
	out := DistributeInternal(s, shelves, model.AxisY)
	require.Len(t, out, 2)

	assert.InDelta(t, -347, out[0].Position.Y, tol)
	assert.InDelta(t, 347, out[1].Position.Y, tol)
	assert.Equal(t, model.Dimensions{Width: 800, Height: 18, Depth: 600}, out[0].Dimensions)

	// Inputs are left untouched.
	assert.Equal(t, model.Position{}, shelves[0].Position)
}

func TestDistributeInternal_SingleMatchesPlacement(t *testing.T) {
	s := rootSpace()
	s.Position = model.Position{X: 12, Y: -40}
	d := model.NewPiece(model.PieceDividerVertical, 18, s.ID)

	out := DistributeInternal(s, []model.Piece{d}, model.AxisX)
	require.Len(t, out, 1)
	assert.True(t, out[0].Position.ApproxEqual(PlacementPosition(s, d.Type, 18), tol))
}

func TestSplitVoid_TilesParent(t *testing.T) {
	s := rootSpace()
	s.CurrentDimensions.Height = 2064

	shelves := DistributeInternal(s, []model.Piece{
		model.NewPiece(model.PieceShelf, 18, s.ID),
		model.NewPiece(model.PieceShelf, 18, s.ID),
	}, model.AxisY)
	// Reverse to check the split sorts by position.
	shelves[0], shelves[1] = shelves[1], shelves[0]

	children := SplitVoid(s, shelves, model.AxisY)
	require.Len(t, children, 3)

	assert.Equal(t, "main_hsub_0", children[0].ID)
	assert.Equal(t, "Main Unit / Row 1", children[0].Name)
	assert.Equal(t, "main", children[0].ParentSpaceID)
	assert.InDelta(t, -694, children[0].Position.Y, tol)
	assert.InDelta(t, 0, children[1].Position.Y, tol)
	assert.InDelta(t, 694, children[2].Position.Y, tol)

	total := 0.0
	for _, c := range children {
		assert.True(t, c.IsActive)
		assert.InDelta(t, 676, c.CurrentDimensions.Height, tol)
		assert.Equal(t, s.CurrentDimensions.Width, c.CurrentDimensions.Width)
		assert.Equal(t, s.CurrentDimensions.Depth, c.CurrentDimensions.Depth)
		total += c.CurrentDimensions.Height
	}
	for _, sh := range shelves {
		total += sh.Thickness
	}
	assert.InDelta(t, s.CurrentDimensions.Height, total, tol)

	// Children meet the shelf faces exactly.
	lowShelf := shelves[1]
	assert.InDelta(t, lowShelf.Position.Y-9, children[0].Position.Y+children[0].CurrentDimensions.Height/2, tol)
	assert.InDelta(t, lowShelf.Position.Y+9, children[1].Position.Y-children[1].CurrentDimensions.Height/2, tol)
}

func TestSplitVoid_DropsNarrowGaps(t *testing.T) {
	s := model.NewRootSpace(model.Dimensions{Width: 100, Height: 500, Depth: 400})
	d := model.NewPiece(model.PieceDividerVertical, 18, s.ID)
	d.Position = model.Position{X: -41}

	children := SplitVoid(s, []model.Piece{d}, model.AxisX)
	require.Len(t, children, 1)
	assert.Equal(t, "main_vsub_1", children[0].ID)
	assert.Equal(t, "Main Unit / Column 2", children[0].Name)
	assert.InDelta(t, 82, children[0].CurrentDimensions.Width, tol)
	assert.InDelta(t, 9, children[0].Position.X, tol)
}

func TestSplitVoid_NoDividers(t *testing.T) {
	s := rootSpace()
	children := SplitVoid(s, nil, model.AxisX)
	require.Len(t, children, 1)
	assert.Equal(t, s.CurrentDimensions, children[0].CurrentDimensions)
}
