package export

import (
	"os"
	"testing"

	"github.com/piwi3910/Carcass/internal/layout"
	"github.com/piwi3910/Carcass/internal/model"
	"github.com/stretchr/testify/require"
)

// sampleReport renders a carcass whose bottom carries slats, so the
// report has derived pieces and dowel holes on several faces.
func sampleReport(t *testing.T) Report {
	t.Helper()

	p := model.NewProject()
	p.Name = "Wardrobe"
	for _, typ := range []model.PieceType{model.PieceLateralLeft, model.PieceLateralRight, model.PieceBottom, model.PieceTop} {
		p.Pieces = append(p.Pieces, model.NewPiece(typ, 18, model.RootSpaceID))
	}
	p.Pieces[2].Generators = []model.Generator{model.SlatGenerator(model.DefaultSlattedPanelConfig())}

	res := layout.Build(p.Root, p.Pieces)
	r := NewReport(p, res)
	require.NotEmpty(t, r.DrilledFaces(), "sample design should have drilled faces")
	return r
}

func requireFile(t *testing.T, path string, minSize int64) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), minSize, "%s seems too small", path)
}
