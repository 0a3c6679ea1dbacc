package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
)

// DXF layer names.
const (
	LayerOutline = "OUTLINE"
	LayerHoles   = "HOLES"
	LayerText    = "TEXT"
)

// faceGap separates faces laid out along X in the drill map.
const faceGap = 50.0

// ExportDXF writes a drill map: each drilled face as a rectangle laid out
// left to right, with a circle per hole and the face label underneath.
func ExportDXF(path string, r Report) error {
	if err := r.validate(); err != nil {
		return err
	}
	faces := r.DrilledFaces()
	if len(faces) == 0 {
		return fmt.Errorf("no drilled faces to export")
	}

	d := dxf.NewDrawing()

	offsets := make([]float64, len(faces))
	x := 0.0
	for i, f := range faces {
		offsets[i] = x
		x += f.Frame.Width + faceGap
	}

	if _, err := d.AddLayer(LayerOutline, color.White, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add outline layer: %w", err)
	}
	for i, f := range faces {
		x0, w, h := offsets[i], f.Frame.Width, f.Frame.Height
		corners := [][2]float64{{x0, 0}, {x0 + w, 0}, {x0 + w, h}, {x0, h}}
		for j := range corners {
			a, b := corners[j], corners[(j+1)%len(corners)]
			if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
				return fmt.Errorf("failed to draw outline: %w", err)
			}
		}
	}

	if _, err := d.AddLayer(LayerHoles, color.Red, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add holes layer: %w", err)
	}
	for i, f := range faces {
		for _, pt := range f.Points {
			if _, err := d.Circle(offsets[i]+pt.U, pt.V, 0, pt.Diameter/2); err != nil {
				return fmt.Errorf("failed to draw hole: %w", err)
			}
		}
	}

	if _, err := d.AddLayer(LayerText, color.Cyan, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add text layer: %w", err)
	}
	for i, f := range faces {
		if _, err := d.Text(f.Label(), offsets[i], -20, 0, 10); err != nil {
			return fmt.Errorf("failed to write label: %w", err)
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write DXF: %w", err)
	}
	return nil
}
