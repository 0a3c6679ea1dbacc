// Package export writes a rendered design to PDF reports, QR labels,
// spreadsheets, DXF drill maps and drilling programs.
package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/piwi3910/Carcass/internal/layout"
	"github.com/piwi3910/Carcass/internal/model"
)

// Report is everything an exporter needs: the design's identity and
// settings plus the rendered pieces of its layout.
type Report struct {
	Name     string
	Root     model.Dimensions
	Pieces   []model.Piece
	Settings model.DrillSettings
	Warnings []string
}

// NewReport combines a project with its computed layout.
func NewReport(p model.Project, res layout.Result) Report {
	return Report{
		Name:     p.Name,
		Root:     p.Root,
		Pieces:   res.Pieces,
		Settings: p.Settings,
		Warnings: res.Warnings,
	}
}

// CutList groups the report's pieces into cut list entries.
func (r Report) CutList() []model.CutListEntry {
	return model.BuildCutList(r.Pieces)
}

// DrilledFaces lists the faces that carry holes.
func (r Report) DrilledFaces() []model.DrilledFace {
	return model.DrilledFaces(r.Pieces)
}

func (r Report) validate() error {
	if len(r.Pieces) == 0 {
		return fmt.Errorf("no pieces to export")
	}
	return nil
}

// rgb is an 8-bit colour.
type rgb struct {
	R, G, B int
}

// parseHexColor reads "#rrggbb", falling back to grey.
func parseHexColor(s string) rgb {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return rgb{153, 153, 153}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return rgb{153, 153, 153}
	}
	return rgb{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}
}

func sizeLabel(e model.CutListEntry) string {
	return fmt.Sprintf("%.0f x %.0f x %.0f", e.Length, e.Width, e.Thickness)
}
