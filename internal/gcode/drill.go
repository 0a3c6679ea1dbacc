// Package gcode writes and reads drilling programs for the holes on
// rendered pieces.
package gcode

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/piwi3910/Carcass/internal/model"
)

// peckClearance is how far above the surface the bit lifts between pecks.
const peckClearance = 1.0

// Program is the drilling program for one face of one piece.
type Program struct {
	FileName string
	Face     model.DrilledFace
	Code     string
}

// Generator produces drilling GCode from rendered pieces.
type Generator struct {
	Settings model.DrillSettings
	profile  model.GCodeProfile
}

func New(settings model.DrillSettings) *Generator {
	return &Generator{
		Settings: settings,
		profile:  model.GetProfile(settings.GCodeProfile),
	}
}

// Profile returns the post-processor profile in use.
func (g *Generator) Profile() model.GCodeProfile {
	return g.profile
}

// GenerateAll produces one program per drilled face, in DrilledFaces order.
func (g *Generator) GenerateAll(pieces []model.Piece) []Program {
	var programs []Program
	for i, face := range model.DrilledFaces(pieces) {
		programs = append(programs, Program{
			FileName: programFileName(i+1, face),
			Face:     face,
			Code:     g.GenerateFace(face, i+1),
		})
	}
	return programs
}

// GenerateFace produces the program for a single face. The origin is the
// face's lower-left corner and Z0 is the face surface.
func (g *Generator) GenerateFace(face model.DrilledFace, index int) string {
	var b strings.Builder

	g.writeHeader(&b, face, index)
	for i, pt := range face.Points {
		g.writeHole(&b, pt, i+1)
	}
	g.writeFooter(&b)

	return b.String()
}

func (g *Generator) writeHeader(b *strings.Builder, face model.DrilledFace, idx int) {
	p := g.profile

	b.WriteString(g.comment(fmt.Sprintf("Carcass drilling program %d: %s", idx, face.Label())))
	b.WriteString(g.comment(fmt.Sprintf("Face: %.1f x %.1f mm, origin lower-left, Z0 at surface",
		face.Frame.Width, face.Frame.Height)))
	b.WriteString(g.comment(fmt.Sprintf("Holes: %d", len(face.Points))))
	b.WriteString(g.comment(fmt.Sprintf("Bit: %.1fmm, Plunge: %.0f mm/min, Spindle: %d rpm",
		g.Settings.BitDiameter, g.Settings.PlungeRate, g.Settings.SpindleSpeed)))
	if g.Settings.PeckDepth > 0 {
		b.WriteString(g.comment(fmt.Sprintf("Peck: %.1fmm", g.Settings.PeckDepth)))
	}
	b.WriteString(g.comment(fmt.Sprintf("Profile: %s", p.Name)))
	b.WriteString("\n")

	for _, code := range p.StartCode {
		b.WriteString(code + "\n")
	}

	if p.SpindleStart != "" {
		b.WriteString(fmt.Sprintf(p.SpindleStart+"\n", g.Settings.SpindleSpeed))
	}

	b.WriteString(fmt.Sprintf("%s Z%s\n", p.RapidMove, g.format(g.Settings.SafeZ)))
	b.WriteString("\n")
}

func (g *Generator) writeHole(b *strings.Builder, pt model.DrillPoint, n int) {
	p := g.profile

	b.WriteString(g.comment(fmt.Sprintf("Hole %d: %s, %.1fmm x %.1fmm deep", n, pt.HoleID, pt.Diameter, pt.Depth)))
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(pt.U), g.format(pt.V)))

	for i, depth := range g.pecks(pt.Depth) {
		if i > 0 {
			// Lift to clear chips, then return to the last depth quickly.
			b.WriteString(fmt.Sprintf("%s Z%s\n", p.RapidMove, g.format(peckClearance)))
		}
		b.WriteString(fmt.Sprintf("%s Z%s F%s\n", p.FeedMove, g.format(-depth), g.format(g.Settings.PlungeRate)))
	}

	if g.Settings.DwellSeconds > 0 && p.Dwell != "" {
		b.WriteString(fmt.Sprintf(p.Dwell+"\n", g.Settings.DwellSeconds))
	}

	b.WriteString(fmt.Sprintf("%s Z%s\n", p.RapidMove, g.format(g.Settings.SafeZ)))
}

// pecks returns the successive target depths for a hole.
func (g *Generator) pecks(depth float64) []float64 {
	step := g.Settings.PeckDepth
	if step <= 0 || step >= depth {
		return []float64{depth}
	}
	n := int(math.Ceil(depth/step - 1e-9))
	out := make([]float64, 0, n)
	for i := 1; i <= n; i++ {
		d := float64(i) * step
		if d > depth {
			d = depth
		}
		out = append(out, d)
	}
	return out
}

func (g *Generator) writeFooter(b *strings.Builder) {
	p := g.profile

	b.WriteString("\n")
	b.WriteString(g.comment("=== Face complete ==="))

	for _, code := range p.EndCode {
		code = strings.ReplaceAll(code, "[SafeZ]", g.format(g.Settings.SafeZ))
		b.WriteString(code + "\n")
	}

	if p.SpindleStop != "" {
		b.WriteString(p.SpindleStop + "\n")
	}
}

// comment wraps text in the profile's comment syntax.
func (g *Generator) comment(text string) string {
	if g.profile.CommentSuffix != "" {
		return g.profile.CommentPrefix + " " + text + " " + g.profile.CommentSuffix + "\n"
	}
	return g.profile.CommentPrefix + " " + text + "\n"
}

// format formats a coordinate according to the profile's decimal places.
func (g *Generator) format(v float64) string {
	format := fmt.Sprintf("%%.%df", g.profile.DecimalPlaces)
	return fmt.Sprintf(format, v)
}

var unsafeName = regexp.MustCompile(`[^a-z0-9]+`)

func programFileName(idx int, face model.DrilledFace) string {
	name := strings.Trim(unsafeName.ReplaceAllString(strings.ToLower(face.Piece.Name), "_"), "_")
	if name == "" {
		name = face.Piece.ID
	}
	return fmt.Sprintf("%02d_%s_%s.gcode", idx, name, face.Frame.Direction)
}
