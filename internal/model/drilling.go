package model

// DrillPoint is a hole projected onto the face it is drilled from.
// U and V are measured from the face's lower-left corner.
type DrillPoint struct {
	HoleID   string
	U, V     float64
	Diameter float64
	Depth    float64
}

// DrilledFace groups the holes drilled from one face of a piece.
type DrilledFace struct {
	Piece  Piece
	Frame  FaceFrame
	Points []DrillPoint
}

// Label names the face for reports and program headers.
func (f DrilledFace) Label() string {
	name := f.Piece.Name
	if name == "" {
		name = f.Piece.Type.DisplayName()
	}
	return name + " (" + string(f.Frame.Direction) + ")"
}

// DrilledFaces lists every face with at least one hole, in piece order and
// then in AllDirections order.
func DrilledFaces(pieces []Piece) []DrilledFace {
	var faces []DrilledFace
	for _, p := range pieces {
		if len(p.Holes) == 0 {
			continue
		}
		for _, dir := range AllDirections {
			frame := FrameFor(p.Dimensions, dir)
			var points []DrillPoint
			for _, h := range p.Holes {
				if h.Direction != dir {
					continue
				}
				u, v := frame.Project(h.Position)
				points = append(points, DrillPoint{
					HoleID:   h.ID,
					U:        u,
					V:        v,
					Diameter: h.Diameter,
					Depth:    h.Depth,
				})
			}
			if len(points) > 0 {
				faces = append(faces, DrilledFace{Piece: p, Frame: frame, Points: points})
			}
		}
	}
	return faces
}

// HoleCount returns the total number of holes across faces.
func HoleCount(faces []DrilledFace) int {
	n := 0
	for _, f := range faces {
		n += len(f.Points)
	}
	return n
}
