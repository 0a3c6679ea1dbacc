package model

import "math"

// Epsilon is the smallest extent (mm) a piece or space may have along any
// axis before it is treated as degenerate.
const Epsilon = 0.01

// Axis identifies one of the three frame axes.
type Axis int

const (
	AxisX Axis = iota // left/right
	AxisY             // vertical
	AxisZ             // front/back, negative Z is the front face
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	default:
		return "Z"
	}
}

// Dimensions holds the extents of a box in mm.
type Dimensions struct {
	Width  float64 `json:"width"`  // along X
	Height float64 `json:"height"` // along Y
	Depth  float64 `json:"depth"`  // along Z
}

// Along returns the extent along the given axis.
func (d Dimensions) Along(a Axis) float64 {
	switch a {
	case AxisX:
		return d.Width
	case AxisY:
		return d.Height
	default:
		return d.Depth
	}
}

// With returns a copy of d with the extent along a replaced by v.
func (d Dimensions) With(a Axis, v float64) Dimensions {
	switch a {
	case AxisX:
		d.Width = v
	case AxisY:
		d.Height = v
	default:
		d.Depth = v
	}
	return d
}

// IsDegenerate reports whether any extent is at or below Epsilon.
func (d Dimensions) IsDegenerate() bool {
	return d.Width <= Epsilon || d.Height <= Epsilon || d.Depth <= Epsilon
}

// Volume returns width x height x depth in cubic mm.
func (d Dimensions) Volume() float64 {
	return d.Width * d.Height * d.Depth
}

// Position is a centre point in mm, in the frame of the root enclosure.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Along returns the coordinate on the given axis.
func (p Position) Along(a Axis) float64 {
	switch a {
	case AxisX:
		return p.X
	case AxisY:
		return p.Y
	default:
		return p.Z
	}
}

// With returns a copy of p with the coordinate on a replaced by v.
func (p Position) With(a Axis, v float64) Position {
	switch a {
	case AxisX:
		p.X = v
	case AxisY:
		p.Y = v
	default:
		p.Z = v
	}
	return p
}

// Shift returns a copy of p moved by delta along a.
func (p Position) Shift(a Axis, delta float64) Position {
	return p.With(a, p.Along(a)+delta)
}

// Add returns the component-wise sum of p and q.
func (p Position) Add(q Position) Position {
	return Position{X: p.X + q.X, Y: p.Y + q.Y, Z: p.Z + q.Z}
}

// Sub returns the component-wise difference p - q.
func (p Position) Sub(q Position) Position {
	return Position{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// ApproxEqual reports whether p and q are within tol on every axis.
func (p Position) ApproxEqual(q Position, tol float64) bool {
	return math.Abs(p.X-q.X) <= tol && math.Abs(p.Y-q.Y) <= tol && math.Abs(p.Z-q.Z) <= tol
}

// Direction names the face a hole is drilled from.
type Direction string

const (
	DirUp    Direction = "up"
	DirDown  Direction = "down"
	DirLeft  Direction = "left"
	DirRight Direction = "right"
	DirFront Direction = "front" // -Z
	DirBack  Direction = "back"  // +Z
)

// AllDirections lists the six face directions in a stable order.
var AllDirections = []Direction{DirLeft, DirRight, DirDown, DirUp, DirFront, DirBack}

// Opposite returns the direction facing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	case DirFront:
		return DirBack
	case DirBack:
		return DirFront
	}
	return d
}

// Axis returns the axis the direction's face normal lies on.
func (d Direction) Axis() Axis {
	switch d {
	case DirLeft, DirRight:
		return AxisX
	case DirUp, DirDown:
		return AxisY
	default:
		return AxisZ
	}
}

// Sign returns +1 when the face normal points along the positive axis.
func (d Direction) Sign() float64 {
	switch d {
	case DirRight, DirUp, DirBack:
		return 1
	default:
		return -1
	}
}

// DirectionFor returns the face direction whose normal is sign along a.
func DirectionFor(a Axis, sign float64) Direction {
	switch a {
	case AxisX:
		if sign > 0 {
			return DirRight
		}
		return DirLeft
	case AxisY:
		if sign > 0 {
			return DirUp
		}
		return DirDown
	default:
		if sign > 0 {
			return DirBack
		}
		return DirFront
	}
}

// Hole is a drilled hole on a piece.
type Hole struct {
	ID        string        `json:"id"`
	PairID    string        `json:"pair_id,omitempty"` // shared by both halves of a dowel joint
	Source    GeneratorKind `json:"source,omitempty"`  // generator that produced it, empty for user holes
	Position  Position      `json:"position"`          // relative to the owning piece centre
	Diameter  float64       `json:"diameter"`          // mm
	Depth     float64       `json:"depth"`             // mm
	Direction Direction     `json:"direction"`         // face the hole is drilled from
}

// FaceFrame describes the 2D frame of one face of a box, used to project
// holes for drawings and drilling programs. U runs left to right and V
// bottom to top when looking at the face from outside, with the cabinet's
// front (-Z) toward the viewer: side faces swing open about their front
// edge, top and bottom fold down or up about theirs. Opposite faces are
// therefore mirror images of each other.
type FaceFrame struct {
	Direction Direction
	U, V      Axis
	USign     float64 // +1 when U runs along the positive axis
	VSign     float64
	Width     float64 // extent along U
	Height    float64 // extent along V
}

// faceAxes is the (U, V) orientation of each face.
var faceAxes = map[Direction]struct {
	u, v         Axis
	uSign, vSign float64
}{
	DirFront: {AxisX, AxisY, 1, 1},
	DirBack:  {AxisX, AxisY, -1, 1},
	DirLeft:  {AxisZ, AxisY, -1, 1},
	DirRight: {AxisZ, AxisY, 1, 1},
	DirUp:    {AxisX, AxisZ, 1, 1},
	DirDown:  {AxisX, AxisZ, 1, -1},
}

// FrameFor returns the face frame of dims seen from direction d.
func FrameFor(dims Dimensions, d Direction) FaceFrame {
	a, ok := faceAxes[d]
	if !ok {
		a = faceAxes[DirFront]
	}
	return FaceFrame{
		Direction: d,
		U:         a.u,
		V:         a.v,
		USign:     a.uSign,
		VSign:     a.vSign,
		Width:     dims.Along(a.u),
		Height:    dims.Along(a.v),
	}
}

// Project maps a centre-relative position onto face coordinates with the
// origin at the face's lower-left corner.
func (f FaceFrame) Project(p Position) (u, v float64) {
	return f.USign*p.Along(f.U) + f.Width/2, f.VSign*p.Along(f.V) + f.Height/2
}
