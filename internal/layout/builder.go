package layout

import (
	"fmt"

	"github.com/piwi3910/Carcass/internal/model"
)

// Result is the complete layout of a design: the space tree as an arena,
// every rendered piece with merged holes, and the usable leaf spaces.
type Result struct {
	Spaces   []model.Space `json:"spaces"` // index 0 is the root
	Pieces   []model.Piece `json:"pieces"`
	Active   []int         `json:"active"` // arena indices of usable leaves, in tree order
	Warnings []string      `json:"warnings,omitempty"`
}

// Root returns the root space.
func (r Result) Root() model.Space {
	if len(r.Spaces) == 0 {
		return model.Space{}
	}
	return r.Spaces[0]
}

// SpaceByID returns the space with the given id.
func (r Result) SpaceByID(id string) (model.Space, bool) {
	for _, s := range r.Spaces {
		if s.ID == id {
			return s, true
		}
	}
	return model.Space{}, false
}

// ActiveSpaces returns the usable leaf spaces in tree order.
func (r Result) ActiveSpaces() []model.Space {
	out := make([]model.Space, len(r.Active))
	for i, idx := range r.Active {
		out[i] = r.Spaces[idx]
	}
	return out
}

// IsActive reports whether id names a usable leaf space.
func (r Result) IsActive(id string) bool {
	for _, idx := range r.Active {
		if r.Spaces[idx].ID == id {
			return true
		}
	}
	return false
}

// PieceByID returns the rendered piece with the given id.
func (r Result) PieceByID(id string) (model.Piece, bool) {
	for _, p := range r.Pieces {
		if p.ID == id {
			return p, true
		}
	}
	return model.Piece{}, false
}

// builder carries the state of one layout pass.
type builder struct {
	spaces   []model.Space
	pieces   []model.Piece
	active   []int
	warnings []string
	bySpace  map[string][]model.Piece
	holes    map[string][]model.Hole
}

// Build computes the layout of pieces inside a root enclosure. It is a
// pure function of its inputs: position, dimensions and generated holes
// stored on the input pieces are ignored and recomputed.
func Build(root model.Dimensions, pieces []model.Piece) Result {
	b := &builder{
		bySpace: make(map[string][]model.Piece),
		holes:   make(map[string][]model.Hole),
	}
	for _, p := range pieces {
		b.bySpace[p.ParentSpaceID] = append(b.bySpace[p.ParentSpaceID], p)
	}

	b.spaces = append(b.spaces, model.NewRootSpace(root))
	b.walk(0)

	visited := make(map[string]bool, len(b.spaces))
	for _, s := range b.spaces {
		visited[s.ID] = true
	}
	for _, p := range pieces {
		if !visited[p.ParentSpaceID] {
			b.warn("piece %s: space %q does not exist", p.ID, p.ParentSpaceID)
		}
	}

	for i := range b.pieces {
		if hs, ok := b.holes[b.pieces[i].ID]; ok {
			b.pieces[i].Holes = append(b.pieces[i].Holes, hs...)
		}
	}

	if b.pieces == nil {
		b.pieces = []model.Piece{}
	}
	return Result{
		Spaces:   b.spaces,
		Pieces:   b.pieces,
		Active:   b.active,
		Warnings: b.warnings,
	}
}

func (b *builder) warn(format string, args ...any) {
	b.warnings = append(b.warnings, fmt.Sprintf(format, args...))
}

func (b *builder) walk(idx int) {
	void := b.spaces[idx]

	var dividers, shelves []model.Piece
	placedKinds := make(map[model.PieceType]bool)
	for _, p := range b.bySpace[void.ID] {
		switch {
		case p.Type.IsStructural():
			if placedKinds[p.Type] {
				b.warn("piece %s: space %s already has a %s, ignored", p.ID, void.ID, p.Type)
				continue
			}
			placed := place(p, PlacementPosition(void, p.Type, p.Thickness), PlacementDimensions(void, p.Type, p.Thickness))
			if placed.Dimensions.IsDegenerate() {
				b.warn("piece %s: degenerate in space %s, skipped", p.ID, void.ID)
				continue
			}
			placedKinds[p.Type] = true
			b.emit(placed)
			void = ShrinkVoid(void, placed)
		case p.Type == model.PieceDividerVertical:
			dividers = append(dividers, p)
		case p.Type == model.PieceShelf:
			shelves = append(shelves, p)
		default:
			b.warn("piece %s: type %q cannot be placed directly", p.ID, p.Type)
		}
	}

	b.spaces[idx].CurrentDimensions = void.CurrentDimensions
	b.spaces[idx].Position = void.Position

	var (
		splitters []model.Piece
		axis      model.Axis
	)
	switch {
	case len(dividers) > 0:
		if len(shelves) > 0 {
			b.warn("space %s: vertical dividers take priority, %d shelf(s) placed without splitting", void.ID, len(shelves))
			for _, s := range DistributeInternal(void, shelves, model.AxisY) {
				b.emitInternal(s, void.ID)
			}
		}
		splitters, axis = dividers, model.AxisX
	case len(shelves) > 0:
		splitters, axis = shelves, model.AxisY
	}

	if len(splitters) == 0 {
		b.leaf(idx)
		return
	}

	positioned := DistributeInternal(void, splitters, axis)
	var kept []model.Piece
	for _, p := range positioned {
		if b.emitInternal(p, void.ID) {
			kept = append(kept, p)
		}
	}

	children := SplitVoid(void, kept, axis)
	if len(children) == 0 {
		b.warn("space %s: no room left between internal pieces", void.ID)
		b.leaf(idx)
		return
	}

	b.spaces[idx].IsActive = false
	first := len(b.spaces)
	for _, c := range children {
		c.Parent = idx
		b.spaces[idx].Children = append(b.spaces[idx].Children, len(b.spaces))
		b.spaces = append(b.spaces, c)
	}
	for i := range children {
		b.walk(first + i)
	}
}

func (b *builder) leaf(idx int) {
	b.spaces[idx].IsActive = true
	if b.spaces[idx].CurrentDimensions.IsDegenerate() {
		b.warn("space %s: no usable volume left", b.spaces[idx].ID)
		return
	}
	b.active = append(b.active, idx)
}

func (b *builder) emitInternal(p model.Piece, spaceID string) bool {
	if p.Dimensions.IsDegenerate() {
		b.warn("piece %s: degenerate in space %s, skipped", p.ID, spaceID)
		return false
	}
	b.emit(p)
	return true
}

// emit appends a placed piece and everything its generators derive from it.
func (b *builder) emit(p model.Piece) {
	b.pieces = append(b.pieces, p)

	for _, kind := range model.GeneratorOrder {
		g, ok := p.Generator(kind)
		if !ok {
			continue
		}
		if !Supports(kind, p.Type) {
			b.warn("piece %s: %s not supported on %s", p.ID, kind, p.Type)
			continue
		}
		var gen Generated
		switch kind {
		case model.GeneratorSlats:
			if g.Slats == nil {
				b.warn("piece %s: slat generator has no config", p.ID)
				continue
			}
			gen = GenerateSlats(p, *g.Slats)
		case model.GeneratorCapping:
			if g.Capping == nil {
				b.warn("piece %s: capping generator has no config", p.ID)
				continue
			}
			gen = GenerateCapping(p, *g.Capping)
		case model.GeneratorCleats:
			if g.Cleats == nil {
				b.warn("piece %s: cleat generator has no config", p.ID)
				continue
			}
			gen = GenerateCleats(p, *g.Cleats)
		}
		for _, d := range gen.Pieces {
			if d.Dimensions.IsDegenerate() {
				b.warn("piece %s: degenerate, skipped", d.ID)
				continue
			}
			b.pieces = append(b.pieces, d)
		}
		if len(gen.BaseHoles) > 0 {
			b.holes[p.ID] = append(b.holes[p.ID], gen.BaseHoles...)
		}
	}
}

// Supports reports whether a generator kind can run on a piece type.
func Supports(kind model.GeneratorKind, t model.PieceType) bool {
	switch kind {
	case model.GeneratorSlats, model.GeneratorCapping:
		_, ok := ExternalFace(t)
		return ok
	case model.GeneratorCleats:
		return t.IsStructural()
	}
	return false
}

// place returns a copy of p at the given placement. Generated holes from
// an earlier pass are dropped; user holes are kept.
func place(p model.Piece, pos model.Position, dims model.Dimensions) model.Piece {
	placed := p.Clone()
	placed.Position = pos
	placed.Dimensions = dims
	placed.Holes = userHoles(placed.Holes)
	return placed
}

func userHoles(holes []model.Hole) []model.Hole {
	var out []model.Hole
	for _, h := range holes {
		if h.Source == "" {
			out = append(out, h)
		}
	}
	return out
}
