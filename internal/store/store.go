// Package store owns an editable design: the root enclosure, the user
// piece list and the selected space, with undo/redo and a memoised layout.
// A Store is single-writer and not safe for concurrent use.
package store

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/piwi3910/Carcass/internal/layout"
	"github.com/piwi3910/Carcass/internal/model"
)

const (
	slattedPrefix  = "Slatted Panel ("
	claddingSuffix = " Cladding"
)

// Store is the mutable design state behind the CLI.
type Store struct {
	project  model.Project
	selected string
	history  *History
	cache    *layout.Cache
	logger   *slog.Logger
}

// New creates a store editing a copy of p.
func New(p model.Project, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if p.Pieces == nil {
		p.Pieces = []model.Piece{}
	}
	if p.DefaultThickness <= 0 {
		p.DefaultThickness = model.DefaultThickness
	}
	return &Store{
		project:  p.Clone(),
		selected: p.Selected,
		history:  NewHistory(DefaultHistoryDepth),
		cache:    layout.NewCache(layout.DefaultCacheSize),
		logger:   logger.With("component", "store"),
	}
}

// Project returns a deep copy of the current design, including the
// current selection.
func (s *Store) Project() model.Project {
	cp := s.project.Clone()
	cp.Selected = s.selected
	return cp
}

// Layout returns the layout of the current design.
func (s *Store) Layout() layout.Result {
	return s.cache.Build(s.project.Root, s.project.Pieces)
}

// Selected returns the id of the selected space, or "" when none is.
func (s *Store) Selected() string {
	return s.selected
}

// History exposes the undo/redo stacks.
func (s *Store) History() *History {
	return s.history
}

// SetHistory replaces the undo/redo stacks, e.g. with ones saved by an
// earlier session. A nil h starts an empty history.
func (s *Store) SetHistory(h *History) {
	if h == nil {
		h = NewHistory(DefaultHistoryDepth)
	}
	s.history = h
}

func (s *Store) checkpoint(label string) {
	s.history.Push(MakeSnapshot(s.project, s.selected, label))
}

func (s *Store) findPiece(id string) (int, error) {
	idx := s.project.FindPiece(id)
	if idx < 0 {
		return -1, fmt.Errorf("piece %s: %w", id, ErrPieceNotFound)
	}
	return idx, nil
}

// targetSpace returns the selected space when it is an active leaf,
// otherwise the first active leaf.
func (s *Store) targetSpace() (model.Space, error) {
	res := s.Layout()
	if s.selected != "" && res.IsActive(s.selected) {
		sp, _ := res.SpaceByID(s.selected)
		return sp, nil
	}
	active := res.ActiveSpaces()
	if len(active) == 0 {
		return model.Space{}, ErrNoActiveSpace
	}
	return active[0], nil
}

// AddPiece inserts a piece of type t with the default thickness into the
// target space.
func (s *Store) AddPiece(t model.PieceType) (model.Piece, error) {
	return s.AddPieceWithThickness(t, s.project.DefaultThickness)
}

// AddPieceWithThickness inserts a piece of type t into the target space.
func (s *Store) AddPieceWithThickness(t model.PieceType, thickness float64) (model.Piece, error) {
	if !t.Known() || t.IsDerived() {
		return model.Piece{}, fmt.Errorf("add %q: %w", t, ErrUnknownPieceType)
	}
	if thickness <= 0 {
		return model.Piece{}, fmt.Errorf("thickness %g: %w", thickness, ErrInvalidDimensions)
	}
	target, err := s.targetSpace()
	if err != nil {
		return model.Piece{}, fmt.Errorf("add %s: %w", t, err)
	}
	if t.IsStructural() && s.hasStructural(t, target.ID) {
		return model.Piece{}, fmt.Errorf("add %s to %s: %w", t, target.ID, ErrDuplicateStructural)
	}

	s.checkpoint("Add " + t.DisplayName())
	p := model.NewPiece(t, thickness, target.ID)
	s.project.Pieces = append(s.project.Pieces, p)
	s.logger.Info("piece added", "id", p.ID, "type", t, "space", target.ID, "thickness", thickness)
	return p, nil
}

// SelectSpace selects the space new pieces go into. An empty id clears
// the selection.
func (s *Store) SelectSpace(id string) error {
	if id == "" {
		s.selected = ""
		return nil
	}
	if !s.Layout().IsActive(id) {
		return fmt.Errorf("select %s: %w", id, ErrSpaceNotActive)
	}
	s.selected = id
	s.logger.Debug("space selected", "space", id)
	return nil
}

// RemovePiece deletes a piece and every stored piece derived from it.
// Pieces left in spaces that no longer exist are removed too.
func (s *Store) RemovePiece(id string) error {
	if _, err := s.findPiece(id); err != nil {
		return err
	}
	s.checkpoint("Remove Piece")

	prefix := id + "_"
	kept := s.project.Pieces[:0:0]
	for _, p := range s.project.Pieces {
		if p.ID == id || strings.HasPrefix(p.ID, prefix) {
			continue
		}
		kept = append(kept, p)
	}
	removed := len(s.project.Pieces) - len(kept)
	s.project.Pieces = kept
	removed += s.pruneOrphans()

	if s.selected != "" && !s.Layout().IsActive(s.selected) {
		s.selected = ""
	}
	s.logger.Info("piece removed", "id", id, "count", removed)
	return nil
}

// pruneOrphans drops pieces whose space no longer exists, repeating until
// the tree is stable, and returns how many were dropped.
func (s *Store) pruneOrphans() int {
	dropped := 0
	for {
		res := s.Layout()
		kept := s.project.Pieces[:0:0]
		for _, p := range s.project.Pieces {
			if _, ok := res.SpaceByID(p.ParentSpaceID); ok {
				kept = append(kept, p)
			}
		}
		if len(kept) == len(s.project.Pieces) {
			return dropped
		}
		dropped += len(s.project.Pieces) - len(kept)
		s.project.Pieces = kept
	}
}

// UpdateRootDimensions resizes the root enclosure.
func (s *Store) UpdateRootDimensions(d model.Dimensions) error {
	if d.Width <= 0 || d.Height <= 0 || d.Depth <= 0 {
		return fmt.Errorf("root %gx%gx%g: %w", d.Width, d.Height, d.Depth, ErrInvalidDimensions)
	}
	s.checkpoint("Resize")
	s.project.Root = d
	s.logger.Info("root resized", "width", d.Width, "height", d.Height, "depth", d.Depth)
	return nil
}

// SetDefaultThickness sets the thickness used by AddPiece.
func (s *Store) SetDefaultThickness(t float64) error {
	if t <= 0 {
		return fmt.Errorf("thickness %g: %w", t, ErrInvalidDimensions)
	}
	s.project.DefaultThickness = t
	s.logger.Debug("default thickness set", "thickness", t)
	return nil
}

// SetName renames the project.
func (s *Store) SetName(name string) {
	s.checkpoint("Rename Design")
	s.project.Name = name
}

// RenamePiece changes a piece's display name.
func (s *Store) RenamePiece(id, name string) error {
	idx, err := s.findPiece(id)
	if err != nil {
		return err
	}
	s.checkpoint("Rename")
	s.project.Pieces[idx].Name = name
	return nil
}

// SetThickness changes the thickness of a stored piece.
func (s *Store) SetThickness(id string, t float64) error {
	idx, err := s.findPiece(id)
	if err != nil {
		return err
	}
	if t <= 0 {
		return fmt.Errorf("thickness %g: %w", t, ErrInvalidDimensions)
	}
	s.checkpoint("Set Thickness")
	s.project.Pieces[idx].Thickness = t
	return nil
}

// setGenerator replaces the generator of g.Kind on piece idx, or appends it.
func (s *Store) setGenerator(idx int, g model.Generator) {
	p := &s.project.Pieces[idx]
	for i := range p.Generators {
		if p.Generators[i].Kind == g.Kind {
			p.Generators[i] = g
			return
		}
	}
	p.Generators = append(p.Generators, g)
}

// clearGenerator removes the generator of the given kind and reports
// whether it was present.
func (s *Store) clearGenerator(idx int, kind model.GeneratorKind) bool {
	p := &s.project.Pieces[idx]
	for i := range p.Generators {
		if p.Generators[i].Kind == kind {
			p.Generators = append(p.Generators[:i:i], p.Generators[i+1:]...)
			if len(p.Generators) == 0 {
				p.Generators = nil
			}
			return true
		}
	}
	return false
}

// dropDerived removes stored pieces whose id starts with prefix.
func (s *Store) dropDerived(prefix string) {
	kept := s.project.Pieces[:0:0]
	for _, p := range s.project.Pieces {
		if !strings.HasPrefix(p.ID, prefix) {
			kept = append(kept, p)
		}
	}
	s.project.Pieces = kept
}

func (s *Store) generatorTarget(id string, kind model.GeneratorKind) (int, error) {
	idx, err := s.findPiece(id)
	if err != nil {
		return -1, err
	}
	t := s.project.Pieces[idx].Type
	if !layout.Supports(kind, t) {
		return -1, fmt.Errorf("%s on %s: %w", kind, t, ErrUnsupportedGenerator)
	}
	return idx, nil
}

// SetSlats attaches or updates the slat generator of a piece. Unset
// fields keep their previous values, then the defaults.
func (s *Store) SetSlats(id string, cfg model.SlattedPanelConfig) error {
	idx, err := s.generatorTarget(id, model.GeneratorSlats)
	if err != nil {
		return err
	}
	s.checkpoint("Slats")
	var prev *model.SlattedPanelConfig
	if g, ok := s.project.Pieces[idx].Generator(model.GeneratorSlats); ok {
		prev = g.Slats
	}
	s.setGenerator(idx, model.SlatGenerator(cfg.MergeWith(prev)))

	p := &s.project.Pieces[idx]
	p.Name = slattedPrefix + baseName(p.Name) + ")"
	s.logger.Info("slats set", "id", id, "direction", cfg.Direction, "mode", cfg.Mode)
	return nil
}

// ClearSlats removes the slat generator and restores the piece name.
func (s *Store) ClearSlats(id string) error {
	idx, err := s.findPiece(id)
	if err != nil {
		return err
	}
	if _, ok := s.project.Pieces[idx].Generator(model.GeneratorSlats); !ok {
		return nil
	}
	s.checkpoint("Clear Slats")
	s.clearGenerator(idx, model.GeneratorSlats)
	s.stripHoles(idx, model.GeneratorSlats)
	s.project.Pieces[idx].Name = baseName(s.project.Pieces[idx].Name)
	s.dropDerived(id + "_slat_")
	s.logger.Info("slats cleared", "id", id)
	return nil
}

// SetCapping attaches or updates the capping generator of a piece.
func (s *Store) SetCapping(id string, cfg model.CappingConfig) error {
	idx, err := s.generatorTarget(id, model.GeneratorCapping)
	if err != nil {
		return err
	}
	s.checkpoint("Capping")
	var prev *model.CappingConfig
	if g, ok := s.project.Pieces[idx].Generator(model.GeneratorCapping); ok {
		prev = g.Capping
	}
	s.setGenerator(idx, model.CappingGenerator(cfg.MergeWith(prev)))
	s.logger.Info("capping set", "id", id, "thickness", cfg.Thickness)
	return nil
}

// RemoveCapping removes the capping generator, its panel and only the
// holes capping drilled into the piece.
func (s *Store) RemoveCapping(id string) error {
	idx, err := s.findPiece(id)
	if err != nil {
		return err
	}
	s.checkpoint("Remove Capping")
	s.clearGenerator(idx, model.GeneratorCapping)
	s.stripHoles(idx, model.GeneratorCapping)
	s.dropDerived(id + "_capping")
	s.logger.Info("capping removed", "id", id)
	return nil
}

// SetCleats attaches or updates the cleat generator of a piece and marks
// it as cladding.
func (s *Store) SetCleats(id string, cfg model.CleatConfig) error {
	idx, err := s.generatorTarget(id, model.GeneratorCleats)
	if err != nil {
		return err
	}
	s.checkpoint("Cleats")
	var prev *model.CleatConfig
	if g, ok := s.project.Pieces[idx].Generator(model.GeneratorCleats); ok {
		prev = g.Cleats
	}
	s.setGenerator(idx, model.CleatGenerator(cfg.MergeWith(prev)))

	p := &s.project.Pieces[idx]
	p.Name = strings.TrimSuffix(p.Name, claddingSuffix) + claddingSuffix
	s.logger.Info("cleats set", "id", id, "mounting", cfg.Mounting, "appearance", cfg.Appearance)
	return nil
}

// RemoveCleats removes the cleat generator, its strips and external panel,
// and restores the piece name.
func (s *Store) RemoveCleats(id string) error {
	idx, err := s.findPiece(id)
	if err != nil {
		return err
	}
	s.checkpoint("Remove Cleats")
	s.clearGenerator(idx, model.GeneratorCleats)
	s.dropDerived(id + "_cleat_")
	s.dropDerived(id + "_external")

	idx = s.project.FindPiece(id)
	s.project.Pieces[idx].Name = strings.TrimSuffix(s.project.Pieces[idx].Name, claddingSuffix)
	s.logger.Info("cleats removed", "id", id)
	return nil
}

func (s *Store) stripHoles(idx int, kind model.GeneratorKind) {
	p := &s.project.Pieces[idx]
	var kept []model.Hole
	for _, h := range p.Holes {
		if h.Source != kind {
			kept = append(kept, h)
		}
	}
	p.Holes = kept
}

// baseName unwraps a "Slatted Panel (x)" name back to x.
func baseName(name string) string {
	if strings.HasPrefix(name, slattedPrefix) && strings.HasSuffix(name, ")") {
		return strings.TrimSuffix(strings.TrimPrefix(name, slattedPrefix), ")")
	}
	return name
}

// Clear removes every piece and resets the selection to the root.
func (s *Store) Clear() {
	s.checkpoint("Clear")
	s.project.Pieces = []model.Piece{}
	s.selected = model.RootSpaceID
	s.logger.Info("design cleared")
}

// Replace swaps in a whole project, e.g. after loading, and resets history.
func (s *Store) Replace(p model.Project) {
	if p.Pieces == nil {
		p.Pieces = []model.Piece{}
	}
	s.project = p.Clone()
	s.selected = p.Selected
	s.history.Clear()
	s.cache.Reset()
	s.logger.Info("project loaded", "name", p.Name, "pieces", len(p.Pieces))
}

// Undo restores the state before the last mutation. It returns the label
// of the undone step.
func (s *Store) Undo() (string, bool) {
	if !s.history.CanUndo() {
		return "", false
	}
	label := s.history.UndoLabel()
	snap, _ := s.history.Undo(MakeSnapshot(s.project, s.selected, label))
	s.project, s.selected = snap.Project, snap.Selected
	s.logger.Info("undo", "step", snap.Label)
	return snap.Label, true
}

// Redo reapplies the last undone mutation.
func (s *Store) Redo() bool {
	if !s.history.CanRedo() {
		return false
	}
	label := s.history.RedoLabel()
	snap, _ := s.history.Redo(MakeSnapshot(s.project, s.selected, label))
	s.project, s.selected = snap.Project, snap.Selected
	s.logger.Info("redo", "step", label)
	return true
}

// RedoLabel names the step Redo would reapply.
func (s *Store) RedoLabel() string {
	return s.history.RedoLabel()
}
