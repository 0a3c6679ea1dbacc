package store

import "github.com/piwi3910/Carcass/internal/model"

// DefaultHistoryDepth is the number of undo steps a store keeps.
const DefaultHistoryDepth = 50

// Snapshot is the design and selection before one mutation.
type Snapshot struct {
	Project  model.Project `json:"project"`
	Selected string        `json:"selected,omitempty"`
	Label    string        `json:"label"` // e.g. "Add Shelf"
}

// MakeSnapshot deep-copies p so later edits do not leak into history.
func MakeSnapshot(p model.Project, selected, label string) Snapshot {
	return Snapshot{Project: p.Clone(), Selected: selected, Label: label}
}

type stack []Snapshot

func (s *stack) push(v Snapshot) { *s = append(*s, v) }

func (s *stack) pop() (Snapshot, bool) {
	v, ok := s.peek()
	if ok {
		*s = (*s)[:len(*s)-1]
	}
	return v, ok
}

func (s stack) peek() (Snapshot, bool) {
	if len(s) == 0 {
		return Snapshot{}, false
	}
	return s[len(s)-1], true
}

// History is a bounded undo/redo timeline. Past holds states to go back
// to, future the states undone since the last Push.
type History struct {
	past   stack
	future stack
	limit  int
}

// NewHistory keeps at most limit undo steps; limit <= 0 uses
// DefaultHistoryDepth.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryDepth
	}
	return &History{limit: limit}
}

// Push records the state before a mutation and forgets the redo branch.
func (h *History) Push(s Snapshot) {
	h.past.push(s)
	if over := len(h.past) - h.limit; over > 0 {
		h.past = append(stack(nil), h.past[over:]...)
	}
	h.future = nil
}

// Undo returns the previous state and parks current for Redo.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	prev, ok := h.past.pop()
	if ok {
		h.future.push(current)
	}
	return prev, ok
}

// Redo is the inverse of Undo.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	next, ok := h.future.pop()
	if ok {
		h.past.push(current)
	}
	return next, ok
}

func (h *History) CanUndo() bool { return len(h.past) > 0 }
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// UndoLabel names the step Undo would revert.
func (h *History) UndoLabel() string {
	s, _ := h.past.peek()
	return s.Label
}

// RedoLabel names the step Redo would reapply.
func (h *History) RedoLabel() string {
	s, _ := h.future.peek()
	return s.Label
}

// Len returns the number of undo and redo steps held.
func (h *History) Len() (undo, redo int) {
	return len(h.past), len(h.future)
}

func (h *History) Clear() {
	h.past, h.future = nil, nil
}

// HistoryState is the serialisable form of a History, oldest step first.
type HistoryState struct {
	Past   []Snapshot `json:"past"`
	Future []Snapshot `json:"future"`
}

// IsEmpty reports whether the state holds no steps.
func (st HistoryState) IsEmpty() bool {
	return len(st.Past) == 0 && len(st.Future) == 0
}

// State copies the stacks out for saving.
func (h *History) State() HistoryState {
	return HistoryState{
		Past:   append([]Snapshot(nil), h.past...),
		Future: append([]Snapshot(nil), h.future...),
	}
}

// RestoreHistory rebuilds a History from a saved state. Undo steps beyond
// limit are dropped from the oldest end.
func RestoreHistory(st HistoryState, limit int) *History {
	h := NewHistory(limit)
	past := st.Past
	if over := len(past) - h.limit; over > 0 {
		past = past[over:]
	}
	h.past = append(stack(nil), past...)
	h.future = append(stack(nil), st.Future...)
	return h
}
