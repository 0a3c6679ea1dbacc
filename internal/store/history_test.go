package store

import (
	"strings"
	"testing"

	"github.com/piwi3910/Carcass/internal/model"
)

func projectWith(ids ...string) model.Project {
	p := model.NewProject()
	for _, id := range ids {
		piece := model.NewPiece(model.PieceShelf, 18, model.RootSpaceID)
		piece.ID = id
		p.Pieces = append(p.Pieces, piece)
	}
	return p
}

func TestNewHistory(t *testing.T) {
	h := NewHistory(0)
	if h.limit != DefaultHistoryDepth {
		t.Errorf("expected limit %d, got %d", DefaultHistoryDepth, h.limit)
	}
	if h.CanUndo() || h.CanRedo() {
		t.Error("new history should be empty")
	}
	if h.UndoLabel() != "" || h.RedoLabel() != "" {
		t.Error("empty history has no labels")
	}
	if _, ok := h.Undo(MakeSnapshot(projectWith(), "", "x")); ok {
		t.Error("undo on empty history should fail")
	}
	if undo, redo := h.Len(); undo != 0 || redo != 0 {
		t.Errorf("undo on empty history must not park a redo step, got %d/%d", undo, redo)
	}
}

func TestPushAndUndo(t *testing.T) {
	h := NewHistory(DefaultHistoryDepth)
	h.Push(MakeSnapshot(projectWith(), "", "initial"))

	if !h.CanUndo() {
		t.Fatal("should be able to undo after push")
	}

	restored, ok := h.Undo(MakeSnapshot(projectWith("p1"), "", "current"))
	if !ok {
		t.Fatal("undo should succeed")
	}
	if len(restored.Project.Pieces) != 0 {
		t.Errorf("expected 0 pieces after undo, got %d", len(restored.Project.Pieces))
	}
	if restored.Label != "initial" {
		t.Errorf("expected label 'initial', got %q", restored.Label)
	}
}

func TestUndoRedo(t *testing.T) {
	h := NewHistory(DefaultHistoryDepth)
	h.Push(MakeSnapshot(projectWith(), "", "empty"))
	h.Push(MakeSnapshot(projectWith("p1"), "", "one piece"))

	current := MakeSnapshot(projectWith("p1", "p2"), "main", "two pieces")

	restored, ok := h.Undo(current)
	if !ok {
		t.Fatal("first undo should succeed")
	}
	if len(restored.Project.Pieces) != 1 {
		t.Errorf("expected 1 piece, got %d", len(restored.Project.Pieces))
	}

	if !h.CanRedo() {
		t.Fatal("should be able to redo")
	}
	redone, ok := h.Redo(restored)
	if !ok {
		t.Fatal("redo should succeed")
	}
	if len(redone.Project.Pieces) != 2 {
		t.Errorf("expected 2 pieces after redo, got %d", len(redone.Project.Pieces))
	}
	if redone.Selected != "main" {
		t.Errorf("expected selection to be restored, got %q", redone.Selected)
	}
}

func TestPushClearsRedo(t *testing.T) {
	h := NewHistory(DefaultHistoryDepth)
	h.Push(MakeSnapshot(projectWith(), "", "a"))
	h.Undo(MakeSnapshot(projectWith("p1"), "", "b"))
	if !h.CanRedo() {
		t.Fatal("expected redo after undo")
	}
	h.Push(MakeSnapshot(projectWith("p2"), "", "c"))
	if h.CanRedo() {
		t.Error("push should clear redo stack")
	}
}

func TestLimit(t *testing.T) {
	h := NewHistory(3)
	for _, label := range []string{"a", "b", "c", "d", "e"} {
		h.Push(MakeSnapshot(projectWith(), "", label))
	}
	if undo, _ := h.Len(); undo != 3 {
		t.Fatalf("expected 3 undo steps, got %d", undo)
	}
	if h.UndoLabel() != "e" {
		t.Errorf("expected newest step e, got %q", h.UndoLabel())
	}

	var labels []string
	cur := MakeSnapshot(projectWith(), "", "now")
	for h.CanUndo() {
		prev, _ := h.Undo(cur)
		labels = append(labels, prev.Label)
		cur = prev
	}
	if strings.Join(labels, "") != "edc" {
		t.Errorf("expected the oldest steps dropped, got %v", labels)
	}
	if h.RedoLabel() != "d" {
		t.Errorf("expected redo label d, got %q", h.RedoLabel())
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	p := projectWith("p1")
	snap := MakeSnapshot(p, "", "copy")
	p.Pieces[0].Name = "changed"
	if snap.Project.Pieces[0].Name == "changed" {
		t.Error("snapshot should not share pieces with the source project")
	}
}

func TestClear(t *testing.T) {
	h := NewHistory(DefaultHistoryDepth)
	h.Push(MakeSnapshot(projectWith(), "", "a"))
	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("clear should empty both stacks")
	}
}

func TestRestoreHistoryTrimsToLimit(t *testing.T) {
	h := NewHistory(DefaultHistoryDepth)
	for _, label := range []string{"a", "b", "c", "d"} {
		h.Push(MakeSnapshot(projectWith(label), "", label))
	}
	h.Undo(MakeSnapshot(projectWith("e"), "", "d"))

	st := h.State()
	if len(st.Past) != 3 || len(st.Future) != 1 || st.IsEmpty() {
		t.Fatalf("unexpected state %d/%d", len(st.Past), len(st.Future))
	}

	restored := RestoreHistory(st, 2)
	undo, redo := restored.Len()
	if undo != 2 || redo != 1 {
		t.Errorf("expected 2 undo and 1 redo step, got %d/%d", undo, redo)
	}
	if restored.UndoLabel() != "c" || restored.RedoLabel() != "d" {
		t.Errorf("expected newest steps kept, got undo %q redo %q", restored.UndoLabel(), restored.RedoLabel())
	}

	st.Past[2].Label = "changed"
	if restored.UndoLabel() == "changed" {
		t.Error("restored history should not share the saved slices")
	}
}
