package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/Carcass/internal/model"
	"github.com/piwi3910/Carcass/internal/store"
)

func TestHistoryPath(t *testing.T) {
	if got := HistoryPath("kitchen.carcass"); got != "kitchen.carcass.history" {
		t.Errorf("unexpected history path %s", got)
	}
}

func TestSaveLoadHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "design.carcass.history")

	p := model.NewProject()
	p.Name = "Before"
	p.Pieces = []model.Piece{model.NewPiece(model.PieceShelf, 18, model.RootSpaceID)}
	st := store.HistoryState{
		Past:   []store.Snapshot{store.MakeSnapshot(p, model.RootSpaceID, "Add Shelf")},
		Future: []store.Snapshot{store.MakeSnapshot(model.NewProject(), "", "Remove Piece")},
	}
	if err := SaveHistory(path, st); err != nil {
		t.Fatalf("SaveHistory failed: %v", err)
	}

	got, err := LoadHistory(path)
	if err != nil {
		t.Fatalf("LoadHistory failed: %v", err)
	}
	if len(got.Past) != 1 || len(got.Future) != 1 {
		t.Fatalf("expected 1 undo and 1 redo step, got %d/%d", len(got.Past), len(got.Future))
	}
	past := got.Past[0]
	if past.Label != "Add Shelf" || past.Selected != model.RootSpaceID || past.Project.Name != "Before" {
		t.Errorf("unexpected snapshot %+v", past)
	}
	if len(past.Project.Pieces) != 1 || past.Project.Pieces[0].Type != model.PieceShelf {
		t.Errorf("expected the shelf to survive, got %+v", past.Project.Pieces)
	}
}

func TestSaveHistoryEmptyRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "design.carcass.history")
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := SaveHistory(path, store.HistoryState{}); err != nil {
		t.Fatalf("SaveHistory failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected history file removed, stat err = %v", err)
	}
	if err := RemoveHistory(path); err != nil {
		t.Errorf("removing a missing history should not fail: %v", err)
	}
}

func TestLoadHistoryMissing(t *testing.T) {
	st, err := LoadHistory(filepath.Join(t.TempDir(), "none.history"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !st.IsEmpty() {
		t.Errorf("expected empty history, got %+v", st)
	}
}
