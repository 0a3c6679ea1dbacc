package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/Carcass/internal/model"
)

func TestSaveAndLoadTemplates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "templates.json")

	p := model.NewProject()
	p.Root = model.Dimensions{Width: 600, Height: 720, Depth: 560}
	p.Pieces = []model.Piece{
		model.NewPiece(model.PieceLateralLeft, 18, model.RootSpaceID),
		model.NewPiece(model.PieceShelf, 18, model.RootSpaceID),
	}

	store := model.NewTemplateStore()
	store.Add(model.NewDesignTemplate("Base Cabinet", "Kitchen base unit", p))

	if err := SaveTemplates(path, store); err != nil {
		t.Fatalf("SaveTemplates error: %v", err)
	}

	loaded, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("LoadTemplates error: %v", err)
	}

	if len(loaded.Templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(loaded.Templates))
	}
	tmpl := loaded.Templates[0]
	if tmpl.Name != "Base Cabinet" {
		t.Errorf("expected name Base Cabinet, got %s", tmpl.Name)
	}
	if tmpl.Root != p.Root {
		t.Errorf("expected root %+v, got %+v", p.Root, tmpl.Root)
	}
	if len(tmpl.Pieces) != 2 {
		t.Errorf("expected 2 pieces, got %d", len(tmpl.Pieces))
	}
}

func TestLoadTemplatesMissingFile(t *testing.T) {
	store, err := LoadTemplates(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if store.Templates == nil || len(store.Templates) != 0 {
		t.Errorf("expected empty non-nil templates, got %+v", store.Templates)
	}
}

func TestLoadTemplatesInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")
	if err := os.WriteFile(path, []byte("[1,2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTemplates(path); err == nil || !strings.Contains(err.Error(), "failed to parse templates") {
		t.Errorf("expected a parse error, got %v", err)
	}
}
