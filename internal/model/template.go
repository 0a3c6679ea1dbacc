package model

import (
	"time"

	"github.com/google/uuid"
)

// DesignTemplate represents a reusable furniture design: the enclosure,
// the user pieces with their generators, and the drilling settings.
// Layout output is never stored; it is recomputed from the pieces.
type DesignTemplate struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Description      string        `json:"description"`
	CreatedAt        string        `json:"created_at"`
	UpdatedAt        string        `json:"updated_at"`
	Root             Dimensions    `json:"root"`
	DefaultThickness float64       `json:"default_thickness"`
	Pieces           []Piece       `json:"pieces"`
	Settings         DrillSettings `json:"settings"`
}

// NewDesignTemplate creates a new template from the given project.
func NewDesignTemplate(name, description string, p Project) DesignTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return DesignTemplate{
		ID:               uuid.New().String()[:8],
		Name:             name,
		Description:      description,
		CreatedAt:        now,
		UpdatedAt:        now,
		Root:             p.Root,
		DefaultThickness: p.DefaultThickness,
		Pieces:           ClonePieces(p.Pieces),
		Settings:         p.Settings,
	}
}

// ToProject creates a new Project from this template.
// Pieces get fresh IDs so they are independent of the template.
func (t DesignTemplate) ToProject(projectName string) Project {
	pieces := ClonePieces(t.Pieces)
	for i := range pieces {
		pieces[i].ID = uuid.New().String()[:8]
	}

	return Project{
		Name:             projectName,
		Root:             t.Root,
		DefaultThickness: t.DefaultThickness,
		Pieces:           pieces,
		Settings:         t.Settings,
	}
}

// TemplateStore holds a collection of design templates.
type TemplateStore struct {
	Templates []DesignTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []DesignTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t DesignTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *DesignTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns the template names in store order.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *DesignTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}
