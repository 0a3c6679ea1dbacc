package project

import (
	"github.com/piwi3910/Carcass/internal/model"
)

func SaveTemplates(path string, store model.TemplateStore) error {
	return writeJSON(path, "templates", store)
}

// LoadTemplates returns an empty store when the file does not exist.
func LoadTemplates(path string) (model.TemplateStore, error) {
	store := model.NewTemplateStore()
	if _, err := readJSON(path, "templates", &store); err != nil {
		return model.TemplateStore{}, err
	}
	if store.Templates == nil {
		store.Templates = []model.DesignTemplate{}
	}
	return store, nil
}
