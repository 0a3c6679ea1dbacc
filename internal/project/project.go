package project

import (
	"fmt"
	"io/fs"

	"github.com/piwi3910/Carcass/internal/model"
)

// FileExtension is the suffix used for saved designs.
const FileExtension = ".carcass"

// SaveProject writes the design to path as indented JSON. Only the
// enclosure and user pieces are stored; derived geometry is rebuilt on load.
func SaveProject(path string, p model.Project) error {
	return writeJSON(path, "project file", p)
}

// LoadProject reads a design written by SaveProject. Unlike the config
// loaders a missing file is an error wrapping fs.ErrNotExist.
func LoadProject(path string) (model.Project, error) {
	p := model.NewProject()
	found, err := readJSON(path, "project file", &p)
	if err != nil {
		return model.Project{}, err
	}
	if !found {
		return model.Project{}, fmt.Errorf("failed to read project file %s: %w", path, fs.ErrNotExist)
	}
	if p.Pieces == nil {
		p.Pieces = []model.Piece{}
	}
	if p.Root.IsDegenerate() {
		return model.Project{}, fmt.Errorf("invalid project file: root dimensions %+v", p.Root)
	}
	return p, nil
}
