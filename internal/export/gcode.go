package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/Carcass/internal/gcode"
)

// ExportGCode writes one drilling program per drilled face into dir and
// returns the written paths.
func ExportGCode(dir string, r Report) ([]string, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	programs := gcode.New(r.Settings).GenerateAll(r.Pieces)
	if len(programs) == 0 {
		return nil, fmt.Errorf("no drilled faces to export")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := make([]string, 0, len(programs))
	for _, p := range programs {
		path := filepath.Join(dir, p.FileName)
		if err := os.WriteFile(path, []byte(p.Code), 0644); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", p.FileName, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
