package project

import (
	"errors"
	"fmt"
	"os"

	"github.com/piwi3910/Carcass/internal/store"
)

// HistoryExtension is appended to a design path to name its undo file.
const HistoryExtension = ".history"

// HistoryPath returns the undo file kept next to the design at path.
func HistoryPath(projectPath string) string {
	return projectPath + HistoryExtension
}

// SaveHistory writes the undo/redo stacks. An empty state removes the file.
func SaveHistory(path string, st store.HistoryState) error {
	if st.IsEmpty() {
		return RemoveHistory(path)
	}
	return writeJSON(path, "history", st)
}

// LoadHistory reads stacks written by SaveHistory. A missing file is an
// empty history.
func LoadHistory(path string) (store.HistoryState, error) {
	var st store.HistoryState
	if _, err := readJSON(path, "history", &st); err != nil {
		return store.HistoryState{}, err
	}
	return st, nil
}

// RemoveHistory deletes the undo file if there is one.
func RemoveHistory(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove history: %w", err)
	}
	return nil
}
