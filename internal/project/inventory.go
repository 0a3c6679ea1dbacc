package project

import (
	"fmt"

	"github.com/piwi3910/Carcass/internal/model"
)

func SaveInventory(path string, inv model.Inventory) error {
	return writeJSON(path, "inventory", inv)
}

// LoadInventory reads the drill bit and material inventory. A missing file
// is seeded with DefaultInventory and written back.
func LoadInventory(path string) (model.Inventory, error) {
	var inv model.Inventory
	found, err := readJSON(path, "inventory", &inv)
	if err != nil {
		return model.Inventory{}, err
	}
	if !found {
		inv = model.DefaultInventory()
		return inv, SaveInventory(path, inv)
	}
	return inv, nil
}

// ImportInventory merges the inventory at path into existing. Bits and
// materials whose ID is already present are skipped. On error existing is
// returned unchanged.
func ImportInventory(path string, existing model.Inventory) (model.Inventory, error) {
	var imported model.Inventory
	found, err := readJSON(path, "inventory", &imported)
	if err != nil {
		return existing, err
	}
	if !found {
		return existing, fmt.Errorf("inventory file not found: %s", path)
	}

	seen := make(map[string]bool, len(existing.Bits)+len(existing.Materials))
	for _, b := range existing.Bits {
		seen["bit:"+b.ID] = true
	}
	for _, m := range existing.Materials {
		seen["material:"+m.ID] = true
	}

	merged := existing
	merged.Bits = append([]model.DrillBit{}, existing.Bits...)
	merged.Materials = append([]model.MaterialPreset{}, existing.Materials...)
	for _, b := range imported.Bits {
		if !seen["bit:"+b.ID] {
			seen["bit:"+b.ID] = true
			merged.Bits = append(merged.Bits, b)
		}
	}
	for _, m := range imported.Materials {
		if !seen["material:"+m.ID] {
			seen["material:"+m.ID] = true
			merged.Materials = append(merged.Materials, m)
		}
	}
	return merged, nil
}
