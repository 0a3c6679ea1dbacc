package model

import "github.com/google/uuid"

// DrillBit represents a reusable drilling tool configuration.
type DrillBit struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Diameter     float64 `json:"diameter"`
	FeedRate     float64 `json:"feed_rate"`
	PlungeRate   float64 `json:"plunge_rate"`
	SpindleSpeed int     `json:"spindle_speed"`
	SafeZ        float64 `json:"safe_z"`
	PeckDepth    float64 `json:"peck_depth"`
}

// NewDrillBit creates a new DrillBit with a generated ID.
func NewDrillBit(name string, diameter, feedRate, plungeRate float64, spindleSpeed int, safeZ, peckDepth float64) DrillBit {
	return DrillBit{
		ID:           uuid.New().String()[:8],
		Name:         name,
		Diameter:     diameter,
		FeedRate:     feedRate,
		PlungeRate:   plungeRate,
		SpindleSpeed: spindleSpeed,
		SafeZ:        safeZ,
		PeckDepth:    peckDepth,
	}
}

// ApplyToSettings copies this bit's parameters into the given DrillSettings.
func (b DrillBit) ApplyToSettings(s *DrillSettings) {
	s.BitDiameter = b.Diameter
	s.FeedRate = b.FeedRate
	s.PlungeRate = b.PlungeRate
	s.SpindleSpeed = b.SpindleSpeed
	s.SafeZ = b.SafeZ
	s.PeckDepth = b.PeckDepth
}

// MaterialPreset represents a reusable sheet material definition.
type MaterialPreset struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	Thickness     float64 `json:"thickness"`
	Material      string  `json:"material"`
	PricePerSheet float64 `json:"price_per_sheet"`
}

// NewMaterialPreset creates a new MaterialPreset with a generated ID.
func NewMaterialPreset(name string, width, height, thickness float64, material string) MaterialPreset {
	return NewMaterialPresetWithPrice(name, width, height, thickness, material, 0)
}

// NewMaterialPresetWithPrice creates a new MaterialPreset with a sheet price.
func NewMaterialPresetWithPrice(name string, width, height, thickness float64, material string, price float64) MaterialPreset {
	return MaterialPreset{
		ID:            uuid.New().String()[:8],
		Name:          name,
		Width:         width,
		Height:        height,
		Thickness:     thickness,
		Material:      material,
		PricePerSheet: price,
	}
}

// ApplyToSettings copies the sheet size and price into the given DrillSettings.
func (m MaterialPreset) ApplyToSettings(s *DrillSettings) {
	s.SheetWidth = m.Width
	s.SheetHeight = m.Height
	s.PricePerSheet = m.PricePerSheet
}

// Inventory holds the user's saved drill bits and sheet materials.
type Inventory struct {
	Bits      []DrillBit       `json:"bits"`
	Materials []MaterialPreset `json:"materials"`
}

// DefaultInventory returns an inventory populated with common defaults.
func DefaultInventory() Inventory {
	return Inventory{
		Bits: []DrillBit{
			NewDrillBit("8mm Dowel Drill", 8.0, 3000, 600, 6000, 5.0, 0),
			NewDrillBit("6mm Dowel Drill", 6.0, 3000, 600, 6500, 5.0, 0),
			NewDrillBit("10mm Dowel Drill", 10.0, 3000, 500, 5500, 5.0, 0),
			NewDrillBit("5mm Shelf Pin Drill", 5.0, 3000, 700, 7000, 5.0, 0),
		},
		Materials: []MaterialPreset{
			NewMaterialPreset("MDF 18mm 2750x1850", 2750, 1850, 18, "MDF"),
			NewMaterialPreset("MDF 15mm 2750x1850", 2750, 1850, 15, "MDF"),
			NewMaterialPreset("MDF 25mm 2750x1850", 2750, 1850, 25, "MDF"),
			NewMaterialPreset("Plywood 18mm 2440x1220", 2440, 1220, 18, "Plywood"),
			NewMaterialPreset("Plywood 15mm 2440x1220", 2440, 1220, 15, "Plywood"),
		},
	}
}

// FindBitByID returns a pointer to the bit with the given ID, or nil.
func (inv *Inventory) FindBitByID(id string) *DrillBit {
	for i := range inv.Bits {
		if inv.Bits[i].ID == id {
			return &inv.Bits[i]
		}
	}
	return nil
}

// FindMaterialByID returns a pointer to the material with the given ID, or nil.
func (inv *Inventory) FindMaterialByID(id string) *MaterialPreset {
	for i := range inv.Materials {
		if inv.Materials[i].ID == id {
			return &inv.Materials[i]
		}
	}
	return nil
}

// BitNames returns the drill bit names in inventory order.
func (inv *Inventory) BitNames() []string {
	names := make([]string, len(inv.Bits))
	for i, b := range inv.Bits {
		names[i] = b.Name
	}
	return names
}

// MaterialNames returns the material names in inventory order.
func (inv *Inventory) MaterialNames() []string {
	names := make([]string, len(inv.Materials))
	for i, m := range inv.Materials {
		names[i] = m.Name
	}
	return names
}

// FindBitByName returns a pointer to the first bit with the given name, or nil.
func (inv *Inventory) FindBitByName(name string) *DrillBit {
	for i := range inv.Bits {
		if inv.Bits[i].Name == name {
			return &inv.Bits[i]
		}
	}
	return nil
}

// FindMaterialByName returns a pointer to the first material with the given name, or nil.
func (inv *Inventory) FindMaterialByName(name string) *MaterialPreset {
	for i := range inv.Materials {
		if inv.Materials[i].Name == name {
			return &inv.Materials[i]
		}
	}
	return nil
}

// MaterialForThickness returns the first material of the given thickness, or nil.
func (inv *Inventory) MaterialForThickness(thickness float64) *MaterialPreset {
	for i := range inv.Materials {
		if inv.Materials[i].Thickness == thickness {
			return &inv.Materials[i]
		}
	}
	return nil
}
