package model

import (
	"fmt"
	"strings"
)

// GeneratorKind identifies a derived-geometry generator.
type GeneratorKind string

const (
	GeneratorSlats   GeneratorKind = "slats"
	GeneratorCapping GeneratorKind = "capping"
	GeneratorCleats  GeneratorKind = "cleats"
)

// GeneratorOrder is the order generators run on a single piece.
var GeneratorOrder = []GeneratorKind{GeneratorSlats, GeneratorCapping, GeneratorCleats}

// Generator attaches one kind of derived geometry to a piece. Exactly one
// of the config pointers matching Kind is set; a nil config makes the
// generator a no-op.
type Generator struct {
	Kind    GeneratorKind       `json:"kind"`
	Slats   *SlattedPanelConfig `json:"slats,omitempty"`
	Capping *CappingConfig      `json:"capping,omitempty"`
	Cleats  *CleatConfig        `json:"cleats,omitempty"`
}

func SlatGenerator(cfg SlattedPanelConfig) Generator {
	return Generator{Kind: GeneratorSlats, Slats: &cfg}
}

func CappingGenerator(cfg CappingConfig) Generator {
	return Generator{Kind: GeneratorCapping, Capping: &cfg}
}

func CleatGenerator(cfg CleatConfig) Generator {
	return Generator{Kind: GeneratorCleats, Cleats: &cfg}
}

// Clone returns a deep copy of g.
func (g Generator) Clone() Generator {
	cp := Generator{Kind: g.Kind}
	if g.Slats != nil {
		s := g.Slats.clone()
		cp.Slats = &s
	}
	if g.Capping != nil {
		c := g.Capping.clone()
		cp.Capping = &c
	}
	if g.Cleats != nil {
		c := g.Cleats.clone()
		cp.Cleats = &c
	}
	return cp
}

// DowelOptions configures the dowel holes joining a derived panel to its base.
type DowelOptions struct {
	Diameter     float64  `json:"diameter"`              // mm
	Depth        float64  `json:"depth"`                 // total depth, split evenly between both panels
	CountPerSlat int      `json:"count_per_slat"`        // ignored by capping, which always drills 4
	EdgeOffset   *float64 `json:"edge_offset,omitempty"` // mm; nil is unset, 0 drills at the ends
	Disabled     bool     `json:"disabled,omitempty"`
}

func DefaultDowelOptions() DowelOptions {
	return DowelOptions{
		Diameter:     8,
		Depth:        20,
		CountPerSlat: 2,
		EdgeOffset:   Float(50),
	}
}

// Offset returns the edge offset, 0 when unset.
func (d DowelOptions) Offset() float64 {
	return FloatOr(d.EdgeOffset, 0)
}

func (d DowelOptions) merge(prev DowelOptions) DowelOptions {
	if d.Diameter == 0 {
		d.Diameter = prev.Diameter
	}
	if d.Depth == 0 {
		d.Depth = prev.Depth
	}
	if d.CountPerSlat == 0 {
		d.CountPerSlat = prev.CountPerSlat
	}
	d.EdgeOffset = orPrev(d.EdgeOffset, prev.EdgeOffset)
	return d
}

func (d *DowelOptions) clone() *DowelOptions {
	if d == nil {
		return nil
	}
	cp := *d
	cp.EdgeOffset = orPrev(d.EdgeOffset, nil)
	return &cp
}

func mergeDowels(cur, prev *DowelOptions) *DowelOptions {
	base := DefaultDowelOptions()
	if prev != nil {
		base = prev.merge(base)
	}
	if cur == nil {
		return &base
	}
	m := cur.merge(base)
	return &m
}

// SlatDirection is the orientation of the slats' long axis.
type SlatDirection string

const (
	SlatsVertical   SlatDirection = "vertical"
	SlatsHorizontal SlatDirection = "horizontal"
)

// CalculationMode selects how the slat count is derived.
type CalculationMode string

const (
	ModeCount   CalculationMode = "count"
	ModeSpacing CalculationMode = "spacing"
)

// SlattedPanelConfig configures a slat array on a panel's external face.
type SlattedPanelConfig struct {
	Direction     SlatDirection   `json:"direction"`
	Mode          CalculationMode `json:"mode"`
	Spacing       *float64        `json:"spacing,omitempty"` // target gap in spacing mode, mm; 0 butts slats together
	Count         int             `json:"count"`             // used in count mode
	Width         float64         `json:"width"`             // slat width, mm
	SlatThickness float64         `json:"slat_thickness"`
	Dowels        *DowelOptions   `json:"dowels,omitempty"`
}

func DefaultSlattedPanelConfig() SlattedPanelConfig {
	d := DefaultDowelOptions()
	return SlattedPanelConfig{
		Direction:     SlatsVertical,
		Mode:          ModeSpacing,
		Spacing:       Float(50),
		Count:         10,
		Width:         30,
		SlatThickness: 15,
		Dowels:        &d,
	}
}

// MergeWith fills every unset field of c from prev, then from the defaults.
// prev may be nil.
func (c SlattedPanelConfig) MergeWith(prev *SlattedPanelConfig) SlattedPanelConfig {
	def := DefaultSlattedPanelConfig()
	base := def
	if prev != nil {
		base = prev.fill(def)
		base.Dowels = mergeDowels(prev.Dowels, nil)
	}
	out := c.fill(base)
	out.Dowels = mergeDowels(c.Dowels, base.Dowels)
	return out
}

func (c SlattedPanelConfig) fill(from SlattedPanelConfig) SlattedPanelConfig {
	if c.Direction == "" {
		c.Direction = from.Direction
	}
	if c.Mode == "" {
		c.Mode = from.Mode
	}
	c.Spacing = orPrev(c.Spacing, from.Spacing)
	if c.Count == 0 {
		c.Count = from.Count
	}
	if c.Width == 0 {
		c.Width = from.Width
	}
	if c.SlatThickness == 0 {
		c.SlatThickness = from.SlatThickness
	}
	return c
}

// Gap returns the target slat spacing, 0 when unset.
func (c SlattedPanelConfig) Gap() float64 {
	return FloatOr(c.Spacing, 0)
}

func (c SlattedPanelConfig) clone() SlattedPanelConfig {
	c.Spacing = orPrev(c.Spacing, nil)
	c.Dowels = c.Dowels.clone()
	return c
}

// Extensions holds per-side overhangs in mm. A nil side is unset and
// falls back to the owning config's default.
type Extensions struct {
	Top    *float64 `json:"top,omitempty"`
	Bottom *float64 `json:"bottom,omitempty"`
	Left   *float64 `json:"left,omitempty"`
	Right  *float64 `json:"right,omitempty"`
	Front  *float64 `json:"front,omitempty"`
	Back   *float64 `json:"back,omitempty"`
}

// Float returns a pointer to v, for the optional fields where zero is a
// real value.
func Float(v float64) *float64 {
	return &v
}

// FloatOr returns *p, or fallback when p is nil.
func FloatOr(p *float64, fallback float64) float64 {
	if p != nil {
		return *p
	}
	return fallback
}

// orPrev returns a fresh copy of cur when set, else of prev.
func orPrev(cur, prev *float64) *float64 {
	if cur != nil {
		return Float(*cur)
	}
	if prev != nil {
		return Float(*prev)
	}
	return nil
}

func (e Extensions) side(d Direction) *float64 {
	switch d {
	case DirUp:
		return e.Top
	case DirDown:
		return e.Bottom
	case DirLeft:
		return e.Left
	case DirRight:
		return e.Right
	case DirFront:
		return e.Front
	default:
		return e.Back
	}
}

// Get returns the extension towards side d, or fallback when unset.
func (e Extensions) Get(d Direction, fallback float64) float64 {
	if v := e.side(d); v != nil {
		return *v
	}
	return fallback
}

// Set returns a copy of e with side d set to v.
func (e Extensions) Set(d Direction, v float64) Extensions {
	switch d {
	case DirUp:
		e.Top = Float(v)
	case DirDown:
		e.Bottom = Float(v)
	case DirLeft:
		e.Left = Float(v)
	case DirRight:
		e.Right = Float(v)
	case DirFront:
		e.Front = Float(v)
	default:
		e.Back = Float(v)
	}
	return e
}

func (e Extensions) merge(prev Extensions) Extensions {
	for _, d := range AllDirections {
		if e.side(d) == nil {
			if v := prev.side(d); v != nil {
				e = e.Set(d, *v)
			}
		}
	}
	return e
}

func (e Extensions) clone() Extensions {
	return Extensions{}.merge(e)
}

// CappingConfig configures a cover panel on a panel's external face.
type CappingConfig struct {
	Thickness    float64       `json:"thickness"` // mm
	Extensions   Extensions    `json:"extensions"`
	GapExtension *float64      `json:"gap_extension,omitempty"` // default for unset sides
	Dowels       *DowelOptions `json:"dowels,omitempty"`
}

func DefaultCappingConfig() CappingConfig {
	d := DefaultDowelOptions()
	d.CountPerSlat = 4
	return CappingConfig{
		Thickness:    25,
		GapExtension: Float(25),
		Dowels:       &d,
	}
}

// Extension returns the overhang towards side d.
func (c CappingConfig) Extension(d Direction) float64 {
	return c.Extensions.Get(d, FloatOr(c.GapExtension, 0))
}

// MergeWith fills every unset field of c from prev, then from the defaults.
func (c CappingConfig) MergeWith(prev *CappingConfig) CappingConfig {
	base := DefaultCappingConfig()
	if prev != nil {
		p := prev.clone()
		if p.Thickness == 0 {
			p.Thickness = base.Thickness
		}
		p.GapExtension = orPrev(p.GapExtension, base.GapExtension)
		p.Dowels = mergeDowels(p.Dowels, base.Dowels)
		base = p
	}
	out := c.clone()
	if out.Thickness == 0 {
		out.Thickness = base.Thickness
	}
	out.GapExtension = orPrev(out.GapExtension, base.GapExtension)
	out.Extensions = out.Extensions.merge(base.Extensions)
	out.Dowels = mergeDowels(out.Dowels, base.Dowels)
	return out
}

func (c CappingConfig) clone() CappingConfig {
	c.Extensions = c.Extensions.clone()
	c.GapExtension = orPrev(c.GapExtension, nil)
	c.Dowels = c.Dowels.clone()
	return c
}

// CleatMounting selects which edges of the face receive a cleat.
type CleatMounting string

const (
	MountFront CleatMounting = "front"
	MountBack  CleatMounting = "back"
	MountBoth  CleatMounting = "both"
)

// CleatAppearance selects whether an external visible panel covers the cleats.
type CleatAppearance string

const (
	AppearanceExposed CleatAppearance = "exposed"
	AppearanceHidden  CleatAppearance = "hidden"
)

// ParseCleatMounting accepts the English names and their workshop
// aliases frontal, traseira and ambos.
func ParseCleatMounting(s string) (CleatMounting, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "front", "frontal":
		return MountFront, nil
	case "back", "traseira":
		return MountBack, nil
	case "both", "ambos":
		return MountBoth, nil
	}
	return "", fmt.Errorf("unknown cleat mounting %q", s)
}

// ParseCleatAppearance accepts exposed/hidden and aparente/escondido.
func ParseCleatAppearance(s string) (CleatAppearance, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exposed", "aparente":
		return AppearanceExposed, nil
	case "hidden", "escondido":
		return AppearanceHidden, nil
	}
	return "", fmt.Errorf("unknown cleat appearance %q", s)
}

// CleatConfig configures mounting cleats (sarrafos) on a panel's external
// face and the optional visible panel over them.
type CleatConfig struct {
	Mounting          CleatMounting   `json:"mounting"`
	Appearance        CleatAppearance `json:"appearance"`
	CleatThickness    float64         `json:"cleat_thickness"`    // mm
	CleatWidth        float64         `json:"cleat_width"`        // mm
	ExternalThickness float64         `json:"external_thickness"` // visible panel, mm
	AutoExtend        bool            `json:"auto_extend"`
	ExtensionAmount   *float64        `json:"extension_amount,omitempty"`
	Extensions        Extensions      `json:"extensions"`
	GapExtension      *float64        `json:"gap_extension,omitempty"`
}

func DefaultCleatConfig() CleatConfig {
	return CleatConfig{
		Mounting:          MountFront,
		Appearance:        AppearanceHidden,
		CleatThickness:    18,
		CleatWidth:        50,
		ExternalThickness: 18,
		ExtensionAmount:   Float(18),
	}
}

// Extension returns the overhang towards side d. AutoExtend overrides
// every side with ExtensionAmount, doubled when both edges carry a cleat.
func (c CleatConfig) Extension(d Direction) float64 {
	if c.AutoExtend {
		amount := FloatOr(c.ExtensionAmount, 0)
		if c.Mounting == MountBoth {
			return amount * 2
		}
		return amount
	}
	return c.Extensions.Get(d, FloatOr(c.GapExtension, 0))
}

// MergeWith fills every unset field of c from prev, then from the
// defaults. AutoExtend is taken from c as given.
func (c CleatConfig) MergeWith(prev *CleatConfig) CleatConfig {
	base := DefaultCleatConfig()
	if prev != nil {
		base = prev.clone().fill(base)
	}
	out := c.clone().fill(base)
	out.Extensions = out.Extensions.merge(base.Extensions)
	return out
}

func (c CleatConfig) fill(from CleatConfig) CleatConfig {
	if c.Mounting == "" {
		c.Mounting = from.Mounting
	}
	if c.Appearance == "" {
		c.Appearance = from.Appearance
	}
	if c.CleatThickness == 0 {
		c.CleatThickness = from.CleatThickness
	}
	if c.CleatWidth == 0 {
		c.CleatWidth = from.CleatWidth
	}
	if c.ExternalThickness == 0 {
		c.ExternalThickness = from.ExternalThickness
	}
	c.ExtensionAmount = orPrev(c.ExtensionAmount, from.ExtensionAmount)
	c.GapExtension = orPrev(c.GapExtension, from.GapExtension)
	return c
}

func (c CleatConfig) clone() CleatConfig {
	c.Extensions = c.Extensions.clone()
	c.ExtensionAmount = orPrev(c.ExtensionAmount, nil)
	c.GapExtension = orPrev(c.GapExtension, nil)
	return c
}
