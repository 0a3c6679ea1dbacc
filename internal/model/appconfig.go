package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new projects
	DefaultRoot         Dimensions `json:"default_root"`
	DefaultThickness    float64    `json:"default_thickness"`
	DefaultBitDiameter  float64    `json:"default_bit_diameter"`
	DefaultFeedRate     float64    `json:"default_feed_rate"`
	DefaultPlungeRate   float64    `json:"default_plunge_rate"`
	DefaultSpindleSpeed int        `json:"default_spindle_speed"`
	DefaultSafeZ        float64    `json:"default_safe_z"`
	DefaultSheetWidth   float64    `json:"default_sheet_width"`
	DefaultSheetHeight  float64    `json:"default_sheet_height"`
	DefaultKerfWidth    float64    `json:"default_kerf_width"`
	DefaultGCodeProfile string     `json:"default_gcode_profile"`

	// Application preferences
	LogLevel       string   `json:"log_level"` // "debug", "info", "warn", "error"
	LogFile        string   `json:"log_file"`  // empty disables file logging
	Color          bool     `json:"color"`     // colourise CLI output
	LibraryPath    string   `json:"library_path"`
	RecentProjects []string `json:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching NewProject and DefaultDrillSettings.
func DefaultAppConfig() AppConfig {
	defaults := DefaultDrillSettings()
	return AppConfig{
		DefaultRoot:         DefaultRoot,
		DefaultThickness:    DefaultThickness,
		DefaultBitDiameter:  defaults.BitDiameter,
		DefaultFeedRate:     defaults.FeedRate,
		DefaultPlungeRate:   defaults.PlungeRate,
		DefaultSpindleSpeed: defaults.SpindleSpeed,
		DefaultSafeZ:        defaults.SafeZ,
		DefaultSheetWidth:   defaults.SheetWidth,
		DefaultSheetHeight:  defaults.SheetHeight,
		DefaultKerfWidth:    defaults.KerfWidth,
		DefaultGCodeProfile: defaults.GCodeProfile,
		LogLevel:            "warn",
		Color:               true,
		RecentProjects:      []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a DrillSettings struct.
func (c AppConfig) ApplyToSettings(s *DrillSettings) {
	s.BitDiameter = c.DefaultBitDiameter
	s.FeedRate = c.DefaultFeedRate
	s.PlungeRate = c.DefaultPlungeRate
	s.SpindleSpeed = c.DefaultSpindleSpeed
	s.SafeZ = c.DefaultSafeZ
	s.SheetWidth = c.DefaultSheetWidth
	s.SheetHeight = c.DefaultSheetHeight
	s.KerfWidth = c.DefaultKerfWidth
	s.GCodeProfile = c.DefaultGCodeProfile
}

// NewProject creates a project that inherits the user's saved defaults.
func (c AppConfig) NewProject() Project {
	p := NewProject()
	if !c.DefaultRoot.IsDegenerate() {
		p.Root = c.DefaultRoot
	}
	if c.DefaultThickness > 0 {
		p.DefaultThickness = c.DefaultThickness
	}
	c.ApplyToSettings(&p.Settings)
	return p
}

// AddRecent records path as the most recently used project, keeping at
// most ten entries.
func (c *AppConfig) AddRecent(path string) {
	recent := []string{path}
	for _, r := range c.RecentProjects {
		if r != path && len(recent) < 10 {
			recent = append(recent, r)
		}
	}
	c.RecentProjects = recent
}
