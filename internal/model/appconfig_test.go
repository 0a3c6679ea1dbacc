package model

import "testing"

func TestDefaultAppConfigMatchesDefaultSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultDrillSettings()

	if cfg.DefaultKerfWidth != defaults.KerfWidth {
		t.Errorf("KerfWidth mismatch: config=%f settings=%f", cfg.DefaultKerfWidth, defaults.KerfWidth)
	}
	if cfg.DefaultBitDiameter != defaults.BitDiameter {
		t.Errorf("BitDiameter mismatch: config=%f settings=%f", cfg.DefaultBitDiameter, defaults.BitDiameter)
	}
	if cfg.DefaultFeedRate != defaults.FeedRate {
		t.Errorf("FeedRate mismatch: config=%f settings=%f", cfg.DefaultFeedRate, defaults.FeedRate)
	}
	if cfg.DefaultGCodeProfile != defaults.GCodeProfile {
		t.Errorf("GCodeProfile mismatch: config=%s settings=%s", cfg.DefaultGCodeProfile, defaults.GCodeProfile)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected default log level warn, got %s", cfg.LogLevel)
	}
	if cfg.RecentProjects == nil {
		t.Error("RecentProjects should not be nil")
	}
}

func TestApplyToSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultKerfWidth = 5.0
	cfg.DefaultFeedRate = 2000.0
	cfg.DefaultGCodeProfile = "Grbl"

	s := DefaultDrillSettings()
	cfg.ApplyToSettings(&s)

	if s.KerfWidth != 5.0 {
		t.Errorf("expected KerfWidth=5.0, got %f", s.KerfWidth)
	}
	if s.FeedRate != 2000.0 {
		t.Errorf("expected FeedRate=2000.0, got %f", s.FeedRate)
	}
	if s.GCodeProfile != "Grbl" {
		t.Errorf("expected GCodeProfile=Grbl, got %s", s.GCodeProfile)
	}
}

func TestAppConfigNewProject(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultRoot = Dimensions{Width: 600, Height: 900, Depth: 400}
	cfg.DefaultThickness = 15

	p := cfg.NewProject()
	if p.Root != cfg.DefaultRoot {
		t.Errorf("expected root %+v, got %+v", cfg.DefaultRoot, p.Root)
	}
	if p.DefaultThickness != 15 {
		t.Errorf("expected thickness 15, got %.1f", p.DefaultThickness)
	}
}

func TestAddRecentDeduplicatesAndCaps(t *testing.T) {
	cfg := DefaultAppConfig()
	for i := 0; i < 12; i++ {
		cfg.AddRecent(string(rune('a' + i)))
	}
	cfg.AddRecent("c")

	if len(cfg.RecentProjects) != 10 {
		t.Fatalf("expected 10 recent projects, got %d", len(cfg.RecentProjects))
	}
	if cfg.RecentProjects[0] != "c" {
		t.Errorf("expected c first, got %s", cfg.RecentProjects[0])
	}
	seen := map[string]bool{}
	for _, r := range cfg.RecentProjects {
		if seen[r] {
			t.Errorf("duplicate recent entry %s", r)
		}
		seen[r] = true
	}
}
