package model

import (
	"strings"
	"testing"
)

// withCustom installs custom profiles for one test.
func withCustom(t *testing.T, profiles ...GCodeProfile) {
	t.Helper()
	prev := CustomProfiles
	CustomProfiles = profiles
	t.Cleanup(func() { CustomProfiles = prev })
}

func TestDefaultDrillSettings(t *testing.T) {
	s := DefaultDrillSettings()
	if s.GCodeProfile != "Generic" {
		t.Errorf("expected Generic profile, got %s", s.GCodeProfile)
	}
	if s.BitDiameter != DefaultDowelOptions().Diameter {
		t.Errorf("bit %.1f should match the dowel diameter", s.BitDiameter)
	}
	if s.SheetWidth <= s.SheetHeight {
		t.Errorf("sheet should be landscape, got %gx%g", s.SheetWidth, s.SheetHeight)
	}
	if s.PeckDepth != 0 || s.DwellSeconds != 0 {
		t.Error("pecking and dwell should be off by default")
	}
}

func TestBuiltInProfilesCanDrill(t *testing.T) {
	for _, p := range GCodeProfiles {
		t.Run(p.Name, func(t *testing.T) {
			if !p.IsBuiltIn {
				t.Error("built-in profile should have IsBuiltIn=true")
			}
			if p.RapidMove == "" || p.FeedMove == "" {
				t.Error("profile needs rapid and feed moves")
			}
			if !strings.Contains(p.Dwell, "%") {
				t.Errorf("dwell %q needs a seconds verb", p.Dwell)
			}
			if !strings.Contains(p.SpindleStart, "%d") {
				t.Errorf("spindle start %q needs an RPM verb", p.SpindleStart)
			}
			if p.CommentPrefix == "(" && p.CommentSuffix != ")" {
				t.Error("parenthesised comments need a closing suffix")
			}
		})
	}
}

func TestProfileLookup(t *testing.T) {
	withCustom(t, GCodeProfile{Name: "Shop Router", RapidMove: "G0", FeedMove: "G1"})

	tests := []struct {
		name string
		want string
	}{
		{"Grbl", "Grbl"},
		{"Mach3", "Mach3"},
		{"Shop Router", "Shop Router"},
		{"NonExistent", "Generic"},
		{"", "Generic"},
	}
	for _, tt := range tests {
		if got := GetProfile(tt.name).Name; got != tt.want {
			t.Errorf("GetProfile(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}

	names := GetProfileNames()
	if len(names) != len(GCodeProfiles)+1 {
		t.Fatalf("expected %d names, got %d", len(GCodeProfiles)+1, len(names))
	}
	if names[len(names)-1] != "Shop Router" {
		t.Errorf("custom profiles should follow built-ins, got %v", names)
	}
}

func TestAllProfilesWithoutCustom(t *testing.T) {
	withCustom(t)
	if got := len(AllProfiles()); got != len(GCodeProfiles) {
		t.Errorf("expected %d profiles, got %d", len(GCodeProfiles), got)
	}
}

func TestAddCustomProfile(t *testing.T) {
	withCustom(t)

	if err := AddCustomProfile(GCodeProfile{Name: "Shop Router", Description: "v1", IsBuiltIn: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := AddCustomProfile(GCodeProfile{Name: "Shop Router", Description: "v2"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(CustomProfiles) != 1 {
		t.Fatalf("expected 1 custom profile after update, got %d", len(CustomProfiles))
	}
	if CustomProfiles[0].Description != "v2" {
		t.Errorf("expected the second version, got %s", CustomProfiles[0].Description)
	}
	if CustomProfiles[0].IsBuiltIn {
		t.Error("custom profiles are never built-in")
	}

	if err := AddCustomProfile(GCodeProfile{Name: "Grbl"}); err == nil {
		t.Error("expected error when shadowing a built-in profile")
	}
}

func TestRemoveCustomProfile(t *testing.T) {
	withCustom(t, GCodeProfile{Name: "Old"}, GCodeProfile{Name: "Keep"})

	if err := RemoveCustomProfile("Old"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(CustomProfiles) != 1 || CustomProfiles[0].Name != "Keep" {
		t.Errorf("expected only Keep left, got %+v", CustomProfiles)
	}
	if err := RemoveCustomProfile("Old"); err == nil {
		t.Error("expected error for a missing profile")
	}
	if err := RemoveCustomProfile("LinuxCNC"); err == nil {
		t.Error("expected error when removing a built-in profile")
	}
}

func TestNewCustomProfileCopiesGeneric(t *testing.T) {
	p := NewCustomProfile("Shop Router")
	if p.Name != "Shop Router" || p.IsBuiltIn {
		t.Errorf("unexpected profile header: %+v", p)
	}
	if p.RapidMove != "G0" {
		t.Errorf("expected G0 rapid move from Generic, got %s", p.RapidMove)
	}

	p.StartCode[0] = "G91"
	if GetProfile("Generic").StartCode[0] != "G90" {
		t.Error("editing a new profile must not change Generic")
	}
}
