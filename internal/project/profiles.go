package project

import (
	"errors"

	"github.com/piwi3910/Carcass/internal/model"
)

// SaveCustomProfiles stores user post-processor profiles.
func SaveCustomProfiles(path string, profiles []model.GCodeProfile) error {
	return writeJSON(path, "profiles", profiles)
}

// LoadCustomProfiles returns an empty slice when the file does not exist.
// Loaded profiles are never built-in.
func LoadCustomProfiles(path string) ([]model.GCodeProfile, error) {
	profiles := []model.GCodeProfile{}
	if _, err := readJSON(path, "profiles", &profiles); err != nil {
		return nil, err
	}
	for i := range profiles {
		profiles[i].IsBuiltIn = false
	}
	return profiles, nil
}

// RegisterCustomProfiles loads custom profiles from path and makes them
// available to GetProfile. Profiles clashing with built-in names are skipped.
func RegisterCustomProfiles(path string) ([]model.GCodeProfile, error) {
	profiles, err := LoadCustomProfiles(path)
	if err != nil {
		return nil, err
	}
	var registered []model.GCodeProfile
	for _, p := range profiles {
		if err := model.AddCustomProfile(p); err == nil {
			registered = append(registered, p)
		}
	}
	return registered, nil
}

// ExportProfile writes a single profile for sharing.
func ExportProfile(path string, profile model.GCodeProfile) error {
	profile.IsBuiltIn = false
	return writeJSON(path, "profile", profile)
}

// ImportProfile reads a profile written by ExportProfile.
func ImportProfile(path string) (model.GCodeProfile, error) {
	var profile model.GCodeProfile
	found, err := readJSON(path, "profile", &profile)
	if err != nil {
		return model.GCodeProfile{}, err
	}
	if !found {
		return model.GCodeProfile{}, errors.New("profile file not found: " + path)
	}
	if profile.Name == "" {
		return model.GCodeProfile{}, errors.New("imported profile has no name")
	}
	profile.IsBuiltIn = false
	return profile, nil
}
