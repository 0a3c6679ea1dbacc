package project

import (
	"os"
	"path/filepath"

	"github.com/piwi3910/Carcass/internal/model"
)

// DefaultConfigDir returns ~/.carcass, or ./.carcass when the home
// directory cannot be determined.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".carcass")
}

// Home is a configuration directory and the files kept in it.
type Home string

func DefaultHome() Home { return Home(DefaultConfigDir()) }

func (h Home) Config() string    { return filepath.Join(string(h), "config.json") }
func (h Home) Templates() string { return filepath.Join(string(h), "templates.json") }
func (h Home) Profiles() string  { return filepath.Join(string(h), "profiles.json") }
func (h Home) Inventory() string { return filepath.Join(string(h), "inventory.json") }
func (h Home) Library() string   { return filepath.Join(string(h), "library.db") }

func SaveAppConfig(path string, config model.AppConfig) error {
	return writeJSON(path, "config", config)
}

// LoadAppConfig reads the config at path on top of DefaultAppConfig, so a
// missing file or missing fields keep their defaults.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()
	if _, err := readJSON(path, "config", &config); err != nil {
		return model.AppConfig{}, err
	}
	if config.RecentProjects == nil {
		config.RecentProjects = []string{}
	}
	return config, nil
}
