// Package config loads the drive-profile configuration: which physical
// drive (1541 vs 1541 with extended tracks vs 1571) the CLI targets by
// default, its retry budget, and an ordered list of adapter package
// names. Only MaxTrack is read elsewhere (by the mnib command); Retries
// and Adapters are loaded and validated but not consulted, and
// drive.Open tries adapters in registration order.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

//go:embed nibtools.toml
var defaultConfigData []byte

// Global state for the selected drive profile.
var (
	DriveName string
	MaxTrack  int
	Retries   int
	Adapters  []string
)

// Config is the entire TOML configuration structure.
type Config struct {
	Default string       `toml:"default"`
	Drive   []DriveEntry `toml:"drive"`
}

// DriveEntry describes one drive profile.
type DriveEntry struct {
	Name     string   `toml:"name"`
	MaxTrack int      `toml:"maxtrack"`
	Retries  int      `toml:"retries"`
	Adapters []string `toml:"adapters"`
}

// configPath determines the config file path based on the operating
// system: %AppData%/nibtools/nibtools.toml on Windows, ~/.nibtools.toml
// elsewhere.
func configPath() (string, error) {
	if runtime.GOOS == "windows" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine user config directory: %w", err)
		}
		return filepath.Join(dir, "nibtools", "nibtools.toml"), nil
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine user home directory: %w", err)
	}
	return filepath.Join(dir, ".nibtools.toml"), nil
}

// Initialize loads and validates the configuration file, writing the
// embedded default alongside it on first run, and selects the default
// drive profile into the package's global state.
func Initialize() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create config directory %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, defaultConfigData, 0644); err != nil {
			return fmt.Errorf("failed to create default config file at %s: %w", path, err)
		}
	}

	var conf Config
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return fmt.Errorf("failed to parse TOML config at %s: %w", path, err)
	}

	if conf.Default == "" {
		return errors.New("`default` key is missing or empty in config")
	}

	var found *DriveEntry
	for i := range conf.Drive {
		if conf.Drive[i].Name == conf.Default {
			found = &conf.Drive[i]
			break
		}
	}
	if found == nil {
		return fmt.Errorf("default drive %q not found in drive array", conf.Default)
	}
	if found.MaxTrack <= 0 {
		return fmt.Errorf("drive %q has invalid maxtrack: %d (must be positive)", conf.Default, found.MaxTrack)
	}
	if found.Retries <= 0 {
		return fmt.Errorf("drive %q has invalid retries: %d (must be positive)", conf.Default, found.Retries)
	}
	if len(found.Adapters) == 0 {
		return fmt.Errorf("drive %q has no adapters listed", conf.Default)
	}

	DriveName = conf.Default
	MaxTrack = found.MaxTrack
	Retries = found.Retries
	Adapters = make([]string, len(found.Adapters))
	copy(Adapters, found.Adapters)

	return nil
}
