// Package config provides configuration loading and management for
// tomophantom. It handles loading configuration from YAML files and
// provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the generator configuration loaded from YAML
type Config struct {
	// Grid parameters
	Grid struct {
		// NX, NY, NZ are the grid point counts along each axis
		NX int `yaml:"nx"`
		NY int `yaml:"ny"`
		NZ int `yaml:"nz"`

		// DX, DY, DZ are the physical voxel spacings
		DX float64 `yaml:"dx"`
		DY float64 `yaml:"dy"`
		DZ float64 `yaml:"dz"`

		// OffsetX, OffsetY, OffsetZ shift the grid center by a fraction
		// of a voxel
		OffsetX float64 `yaml:"offsetX"`
		OffsetY float64 `yaml:"offsetY"`
		OffsetZ float64 `yaml:"offsetZ"`
	} `yaml:"grid"`

	// Phantom parameters
	Phantom struct {
		// Archetype names the parameter-table template to render
		Archetype string `yaml:"archetype"`

		// Mode selects the voxelization strategy: slow, fast, or lowmem
		Mode string `yaml:"mode"`

		// Oversample is the sub-voxel refinement factor
		Oversample int `yaml:"oversample"`

		// DensityScale multiplies the density column of the table
		DensityScale float64 `yaml:"densityScale"`

		// CheckFOV validates ellipsoid extents against the grid bounds
		CheckFOV bool `yaml:"checkFov"`

		// ShowMem reports working-buffer sizes before rendering
		ShowMem bool `yaml:"showMem"`
	} `yaml:"phantom"`

	// Output parameters
	Output struct {
		// SlicesDir is the directory slice images are written to
		SlicesDir string `yaml:"slicesDir"`

		// Axes lists the axes to export slice sequences along
		Axes []string `yaml:"axes"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default grid parameters
	cfg.Grid.NX = 64
	cfg.Grid.NY = 64
	cfg.Grid.NZ = 64
	cfg.Grid.DX = 1.0
	cfg.Grid.DY = 1.0
	cfg.Grid.DZ = 1.0

	// Set default phantom parameters
	cfg.Phantom.Archetype = "zhu"
	cfg.Phantom.Mode = "slow"
	cfg.Phantom.Oversample = 1
	cfg.Phantom.DensityScale = 1.0

	// Set default output parameters
	cfg.Output.SlicesDir = "phantom_slices"
	cfg.Output.Axes = []string{"z"}

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
