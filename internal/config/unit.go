package config

import (
	"sort"
	"time"
)

// UnitConfig holds unit-specific settings from the configuration file.
type UnitConfig struct {
	// EnvFile is the VectorCAST environment file for this unit.
	EnvFile string `yaml:"envFile,omitempty"`

	// OutputDir overrides the default "<unit>_VCAST_SI_Results" directory.
	OutputDir string `yaml:"outputDir,omitempty"`

	// ToolDir overrides the VectorCAST installation directory.
	ToolDir string `yaml:"vectorcastDir,omitempty"`

	// CompoundTests enables compound test case generation.
	// A pointer distinguishes "not set" from an explicit false.
	CompoundTests *bool `yaml:"compoundTests,omitempty"`

	// Timeout overrides the per-operation timeout, e.g. "10m".
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// File represents the structure of the .vcastgen configuration file.
type File struct {
	// Units maps unit names to their settings.
	Units map[string]UnitConfig `yaml:"units,omitempty"`

	// Defaults contains settings applied to every unit unless overridden.
	Defaults UnitConfig `yaml:"defaults,omitempty"`
}

// GetUnitConfig returns the configuration for a unit merged over the defaults.
func (cf *File) GetUnitConfig(unitName string) UnitConfig {
	result := cf.Defaults

	if unit, ok := cf.Units[unitName]; ok {
		if unit.EnvFile != "" {
			result.EnvFile = unit.EnvFile
		}
		if unit.OutputDir != "" {
			result.OutputDir = unit.OutputDir
		}
		if unit.ToolDir != "" {
			result.ToolDir = unit.ToolDir
		}
		if unit.CompoundTests != nil {
			v := *unit.CompoundTests
			result.CompoundTests = &v
		}
		if unit.Timeout > 0 {
			result.Timeout = unit.Timeout
		}
	}

	return result
}

// HasUnit reports whether the file declares the unit.
func (cf *File) HasUnit(unitName string) bool {
	_, ok := cf.Units[unitName]
	return ok
}

// UnitNames returns the declared unit names, sorted.
func (cf *File) UnitNames() []string {
	names := make([]string, 0, len(cf.Units))
	for name := range cf.Units {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
