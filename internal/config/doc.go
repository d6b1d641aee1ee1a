// Package config provides configuration structures and utilities for vcastgen.
// It defines the options for one report generation run, the optional YAML
// configuration file with per-unit settings, and discovery of defaults such
// as the unit name, the environment file, and the VectorCAST directory.
package config
