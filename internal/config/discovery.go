package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nao1215/vcastgen/internal/model"
)

// DefaultUnitName returns the base name of dir, which by convention is the
// unit being tested.
func DefaultUnitName(dir string) string {
	name := filepath.Base(filepath.Clean(dir))
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	return name
}

// FindEnvFile returns the first *.env file in dir in lexical order,
// or "" if there is none.
func FindEnvFile(dir string) string {
	matches, err := filepath.Glob(filepath.Join(dir, "*.env"))
	if err != nil || len(matches) == 0 {
		return ""
	}
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && info.Mode().IsRegular() {
			return m
		}
	}
	return ""
}

// ResolveToolDir returns the VectorCAST installation directory.
// The explicit path wins; otherwise lookup is asked for VECTORCAST_DIR.
// A nil lookup uses os.LookupEnv.
//
// Both "not set" and "does not exist" are configuration errors.
func ResolveToolDir(explicit string, lookup func(string) (string, bool)) (string, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	dir := explicit
	if dir == "" {
		if v, ok := lookup(ToolDirEnvVar); ok {
			dir = v
		}
	}

	if dir == "" {
		return "", model.NewConfigurationError("resolve VectorCAST directory", "", ErrToolDirNotSet)
	}

	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return "", model.NewConfigurationError("resolve VectorCAST directory", dir, ErrToolDirNotFound)
	}
	if err != nil {
		return "", model.NewConfigurationError("resolve VectorCAST directory", dir, fmt.Errorf("failed to access directory: %w", err))
	}
	if !info.IsDir() {
		return "", model.NewConfigurationError("resolve VectorCAST directory", dir, ErrToolDirNotFound)
	}

	return dir, nil
}
