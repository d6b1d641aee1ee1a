package model

import "sort"

// Keys of the environment metadata extracted from a VectorCAST environment file.
const (
	EnvKeyCompiler      = "compiler"
	EnvKeyCoverageType  = "coverage_type"
	EnvKeyUnitDirectory = "unit_directory"
	EnvKeySearchList    = "search_list"
)

// EnvironmentKeys returns the known metadata keys in a stable order.
func EnvironmentKeys() []string {
	return []string{EnvKeyCompiler, EnvKeyCoverageType, EnvKeyUnitDirectory, EnvKeySearchList}
}

// EnvironmentData maps known keys to the values found in an environment file.
// Keys whose label was not present are absent from the map.
type EnvironmentData map[string]string

// Keys returns the keys present in the data, sorted.
func (d EnvironmentData) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
