// Package main provides the entry point for the vcastgen CLI.
//
// vcastgen drives VectorCAST's clicast to generate the coverage, test
// results, metrics, and compound test reports of a unit, and writes a
// Markdown summary next to them.
//
// Usage:
//
//	vcastgen generate --unit sensor --env sensor.env
//	vcastgen generate --all --batch 2
//	vcastgen history sensor
//
// See --help for all available options.
package main

import "os"

// main is the entry point for vcastgen.
func main() {
	os.Exit(Execute())
}
