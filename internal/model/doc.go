// Package model defines the core data structures used throughout vcastgen.
//
// This package contains the following main types:
//   - ReportKind: The four clicast report operations (coverage, test results,
//     metrics, compound tests)
//   - Outcome: The classified result of one attempted operation
//   - Record: A successfully generated artifact (label and path)
//   - GenerationReport: Everything known about one run for one unit
//   - Error: Typed errors carrying one of the error kinds
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The generator, report writers, and history database all need
// these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for the JSON summary and
// history storage.
package model
