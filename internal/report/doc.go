// Package report renders generation results.
//
// This package contains writers for different output formats:
//   - MarkdownWriter: generation_summary.md written into the output directory
//   - JSONWriter: generation_summary.json for CI tooling
//   - SimpleWriter: the short text shown on the terminal after a run
//
// Design decision: We separate report writing from report data structures
// (which are in the model package) so the generator, the batch command, and
// the history command all render the same model.GenerationReport value.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably.
package report
