package report

import (
	"io"

	"github.com/nao1215/vcastgen/internal/model"
)

// Writer defines the interface for report output.
//
// Design decision: We use an interface to allow different output formats
// and destinations. The generator writes the summary file through it, and the
// CLI reuses the same writers for stdout.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.GenerationReport) (int, error)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
