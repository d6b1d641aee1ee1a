package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/vcastgen/internal/model"
)

// SimpleWriter outputs the short terminal summary printed after a run.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors because the output usually ends up in CI logs.
type SimpleWriter struct {
	baseWriter

	// verbose adds per-operation lines.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables per-operation output.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the final message for one unit.
func (w *SimpleWriter) Write(report *model.GenerationReport) (int, error) {
	var sb strings.Builder

	switch {
	case report.ErrorMessage != "":
		sb.WriteString(fmt.Sprintf("[%s] Report generation failed: %s\n", report.UnitName, report.ErrorMessage))
	case report.Interrupted:
		sb.WriteString(fmt.Sprintf("[%s] Report generation interrupted.\n", report.UnitName))
	case report.Succeeded():
		sb.WriteString(fmt.Sprintf("[%s] All reports generated successfully!\n", report.UnitName))
	default:
		sb.WriteString(fmt.Sprintf("[%s] Some reports failed to generate. Check the logs for details.\n", report.UnitName))
	}

	if w.verbose {
		for _, o := range report.Outcomes {
			sb.WriteString(fmt.Sprintf("  %-22s %-12s %s\n", o.Kind.Label(), o.Status, o.OutputPath))
		}
		if d := report.Duration(); d > 0 {
			sb.WriteString(fmt.Sprintf("Completed in %s\n", d.Round(time.Millisecond)))
		}
	}

	if report.OutputDir != "" && report.ErrorMessage == "" {
		sb.WriteString(fmt.Sprintf("Reports saved to: %s\n", report.OutputDir))
	}

	return w.output.Write([]byte(sb.String()))
}

// WriteBatch outputs one line per unit followed by a totals line.
func (w *SimpleWriter) WriteBatch(reports []*model.GenerationReport) (int, error) {
	var sb strings.Builder
	succeeded := 0

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	for _, r := range reports {
		if r == nil {
			continue
		}
		mark := "FAIL"
		if r.Succeeded() {
			mark = "OK"
			succeeded++
		}
		sb.WriteString(fmt.Sprintf("  %-4s %-30s %d/%d\n", mark, r.UnitName, r.SuccessCount(), r.TotalOperations()))
	}
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%d of %d unit(s) succeeded\n", succeeded, len(reports)))

	return w.output.Write([]byte(sb.String()))
}
