package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/vcastgen/internal/model"
)

// JSONWriter outputs reports in JSON format.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library; the report is small and its tags already describe the format.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// version is written next to the report.
	version string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
	}
}

// WithJSONVersion sets the tool version recorded in the output.
func WithJSONVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// JSONReport wraps a report with fields that only exist in the output.
//
// Design decision: We wrap the report rather than adding fields to
// GenerationReport so derived values do not end up in the history database.
type JSONReport struct {
	// Version is the vcastgen version that produced the report.
	Version string `json:"version,omitempty"`

	// Succeeded is the overall result.
	Succeeded bool `json:"succeeded"`

	// SuccessCount is the number of operations that counted as success.
	SuccessCount int `json:"success_count"`

	// TotalOperations is the number of operations attempted per run.
	TotalOperations int `json:"total_operations"`

	// Report is the full generation report.
	Report *model.GenerationReport `json:"report"`
}

// NewJSONReport creates a JSONReport for report.
func NewJSONReport(report *model.GenerationReport, version string) *JSONReport {
	return &JSONReport{
		Version:         version,
		Succeeded:       report.Succeeded(),
		SuccessCount:    report.SuccessCount(),
		TotalOperations: report.TotalOperations(),
		Report:          report,
	}
}

// Write outputs the wrapped report as JSON.
func (w *JSONWriter) Write(report *model.GenerationReport) (int, error) {
	return w.writeJSON(NewJSONReport(report, w.version))
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	data = append(data, '\n')

	return w.output.Write(data)
}
