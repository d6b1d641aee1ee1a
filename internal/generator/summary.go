package generator

import (
	"io"
	"os"
	"path/filepath"

	"github.com/nao1215/vcastgen/internal/config"
	"github.com/nao1215/vcastgen/internal/model"
	"github.com/nao1215/vcastgen/internal/report"
)

// SummaryPath returns the Markdown summary path for r.
func SummaryPath(r *model.GenerationReport) string {
	return filepath.Join(r.OutputDir, config.SummaryFileName)
}

// JSONSummaryPath returns the JSON summary path for r.
func JSONSummaryPath(r *model.GenerationReport) string {
	return filepath.Join(r.OutputDir, config.JSONSummaryFileName)
}

// WriteSummaries writes the Markdown summary and, when enabled, the JSON
// summary. Failures are logged and otherwise ignored.
func (g *Generator) WriteSummaries(r *model.GenerationReport) {
	path := SummaryPath(r)
	if err := g.WriteSummary(path, r); err != nil {
		g.logger.Error("failed to write summary", "path", path, "error", err)
	} else {
		g.logger.Info("summary written", "path", path)
	}

	if !g.cfg.JSONSummary {
		return
	}
	path = JSONSummaryPath(r)
	if err := g.WriteJSONSummary(path, r); err != nil {
		g.logger.Error("failed to write JSON summary", "path", path, "error", err)
	}
}

// WriteSummary writes the Markdown summary of r to path.
func (g *Generator) WriteSummary(path string, r *model.GenerationReport) error {
	return writeFile(path, r, func(w io.Writer) report.Writer {
		return report.NewMarkdownWriter(w,
			report.WithVersion(g.version),
			report.WithClock(g.now),
		)
	})
}

// WriteJSONSummary writes the JSON summary of r to path.
func (g *Generator) WriteJSONSummary(path string, r *model.GenerationReport) error {
	return writeFile(path, r, func(w io.Writer) report.Writer {
		return report.NewJSONWriter(w,
			report.WithPrettyPrint(),
			report.WithJSONVersion(g.version),
		)
	})
}

// writeFile renders r into path with the writer built by newWriter.
func writeFile(path string, r *model.GenerationReport, newWriter func(io.Writer) report.Writer) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644) //nolint:gosec // Summaries are shared build artifacts
	if err != nil {
		return model.NewIOError("write summary", path, err)
	}

	if _, err := newWriter(f).Write(r); err != nil {
		_ = f.Close()
		return model.NewIOError("write summary", path, err)
	}

	if err := f.Close(); err != nil {
		return model.NewIOError("write summary", path, err)
	}
	return nil
}
