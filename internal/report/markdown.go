package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/vcastgen/internal/model"
)

// SummaryTitle is the first heading of the Markdown summary.
const SummaryTitle = "VectorCAST SI Report Generation Summary"

// MarkdownWriter outputs the generation summary in Markdown format.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which gives us tables, lists, and GitHub-flavored alerts
// without hand-escaping.
type MarkdownWriter struct {
	baseWriter

	// version is printed in the footer.
	version string

	// now returns the "Generated on" timestamp.
	now func() time.Time
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithVersion sets the tool version printed in the footer.
func WithVersion(version string) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.version = version
	}
}

// WithClock sets the clock used for the generation timestamp.
func WithClock(now func() time.Time) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		if now != nil {
			w.now = now
		}
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		version:    "dev",
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the summary in Markdown format.
func (w *MarkdownWriter) Write(report *model.GenerationReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeRecords(md, report)
	w.writeOutcomes(md, report)
	w.writeEnvironment(md, report)
	w.writeDetails(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the title, timestamp, and configuration echo.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.GenerationReport) {
	md.H1(SummaryTitle)
	md.PlainText("")
	md.PlainTextf("Generated on: %s", w.now().Format("2006-01-02 15:04:05"))
	md.PlainText("")

	md.H2("Configuration")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Unit Name", report.UnitName},
			{"Environment File", "`" + report.EnvFile + "`"},
			{"Output Directory", "`" + report.OutputDir + "`"},
			{"Compound Tests", enabledText(report.CompoundTests)},
			{"Status", statusText(report)},
		},
	})
	md.PlainText("")
}

// writeRecords writes the list of generated artifacts.
func (w *MarkdownWriter) writeRecords(md *markdown.Markdown, report *model.GenerationReport) {
	md.H2("Generated Reports")
	md.PlainText("")

	if len(report.Records) == 0 {
		md.PlainText("No reports were generated.")
		md.PlainText("")
		return
	}

	items := make([]string, len(report.Records))
	for i, r := range report.Records {
		items[i] = "**" + r.Label + "**: `" + r.Path + "`"
	}
	md.BulletList(items...)
	md.PlainText("")
}

// writeOutcomes writes one row per attempted operation and the overall alert.
func (w *MarkdownWriter) writeOutcomes(md *markdown.Markdown, report *model.GenerationReport) {
	if len(report.Outcomes) == 0 {
		w.writeAlert(md, report)
		return
	}

	md.H2("Operations")
	md.PlainText("")

	rows := make([][]string, len(report.Outcomes))
	for i, o := range report.Outcomes {
		exit := "-"
		if o.Status != model.StatusSkipped {
			exit = strconv.Itoa(o.ExitCode)
		}
		rows[i] = []string{
			o.Kind.Label(),
			o.Status.Icon() + " " + o.Status.String(),
			exit,
			o.Duration.Round(time.Millisecond).String(),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Operation", "Status", "Exit Code", "Duration"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writePieChart(md, report)
	w.writeAlert(md, report)

	for _, o := range report.Outcomes {
		if o.OK() || (o.Stderr == "" && o.ErrorMessage == "") {
			continue
		}
		body := o.Stderr
		if body == "" {
			body = o.ErrorMessage
		}
		md.Details(o.Kind.Label()+" error output", body)
	}
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart of outcome statuses.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.GenerationReport) {
	counts := make(map[model.Status]uint64)
	for _, o := range report.Outcomes {
		counts[o.Status]++
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Operation Results"),
		piechart.WithShowData(true),
	)
	for _, s := range []model.Status{
		model.StatusSucceeded,
		model.StatusSkipped,
		model.StatusFailed,
		model.StatusTimedOut,
		model.StatusInterrupted,
	} {
		if counts[s] > 0 {
			chart.LabelAndIntValue(s.String(), counts[s])
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an alert describing the overall result.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.GenerationReport) {
	switch {
	case report.ErrorMessage != "":
		md.Cautionf("Report generation aborted: %s", report.ErrorMessage)
	case report.Interrupted:
		md.Importantf("Report generation was interrupted after %d of %d operation(s).",
			len(report.Outcomes), report.TotalOperations())
	case report.Succeeded():
		md.Tip("All reports were generated successfully.")
	default:
		md.Warningf("%d of %d operation(s) failed. Check the details below and the log file.",
			report.TotalOperations()-report.SuccessCount(), report.TotalOperations())
	}
	md.PlainText("")
}

// writeEnvironment writes the metadata extracted from the environment file.
func (w *MarkdownWriter) writeEnvironment(md *markdown.Markdown, report *model.GenerationReport) {
	if len(report.Environment) == 0 {
		return
	}

	md.H2("Environment")
	md.PlainText("")

	rows := make([][]string, 0, len(report.Environment))
	for _, key := range model.EnvironmentKeys() {
		if v, ok := report.Environment[key]; ok {
			rows = append(rows, []string{key, v})
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Key", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeDetails writes the resolved paths used by the run.
func (w *MarkdownWriter) writeDetails(md *markdown.Markdown, report *model.GenerationReport) {
	md.H2("Configuration Details")
	md.PlainText("")

	items := []string{
		"VectorCAST Directory: `" + valueOrDash(report.ToolDir) + "`",
		"Output Directory: `" + valueOrDash(report.OutputDir) + "`",
	}
	if report.EnvFingerprint != "" {
		items = append(items, "Environment Fingerprint (SHA3-256): `"+report.EnvFingerprint+"`")
	}
	items = append(items, "Run ID: `"+report.ID+"`")
	md.BulletList(items...)
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Generated by vcastgen %s*", w.version)
}

// statusText returns the overall status shown in the configuration table.
func statusText(report *model.GenerationReport) string {
	switch {
	case report.ErrorMessage != "":
		return "❌ Aborted"
	case report.Interrupted:
		return "🛑 Interrupted"
	case report.Succeeded():
		return "✅ Complete"
	default:
		return "⚠️ Partial (" + strconv.Itoa(report.SuccessCount()) + "/" + strconv.Itoa(report.TotalOperations()) + ")"
	}
}

func enabledText(b bool) string {
	if b {
		return "Enabled"
	}
	return "Disabled"
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
