package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/vcastgen/internal/model"
)

// createTestReport creates a partially successful report for testing.
func createTestReport() *model.GenerationReport {
	report := model.NewGenerationReport("sensor")
	report.EnvFile = "/work/sensor/sensor.env"
	report.OutputDir = "/work/sensor/sensor_VCAST_SI_Results"
	report.ToolDir = "/opt/vcast"
	report.EnvFingerprint = "abc123"
	report.Environment = model.EnvironmentData{
		model.EnvKeyCompiler:     "gcc",
		model.EnvKeyCoverageType: "statement",
	}

	report.AddOutcome(model.Outcome{
		Kind:       model.KindCoverage,
		Status:     model.StatusSucceeded,
		OutputPath: "/out/sensor_coverage_20240101_120000.html",
		Duration:   1500 * time.Millisecond,
	})
	report.AddOutcome(model.Outcome{
		Kind:       model.KindTestResults,
		Status:     model.StatusSucceeded,
		OutputPath: "/out/sensor_test_results_20240101_120000.xml",
	})
	report.AddOutcome(model.Outcome{
		Kind:       model.KindMetrics,
		Status:     model.StatusFailed,
		OutputPath: "/out/sensor_metrics_20240101_120000.csv",
		ExitCode:   3,
		Stderr:     "license unavailable",
		Err:        errors.New("command failed"),
	})
	report.AddOutcome(model.Outcome{
		Kind:   model.KindCompoundTests,
		Status: model.StatusSkipped,
	})
	return report
}

// fixedClock returns a clock stopped at a known time.
func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	}
}

// TestMarkdownWriter tests the Markdown summary writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes header, records and footer", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf, WithVersion("v1.2.3"), WithClock(fixedClock()))

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"# " + SummaryTitle,
			"Generated on: 2024-01-01 12:00:00",
			"sensor",
			"/work/sensor/sensor.env",
			"**Coverage Report**: `/out/sensor_coverage_20240101_120000.html`",
			"**Test Results Report**: `/out/sensor_test_results_20240101_120000.xml`",
			"Configuration Details",
			"/opt/vcast",
			"vcastgen v1.2.3",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q\n%s", want, output)
			}
		}
	})

	t.Run("lists only successful records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if strings.Contains(output, "**Metrics Report**") {
			t.Error("failed operation must not be listed as a generated report")
		}
		if strings.Contains(output, "**Compound Test Cases**") {
			t.Error("skipped operation must not be listed as a generated report")
		}
		if !strings.Contains(output, "license unavailable") {
			t.Error("expected stderr of failed operation in details")
		}
	})

	t.Run("includes environment metadata", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "coverage_type") || !strings.Contains(output, "statement") {
			t.Error("expected environment table")
		}
	})

	t.Run("success alert", func(t *testing.T) {
		t.Parallel()

		report := model.NewGenerationReport("ok")
		for _, k := range model.AllKinds() {
			report.AddOutcome(model.Outcome{Kind: k, Status: model.StatusSucceeded, OutputPath: k.String()})
		}

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "All reports were generated successfully.") {
			t.Errorf("expected success alert:\n%s", buf.String())
		}
	})

	t.Run("aborted run without records", func(t *testing.T) {
		t.Parallel()

		report := model.NewGenerationReport("broken")
		report.SetError(errors.New("VECTORCAST_DIR is not set"))

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "No reports were generated.") {
			t.Error("expected empty record notice")
		}
		if !strings.Contains(output, "VECTORCAST_DIR is not set") {
			t.Error("expected abort reason")
		}
	})
}

// TestJSONWriter tests the JSON summary writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewJSONWriter(&buf, WithPrettyPrint(), WithJSONVersion("v1.2.3"))

	if _, err := w.Write(createTestReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded struct {
		Version         string `json:"version"`
		Succeeded       bool   `json:"succeeded"`
		SuccessCount    int    `json:"success_count"`
		TotalOperations int    `json:"total_operations"`
		Report          struct {
			UnitName string `json:"unit_name"`
			Outcomes []struct {
				Kind   string `json:"kind"`
				Status string `json:"status"`
				Error  string `json:"error"`
			} `json:"outcomes"`
		} `json:"report"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}

	if decoded.Version != "v1.2.3" {
		t.Errorf("version = %q", decoded.Version)
	}
	if decoded.Succeeded {
		t.Error("partial run must not be reported as succeeded")
	}
	if decoded.SuccessCount != 3 || decoded.TotalOperations != 4 {
		t.Errorf("counts = %d/%d, expected 3/4", decoded.SuccessCount, decoded.TotalOperations)
	}
	if len(decoded.Report.Outcomes) != 4 {
		t.Fatalf("expected 4 outcomes, got %d", len(decoded.Report.Outcomes))
	}
	metrics := decoded.Report.Outcomes[2]
	if metrics.Kind != "metrics" || metrics.Status != "failed" || metrics.Error != "command failed" {
		t.Errorf("unexpected metrics outcome: %+v", metrics)
	}
	if !strings.Contains(buf.String(), "\n  \"") {
		t.Error("expected indented output")
	}
}

// TestSimpleWriter tests the terminal output.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("partial failure message", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "Some reports failed to generate") {
			t.Errorf("unexpected output: %s", output)
		}
		if !strings.Contains(output, "Reports saved to: /work/sensor/sensor_VCAST_SI_Results") {
			t.Errorf("expected output directory: %s", output)
		}
	})

	t.Run("verbose lists operations", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithVerbose(true)).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "Metrics Report") {
			t.Errorf("expected operation lines: %s", buf.String())
		}
	})

	t.Run("verbose shows run duration", func(t *testing.T) {
		t.Parallel()

		report := createTestReport()
		report.StartedAt = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		report.FinishedAt = report.StartedAt.Add(90 * time.Second)

		var quiet, verbose bytes.Buffer
		if _, err := NewSimpleWriter(&quiet).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := NewSimpleWriter(&verbose, WithVerbose(true)).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(verbose.String(), "Completed in 1m30s") {
			t.Errorf("expected duration line: %s", verbose.String())
		}
		if strings.Contains(quiet.String(), "Completed in") {
			t.Errorf("duration must only be shown when verbose: %s", quiet.String())
		}
	})

	t.Run("batch totals", func(t *testing.T) {
		t.Parallel()

		ok := model.NewGenerationReport("ok")
		for _, k := range model.AllKinds() {
			ok.AddOutcome(model.Outcome{Kind: k, Status: model.StatusSucceeded})
		}

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).WriteBatch([]*model.GenerationReport{ok, createTestReport()}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "1 of 2 unit(s) succeeded") {
			t.Errorf("unexpected output: %s", buf.String())
		}
	})
}
