package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/nao1215/vcastgen/internal/clicast"
	"github.com/nao1215/vcastgen/internal/config"
	"github.com/nao1215/vcastgen/internal/envfile"
	"github.com/nao1215/vcastgen/internal/model"
	"github.com/nao1215/vcastgen/internal/pipeline"
)

// timestampLayout is the timestamp embedded in report file names.
const timestampLayout = "20060102_150405"

// Generator produces the VectorCAST reports of one unit.
//
// Design decision: The configuration is copied in at construction time and
// never modified, so a Generator can be reused for several runs and several
// Generators can run side by side in a batch.
type Generator struct {
	cfg       config.Config
	runner    clicast.Runner
	logger    *slog.Logger
	now       func() time.Time
	lookupEnv func(string) (string, bool)
	version   string
}

// New creates a Generator for cfg.
func New(cfg config.Config, opts ...Option) *Generator {
	g := &Generator{
		cfg:       cfg,
		now:       time.Now,
		lookupEnv: os.LookupEnv,
		version:   "dev",
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.logger == nil {
		g.logger = slog.Default()
	}
	if g.runner == nil {
		g.runner = clicast.NewExecRunner(clicast.WithRunnerLogger(g.logger))
	}

	return g
}

// Config returns a copy of the generator's configuration.
func (g *Generator) Config() config.Config {
	return g.cfg
}

// ResolveToolDir returns the VectorCAST installation directory from the
// configuration or, when unset there, from VECTORCAST_DIR.
func (g *Generator) ResolveToolDir() (string, error) {
	return config.ResolveToolDir(g.cfg.ToolDir, g.lookupEnv)
}

// EnsureOutputDir creates the output directory if needed and returns its
// absolute path. Calling it again is harmless.
func (g *Generator) EnsureOutputDir() (string, error) {
	dir, err := filepath.Abs(g.cfg.OutputDir)
	if err != nil {
		return "", model.NewIOError("resolve output directory", g.cfg.OutputDir, err)
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", model.NewIOError("create output directory", dir, err)
	}
	return dir, nil
}

// ExtractEnvironment reads the metadata labels from the environment file.
// Labels that are missing are simply absent from the result.
func (g *Generator) ExtractEnvironment() (model.EnvironmentData, error) {
	return envfile.Extract(g.cfg.EnvFile)
}

// ReportPath returns the output path of kind inside dir, stamped with at.
// The name is <unit>_<kind>_<YYYYMMDD_HHMMSS>[.<ext>].
func (g *Generator) ReportPath(dir string, kind model.ReportKind, at time.Time) string {
	name := fmt.Sprintf("%s_%s_%s", g.cfg.UnitName, kind, at.Format(timestampLayout))
	if ext := kind.Extension(); ext != "" {
		name += "." + ext
	}
	return filepath.Join(dir, name)
}

// Execute runs one clicast report operation and records its outcome in report.
// A successful operation also adds a record. The compound test operation is
// skipped without running clicast when compound tests are disabled.
//
// Execute never returns an error; failures are part of the outcome.
func (g *Generator) Execute(ctx context.Context, report *model.GenerationReport, kind model.ReportKind, outputPath string) model.Outcome {
	outcome := model.Outcome{
		Kind:       kind,
		OutputPath: outputPath,
	}

	if kind == model.KindCompoundTests && !g.cfg.CompoundTests {
		g.logger.Info("skipping compound test generation", "unit", g.cfg.UnitName)
		outcome.Status = model.StatusSkipped
		outcome.OutputPath = ""
		report.AddOutcome(outcome)
		return outcome
	}

	cmd := clicast.NewReportCommand(report.ToolDir, kind, g.cfg.EnvFile, outputPath, g.cfg.Timeout)
	g.logger.Info("generating "+kind.Label(), "unit", g.cfg.UnitName, "output", outputPath)
	g.logger.Debug("clicast command", "command", cmd.String())

	result, err := g.runner.Run(ctx, cmd)
	outcome.ExitCode = result.ExitCode
	outcome.Duration = result.Duration
	outcome.Stdout = result.Stdout
	outcome.Stderr = result.Stderr
	outcome.Err = err

	switch {
	case err == nil:
		outcome.Status = model.StatusSucceeded
		outcome.Stderr = ""
		g.logger.Info(kind.Label()+" generated", "output", outputPath, "duration", result.Duration)
	case ctx.Err() != nil:
		outcome.Status = model.StatusInterrupted
		g.logger.Warn(kind.Label()+" interrupted", "output", outputPath)
	case errors.Is(err, model.ErrTimeout):
		outcome.Status = model.StatusTimedOut
		g.logger.Error("failed to generate "+kind.Label(), "error", err, "timeout", g.cfg.Timeout)
	default:
		outcome.Status = model.StatusFailed
		outcome.Stdout = ""
		g.logger.Error("failed to generate "+kind.Label(), "error", err, "exit_code", result.ExitCode)
	}

	report.AddOutcome(outcome)
	return outcome
}

// Run performs a complete generation run.
//
// The returned report is never nil. The error is non-nil only when a
// prerequisite failed (configuration or output directory) or the context
// was cancelled; report failures are reflected by report.Succeeded().
func (g *Generator) Run(ctx context.Context) (*model.GenerationReport, error) {
	report := model.NewGenerationReport(g.cfg.UnitName)
	report.StartedAt = g.now()
	report.EnvFile = g.cfg.EnvFile
	report.OutputDir = g.cfg.OutputDir
	report.CompoundTests = g.cfg.CompoundTests

	g.logger.Info("starting report generation",
		"unit", g.cfg.UnitName,
		"env_file", g.cfg.EnvFile,
		"output_dir", g.cfg.OutputDir,
		"compound_tests", g.cfg.CompoundTests,
	)

	if err := g.prepare(report); err != nil {
		report.SetError(err)
		report.FinishedAt = g.now()
		g.logger.Error("report generation aborted", "unit", g.cfg.UnitName, "error", err)
		return report, err
	}

	p := pipeline.New(
		pipeline.WithLogger(g.logger),
		pipeline.WithContinueOnError(true),
	)
	stamp := report.StartedAt
	for _, kind := range model.AllKinds() {
		p.AddStep(pipeline.NewStepFunc(kind.String(), func(ctx context.Context, r *model.GenerationReport) error {
			return g.Execute(ctx, r, kind, g.ReportPath(r.OutputDir, kind, stamp)).Err
		}))
	}

	runErr := p.Execute(ctx, report)
	report.FinishedAt = g.now()

	g.WriteSummaries(report)

	g.logger.Info("report generation completed",
		"unit", g.cfg.UnitName,
		"succeeded", report.SuccessCount(),
		"total", report.TotalOperations(),
		"success_rate", fmt.Sprintf("%.1f%%", report.SuccessRate()),
	)

	return report, runErr
}

// prepare runs the prerequisite steps and fills report with their results.
func (g *Generator) prepare(report *model.GenerationReport) error {
	toolDir, err := g.ResolveToolDir()
	if err != nil {
		return err
	}
	report.ToolDir = toolDir
	g.logger.Debug("using VectorCAST installation", "dir", toolDir)

	outDir, err := g.EnsureOutputDir()
	if err != nil {
		return err
	}
	report.OutputDir = outDir

	env, err := g.ExtractEnvironment()
	if err != nil {
		return err
	}
	report.Environment = env
	for _, key := range env.Keys() {
		g.logger.Info("environment", "key", key, "value", env[key])
	}

	fp, err := envfile.Fingerprint(g.cfg.EnvFile)
	if err != nil {
		g.logger.Warn("failed to fingerprint environment file", "error", err)
	}
	report.EnvFingerprint = fp

	return nil
}
