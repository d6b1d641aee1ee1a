package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/vcastgen/internal/model"
)

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, with each step receiving the report
// accumulated by the previous steps.
type Step interface {
	// Do executes the step.
	// It records its outcome in the report and returns the error that caused a
	// non-successful outcome, or nil.
	Do(ctx context.Context, report *model.GenerationReport) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// continueOnError determines whether to continue executing steps
	// after one fails. If false, the pipeline stops on first error.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to continue execution
// even when a step fails. Failed steps are logged and their outcomes are
// recorded in the report by the step itself.
//
// Cancellation always stops the pipeline, regardless of this option.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps:           make([]Step, 0),
		continueOnError: false,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// Execute runs all pipeline steps in sequence.
//
// The context is checked before each step; a step that fails because the
// context was cancelled also stops the pipeline. In both cases the report is
// marked as interrupted and the context error is returned.
//
// Otherwise returns the first step error if continueOnError is false,
// or nil once all steps have run.
func (p *Pipeline) Execute(ctx context.Context, report *model.GenerationReport) error {
	p.logger.Debug("starting pipeline",
		"unit", report.UnitName,
		"steps", p.StepNames(),
	)

	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			report.Interrupted = true
			return ctx.Err()
		default:
		}

		p.logger.Info("executing step",
			"step", step.Name(),
			"unit", report.UnitName,
		)

		if err := step.Do(ctx, report); err != nil {
			if ctx.Err() != nil {
				p.logger.Warn("step interrupted",
					"step", step.Name(),
					"unit", report.UnitName,
				)
				report.Interrupted = true
				return ctx.Err()
			}

			p.logger.Error("step failed",
				"step", step.Name(),
				"unit", report.UnitName,
				"error", err,
			)

			if !p.continueOnError {
				return err
			}
			continue
		}

		p.logger.Debug("step completed",
			"step", step.Name(),
			"unit", report.UnitName,
		)
	}

	return nil
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
