package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/vcastgen/internal/model"
)

// RunFunc generates the reports of one unit.
// It returns the run's report, which must be non-nil whenever generation was
// attempted, and an error for prerequisite failures or cancellation.
type RunFunc func(ctx context.Context, unit string) (*model.GenerationReport, error)

// BatchProcessor generates reports for several units.
// It uses errgroup to manage goroutines and respect the concurrency limit.
//
// Design decision: We keep batch processing separate from Pipeline so that a
// single unit's steps stay strictly sequential; only whole units are run
// side by side.
type BatchProcessor struct {
	// run generates one unit.
	run RunFunc

	// concurrency is the maximum number of units generated at once.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed reports, indexed like the input units.
	// Access is synchronized via mutex.
	results []*model.GenerationReport
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent units.
// Default is 1. Non-positive values are ignored.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(run RunFunc, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		run:         run,
		concurrency: 1,
		results:     make([]*model.GenerationReport, 0),
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch generates reports for all units and returns them in input order.
//
// A unit failing does not stop the others; its report carries the error.
// The returned error is non-nil only if the context was cancelled.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, units []string) ([]*model.GenerationReport, error) {
	bp.results = make([]*model.GenerationReport, len(units))

	err := bp.ProcessBatchWithCallback(ctx, units, func(report *model.GenerationReport, index int) {
		bp.mu.Lock()
		bp.results[index] = report
		bp.mu.Unlock()
	})

	return bp.results, err
}

// ProcessBatchWithCallback generates reports for all units and calls callback
// for each completed unit.
//
// The callback is called from the goroutine that generated the unit, so it
// must be safe for concurrent use when concurrency is above 1.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	units []string,
	callback func(report *model.GenerationReport, index int),
) error {
	bp.logger.Info("starting batch processing",
		"total_units", len(units),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, unit := range units {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bp.logger.Info("generating unit",
				"unit", unit,
				"index", i+1,
				"total", len(units),
			)

			report, err := bp.run(gctx, unit)
			if report == nil {
				report = model.NewGenerationReport(unit)
				report.SetError(err)
			}

			if err != nil {
				bp.logger.Warn("unit failed", "unit", unit, "error", err)
			} else {
				bp.logger.Info("unit completed", "unit", unit, "succeeded", report.Succeeded())
			}

			callback(report, i)

			// Only cancellation stops the batch; unit failures are in the report.
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Info("batch processing complete",
		"total_units", len(units),
		"elapsed", time.Since(startTime),
	)

	return err
}
