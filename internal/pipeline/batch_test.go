package pipeline

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/nao1215/vcastgen/internal/model"
)

// succeedingRun returns a RunFunc producing a fully successful report.
func succeedingRun() RunFunc {
	return func(_ context.Context, unit string) (*model.GenerationReport, error) {
		r := model.NewGenerationReport(unit)
		for _, k := range model.AllKinds() {
			r.AddOutcome(model.Outcome{Kind: k, Status: model.StatusSucceeded})
		}
		return r, nil
	}
}

// TestBatchProcessorNew tests the BatchProcessor constructor.
func TestBatchProcessorNew(t *testing.T) {
	t.Parallel()

	t.Run("creates processor with defaults", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(succeedingRun())
		if bp.concurrency != 1 {
			t.Errorf("expected default concurrency 1, got %d", bp.concurrency)
		}
	})

	t.Run("applies WithConcurrency option", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(succeedingRun(), WithConcurrency(4))
		if bp.concurrency != 4 {
			t.Errorf("expected concurrency 4, got %d", bp.concurrency)
		}
	})

	t.Run("ignores non-positive concurrency", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(succeedingRun(), WithConcurrency(0))
		if bp.concurrency != 1 {
			t.Errorf("expected concurrency 1, got %d", bp.concurrency)
		}
	})
}

// TestBatchProcessorProcessBatch tests batch generation.
func TestBatchProcessorProcessBatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	t.Run("returns reports in input order", func(t *testing.T) {
		bp := NewBatchProcessor(succeedingRun(), WithConcurrency(3))
		units := []string{"alpha", "beta", "gamma", "delta"}

		reports, err := bp.ProcessBatch(context.Background(), units)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(reports) != len(units) {
			t.Fatalf("expected %d reports, got %d", len(units), len(reports))
		}
		for i, r := range reports {
			if r.UnitName != units[i] {
				t.Errorf("report %d: got unit %q, expected %q", i, r.UnitName, units[i])
			}
			if !r.Succeeded() {
				t.Errorf("report %d should have succeeded", i)
			}
		}
	})

	t.Run("failed unit does not stop the others", func(t *testing.T) {
		prereq := errors.New("VECTORCAST_DIR not set")
		run := func(ctx context.Context, unit string) (*model.GenerationReport, error) {
			if unit == "broken" {
				return nil, prereq
			}
			return succeedingRun()(ctx, unit)
		}

		bp := NewBatchProcessor(run)
		reports, err := bp.ProcessBatch(context.Background(), []string{"ok1", "broken", "ok2"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if reports[1] == nil || reports[1].Succeeded() {
			t.Fatal("expected a failed report for the broken unit")
		}
		if reports[1].ErrorMessage != prereq.Error() {
			t.Errorf("expected error to be recorded, got %q", reports[1].ErrorMessage)
		}
		if !reports[0].Succeeded() || !reports[2].Succeeded() {
			t.Error("other units should have succeeded")
		}
	})

	t.Run("respects the concurrency limit", func(t *testing.T) {
		var current, peak int32
		run := func(ctx context.Context, unit string) (*model.GenerationReport, error) {
			n := atomic.AddInt32(&current, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(20 * time.Millisecond)
			atomic.AddInt32(&current, -1)
			return succeedingRun()(ctx, unit)
		}

		bp := NewBatchProcessor(run, WithConcurrency(2))
		if _, err := bp.ProcessBatch(context.Background(), []string{"a", "b", "c", "d", "e", "f"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if peak > 2 {
			t.Errorf("expected at most 2 concurrent units, saw %d", peak)
		}
	})

	t.Run("callback sees every unit", func(t *testing.T) {
		var mu sync.Mutex
		seen := make(map[int]string)

		bp := NewBatchProcessor(succeedingRun(), WithConcurrency(2))
		err := bp.ProcessBatchWithCallback(context.Background(), []string{"x", "y", "z"}, func(r *model.GenerationReport, i int) {
			mu.Lock()
			defer mu.Unlock()
			seen[i] = r.UnitName
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(seen) != 3 || seen[0] != "x" || seen[2] != "z" {
			t.Errorf("unexpected callbacks: %v", seen)
		}
	})

	t.Run("cancelled context stops the batch", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var calls int32
		run := func(ctx context.Context, unit string) (*model.GenerationReport, error) {
			atomic.AddInt32(&calls, 1)
			return succeedingRun()(ctx, unit)
		}

		bp := NewBatchProcessor(run)
		_, err := bp.ProcessBatch(ctx, []string{"a", "b"})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if atomic.LoadInt32(&calls) != 0 {
			t.Errorf("expected no units to run, got %d", calls)
		}
	})
}
