package pipeline

import (
	"context"

	"github.com/nao1215/vcastgen/internal/model"
)

// StepFunc adapts a function to the Step interface.
type StepFunc struct {
	name string
	fn   func(ctx context.Context, report *model.GenerationReport) error
}

// NewStepFunc creates a named step from fn.
func NewStepFunc(name string, fn func(ctx context.Context, report *model.GenerationReport) error) *StepFunc {
	return &StepFunc{name: name, fn: fn}
}

// Name implements Step.
func (s *StepFunc) Name() string {
	return s.name
}

// Do implements Step.
func (s *StepFunc) Do(ctx context.Context, report *model.GenerationReport) error {
	return s.fn(ctx, report)
}
