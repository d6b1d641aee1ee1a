// Package pipeline provides a framework for executing generation steps in sequence.
//
// A unit's report generation is a fixed sequence of clicast operations. Each
// operation is implemented as a Step that receives the run's GenerationReport
// and records its outcome there.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. It provides consistent logging and cancellation checks across steps
// 2. The continue-on-error policy lives in one place rather than in every step
// 3. Steps can be replaced in tests
//
// The package also offers a BatchProcessor that runs several units with
// bounded concurrency using errgroup. Steps within one unit always run
// sequentially.
package pipeline
