package clicast

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"time"

	"github.com/nao1215/vcastgen/internal/model"
)

// waitDelay is how long Run waits for output pipes to close after the process
// has been killed.
const waitDelay = 2 * time.Second

// Result is the captured output of a finished invocation.
type Result struct {
	// Stdout is the captured standard output.
	Stdout string

	// Stderr is the captured standard error.
	Stderr string

	// ExitCode is the process exit code, or -1 if the process did not exit normally.
	ExitCode int

	// Duration is the time between start and exit.
	Duration time.Duration
}

// Runner executes clicast commands.
//
// Design decision: We use an interface so the generator can be tested without
// a VectorCAST installation; it only depends on the classification contract
// documented on the package.
type Runner interface {
	// Run executes cmd and blocks until it exits, times out, or ctx is cancelled.
	// The Result is populated as far as possible even when an error is returned.
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ExecRunner runs commands as child processes.
type ExecRunner struct {
	logger *slog.Logger
}

// ExecRunnerOption configures an ExecRunner.
type ExecRunnerOption func(*ExecRunner)

// WithRunnerLogger sets the logger used for command tracing.
func WithRunnerLogger(logger *slog.Logger) ExecRunnerOption {
	return func(r *ExecRunner) {
		r.logger = logger
	}
}

// NewExecRunner creates an ExecRunner.
func NewExecRunner(opts ...ExecRunnerOption) *ExecRunner {
	r := &ExecRunner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	runCtx := ctx
	if cmd.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	r.logger.Debug("running command", "command", cmd.String(), "timeout", cmd.Timeout)

	c := exec.CommandContext(runCtx, cmd.Path, cmd.Args...) //nolint:gosec // clicast path comes from the VectorCAST installation
	c.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	runErr := c.Run()
	result := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode(c, runErr),
		Duration: time.Since(start),
	}

	if runErr == nil {
		return result, nil
	}

	// The parent context being done means the user interrupted the run;
	// that is not a clicast failure.
	if ctx.Err() != nil {
		return result, ctx.Err()
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return result, &model.Error{
			Kind:     model.ErrorKindTimeout,
			Op:       "Command timed out: " + cmd.Description,
			ExitCode: result.ExitCode,
			Stderr:   result.Stderr,
			Err:      context.DeadlineExceeded,
		}
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		return result, &model.Error{
			Kind:     model.ErrorKindExternalProcess,
			Op:       "Command failed: " + cmd.Description,
			ExitCode: result.ExitCode,
			Stderr:   result.Stderr,
		}
	}

	return result, &model.Error{
		Kind:     model.ErrorKindExternalProcess,
		Op:       "Unexpected error executing " + cmd.Description,
		Path:     cmd.Path,
		ExitCode: -1,
		Stderr:   result.Stderr,
		Err:      runErr,
	}
}

// exitCode returns the exit code of a finished command, or -1.
func exitCode(c *exec.Cmd, runErr error) int {
	if c.ProcessState != nil {
		return c.ProcessState.ExitCode()
	}
	if runErr == nil {
		return 0
	}
	return -1
}
