// Package clicast builds and runs VectorCAST clicast invocations.
//
// A Command names the binary and its arguments; a Runner executes it with a
// time bound and classifies the result. The ExecRunner runs real processes;
// tests substitute their own Runner.
//
// Result classification:
//   - exit code 0: success, stdout is the payload
//   - exit code != 0 or start failure: *model.Error of kind ErrExternalProcess
//     carrying stderr
//   - time bound exceeded: *model.Error of kind ErrTimeout
//   - parent context cancelled: the context error, so callers can tell an
//     interrupt from a tool failure
package clicast
