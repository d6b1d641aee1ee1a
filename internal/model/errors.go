package model

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds.
// Every error produced while generating reports belongs to exactly one kind.
// Callers test for a kind with errors.Is, e.g. errors.Is(err, ErrTimeout).
var (
	// ErrConfiguration is returned for a missing or invalid tool directory and
	// for a missing or unreadable environment file. It aborts the run before
	// any report is attempted.
	ErrConfiguration = errors.New("configuration error")

	// ErrIO is returned when a directory or file cannot be created or written.
	ErrIO = errors.New("I/O error")

	// ErrExternalProcess is returned when clicast exits with a non-zero code
	// or cannot be started.
	ErrExternalProcess = errors.New("external process error")

	// ErrTimeout is returned when clicast exceeds its time bound.
	ErrTimeout = errors.New("timeout")
)

// ErrorKind classifies an Error.
type ErrorKind int

const (
	// ErrorKindConfiguration maps to ErrConfiguration.
	ErrorKindConfiguration ErrorKind = iota + 1
	// ErrorKindIO maps to ErrIO.
	ErrorKindIO
	// ErrorKindExternalProcess maps to ErrExternalProcess.
	ErrorKindExternalProcess
	// ErrorKindTimeout maps to ErrTimeout.
	ErrorKindTimeout
)

// String returns the name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindConfiguration:
		return "ConfigurationError"
	case ErrorKindIO:
		return "IOError"
	case ErrorKindExternalProcess:
		return "ExternalProcessError"
	case ErrorKindTimeout:
		return "TimeoutError"
	default:
		return "UnknownError"
	}
}

// sentinel returns the package-level error for the kind.
func (k ErrorKind) sentinel() error {
	switch k {
	case ErrorKindConfiguration:
		return ErrConfiguration
	case ErrorKindIO:
		return ErrIO
	case ErrorKindExternalProcess:
		return ErrExternalProcess
	case ErrorKindTimeout:
		return ErrTimeout
	default:
		return nil
	}
}

// Error is the typed error used across vcastgen.
// It records what was being done (Op), on which path, and for external
// process failures the exit code and captured stderr.
type Error struct {
	// Kind classifies the error.
	Kind ErrorKind

	// Op is a short description of the failed operation.
	Op string

	// Path is the file or directory involved, if any.
	Path string

	// ExitCode is the process exit code for ErrorKindExternalProcess.
	// It is -1 when the process could not be started.
	ExitCode int

	// Stderr is the captured error stream of the external process.
	Stderr string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.String())
	if e.Op != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Op)
	}
	if e.Path != "" {
		sb.WriteString(" ")
		sb.WriteString(e.Path)
	}
	if e.Kind == ErrorKindExternalProcess && e.ExitCode != 0 {
		fmt.Fprintf(&sb, " (exit code %d)", e.ExitCode)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		sb.WriteString("\nError: ")
		sb.WriteString(stderr)
	}
	return sb.String()
}

// Unwrap exposes both the kind sentinel and the underlying cause to errors.Is.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewConfigurationError creates an Error of kind ErrorKindConfiguration.
func NewConfigurationError(op, path string, err error) *Error {
	return &Error{Kind: ErrorKindConfiguration, Op: op, Path: path, Err: err}
}

// NewIOError creates an Error of kind ErrorKindIO.
func NewIOError(op, path string, err error) *Error {
	return &Error{Kind: ErrorKindIO, Op: op, Path: path, Err: err}
}

// errUnknownKind reports an unrecognised report kind identifier.
func errUnknownKind(s string) error {
	return fmt.Errorf("unknown report kind %q", s)
}
