package clicast

import (
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/nao1215/vcastgen/internal/model"
)

// BinaryName is the clicast executable name for the current platform.
func BinaryName() string {
	if runtime.GOOS == "windows" {
		return "clicast.exe"
	}
	return "clicast"
}

// Command is one clicast invocation.
type Command struct {
	// Path is the clicast binary.
	Path string

	// Args are the arguments after the binary.
	Args []string

	// Timeout bounds the invocation. Zero means no bound.
	Timeout time.Duration

	// Description is used in log messages and errors.
	Description string
}

// NewReportCommand builds the invocation producing kind for envFile into output.
//
// The argument list is the mode flag, --environment, --output and, for every
// kind except compound tests, --format.
func NewReportCommand(toolDir string, kind model.ReportKind, envFile, output string, timeout time.Duration) Command {
	args := []string{
		kind.ModeFlag(),
		"--environment", envFile,
		"--output", output,
	}
	if format := kind.Format(); format != "" {
		args = append(args, "--format", format)
	}

	return Command{
		Path:        filepath.Join(toolDir, BinaryName()),
		Args:        args,
		Timeout:     timeout,
		Description: "Generate " + strings.ToLower(kind.Label()) + ": " + output,
	}
}

// String returns the command line for logging.
func (c Command) String() string {
	return strings.Join(append([]string{c.Path}, c.Args...), " ")
}
