package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Process exit codes.
const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130
)

// errReportsFailed is returned by generate when at least one report could
// not be generated. The details have already been printed.
var errReportsFailed = errors.New("some reports failed to generate")

// NewRootCmd creates the root command for vcastgen.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vcastgen",
		Short: "Generate VectorCAST SI reports with clicast",
		Long: `vcastgen automates VectorCAST's clicast to produce the coverage, test results,
metrics, and compound test reports of a unit, then writes a Markdown summary.

The VectorCAST installation is taken from --vectorcast-dir, the configuration
file, or the VECTORCAST_DIR environment variable.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	return run(NewRootCmd(), os.Args[1:])
}

// run executes cmd with args and maps the result to an exit code.
func run(cmd *cobra.Command, args []string) int {
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return exitOK
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Interrupted.")
		return exitInterrupted
	}
	if !errors.Is(err, errReportsFailed) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	}
	return exitFailure
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}
