package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/vcastgen/internal/config"
	"github.com/nao1215/vcastgen/internal/database"
	"github.com/nao1215/vcastgen/internal/model"
	"github.com/nao1215/vcastgen/internal/report"
)

// NewHistoryCmd creates the history command.
// This command reads the runs recorded by generate.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [unit]",
		Short: "Show past report generation runs",
		Long: `History lists report generation runs recorded in the history database.

Examples:
  # List the most recent runs of all units
  vcastgen history

  # List runs of one unit
  vcastgen history sensor

  # List all units with recorded runs
  vcastgen history --list-units

  # Reprint the summary of a run
  vcastgen history --show <run-id>
  vcastgen history --show <run-id> --json

  # Compare the latest two runs of a unit
  vcastgen history --compare sensor`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("list-units", "L", false,
		"List all units with recorded runs")
	cmd.Flags().StringP("show", "s", "",
		"Print the summary of the run with this ID")
	cmd.Flags().Bool("compare", false,
		"Compare the latest two runs of the unit")
	cmd.Flags().IntP("limit", "n", 20,
		"Maximum number of runs to list (0 for all)")
	cmd.Flags().BoolP("json", "j", false,
		"Print --show output as JSON instead of Markdown")
	cmd.Flags().String("history-dir", config.XDGDataDir(),
		"Directory containing the history database")

	cmd.MarkFlagsMutuallyExclusive("list-units", "show", "compare")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	listUnits, err := flags.GetBool("list-units")
	if err != nil {
		return err
	}
	showID, err := flags.GetString("show")
	if err != nil {
		return err
	}
	compare, err := flags.GetBool("compare")
	if err != nil {
		return err
	}
	limit, err := flags.GetInt("limit")
	if err != nil {
		return err
	}
	jsonOutput, err := flags.GetBool("json")
	if err != nil {
		return err
	}
	dir, err := flags.GetString("history-dir")
	if err != nil {
		return err
	}

	var unit string
	if len(args) > 0 {
		unit = args[0]
	}

	// Validate arguments before opening the database.
	if compare && unit == "" {
		return errors.New("a unit name is required with --compare")
	}

	db, err := database.Open(dir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	switch {
	case listUnits:
		units, err := db.ListUnits(ctx)
		if err != nil {
			return err
		}
		return printUnits(out, units)
	case showID != "":
		r, err := db.GetRun(ctx, showID)
		if err != nil {
			return err
		}
		var w report.Writer = report.NewMarkdownWriter(out,
			report.WithVersion(getVersion()),
			report.WithClock(func() time.Time { return runTime(r) }),
		)
		if jsonOutput {
			w = report.NewJSONWriter(out, report.WithPrettyPrint(), report.WithJSONVersion(getVersion()))
		}
		_, err = w.Write(r)
		return err
	case compare:
		runs, err := db.ListRuns(ctx, unit, 2)
		if err != nil {
			return err
		}
		if len(runs) < 2 {
			return fmt.Errorf("at least 2 runs are required for comparison (found %d)", len(runs))
		}
		current, err := db.GetRun(ctx, runs[0].ID)
		if err != nil {
			return err
		}
		previous, err := db.GetRun(ctx, runs[1].ID)
		if err != nil {
			return err
		}
		return printComparison(out, previous, current)
	default:
		runs, err := db.ListRuns(ctx, unit, limit)
		if err != nil {
			return err
		}
		return printRuns(out, unit, runs)
	}
}

// printUnits lists unit names.
func printUnits(w io.Writer, units []string) error {
	if len(units) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w, "\nUse 'vcastgen generate' to generate reports.")
		return nil
	}

	fmt.Fprintf(w, "Units (%d):\n\n", len(units))
	for _, u := range units {
		fmt.Fprintf(w, "  • %s\n", u)
	}
	fmt.Fprintln(w, "\nUse 'vcastgen history <unit>' to see the runs of a unit.")
	return nil
}

// printRuns lists run summaries as a table.
func printRuns(w io.Writer, unit string, runs []database.RunSummary) error {
	if len(runs) == 0 {
		if unit != "" {
			fmt.Fprintf(w, "No runs recorded for %s\n", unit)
		} else {
			fmt.Fprintln(w, "No runs recorded yet.")
		}
		return nil
	}

	fmt.Fprintf(w, "  %-36s  %-20s  %-20s  %-7s  %s\n", "ID", "Unit", "Started", "Result", "Reports")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 100))
	for _, r := range runs {
		result := "FAIL"
		if r.Succeeded {
			result = "OK"
		}
		fmt.Fprintf(w, "  %-36s  %-20s  %-20s  %-7s  %d/%d\n",
			r.ID,
			r.UnitName,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			result,
			r.SuccessCount,
			r.Total,
		)
	}
	fmt.Fprintln(w, "\nUse 'vcastgen history --show <id>' to print the summary of a run.")
	return nil
}

// printComparison shows how each operation changed between two runs.
func printComparison(w io.Writer, previous, current *model.GenerationReport) error {
	fmt.Fprintf(w, "Comparing runs of %s\n", current.UnitName)
	fmt.Fprintf(w, "  previous: %s (%s)\n", previous.ID, previous.StartedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "  current:  %s (%s)\n\n", current.ID, current.StartedAt.Local().Format("2006-01-02 15:04:05"))

	fmt.Fprintf(w, "  %-22s  %-12s  %-12s  %s\n", "Operation", "Previous", "Current", "Change")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 64))
	for _, kind := range model.AllKinds() {
		before := outcomeStatus(previous, kind)
		after := outcomeStatus(current, kind)
		fmt.Fprintf(w, "  %-22s  %-12s  %-12s  %s\n", kind.Label(), before, after, statusChange(previous, current, kind))
	}

	fmt.Fprintln(w)
	if previous.EnvFingerprint != "" && current.EnvFingerprint != "" && previous.EnvFingerprint != current.EnvFingerprint {
		fmt.Fprintln(w, "The environment file changed between the runs.")
	} else {
		fmt.Fprintln(w, "The environment file is unchanged.")
	}
	return nil
}

// outcomeStatus returns the status text of kind in r, or "-".
func outcomeStatus(r *model.GenerationReport, kind model.ReportKind) string {
	if o, ok := r.Outcome(kind); ok {
		return o.Status.String()
	}
	return "-"
}

// statusChange describes the transition of kind between two runs.
func statusChange(previous, current *model.GenerationReport, kind model.ReportKind) string {
	before, hadBefore := previous.Outcome(kind)
	after, hasAfter := current.Outcome(kind)
	switch {
	case !hadBefore || !hasAfter:
		return ""
	case before.OK() && !after.OK():
		return "regressed"
	case !before.OK() && after.OK():
		return "fixed"
	default:
		return ""
	}
}

// runTime returns when r was generated: its finish time, or its start time
// for a run that never finished.
func runTime(r *model.GenerationReport) time.Time {
	if r.FinishedAt.IsZero() {
		return r.StartedAt
	}
	return r.FinishedAt
}
