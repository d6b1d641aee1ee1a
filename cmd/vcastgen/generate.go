package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/vcastgen/internal/config"
	"github.com/nao1215/vcastgen/internal/database"
	"github.com/nao1215/vcastgen/internal/generator"
	vlog "github.com/nao1215/vcastgen/internal/log"
	"github.com/nao1215/vcastgen/internal/model"
	"github.com/nao1215/vcastgen/internal/pipeline"
	"github.com/nao1215/vcastgen/internal/report"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate coverage, test results, and metrics reports for a unit",
		Long: `Generate runs clicast to produce the reports of a unit:

  1. Coverage report (HTML)
  2. Test results report (XML)
  3. Metrics report (CSV)
  4. Compound test cases (only with --compound)

A generation_summary.md is written into the output directory.
A failing report does not stop the others; the exit code is 1 if any report
failed, and 130 if the run was interrupted.

Unit name, environment file, and output directory default to the current
directory name, the first *.env file in it, and <unit>_VCAST_SI_Results.

Examples:
  # Generate reports for the unit in the current directory
  vcastgen generate

  # Explicit unit and environment file
  vcastgen generate -u sensor -e sensor/sensor.env -o reports/sensor

  # Include compound tests and write a JSON summary as well
  vcastgen generate -u sensor -C --json

  # Generate every unit listed in the configuration file, two at a time
  vcastgen generate --all --batch 2

With --all, each unit writes into the outputDir of its configuration entry
(default <unit>` + config.OutputDirSuffix + `); --output cannot be combined with it.`,
		Args: cobra.NoArgs,
		RunE: runGenerateCmd,
	}

	cmd.Flags().StringP("unit", "u", "",
		"Unit name (default: current directory name)")
	cmd.Flags().StringP("env", "e", "",
		"VectorCAST environment file (default: first *.env in current directory)")
	cmd.Flags().StringP("output", "o", "",
		"Output directory (default: <unit>"+config.OutputDirSuffix+")")
	cmd.Flags().BoolP("compound", "C", false,
		"Also generate compound test cases")
	cmd.Flags().String("vectorcast-dir", "",
		"VectorCAST installation directory (default: $"+config.ToolDirEnvVar+")")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Maximum run time of each clicast invocation")
	cmd.Flags().StringP("config", "c", "",
		"Path to configuration file (default: .vcastgen or ~/.config/vcastgen/config.yaml)")
	cmd.Flags().BoolP("json", "j", false,
		"Also write "+config.JSONSummaryFileName)
	cmd.Flags().String("log-file", config.XDGLogFile(),
		"Log file path (empty disables file logging)")
	cmd.Flags().String("log-format", config.LogFormatText,
		"Log file format: text or json")
	cmd.Flags().Bool("no-history", false,
		"Do not record the run in the history database")
	cmd.Flags().String("history-dir", config.XDGDataDir(),
		"Directory containing the history database")
	cmd.Flags().Bool("all", false,
		"Generate every unit listed in the configuration file")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of units generated concurrently with --all")

	cmd.MarkFlagsMutuallyExclusive("all", "unit")
	// Every unit writes generation_summary.md into its own output directory.
	cmd.MarkFlagsMutuallyExclusive("all", "output")

	return cmd
}

// runGenerateCmd executes the generate command.
func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	configs, err := buildConfigs(cmd)
	if err != nil {
		return err
	}

	for i := range configs {
		if err := configs[i].Validate(); err != nil {
			return fmt.Errorf("configuration error for unit %q: %w", configs[i].UnitName, err)
		}
	}

	base := configs[0]
	logger, closeLog, err := vlog.New(vlog.Options{
		Console: cmd.ErrOrStderr(),
		File:     base.LogFile,
		Verbose:  base.Verbose,
		JSONFile: base.LogFormat == config.LogFormatJSON,
	})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer func() { _ = closeLog() }()
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go cancelOnSignal(ctx, cancel, sigCh, logger)

	return runGenerate(ctx, cmd, configs, logger)
}

// cancelOnSignal cancels the run when a signal arrives on sigCh.
// It then stops relaying signals, so a second Ctrl-C terminates the process
// instead of waiting for clicast to exit.
func cancelOnSignal(ctx context.Context, cancel context.CancelFunc, sigCh chan os.Signal, logger *slog.Logger) {
	select {
	case <-sigCh:
		logger.Warn("received shutdown signal, cancelling...")
		cancel()
		signal.Stop(sigCh)
	case <-ctx.Done():
	}
}

// runGenerate generates every configured unit and prints the results.
func runGenerate(ctx context.Context, cmd *cobra.Command, configs []config.Config, logger *slog.Logger) error {
	base := configs[0]

	var db *database.HistoryDB
	if base.SaveHistory {
		var err error
		db, err = database.Open(base.HistoryDir, database.DefaultOptions())
		if err != nil {
			// History is a convenience; generation still proceeds.
			logger.Warn("failed to open history database", "dir", base.HistoryDir, "error", err)
			db = nil
		} else {
			defer db.Close()
		}
	}

	byUnit := make(map[string]config.Config, len(configs))
	units := make([]string, len(configs))
	for i, c := range configs {
		byUnit[c.UnitName] = c
		units[i] = c.UnitName
	}

	runUnit := func(ctx context.Context, unit string) (*model.GenerationReport, error) {
		g := generator.New(byUnit[unit],
			generator.WithLogger(logger.With("unit", unit)),
			generator.WithVersion(getVersion()),
		)
		r, err := g.Run(ctx)
		saveRun(db, r, logger)
		return r, err
	}

	out := report.NewSimpleWriter(cmd.OutOrStdout(), report.WithVerbose(base.Verbose))

	if len(units) == 1 {
		r, err := runUnit(ctx, units[0])
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		if _, werr := out.Write(r); werr != nil {
			logger.Warn("failed to print result", "error", werr)
		}
		if err != nil {
			return err
		}
		if !r.Succeeded() {
			return errReportsFailed
		}
		return nil
	}

	bp := pipeline.NewBatchProcessor(runUnit,
		pipeline.WithConcurrency(base.BatchSize),
		pipeline.WithBatchLogger(logger),
	)
	reports, err := bp.ProcessBatch(ctx, units)

	for _, r := range reports {
		if r == nil {
			continue
		}
		if _, werr := out.Write(r); werr != nil {
			logger.Warn("failed to print result", "error", werr)
		}
	}
	if _, werr := out.WriteBatch(reports); werr != nil {
		logger.Warn("failed to print batch result", "error", werr)
	}

	if err != nil {
		return err
	}
	for _, r := range reports {
		if r == nil || !r.Succeeded() {
			return errReportsFailed
		}
	}
	return nil
}

// saveRun stores r in db when history is enabled. Failures are logged.
func saveRun(db *database.HistoryDB, r *model.GenerationReport, logger *slog.Logger) {
	if db == nil || r == nil {
		return
	}
	// The run context may already be cancelled; the record is still wanted.
	if err := db.SaveRun(context.Background(), r); err != nil {
		logger.Warn("failed to save run history", "unit", r.UnitName, "error", err)
		return
	}
	logger.Debug("run saved to history", "id", r.ID)
}

// buildConfigs creates one Config per unit to generate from the command
// flags, the configuration file, and the working directory.
func buildConfigs(cmd *cobra.Command) ([]config.Config, error) {
	base := config.NewConfig()
	base.Verbose = getVerboseFlag(cmd)

	var err error
	base.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	file, err := loadConfigFile(base.ConfigFilePath)
	if err != nil {
		return nil, err
	}

	if err := applyGlobalFlags(cmd, base); err != nil {
		return nil, err
	}

	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return nil, err
	}

	if all {
		names := file.UnitNames()
		if len(names) == 0 {
			return nil, errors.New("--all requires units in the configuration file (see 'vcastgen init')")
		}
		configs := make([]config.Config, 0, len(names))
		for _, name := range names {
			c := base.WithUnit(name, file.GetUnitConfig(name))
			if err := applyUnitFlags(cmd, &c); err != nil {
				return nil, err
			}
			configs = append(configs, c)
		}
		return configs, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	unit, err := cmd.Flags().GetString("unit")
	if err != nil {
		return nil, err
	}
	if unit == "" {
		unit = config.DefaultUnitName(cwd)
	} else if len(file.Units) > 0 && !file.HasUnit(unit) {
		return nil, fmt.Errorf("%w: %s (declared: %s)", config.ErrUnknownUnit, unit, strings.Join(file.UnitNames(), ", "))
	}

	c := base.WithUnit(unit, file.GetUnitConfig(unit))
	if err := applyUnitFlags(cmd, &c); err != nil {
		return nil, err
	}
	if c.EnvFile == "" {
		c.EnvFile = config.FindEnvFile(cwd)
	}

	return []config.Config{c}, nil
}

// loadConfigFile loads the configuration file.
// If the user explicitly specified a path, a missing file is an error;
// otherwise an empty configuration is used.
func loadConfigFile(explicitPath string) (*config.File, error) {
	path := config.FindConfigFile(explicitPath)
	if path == "" {
		if explicitPath != "" {
			return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, explicitPath)
		}
		return config.EmptyFile(), nil
	}

	file, err := config.LoadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	return file, nil
}

// applyGlobalFlags copies flags that are not unit settings into cfg.
func applyGlobalFlags(cmd *cobra.Command, cfg *config.Config) error {
	var err error

	cfg.JSONSummary, err = cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	cfg.LogFile, err = cmd.Flags().GetString("log-file")
	if err != nil {
		return err
	}

	cfg.LogFormat, err = cmd.Flags().GetString("log-format")
	if err != nil {
		return err
	}

	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return err
	}
	cfg.SaveHistory = !noHistory

	cfg.HistoryDir, err = cmd.Flags().GetString("history-dir")
	if err != nil {
		return err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return err
	}

	return nil
}

// applyUnitFlags overrides unit settings with the flags the user set.
// Flags left at their defaults do not override the configuration file.
func applyUnitFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("env") {
		v, err := flags.GetString("env")
		if err != nil {
			return err
		}
		cfg.EnvFile = v
	}

	if flags.Changed("output") {
		v, err := flags.GetString("output")
		if err != nil {
			return err
		}
		cfg.OutputDir = v
	}

	if flags.Changed("compound") {
		v, err := flags.GetBool("compound")
		if err != nil {
			return err
		}
		cfg.CompoundTests = v
	}

	if flags.Changed("vectorcast-dir") {
		v, err := flags.GetString("vectorcast-dir")
		if err != nil {
			return err
		}
		cfg.ToolDir = v
	}

	if flags.Changed("timeout") {
		v, err := flags.GetDuration("timeout")
		if err != nil {
			return err
		}
		cfg.Timeout = v
	}

	return nil
}
