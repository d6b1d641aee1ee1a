package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "vcastgen"

	// ToolDirEnvVar is the process environment variable holding the
	// VectorCAST installation directory.
	ToolDirEnvVar = "VECTORCAST_DIR"

	// DefaultTimeout bounds each clicast invocation. Report generation for a
	// large unit can take minutes; anything beyond five is treated as hung.
	DefaultTimeout = 5 * time.Minute

	// DefaultBatchSize of 1 runs units one after another.
	// clicast holds a license seat per process, so parallel runs are opt-in.
	DefaultBatchSize = 1

	// OutputDirSuffix is appended to the unit name to form the default
	// output directory.
	OutputDirSuffix = "_VCAST_SI_Results"

	// SummaryFileName is the Markdown summary written into the output directory.
	SummaryFileName = "generation_summary.md"

	// JSONSummaryFileName is the JSON summary written when requested.
	JSONSummaryFileName = "generation_summary.json"

	// LogFileName is the name of the log file under the XDG state directory.
	LogFileName = "vcastgen.log"

	// LogFormatText and LogFormatJSON are the accepted log file formats.
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds all options for one report generation run.
// It is populated from CLI flags and the configuration file, validated once,
// and then handed to the generator by value. The generator never modifies it.
type Config struct {
	// UnitName is the name of the unit under test. It seeds report file names
	// and the default output directory.
	UnitName string

	// EnvFile is the path of the VectorCAST environment file.
	EnvFile string

	// OutputDir is the directory receiving all reports and the summary.
	// Relative paths are resolved against the working directory.
	OutputDir string

	// CompoundTests enables generation of compound test cases.
	// When false the compound operation is skipped and counts as success.
	CompoundTests bool

	// ToolDir is the VectorCAST installation directory.
	// When empty, the VECTORCAST_DIR environment variable is consulted.
	ToolDir string

	// Timeout bounds each clicast invocation.
	Timeout time.Duration

	// Verbose enables debug output on the console.
	Verbose bool

	// LogFile is the path of the log file. Empty disables file logging.
	LogFile string

	// LogFormat is the log file format, LogFormatText or LogFormatJSON.
	LogFormat string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the standard locations are searched.
	ConfigFilePath string

	// JSONSummary additionally writes generation_summary.json.
	JSONSummary bool

	// SaveHistory stores each run in the history database.
	SaveHistory bool

	// HistoryDir is the directory holding the history database.
	HistoryDir string

	// BatchSize is the number of units generated concurrently by --all.
	BatchSize int
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because several defaults are non-zero (timeout, paths).
func NewConfig() *Config {
	return &Config{
		Timeout:     DefaultTimeout,
		LogFile:     XDGLogFile(),
		LogFormat:   LogFormatText,
		SaveHistory: true,
		HistoryDir:  XDGDataDir(),
		BatchSize:   DefaultBatchSize,
	}
}

// DefaultOutputDir returns the output directory used when none is configured.
func DefaultOutputDir(unitName string) string {
	return unitName + OutputDirSuffix
}

// XDGDataDir returns the XDG data directory for vcastgen.
// On Linux: ~/.local/share/vcastgen
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for vcastgen.
// On Linux: ~/.config/vcastgen
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGLogFile returns the default log file path.
// On Linux: ~/.local/state/vcastgen/vcastgen.log
func XDGLogFile() string {
	return filepath.Join(xdg.StateHome, AppName, LogFileName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
//
// The tool directory is not checked here: resolving it consults the process
// environment and the filesystem, which the generator does as its first step.
func (c *Config) Validate() error {
	if c.UnitName == "" {
		return ErrNoUnitName
	}

	if c.EnvFile == "" {
		return ErrNoEnvFile
	}

	if c.OutputDir == "" {
		return ErrNoOutputDir
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		return ErrInvalidLogFormat
	}

	return nil
}

// WithUnit returns a copy of c with the settings of unit applied on top.
// Non-zero unit values override; the receiver is left unchanged.
func (c Config) WithUnit(name string, unit UnitConfig) Config {
	c.UnitName = name
	if unit.EnvFile != "" {
		c.EnvFile = unit.EnvFile
	}
	if unit.OutputDir != "" {
		c.OutputDir = unit.OutputDir
	}
	if unit.ToolDir != "" {
		c.ToolDir = unit.ToolDir
	}
	if unit.CompoundTests != nil {
		c.CompoundTests = *unit.CompoundTests
	}
	if unit.Timeout > 0 {
		c.Timeout = unit.Timeout
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir(name)
	}
	return c
}
