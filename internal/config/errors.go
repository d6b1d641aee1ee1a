package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoUnitName is returned when no unit name was given and none could be
	// derived from the working directory.
	ErrNoUnitName = errors.New("no unit name specified: use --unit or run from the unit directory")

	// ErrNoEnvFile is returned when no environment file was given and no *.env
	// file exists in the working directory.
	ErrNoEnvFile = errors.New("no environment file specified: use --env or place a .env file in the current directory")

	// ErrNoOutputDir is returned when the output directory is empty.
	ErrNoOutputDir = errors.New("no output directory specified")

	// ErrInvalidTimeout is returned when the per-operation timeout is not positive.
	// A timeout of zero or negative would kill clicast immediately.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidLogFormat is returned when the log format is neither text nor json.
	ErrInvalidLogFormat = errors.New("invalid log format: must be text or json")

	// ErrToolDirNotSet is returned when neither --vectorcast-dir nor the
	// VECTORCAST_DIR environment variable provides the installation directory.
	ErrToolDirNotSet = errors.New("VECTORCAST_DIR environment variable not set: please ensure VectorCAST is properly installed")

	// ErrToolDirNotFound is returned when the configured installation
	// directory does not exist.
	ErrToolDirNotFound = errors.New("VectorCAST directory does not exist")

	// ErrUnknownUnit is returned when a unit is requested that is not
	// declared in the configuration file.
	ErrUnknownUnit = errors.New("unit not found in configuration file")
)
