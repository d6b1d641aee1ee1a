package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	slogmulti "github.com/samber/slog-multi"
)

// Options configures New.
type Options struct {
	// Console receives human-oriented text output. Nil disables it.
	Console io.Writer

	// File is the log file path. Empty disables file logging.
	// The file is appended to and its directory is created if needed.
	File string

	// Verbose lowers the console level from Warn to Debug.
	Verbose bool

	// JSONFile writes the log file as JSON lines instead of text.
	// Set by --log-format json.
	JSONFile bool
}

// New creates the application logger described by opts.
// The returned close function releases the log file and is never nil.
func New(opts Options) (*slog.Logger, func() error, error) {
	closeFn := func() error { return nil }

	var handlers []slog.Handler
	if opts.Console != nil {
		handlers = append(handlers, slog.NewTextHandler(opts.Console, &slog.HandlerOptions{
			Level: consoleLevel(opts.Verbose),
		}))
	}

	if opts.File != "" {
		if dir := filepath.Dir(opts.File); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, closeFn, fmt.Errorf("failed to create log directory: %w", err)
			}
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) //nolint:gosec // User-provided log path is intentional
		if err != nil {
			return nil, closeFn, fmt.Errorf("failed to open log file: %w", err)
		}
		closeFn = f.Close

		fileOpts := &slog.HandlerOptions{Level: slog.LevelDebug}
		if opts.JSONFile {
			handlers = append(handlers, slog.NewJSONHandler(f, fileOpts))
		} else {
			handlers = append(handlers, slog.NewTextHandler(f, fileOpts))
		}
	}

	if len(handlers) == 0 {
		handlers = append(handlers, slog.NewTextHandler(io.Discard, nil))
	}

	// Each handler keeps its own level: the console stays quiet while the
	// log file records everything.
	return slog.New(NewSecureHandler(slogmulti.Fanout(handlers...))), closeFn, nil
}

// consoleLevel returns the console level for the verbosity setting.
func consoleLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}
