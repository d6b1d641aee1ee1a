// Package log builds the slog loggers used by vcastgen.
//
// A run logs to two places: the console, at Warn (or Debug when verbose),
// and a log file that always receives Debug records so that a failed run can
// be diagnosed afterwards, as text or, with --log-format json, as JSON lines.
// slogmulti.Fanout sends each record to both.
//
// All handlers are wrapped in a SecureHandler that masks license server
// specifications and credentials. clicast is frequently pointed at a
// FlexLM license server through the environment, and those values should not
// end up in log files that are attached to bug reports.
//
// # Usage
//
//	logger, closeLog, err := log.New(log.Options{
//	    Console: os.Stderr,
//	    File:    "/home/me/.local/state/vcastgen/vcastgen.log",
//	    Verbose: true,
//	})
//	if err != nil { ... }
//	defer closeLog()
//
// The logger is created once by the command and injected into the generator.
package log
