package generator

import (
	"log/slog"
	"time"

	"github.com/nao1215/vcastgen/internal/clicast"
)

// Option configures a Generator.
type Option func(*Generator)

// WithRunner sets the clicast runner. The default runs child processes.
func WithRunner(runner clicast.Runner) Option {
	return func(g *Generator) {
		g.runner = runner
	}
}

// WithLogger sets the logger. If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithClock sets the clock used for timestamps in file names and summaries.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithLookupEnv sets the function used to read VECTORCAST_DIR.
// The default is os.LookupEnv.
func WithLookupEnv(lookup func(string) (string, bool)) Option {
	return func(g *Generator) {
		g.lookupEnv = lookup
	}
}

// WithVersion sets the version printed in the summaries.
func WithVersion(version string) Option {
	return func(g *Generator) {
		g.version = version
	}
}
