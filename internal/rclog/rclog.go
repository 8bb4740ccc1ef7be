// Package rclog is the application-level structured logger shared by the
// CLI and MCP server: *that* a route file was analyzed, chunked, watched,
// or cached, as distinct from internal/logger's compiler-style diagnostics
// about *why* a specific source file failed analysis.
package rclog

import (
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// New builds the process-wide logger from zap's development config: the
// human-readable console encoder on stderr, whether or not stderr is a
// terminal, at debug level when verbose and info level otherwise.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// RunID mints a fresh identifier for one CLI invocation,
// attached to every log line it produces so a user correlating logs across
// a watch-mode session can tell runs apart.
func RunID() string {
	return uuid.NewString()
}

// WithRun returns a child logger carrying run_id and the process's pid —
// the logging subcommands (detect, chunk, watch) derive their logger this
// way instead of calling zap.L() directly.
func WithRun(base *zap.Logger, runID string) *zap.Logger {
	return base.With(zap.String("run_id", runID), zap.Int("pid", os.Getpid()))
}
