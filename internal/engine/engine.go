// Package engine provides the core logic for imgdup runs.
//
// The engine is the orchestration layer between CLI commands and the
// lower-level packages. It scans the source directory, builds the copy plan
// and executes it against the filesystem.
//
// Key components:
//   - Engine: Main orchestrator that coordinates all operations
//   - Plan: Source scan, image filtering and copy distribution
//   - Execute: Bounded parallel copying with a completion barrier
package engine

import (
	"io"
	"log/slog"

	"github.com/danieljhkim/imgdup/internal/clock"
	"github.com/danieljhkim/imgdup/internal/fsops"
	"github.com/danieljhkim/imgdup/internal/hash"
)

// DefaultConcurrency is the number of copies in flight when a request does
// not set one.
const DefaultConcurrency = 4

// Engine orchestrates all imgdup operations.
// It is the main API surface called by the CLI.
type Engine struct {
	fs     fsops.FS
	hasher hash.Hasher
	clock  clock.Clock
	logger *slog.Logger
}

// New creates a new Engine with the given dependencies.
// A nil logger discards all log output.
func New(
	fs fsops.FS,
	hasher hash.Hasher,
	clk clock.Clock,
	logger *slog.Logger,
) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		fs:     fs,
		hasher: hasher,
		clock:  clk,
		logger: logger,
	}
}
