package engine

import "github.com/danieljhkim/imgdup/internal/planner"

// PlanRequest represents a request to plan a copy run.
type PlanRequest struct {
	// SourceDir is the directory holding the source images
	SourceDir string

	// OutputDir is the directory copies are written to
	OutputDir string

	// Target is the total number of copies to produce
	Target int

	// Extensions are the allowed image extensions (default .jpg, .jpeg)
	Extensions []string

	// Force allows overwriting existing files in the output directory
	Force bool
}

// ExecuteRequest represents a request to run a copy plan.
type ExecuteRequest struct {
	// Plan is the plan produced by Engine.Plan
	Plan *planner.CopyPlan

	// Concurrency is the maximum number of copies in flight
	Concurrency int

	// Verify compares the hash of every copy with its source
	Verify bool

	// Progress, if set, is called once per written file. Calls are serialized.
	Progress func(op planner.Operation)
}
