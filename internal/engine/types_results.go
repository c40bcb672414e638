package engine

import (
	"time"

	"github.com/danieljhkim/imgdup/internal/planner"
)

// PlanResult represents the result of planning a copy run.
type PlanResult struct {
	// SourceDir is the scanned directory
	SourceDir string `json:"sourceDir"`

	// Plan is the generated plan (nil if no images were found)
	Plan *planner.CopyPlan `json:"plan,omitempty"`
}

// NoCopiesNeeded reports whether the source already holds more images than
// the target.
func (r *PlanResult) NoCopiesNeeded() bool {
	return r.Plan != nil && r.Plan.Distribution.NoCopiesNeeded
}

// ExecuteResult represents the result of running a copy plan.
type ExecuteResult struct {
	// Written is the number of files written, including before a failure
	Written int `json:"written"`

	// Total is the number of files the plan called for
	Total int `json:"total"`

	// Elapsed is the wall time spent copying
	Elapsed time.Duration `json:"elapsed"`

	// Failed is the operation that stopped the run, if any
	Failed *planner.Operation `json:"failed,omitempty"`
}

// Complete reports whether every planned file was written.
func (r *ExecuteResult) Complete() bool {
	return r.Written == r.Total
}
