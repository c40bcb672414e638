package planner

import "github.com/danieljhkim/imgdup/internal/images"

// CopyPlan represents a plan to fill an output directory with copies.
type CopyPlan struct {
	// Images is the ordered list of source images
	Images []images.Image `json:"images"`

	// OutputDir is the directory copies are written to (absolute)
	OutputDir string `json:"outputDir"`

	// Distribution is how the target total is split across the images
	Distribution Distribution `json:"distribution"`

	// Operations is the ordered list of copies to execute
	Operations []Operation `json:"operations"`

	// Conflicts is a list of detected conflicts (empty if no conflicts)
	Conflicts []Conflict `json:"conflicts"`
}

// Operation represents a single file copy to execute.
type Operation struct {
	// Index is the output counter value; the destination is named Index+ext
	Index int `json:"index"`

	// Image is the name of the source image
	Image string `json:"image"`

	// SourcePath is the source image path (absolute)
	SourcePath string `json:"sourcePath"`

	// DestPath is the destination path in the output directory (absolute)
	DestPath string `json:"destPath"`

	// Extra marks copies made to cover the remainder
	Extra bool `json:"extra,omitempty"`

	// Replace lists files with the same number and another extension that
	// are removed before the copy lands (only set when forcing)
	Replace []string `json:"replace,omitempty"`
}

// Conflict represents a destination that already exists.
type Conflict struct {
	// Path is the output path where the conflict was detected
	Path string `json:"path"`

	// Reason is a human-readable explanation of the conflict
	Reason string `json:"reason"`
}

// NewCopyPlan creates a new empty CopyPlan.
func NewCopyPlan(imgs []images.Image, outputDir string, dist Distribution) *CopyPlan {
	return &CopyPlan{
		Images:       imgs,
		OutputDir:    outputDir,
		Distribution: dist,
		Operations:   []Operation{},
		Conflicts:    []Conflict{},
	}
}

// HasConflicts returns true if the plan has any conflicts.
func (p *CopyPlan) HasConflicts() bool {
	return len(p.Conflicts) > 0
}

// AddOperation adds an operation to the plan.
func (p *CopyPlan) AddOperation(op Operation) {
	p.Operations = append(p.Operations, op)
}

// AddConflict adds a conflict to the plan.
func (p *CopyPlan) AddConflict(conflict Conflict) {
	p.Conflicts = append(p.Conflicts, conflict)
}

// Total returns the number of files the plan writes.
func (p *CopyPlan) Total() int {
	return len(p.Operations)
}
