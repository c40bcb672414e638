// Package planner handles the planning phase of a copy run.
//
// The planner splits a target total across the selected source images and
// turns that split into a deterministic, ordered list of copy operations.
// Nothing is written during planning.
//
// Key responsibilities:
//   - Compute the even distribution of copies per image plus the remainder
//   - Assign every copy its output number from a single counter
//   - Detect existing files in the output directory that a run would replace
package planner
