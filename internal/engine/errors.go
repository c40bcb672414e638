package engine

import (
	"errors"
	"fmt"

	"github.com/danieljhkim/imgdup/internal/planner"
)

var (
	// ErrNoImagesFound indicates the source directory holds no matching images.
	ErrNoImagesFound = errors.New("no images found")

	// ErrCancelled indicates the user declined the copy plan.
	ErrCancelled = errors.New("user cancelled copying")

	// ErrConflict indicates the output directory already holds planned files.
	ErrConflict = errors.New("conflict detected")

	// ErrValidation indicates a validation failure.
	ErrValidation = errors.New("validation failed")

	// ErrSourceDir indicates the source directory could not be read.
	ErrSourceDir = errors.New("cannot read source directory")

	// ErrVerify indicates a written copy does not match its source.
	ErrVerify = errors.New("copy does not match source")
)

// CopyError reports the copy operation that stopped a run.
type CopyError struct {
	Op  planner.Operation
	Err error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("copy %d failed (%s -> %s): %v", e.Op.Index, e.Op.SourcePath, e.Op.DestPath, e.Err)
}

func (e *CopyError) Unwrap() error {
	return e.Err
}
