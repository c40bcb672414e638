package planner

import (
	"errors"
	"fmt"
)

var (
	// ErrNoImages indicates there is nothing to distribute copies across.
	ErrNoImages = errors.New("no images to copy")

	// ErrInvalidTarget indicates the target total is not positive.
	ErrInvalidTarget = errors.New("target must be positive")
)

// Distribution is how a target total is split across a set of images.
//
// Invariant (unless NoCopiesNeeded):
//
//	CopiesPerImage*ImageCount + AdditionalCopies == Target
//	0 <= AdditionalCopies < ImageCount
type Distribution struct {
	ImageCount       int  `json:"imageCount"`
	Target           int  `json:"target"`
	CopiesPerImage   int  `json:"copiesPerImage"`
	AdditionalCopies int  `json:"additionalCopies"`
	NoCopiesNeeded   bool `json:"noCopiesNeeded,omitempty"`
}

// Distribute splits target copies evenly across imageCount images.
// Each image gets target/imageCount copies (rounded down) and the first
// target%imageCount images get one more. When there are more images than
// the target, NoCopiesNeeded is set and nothing is distributed.
func Distribute(imageCount, target int) (Distribution, error) {
	if imageCount <= 0 {
		return Distribution{}, ErrNoImages
	}
	if target <= 0 {
		return Distribution{}, fmt.Errorf("%w: got %d", ErrInvalidTarget, target)
	}

	d := Distribution{
		ImageCount: imageCount,
		Target:     target,
	}
	if imageCount > target {
		d.NoCopiesNeeded = true
		return d, nil
	}

	d.CopiesPerImage = target / imageCount
	d.AdditionalCopies = target % imageCount
	return d, nil
}

// Total returns the number of files the distribution produces.
func (d Distribution) Total() int {
	return d.CopiesPerImage*d.ImageCount + d.AdditionalCopies
}

// CopiesFor returns how many copies the image at position i receives.
func (d Distribution) CopiesFor(i int) int {
	if i < 0 || i >= d.ImageCount {
		return 0
	}
	if i < d.AdditionalCopies {
		return d.CopiesPerImage + 1
	}
	return d.CopiesPerImage
}
