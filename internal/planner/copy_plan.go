package planner

import (
	"fmt"
	"path/filepath"

	"github.com/danieljhkim/imgdup/internal/fsops"
	"github.com/danieljhkim/imgdup/internal/images"
)

// counter hands out output numbers. It starts at 1.
type counter struct {
	next int
}

func (c *counter) take() int {
	c.next++
	return c.next
}

// BuildCopyPlan generates a deterministic plan that writes exactly
// dist.Total() copies into outputDir, named 1..Total with each source's
// extension.
//
// Every number is checked against all of its output variants: a file named
// 2.jpeg conflicts with a planned 2.jpg. With force such siblings are listed
// in the operation's Replace field instead.
//
// The main pass is image-major: image 1 gets CopiesPerImage consecutive
// numbers, then image 2, and so on. The remainder pass copies the first
// AdditionalCopies images once more.
func BuildCopyPlan(
	imgs []images.Image,
	dist Distribution,
	outputDir string,
	extensions []string,
	fs fsops.FS,
	force bool,
) (*CopyPlan, error) {
	if len(imgs) != dist.ImageCount {
		return nil, fmt.Errorf("distribution covers %d images, got %d", dist.ImageCount, len(imgs))
	}

	plan := NewCopyPlan(imgs, outputDir, dist)
	if dist.NoCopiesNeeded {
		return plan, nil
	}

	checker := NewConflictChecker(fs, force)
	variants := images.OutputVariants(extensions)
	var c counter

	add := func(img images.Image, extra bool) {
		index := c.take()
		op := Operation{
			Index:      index,
			Image:      img.Name,
			SourcePath: img.Path,
			DestPath:   filepath.Join(outputDir, fmt.Sprintf("%d%s", index, img.Ext)),
			Extra:      extra,
		}
		if conflict := checker.CheckPath(op.DestPath); conflict != nil {
			plan.AddConflict(*conflict)
		}
		replace, conflicts := checker.CheckSiblings(outputDir, index, img.Ext, variants)
		for _, conflict := range conflicts {
			plan.AddConflict(conflict)
		}
		op.Replace = replace
		plan.AddOperation(op)
	}

	for _, img := range imgs {
		for i := 0; i < dist.CopiesPerImage; i++ {
			add(img, false)
		}
	}

	for i := 0; i < dist.AdditionalCopies; i++ {
		add(imgs[i], true)
	}

	return plan, nil
}
