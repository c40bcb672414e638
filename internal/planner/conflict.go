package planner

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/danieljhkim/imgdup/internal/fsops"
)

// ConflictChecker checks output paths before a copy run.
type ConflictChecker struct {
	fs    fsops.FS
	force bool
}

// NewConflictChecker creates a new ConflictChecker.
func NewConflictChecker(fs fsops.FS, force bool) *ConflictChecker {
	return &ConflictChecker{
		fs:    fs,
		force: force,
	}
}

// CheckPath checks for conflicts at the given destination path.
// Returns a Conflict if one is detected, or nil if the path is safe to use.
// With force, existing files are not conflicts; directories always are.
func (c *ConflictChecker) CheckPath(destPath string) *Conflict {
	exists, err := c.fs.Exists(destPath)
	if err != nil {
		return &Conflict{
			Path:   destPath,
			Reason: fmt.Sprintf("Failed to check path: %v", err),
		}
	}
	if !exists {
		return nil
	}

	info, err := c.fs.Stat(destPath)
	if err != nil {
		return &Conflict{
			Path:   destPath,
			Reason: fmt.Sprintf("Failed to stat path: %v", err),
		}
	}
	if info.IsDir() {
		return &Conflict{
			Path:   destPath,
			Reason: "A directory exists where a copy would be written",
		}
	}
	if c.force {
		return nil
	}
	return &Conflict{
		Path:   destPath,
		Reason: "File already exists (use --force to overwrite)",
	}
}

// CheckSiblings checks the other output names for index, one per extension
// in variants except ext. An existing sibling file is a conflict, or with
// force is returned for removal. Directories are always conflicts.
func (c *ConflictChecker) CheckSiblings(outputDir string, index int, ext string, variants []string) ([]string, []Conflict) {
	var (
		replace   []string
		conflicts []Conflict
	)
	planned := filepath.Join(outputDir, strconv.Itoa(index)+ext)
	for _, variant := range variants {
		if variant == ext {
			continue
		}
		path := filepath.Join(outputDir, strconv.Itoa(index)+variant)
		exists, err := c.fs.Exists(path)
		if err != nil {
			conflicts = append(conflicts, Conflict{
				Path:   path,
				Reason: fmt.Sprintf("Failed to check path: %v", err),
			})
			continue
		}
		if !exists {
			continue
		}

		info, err := c.fs.Stat(path)
		switch {
		case err != nil:
			conflicts = append(conflicts, Conflict{
				Path:   path,
				Reason: fmt.Sprintf("Failed to stat path: %v", err),
			})
		case info.IsDir():
			conflicts = append(conflicts, Conflict{
				Path:   path,
				Reason: "A directory exists where a copy would be written",
			})
		case c.force:
			replace = append(replace, path)
		default:
			conflicts = append(conflicts, Conflict{
				Path:   path,
				Reason: fmt.Sprintf("File shares its number with %s (use --force to replace)", filepath.Base(planned)),
			})
		}
	}
	return replace, conflicts
}
