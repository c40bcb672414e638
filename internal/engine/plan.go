package engine

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/danieljhkim/imgdup/internal/images"
	"github.com/danieljhkim/imgdup/internal/planner"
)

// Plan scans the source directory and builds a copy plan.
//
// Algorithm steps:
// 1. Validate the request and resolve absolute paths
// 2. Read and filter the source directory
// 3. Fail with ErrNoImagesFound if nothing matches
// 4. Distribute the target across the images
// 5. Build the ordered plan and check the output directory for conflicts
//
// Plan never writes to disk.
func (e *Engine) Plan(ctx context.Context, req *PlanRequest) (*PlanResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sourceDir, outputDir, err := resolveDirs(req)
	if err != nil {
		return nil, err
	}
	if req.Target <= 0 {
		return nil, fmt.Errorf("%w: target must be positive, got %d", ErrValidation, req.Target)
	}

	exts := images.NormalizeExtensions(req.Extensions)
	if len(exts) == 0 {
		exts = images.DefaultExtensions
	}

	entries, err := e.fs.ReadDir(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrSourceDir, sourceDir, err)
	}

	imgs := images.Filter(entries, sourceDir, exts)
	e.logger.Debug("scanned source directory",
		slog.String("dir", sourceDir),
		slog.Int("entries", len(entries)),
		slog.Int("images", len(imgs)),
	)

	result := &PlanResult{SourceDir: sourceDir}
	if len(imgs) == 0 {
		return result, fmt.Errorf("%w in %s (extensions: %s)", ErrNoImagesFound, sourceDir, strings.Join(exts, ", "))
	}

	dist, err := planner.Distribute(len(imgs), req.Target)
	if err != nil {
		return result, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	plan, err := planner.BuildCopyPlan(imgs, dist, outputDir, exts, e.fs, req.Force)
	if err != nil {
		return result, fmt.Errorf("failed to build copy plan: %w", err)
	}
	result.Plan = plan

	if dist.NoCopiesNeeded {
		e.logger.Info("image count exceeds target, no copies needed",
			slog.Int("images", dist.ImageCount),
			slog.Int("target", dist.Target),
		)
		return result, nil
	}

	e.logger.Debug("built copy plan",
		slog.Int("copiesPerImage", dist.CopiesPerImage),
		slog.Int("additionalCopies", dist.AdditionalCopies),
		slog.Int("operations", plan.Total()),
		slog.Int("conflicts", len(plan.Conflicts)),
	)

	if plan.HasConflicts() {
		return result, fmt.Errorf("%w: %d planned files already exist in %s", ErrConflict, len(plan.Conflicts), outputDir)
	}

	return result, nil
}

// resolveDirs returns absolute source and output directories.
func resolveDirs(req *PlanRequest) (string, string, error) {
	if req.SourceDir == "" {
		return "", "", fmt.Errorf("%w: source directory is required", ErrValidation)
	}
	if req.OutputDir == "" {
		return "", "", fmt.Errorf("%w: output directory is required", ErrValidation)
	}

	sourceDir, err := filepath.Abs(req.SourceDir)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve source directory: %w", err)
	}
	outputDir, err := filepath.Abs(req.OutputDir)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve output directory: %w", err)
	}
	if sourceDir == outputDir {
		return "", "", fmt.Errorf("%w: source and output directories must differ", ErrValidation)
	}

	return sourceDir, outputDir, nil
}
