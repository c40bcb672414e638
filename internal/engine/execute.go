package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/danieljhkim/imgdup/internal/hash"
	"github.com/danieljhkim/imgdup/internal/planner"
)

// Execute runs a copy plan.
//
// Copies run on a bounded pool of workers. Destination names are fixed in
// the plan, so the order in which workers finish does not matter. Execute
// returns only after every started copy has finished. The first failure
// stops the remaining batch and is returned as a *CopyError; the result
// still reports how many files were written.
func (e *Engine) Execute(ctx context.Context, req *ExecuteRequest) (*ExecuteResult, error) {
	if req.Plan == nil {
		return nil, fmt.Errorf("%w: plan is required", ErrValidation)
	}
	plan := req.Plan

	result := &ExecuteResult{Total: plan.Total()}
	if plan.Distribution.NoCopiesNeeded || plan.Total() == 0 {
		return result, nil
	}
	if plan.HasConflicts() {
		return result, fmt.Errorf("%w: %d planned files already exist", ErrConflict, len(plan.Conflicts))
	}

	start := e.clock.Now()

	if err := e.fs.MkdirAll(plan.OutputDir, 0755); err != nil {
		return result, fmt.Errorf("failed to create output directory: %w", err)
	}

	concurrency := req.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var (
		written    atomic.Int64
		progressMu sync.Mutex
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, op := range plan.Operations {
		if gctx.Err() != nil {
			break
		}
		op := op
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			if err := e.copyOne(op, req.Verify); err != nil {
				return &CopyError{Op: op, Err: err}
			}
			written.Add(1)

			// Log and progress output may share a writer.
			progressMu.Lock()
			defer progressMu.Unlock()
			e.logger.Debug("copied image",
				slog.String("image", op.Image),
				slog.Int("index", op.Index),
				slog.String("dest", op.DestPath),
			)
			if req.Progress != nil {
				req.Progress(op)
			}
			return nil
		})
	}

	err := g.Wait()
	result.Written = int(written.Load())
	result.Elapsed = e.clock.Now().Sub(start)

	if err != nil {
		var copyErr *CopyError
		if errors.As(err, &copyErr) {
			failed := copyErr.Op
			result.Failed = &failed
		}
		e.logger.Error("copy run stopped",
			slog.Int("written", result.Written),
			slog.Int("total", result.Total),
			slog.Any("error", err),
		)
		return result, err
	}
	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("copy interrupted after %d of %d files: %w", result.Written, result.Total, err)
	}

	e.logger.Info("copies completed",
		slog.Int("written", result.Written),
		slog.String("outputDir", plan.OutputDir),
		slog.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}

// copyOne removes the files op replaces, copies the source into place and,
// with verify, checks the written file against the bytes that were read.
func (e *Engine) copyOne(op planner.Operation, verify bool) error {
	for _, path := range op.Replace {
		if err := e.fs.Remove(path); err != nil {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}

	var sum hash.Writer
	if verify {
		sum = e.hasher.NewWriter()
	}
	if err := e.fs.Copy(op.SourcePath, op.DestPath, sum); err != nil {
		return err
	}
	if sum == nil {
		return nil
	}

	got, err := e.hasher.HashFile(op.DestPath)
	if err != nil {
		return fmt.Errorf("failed to hash copy: %w", err)
	}
	if got != sum.Sum() {
		return ErrVerify
	}
	return nil
}
