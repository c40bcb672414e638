package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/imgdup/internal/clock"
	"github.com/danieljhkim/imgdup/internal/config"
	"github.com/danieljhkim/imgdup/internal/engine"
	"github.com/danieljhkim/imgdup/internal/fsops"
	"github.com/danieljhkim/imgdup/internal/hash"
	"github.com/danieljhkim/imgdup/internal/planner"
)

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine(logger *slog.Logger) *engine.Engine {
	return engine.New(fsops.NewRealFS(), hash.NewSHA256Hasher(), &clock.RealClock{}, logger)
}

// loadSettings loads the merged configuration for cmd and builds its logger.
func loadSettings(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	logger := config.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
	if cfg.File != "" {
		logger.Debug("using configuration file", slog.String("path", cfg.File))
	}
	return cfg, logger, nil
}

// addPlanFlags registers the flags shared by every command that builds a plan.
func addPlanFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("source", "s", config.DefaultSourceDir, "Directory holding the source images")
	cmd.Flags().StringP("output", "o", config.DefaultOutputDir, "Directory the copies are written to")
	cmd.Flags().IntP("target", "n", config.DefaultTarget, "Total number of copies to produce")
	cmd.Flags().StringSlice("extensions", []string{".jpg", ".jpeg"}, "Image extensions to copy")
	cmd.Flags().BoolP("force", "f", false, "Overwrite existing files in the output directory")
}

// planRequest builds the engine request for cfg.
func planRequest(cfg *config.Config) *engine.PlanRequest {
	return &engine.PlanRequest{
		SourceDir:  cfg.SourceDir,
		OutputDir:  cfg.OutputDir,
		Target:     cfg.Target,
		Extensions: cfg.Extensions,
		Force:      cfg.Force,
	}
}

// printPlan prints the computed distribution for a copy run.
func printPlan(plan *planner.CopyPlan) {
	d := plan.Distribution

	PrintSection("Images Status")
	PrintLabelValue("Total Images", strconv.Itoa(d.ImageCount))
	PrintLabelValue("Copies Per Image", strconv.Itoa(d.CopiesPerImage))
	if d.AdditionalCopies > 0 {
		PrintLabelValue("Additional Copies", fmt.Sprintf("%d (first %s copied once more)",
			d.AdditionalCopies, PrintCount(d.AdditionalCopies, "image", "images")))
	}
	PrintLabelValue("Total Copies", strconv.Itoa(plan.Total()))
	PrintLabelValue("Output Directory", plan.OutputDir)

	const maxShown = 10
	PrintSection("Copies By Image")
	for i, img := range plan.Images {
		if i == maxShown {
			PrintInfo(fmt.Sprintf("  ... and %d more", len(plan.Images)-maxShown))
			break
		}
		PrintLabelValue(img.Name, strconv.Itoa(d.CopiesFor(i)))
	}
	_, _ = fmt.Fprintln(stdout)
}

// printNoCopiesNeeded reports the short-circuit when the source already has
// more images than the target.
func printNoCopiesNeeded(plan *planner.CopyPlan) {
	d := plan.Distribution
	PrintWarning(fmt.Sprintf("Found %s, more than the target of %d: no copies needed",
		PrintCount(d.ImageCount, "image", "images"), d.Target))
}

// reportPlanError prints details for planning failures that carry a plan.
func reportPlanError(res *engine.PlanResult, err error) {
	if !errors.Is(err, engine.ErrConflict) || res == nil || res.Plan == nil {
		return
	}

	const maxShown = 10
	PrintSection("Conflicts Detected")
	for i, conflict := range res.Plan.Conflicts {
		if i == maxShown {
			PrintInfo(fmt.Sprintf("  ... and %d more", len(res.Plan.Conflicts)-maxShown))
			break
		}
		PrintError(fmt.Sprintf("%s: %s", conflict.Path, conflict.Reason))
	}
	_, _ = fmt.Fprintln(stdout)
	PrintWarning("Use --force to overwrite existing files.")
}

// outputJSON outputs a value as JSON to the command's stdout.
func outputJSON(v interface{}) error {
	return writeJSON(stdout, v)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
