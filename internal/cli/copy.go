package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/imgdup/internal/engine"
)

var copyDryRun bool

var copyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Copy the source images until the target count is reached",
	Long: `Scan the source directory for JPEG images, show how the target number of
copies will be spread across them, and after confirmation write the copies
into the output directory as 1.jpg, 2.jpg, ...

Press Enter at the prompt to start copying; any other answer cancels
without writing anything. Use --yes to skip the prompt.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		eng := newEngine(logger)
		ctx := cmd.Context()

		planRes, err := eng.Plan(ctx, planRequest(cfg))
		if err != nil {
			if jsonOutput {
				_ = outputCopyJSON(planRes, nil, err)
				return err
			}
			reportPlanError(planRes, err)
			return err
		}

		plan := planRes.Plan
		if planRes.NoCopiesNeeded() {
			if jsonOutput {
				return outputCopyJSON(planRes, nil, nil)
			}
			printNoCopiesNeeded(plan)
			return nil
		}

		if !jsonOutput {
			printPlan(plan)
		}

		if copyDryRun {
			if jsonOutput {
				return outputJSON(planRes)
			}
			PrintInfo(fmt.Sprintf("Dry run: would write %s", PrintCount(plan.Total(), "file", "files")))
			return nil
		}

		if !cfg.Yes {
			var promptOut io.Writer = cmd.OutOrStdout()
			if jsonOutput {
				promptOut = cmd.ErrOrStderr()
			}
			if !promptContinue(cmd.InOrStdin(), promptOut, continuePrompt) {
				if jsonOutput {
					_ = outputCopyJSON(planRes, nil, engine.ErrCancelled)
				}
				return engine.ErrCancelled
			}
		}

		progress := newProgressReporter(cmd.ErrOrStderr(), plan.Total(), jsonOutput, cfg.Verbose)
		result, err := eng.Execute(ctx, &engine.ExecuteRequest{
			Plan:        plan,
			Concurrency: cfg.Concurrency,
			Verify:      cfg.Verify,
			Progress:    progress.Add,
		})
		progress.Finish()

		if jsonOutput {
			_ = outputCopyJSON(planRes, result, err)
			return err
		}

		if err != nil {
			if result != nil && !result.Complete() {
				PrintWarning(fmt.Sprintf("Wrote %d of %d files to %s before the run stopped",
					result.Written, result.Total, plan.OutputDir))
			}
			return err
		}

		PrintSection("Copies Completed")
		PrintSuccess(fmt.Sprintf("Wrote %s", PrintCount(result.Written, "copy", "copies")))
		PrintLabelValue("Output Directory", plan.OutputDir)
		PrintLabelValue("Elapsed", result.Elapsed.Round(time.Millisecond).String())
		return nil
	},
}

func init() {
	addPlanFlags(copyCmd)
	copyCmd.Flags().IntP("concurrency", "j", engine.DefaultConcurrency, "Maximum number of copies in flight")
	copyCmd.Flags().Bool("verify", false, "Verify every copy against its source with SHA-256")
	copyCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	copyCmd.Flags().BoolVar(&copyDryRun, "dry-run", false, "Show the plan without copying")
}

// outputCopyJSON outputs the copy run in JSON format.
func outputCopyJSON(planRes *engine.PlanResult, result *engine.ExecuteResult, err error) error {
	output := map[string]any{
		"success": err == nil,
	}

	if planRes != nil {
		output["sourceDir"] = planRes.SourceDir
		if planRes.Plan != nil {
			output["outputDir"] = planRes.Plan.OutputDir
			output["distribution"] = planRes.Plan.Distribution
			if len(planRes.Plan.Conflicts) > 0 {
				output["conflicts"] = planRes.Plan.Conflicts
			}
		}
	}

	if result != nil {
		output["written"] = result.Written
		output["total"] = result.Total
		output["elapsedMs"] = result.Elapsed.Milliseconds()
		if result.Failed != nil {
			output["failed"] = result.Failed
		}
	}

	if err != nil {
		output["error"] = err.Error()
	}

	return outputJSON(output)
}
