package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show how copies would be distributed without writing anything",
	Long: `Scan the source directory and print the copy plan: how many images were
found, how many copies each one gets and how many extra copies cover the
remainder. Existing files in the output directory are reported as conflicts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		planRes, err := newEngine(logger).Plan(cmd.Context(), planRequest(cfg))
		if jsonOutput && planRes != nil {
			if jerr := outputJSON(planRes); jerr != nil {
				return jerr
			}
			return err
		}
		if err != nil {
			reportPlanError(planRes, err)
			return err
		}

		if planRes.NoCopiesNeeded() {
			printNoCopiesNeeded(planRes.Plan)
			return nil
		}

		printPlan(planRes.Plan)
		PrintInfo(fmt.Sprintf("Run 'imgdup copy' to write %s", PrintCount(planRes.Plan.Total(), "file", "files")))
		return nil
	},
}

func init() {
	addPlanFlags(planCmd)
}
