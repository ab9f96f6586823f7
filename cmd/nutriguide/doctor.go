package nutriguide

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NextGenXplorer/NutriGuide/internal/service"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that stored daily totals match their food logs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.RunDoctor(sqldb, doctorFix)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if report.MissingProfile {
				fmt.Fprintln(out, "Profile: missing (run `nutriguide init`)")
			}
			fmt.Fprintf(out, "Mismatched daily totals: %d\n", report.MismatchedTotals)
			fmt.Fprintf(out, "Days without a goal: %d\n", report.ZeroGoalDays)
			if doctorFix {
				fmt.Fprintf(out, "Fixed totals: %d\n", report.FixedTotals)
				fmt.Fprintf(out, "Fixed goals: %d\n", report.FixedGoals)
			}
			for _, w := range report.UnfixableWarnings {
				fmt.Fprintf(out, "warning: %s\n", w)
			}
			if !report.Healthy() {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Recompute totals and fill missing goals")
}
