package nutriguide

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NextGenXplorer/NutriGuide/internal/service"
)

var (
	todayDate string
	todayJSON bool
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's calories, progress tip, weight trend and meal plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := parseDateOrToday("date", todayDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			status, err := service.TodaySummary(sqldb, target, newRand())
			if err != nil {
				return err
			}
			if todayJSON {
				return printJSON(cmd.OutOrStdout(), status)
			}
			unit, err := service.WeightUnit(sqldb)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date: %s\n", status.Date)
			fmt.Fprintln(out, status.Motivation)
			fmt.Fprintf(out, "Consumed: %d / %d kcal (%.0f%%)\n", status.CaloriesConsumed, status.CaloriesGoal, status.Progress.Percent)
			fmt.Fprintf(out, "Remaining: %d kcal\n", status.RemainingCalories)
			if status.Progress.Tip != "" {
				fmt.Fprintf(out, "Tip: %s\n", status.Progress.Tip)
			}
			fmt.Fprintln(out, formatTrend(status.Progress.Trend, unit))
			fmt.Fprintln(out, status.Guidance)
			fmt.Fprintln(out, "Meal plan:")
			printMealPlan(out, status.MealPlan)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(todayCmd)
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Date YYYY-MM-DD (default today)")
	todayCmd.Flags().BoolVar(&todayJSON, "json", false, "Output JSON")
}
