package nutriguide

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/NextGenXplorer/NutriGuide/internal/app"
	"github.com/NextGenXplorer/NutriGuide/internal/model"
	"github.com/NextGenXplorer/NutriGuide/internal/service"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Daily meal plan suggestions",
}

var (
	planDate string
	planJSON bool
)

var planTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show the meal plan for the day (generated once per day)",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDateOrToday("date", planDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			plan, err := service.TodayMealPlan(sqldb, day.Format(app.DateLayout), newRand())
			if err != nil {
				return err
			}
			if planJSON {
				return printJSON(cmd.OutOrStdout(), plan)
			}
			printMealPlan(cmd.OutOrStdout(), plan)
			return nil
		})
	},
}

func printMealPlan(w io.Writer, p model.MealPlan) {
	fmt.Fprintf(w, "Breakfast: %s\n", p.Breakfast)
	fmt.Fprintf(w, "Lunch: %s\n", p.Lunch)
	fmt.Fprintf(w, "Dinner: %s\n", p.Dinner)
	fmt.Fprintf(w, "Snacks: %s\n", p.Snacks)
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.AddCommand(planTodayCmd)
	planTodayCmd.Flags().StringVar(&planDate, "date", "", "Date YYYY-MM-DD (default today)")
	planTodayCmd.Flags().BoolVar(&planJSON, "json", false, "Output JSON")
}
