package nutriguide

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NextGenXplorer/NutriGuide/internal/model"
	"github.com/NextGenXplorer/NutriGuide/internal/service"
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Log meals and list the day's food log",
}

var (
	foodCalories int
	foodMeal     string
	foodDate     string
	foodTime     string
	foodListDate string
	foodListJSON bool
)

var foodAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Log a meal with its calories",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loggedAt, err := parseDateTimeOrNow(foodDate, foodTime)
		if err != nil {
			return err
		}
		in := service.FoodLogInput{
			Name:     strings.Join(args, " "),
			Calories: foodCalories,
			MealType: model.MealType(foodMeal),
			LoggedAt: loggedAt,
		}
		return withDB(func(sqldb *sql.DB) error {
			progress, err := service.AddFoodLog(sqldb, in)
			if err != nil {
				return err
			}
			last := progress.FoodLogs[len(progress.FoodLogs)-1]
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s (%d kcal, %s)\n", last.Name, last.Calories, last.MealType)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d / %d kcal\n", progress.Date, progress.CaloriesConsumed, progress.CaloriesGoal)
			return nil
		})
	},
}

var foodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged meals for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			logs, err := service.ListFoodLogs(sqldb, foodListDate)
			if err != nil {
				return err
			}
			if foodListJSON {
				return printJSON(cmd.OutOrStdout(), logs)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "TIME\tMEAL\tKCAL\tNAME")
			total := 0
			for _, e := range logs {
				total += e.Calories
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\t%s\n", e.Timestamp.Format("15:04"), e.MealType, e.Calories, e.Name)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total: %d kcal\n", total)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(foodCmd)
	foodCmd.AddCommand(foodAddCmd, foodListCmd)

	foodAddCmd.Flags().IntVar(&foodCalories, "calories", 0, "Calories in kcal (required)")
	foodAddCmd.Flags().StringVar(&foodMeal, "meal", "snack", "breakfast, lunch, dinner or snack")
	foodAddCmd.Flags().StringVar(&foodDate, "date", "", "Date YYYY-MM-DD (default today)")
	foodAddCmd.Flags().StringVar(&foodTime, "time", "", "Time HH:MM (default now, or 12:00 with --date)")
	_ = foodAddCmd.MarkFlagRequired("calories")
	foodListCmd.Flags().StringVar(&foodListDate, "date", "", "Date YYYY-MM-DD (default today)")
	foodListCmd.Flags().BoolVar(&foodListJSON, "json", false, "Output JSON")
}
