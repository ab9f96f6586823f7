package nutriguide

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/NextGenXplorer/NutriGuide/internal/service"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Summaries of past days and goal adherence",
}

var (
	historyFrom      string
	historyTo        string
	historyEnd       string
	historyTolerance float64
	historyJSON      bool
)

var historyRangeCmd = &cobra.Command{
	Use:   "range",
	Short: "Summarise an inclusive date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		to, err := parseDateOrToday("to", historyTo)
		if err != nil {
			return err
		}
		from := to.AddDate(0, 0, -6)
		if historyFrom != "" {
			if from, err = parseDateOrToday("from", historyFrom); err != nil {
				return err
			}
		}
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.HistoryRange(sqldb, from, to, historyTolerance)
			if err != nil {
				return err
			}
			return renderHistory(cmd.OutOrStdout(), report)
		})
	},
}

var historyWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Summarise the seven days ending on --end",
	RunE: func(cmd *cobra.Command, args []string) error {
		end, err := parseDateOrToday("end", historyEnd)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.HistoryWeek(sqldb, end)
			if err != nil {
				return err
			}
			return renderHistory(cmd.OutOrStdout(), report)
		})
	},
}

func renderHistory(w io.Writer, r *service.HistoryReport) error {
	if historyJSON {
		return printJSON(w, r)
	}
	fmt.Fprintf(w, "History %s to %s\n", r.FromDate, r.ToDate)
	fmt.Fprintf(w, "Total: %d kcal over %d logged days (avg %.1f)\n", r.TotalCalories, r.DaysWithEntries, r.AverageCaloriesPerDay)
	if r.HighestDay != nil {
		fmt.Fprintf(w, "Highest: %s (%d kcal)\n", r.HighestDay.Date, r.HighestDay.Consumed)
	}
	if r.LowestDay != nil {
		fmt.Fprintf(w, "Lowest: %s (%d kcal)\n", r.LowestDay.Date, r.LowestDay.Consumed)
	}
	a := r.Adherence
	fmt.Fprintf(w, "Adherence: %d/%d days within goal (%.1f%%)\n", a.WithinGoalDays, a.EvaluatedDays, a.PercentWithin)
	if len(r.ByMealType) > 0 {
		fmt.Fprintln(w, "MEAL\tKCAL\tENTRIES")
		for _, b := range r.ByMealType {
			fmt.Fprintf(w, "%s\t%d\t%d\n", b.MealType, b.Calories, b.Entries)
		}
	}
	if r.WeightChangeKg != nil {
		fmt.Fprintf(w, "Weight change: %+.1f kg\n", *r.WeightChangeKg)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyRangeCmd, historyWeekCmd)

	historyCmd.PersistentFlags().BoolVar(&historyJSON, "json", false, "Output JSON")
	historyRangeCmd.Flags().StringVar(&historyFrom, "from", "", "Start date YYYY-MM-DD (default: six days before --to)")
	historyRangeCmd.Flags().StringVar(&historyTo, "to", "", "End date YYYY-MM-DD (default today)")
	historyRangeCmd.Flags().Float64Var(&historyTolerance, "tolerance", service.DefaultAdherenceTolerance, "Accepted deviation from the goal as a fraction")
	historyWeekCmd.Flags().StringVar(&historyEnd, "end", "", "Last day of the week YYYY-MM-DD (default today)")
}
