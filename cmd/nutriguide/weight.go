package nutriguide

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/NextGenXplorer/NutriGuide/internal/model"
	"github.com/NextGenXplorer/NutriGuide/internal/service"
)

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Record weight and view the trend",
}

var (
	weightUnit  string
	weightDate  string
	weightLimit int
	weightJSON  bool
)

var weightAddCmd = &cobra.Command{
	Use:   "add WEIGHT",
	Short: "Record a weight sample and update the profile weight",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid weight %q", args[0])
		}
		return withDB(func(sqldb *sql.DB) error {
			unit, err := displayUnit(sqldb, weightUnit)
			if err != nil {
				return err
			}
			sample, err := service.UpdateWeight(sqldb, service.WeightInput{Weight: value, Unit: unit, Date: weightDate})
			if err != nil {
				return err
			}
			target, err := service.CurrentTarget(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %.1f %s on %s\n", value, unit, sample.Date)
			if target != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "New daily calorie goal: %d kcal\n", target.DailyCalorieGoal)
			}
			return nil
		})
	},
}

var weightListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent weight samples, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			limit := weightLimit
			if limit <= 0 {
				n, err := service.HistoryWindow(sqldb)
				if err != nil {
					return err
				}
				limit = n
			}
			samples, err := service.RecentWeights(sqldb, limit)
			if err != nil {
				return err
			}
			if weightJSON {
				return printJSON(cmd.OutOrStdout(), samples)
			}
			unit, err := displayUnit(sqldb, weightUnit)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "DATE\tWEIGHT(%s)\n", unit)
			for _, s := range samples {
				v, err := service.WeightFromKg(s.WeightKg, unit)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.1f\n", s.Date, v)
			}
			return nil
		})
	},
}

var weightTrendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Compare the two most recent weight samples",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			trend, err := service.CurrentWeightTrend(sqldb)
			if err != nil {
				return err
			}
			if weightJSON {
				return printJSON(cmd.OutOrStdout(), trend)
			}
			unit, err := displayUnit(sqldb, weightUnit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatTrend(trend, unit))
			return nil
		})
	},
}

func displayUnit(sqldb *sql.DB, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	return service.WeightUnit(sqldb)
}

func formatTrend(trend model.WeightTrend, unit string) string {
	if !trend.Available {
		return "Weight trend: not enough data (need at least two samples)"
	}
	magnitude, err := service.WeightFromKg(trend.Magnitude, unit)
	if err != nil {
		magnitude, unit = trend.Magnitude, "kg"
	}
	switch trend.Direction {
	case model.TrendUp:
		return fmt.Sprintf("Weight trend: up %.1f %s", magnitude, unit)
	case model.TrendDown:
		return fmt.Sprintf("Weight trend: down %.1f %s", magnitude, unit)
	default:
		return "Weight trend: stable"
	}
}

func init() {
	rootCmd.AddCommand(weightCmd)
	weightCmd.AddCommand(weightAddCmd, weightListCmd, weightTrendCmd)

	weightCmd.PersistentFlags().StringVar(&weightUnit, "unit", "", "kg or lb (default: weight_unit config)")
	weightCmd.PersistentFlags().BoolVar(&weightJSON, "json", false, "Output JSON")
	weightAddCmd.Flags().StringVar(&weightDate, "date", "", "Date YYYY-MM-DD (default today)")
	weightListCmd.Flags().IntVar(&weightLimit, "limit", 0, "Samples to show (default: history_window config)")
}
