package nutriguide

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NextGenXplorer/NutriGuide/internal/nutrition"
	"github.com/NextGenXplorer/NutriGuide/internal/service"
)

var coachCmd = &cobra.Command{
	Use:   "coach",
	Short: "Coaching prompts built from the profile",
}

var coachContextCmd = &cobra.Command{
	Use:   "context",
	Short: "Print the profile context block and suggested questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			profile, err := service.GetProfile(sqldb)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if profile != nil {
				fmt.Fprintln(out, nutrition.CoachingContext(*profile, nutrition.AnalyzeProfile(*profile)))
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, "Suggested questions:")
			for _, q := range nutrition.QuickSuggestions(profile) {
				fmt.Fprintf(out, "- %s\n", q)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(coachCmd)
	coachCmd.AddCommand(coachContextCmd)
}
