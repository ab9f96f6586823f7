package nutriguide

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NextGenXplorer/NutriGuide/internal/service"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the profile, all logs, weights, plans and preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetForce {
			return fmt.Errorf("reset deletes all data; re-run with --force")
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.ResetAll(sqldb); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All data cleared")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVar(&resetForce, "force", false, "Confirm deletion")
}
