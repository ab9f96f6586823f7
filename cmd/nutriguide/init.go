package nutriguide

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NextGenXplorer/NutriGuide/internal/nutrition"
	"github.com/NextGenXplorer/NutriGuide/internal/service"
)

var initNoPrompt bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the local NutriGuide database",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized NutriGuide database at %s\n", path)

			existing, err := service.GetProfile(sqldb)
			if err != nil {
				return err
			}
			if existing != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Profile: %s\n", existing.Name)
				return nil
			}
			if initNoPrompt || !stdinIsTerminal() {
				fmt.Fprintln(cmd.OutOrStdout(), "Next: nutriguide profile set --name NAME --age N --height CM --weight KG --gender male|female|other")
				return nil
			}

			p, err := promptProfile(cmd.InOrStdin(), cmd.OutOrStdout(), nil)
			if err != nil {
				return err
			}
			if err := service.SaveProfile(sqldb, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s!\n", p.Name)
			printTarget(cmd.OutOrStdout(), nutrition.AnalyzeProfile(p))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initNoPrompt, "no-prompt", false, "Skip interactive profile onboarding")
}
