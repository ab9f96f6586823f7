package nutriguide

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NextGenXplorer/NutriGuide/internal/service"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage preferences (weight_unit, history_window)",
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a preference",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.SetConfig(sqldb, args[0], args[1]); err != nil {
				return err
			}
			value, _, err := service.GetConfig(sqldb, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", args[0], value)
			return nil
		})
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get [KEY]",
	Short: "Show one or all preferences",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if len(args) == 1 {
				value, ok, err := service.GetConfig(sqldb, args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("config key %q is not set", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			}
			values, err := service.ListConfig(sqldb)
			if err != nil {
				return err
			}
			for _, key := range service.ConfigKeys() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", key, values[key])
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configGetCmd)
}
