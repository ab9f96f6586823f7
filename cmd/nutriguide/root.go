package nutriguide

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/NextGenXplorer/NutriGuide/internal/app"
	"github.com/NextGenXplorer/NutriGuide/internal/logging"
	"github.com/NextGenXplorer/NutriGuide/internal/nutrition"
)

var (
	dbPath   string
	logLevel string
	seed     int64
)

var rootCmd = &cobra.Command{
	Use:   "nutriguide",
	Short: "nutriguide plans meals and tracks calories against a BMI-based target",
	Long: "nutriguide is a local-first nutrition coach: it derives a daily calorie target from your profile, " +
		"suggests a vegetarian meal plan per day, and tracks food and weight progress.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := app.LoadEnv(); err != nil {
			return err
		}
		settings, err := app.ResolveSettings(dbPath, logLevel)
		if err != nil {
			return err
		}
		if _, err := logging.Setup(cmd.ErrOrStderr(), settings.LogLevel); err != nil {
			return err
		}
		slog.Debug("settings resolved", "db", settings.DBPath)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRand returns the random source for meal plans and motivation. A non-zero
// --seed makes the output reproducible.
func newRand() nutrition.Rand {
	if seed != 0 {
		return rand.New(rand.NewSource(seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (env NUTRIGUIDE_DB)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (env NUTRIGUIDE_LOG_LEVEL)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "Seed for meal plan and message selection (0 = random)")
}
