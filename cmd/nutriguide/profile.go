package nutriguide

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/NextGenXplorer/NutriGuide/internal/model"
	"github.com/NextGenXplorer/NutriGuide/internal/nutrition"
	"github.com/NextGenXplorer/NutriGuide/internal/service"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your profile and calorie target",
}

var (
	profileName        string
	profileAge         int
	profileHeight      float64
	profileWeight      float64
	profileUnit        string
	profileGender      string
	profileActivity    string
	profileGoal        string
	profileDiet        string
	profileInteractive bool
	profileJSON        bool
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or update your profile",
	Long:  "Create or update your profile. Flags not given keep their saved value; with no flags on a terminal the questions are asked interactively.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			existing, err := service.GetProfile(sqldb)
			if err != nil {
				return err
			}

			var p model.UserProfile
			if profileInteractive || (!anyProfileFlagChanged(cmd) && stdinIsTerminal()) {
				p, err = promptProfile(cmd.InOrStdin(), cmd.OutOrStdout(), existing)
				if err != nil {
					return err
				}
			} else {
				p, err = profileFromFlags(cmd, existing)
				if err != nil {
					return err
				}
			}

			if err := service.SaveProfile(sqldb, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved profile for %s\n", service.NormalizeProfile(p).Name)
			printTarget(cmd.OutOrStdout(), nutrition.AnalyzeProfile(service.NormalizeProfile(p)))
			return nil
		})
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			p, err := service.RequireProfile(sqldb)
			if err != nil {
				return err
			}
			if profileJSON {
				return printJSON(cmd.OutOrStdout(), p)
			}
			unit, err := service.WeightUnit(sqldb)
			if err != nil {
				return err
			}
			weight, err := service.WeightFromKg(p.WeightKg, unit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name: %s\n", p.Name)
			fmt.Fprintf(out, "Age: %d\n", p.Age)
			fmt.Fprintf(out, "Height: %.1f cm\n", p.HeightCm)
			fmt.Fprintf(out, "Weight: %.1f %s\n", weight, unit)
			fmt.Fprintf(out, "Gender: %s\n", p.Gender)
			fmt.Fprintf(out, "Activity: %s\n", p.ActivityLevel)
			fmt.Fprintf(out, "Goal: %s\n", p.Goal)
			fmt.Fprintf(out, "Diet: %s\n", p.DietaryPreference)
			return nil
		})
	},
}

var profileAnalyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Show BMI, daily calorie goal and macro split",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			target, err := service.CurrentTarget(sqldb)
			if err != nil {
				return err
			}
			if target == nil {
				return service.ErrNoProfile
			}
			if profileJSON {
				return printJSON(cmd.OutOrStdout(), target)
			}
			printTarget(cmd.OutOrStdout(), *target)
			return nil
		})
	},
}

func profileFromFlags(cmd *cobra.Command, existing *model.UserProfile) (model.UserProfile, error) {
	p := model.UserProfile{
		ActivityLevel:     model.ActivityModerate,
		Goal:              model.GoalMaintain,
		DietaryPreference: model.DietVegetarian,
	}
	if existing != nil {
		p = *existing
	}
	flags := cmd.Flags()
	if flags.Changed("name") {
		p.Name = profileName
	}
	if flags.Changed("age") {
		p.Age = profileAge
	}
	if flags.Changed("height") {
		p.HeightCm = profileHeight
	}
	if flags.Changed("weight") {
		kg, err := service.ToKg(profileWeight, profileUnit)
		if err != nil {
			return p, err
		}
		p.WeightKg = kg
	}
	if flags.Changed("gender") {
		p.Gender = model.Gender(profileGender)
	}
	if flags.Changed("activity") {
		p.ActivityLevel = model.ActivityLevel(profileActivity)
	}
	if flags.Changed("goal") {
		p.Goal = model.Goal(profileGoal)
	}
	if flags.Changed("diet") {
		p.DietaryPreference = model.DietaryPreference(profileDiet)
	}
	return p, nil
}

func anyProfileFlagChanged(cmd *cobra.Command) bool {
	for _, name := range []string{"name", "age", "height", "weight", "gender", "activity", "goal", "diet"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func printTarget(w io.Writer, r model.BMIResult) {
	fmt.Fprintf(w, "BMI: %.1f (%s)\n", r.BMI, r.Category)
	fmt.Fprintf(w, "Daily calorie goal: %d kcal\n", r.DailyCalorieGoal)
	fmt.Fprintf(w, "Macros: carbs %d%% | protein %d%% | fats %d%%\n", r.Macros.Carbs, r.Macros.Protein, r.Macros.Fats)
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileSetCmd, profileShowCmd, profileAnalyzeCmd)

	profileSetCmd.Flags().StringVar(&profileName, "name", "", "Your name")
	profileSetCmd.Flags().IntVar(&profileAge, "age", 0, "Age in years")
	profileSetCmd.Flags().Float64Var(&profileHeight, "height", 0, "Height in cm")
	profileSetCmd.Flags().Float64Var(&profileWeight, "weight", 0, "Current weight")
	profileSetCmd.Flags().StringVar(&profileUnit, "unit", "kg", "Weight unit: kg or lb")
	profileSetCmd.Flags().StringVar(&profileGender, "gender", "", "male, female or other")
	profileSetCmd.Flags().StringVar(&profileActivity, "activity", "", "low, moderate or high")
	profileSetCmd.Flags().StringVar(&profileGoal, "goal", "", "lose, maintain or gain")
	profileSetCmd.Flags().StringVar(&profileDiet, "diet", "", "vegetarian, vegan or non-veg")
	profileSetCmd.Flags().BoolVar(&profileInteractive, "interactive", false, "Answer the profile questions interactively")
	profileShowCmd.Flags().BoolVar(&profileJSON, "json", false, "Output JSON")
	profileAnalyzeCmd.Flags().BoolVar(&profileJSON, "json", false, "Output JSON")
}
