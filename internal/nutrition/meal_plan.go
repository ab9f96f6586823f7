package nutrition

import (
	"fmt"

	"github.com/NextGenXplorer/NutriGuide/internal/model"
)

// Rand is the random source used for meal and message selection.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

type LoadPlanFunc func(date string) (*model.MealPlan, error)

type SavePlanFunc func(date string, plan model.MealPlan) error

// GenerateMealPlan draws one suggestion per slot, independently and
// uniformly, from the catalog for goal. calorieGoal does not affect selection.
func GenerateMealPlan(rng Rand, goal model.Goal, calorieGoal int) model.MealPlan {
	opts := catalogFor(goal)
	return model.MealPlan{
		Breakfast: pick(rng, opts.breakfast),
		Lunch:     pick(rng, opts.lunch),
		Dinner:    pick(rng, opts.dinner),
		Snacks:    pick(rng, opts.snacks),
	}
}

// GetOrCreateTodayMealPlan returns the stored plan for date when one exists.
// Otherwise it generates a plan from the profile's goal, saves it under date
// and returns it, so repeated reads on the same date see the same plan.
func GetOrCreateTodayMealPlan(date string, profile model.UserProfile, calorieGoal int, rng Rand, load LoadPlanFunc, save SavePlanFunc) (model.MealPlan, error) {
	stored, err := load(date)
	if err != nil {
		return model.MealPlan{}, fmt.Errorf("load meal plan for %s: %w", date, err)
	}
	if stored != nil {
		return *stored, nil
	}
	plan := GenerateMealPlan(rng, profile.Goal, calorieGoal)
	if err := save(date, plan); err != nil {
		return model.MealPlan{}, fmt.Errorf("save meal plan for %s: %w", date, err)
	}
	return plan, nil
}

func pick(rng Rand, options []string) string {
	return options[rng.Intn(len(options))]
}
