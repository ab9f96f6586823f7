package nutrition

import (
	"fmt"

	"github.com/NextGenXplorer/NutriGuide/internal/model"
)

type LoadProgressFunc func(date string) (*model.DailyProgress, error)

type SaveProgressFunc func(progress model.DailyProgress) error

// RecordFoodLog appends entry to the progress record for date and saves it.
// The first entry of a date creates the record with calorieGoal as its goal;
// later entries keep the goal the record was created with.
func RecordFoodLog(date string, entry model.FoodLogEntry, calorieGoal int, load LoadProgressFunc, save SaveProgressFunc) (model.DailyProgress, error) {
	current, err := load(date)
	if err != nil {
		return model.DailyProgress{}, fmt.Errorf("load progress for %s: %w", date, err)
	}
	updated := AppendFoodLog(current, date, entry, calorieGoal)
	if err := save(updated); err != nil {
		return model.DailyProgress{}, fmt.Errorf("save progress for %s: %w", date, err)
	}
	return updated, nil
}

// AppendFoodLog is the pure transition behind RecordFoodLog. current may be
// nil (no record yet for date). The input record is not modified.
func AppendFoodLog(current *model.DailyProgress, date string, entry model.FoodLogEntry, calorieGoal int) model.DailyProgress {
	if current == nil {
		return model.DailyProgress{
			Date:             date,
			CaloriesConsumed: entry.Calories,
			CaloriesGoal:     calorieGoal,
			FoodLogs:         []model.FoodLogEntry{entry},
		}
	}
	logs := make([]model.FoodLogEntry, 0, len(current.FoodLogs)+1)
	logs = append(logs, current.FoodLogs...)
	logs = append(logs, entry)
	return model.DailyProgress{
		Date:             current.Date,
		CaloriesConsumed: current.CaloriesConsumed + entry.Calories,
		CaloriesGoal:     current.CaloriesGoal,
		FoodLogs:         logs,
	}
}

// SumCalories totals the calories of logs.
func SumCalories(logs []model.FoodLogEntry) int {
	total := 0
	for _, l := range logs {
		total += l.Calories
	}
	return total
}
