package service

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/NextGenXplorer/NutriGuide/internal/model"
	"github.com/NextGenXplorer/NutriGuide/internal/nutrition"
)

// TodayMealPlan returns the stored plan for date, generating and storing one
// from the saved profile on first request.
func TodayMealPlan(db *sql.DB, date string, rng nutrition.Rand) (model.MealPlan, error) {
	date, err := resolveDate(date)
	if err != nil {
		return model.MealPlan{}, err
	}
	profile, err := RequireProfile(db)
	if err != nil {
		return model.MealPlan{}, err
	}
	target := nutrition.AnalyzeProfile(profile)

	generated := false
	save := func(d string, plan model.MealPlan) error {
		generated = true
		return saveMealPlan(db, d, plan)
	}
	plan, err := nutrition.GetOrCreateTodayMealPlan(date, profile, target.DailyCalorieGoal, rng, func(d string) (*model.MealPlan, error) {
		return loadMealPlan(db, d)
	}, save)
	if err != nil {
		return model.MealPlan{}, err
	}
	slog.Debug("meal plan resolved", "date", date, "generated", generated)
	return plan, nil
}

func loadMealPlan(db *sql.DB, date string) (*model.MealPlan, error) {
	var p model.MealPlan
	err := db.QueryRow(`SELECT breakfast, lunch, dinner, snacks FROM meal_plans WHERE plan_date = ?`, date).
		Scan(&p.Breakfast, &p.Lunch, &p.Dinner, &p.Snacks)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("load meal plan %s: %w", date, err)
	}
	return &p, nil
}

func saveMealPlan(db *sql.DB, date string, p model.MealPlan) error {
	_, err := db.Exec(`
INSERT INTO meal_plans(plan_date, breakfast, lunch, dinner, snacks)
VALUES(?, ?, ?, ?, ?)
ON CONFLICT(plan_date) DO NOTHING
`, date, p.Breakfast, p.Lunch, p.Dinner, p.Snacks)
	if err != nil {
		return fmt.Errorf("store meal plan %s: %w", date, err)
	}
	return nil
}
