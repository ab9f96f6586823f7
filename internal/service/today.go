package service

import (
	"database/sql"
	"time"

	"github.com/NextGenXplorer/NutriGuide/internal/model"
	"github.com/NextGenXplorer/NutriGuide/internal/nutrition"
)

type TodayStatus struct {
	Date              string               `json:"date"`
	Profile           model.UserProfile    `json:"profile"`
	Target            model.BMIResult      `json:"target"`
	CaloriesConsumed  int                  `json:"calories_consumed"`
	CaloriesGoal      int                  `json:"calories_goal"`
	RemainingCalories int                  `json:"remaining_calories"`
	Progress          model.ProgressView   `json:"progress"`
	FoodLogs          []model.FoodLogEntry `json:"food_logs"`
	MealPlan          model.MealPlan       `json:"meal_plan"`
	Motivation        string               `json:"motivation"`
	Guidance          string               `json:"guidance"`
}

// TodaySummary assembles the home view for the local day of date. The goal is
// the one fixed on the day's record; days without entries use the current
// profile target.
func TodaySummary(db *sql.DB, date time.Time, rng nutrition.Rand) (*TodayStatus, error) {
	day := dateKey(beginningOfDay(date))
	profile, err := RequireProfile(db)
	if err != nil {
		return nil, err
	}
	target := nutrition.AnalyzeProfile(profile)

	status := &TodayStatus{
		Date:         day,
		Profile:      profile,
		Target:       target,
		CaloriesGoal: target.DailyCalorieGoal,
		FoodLogs:     []model.FoodLogEntry{},
	}

	progress, err := GetDailyProgress(db, day)
	if err != nil {
		return nil, err
	}
	if progress != nil {
		status.CaloriesConsumed = progress.CaloriesConsumed
		status.FoodLogs = progress.FoodLogs
		if progress.CaloriesGoal > 0 {
			status.CaloriesGoal = progress.CaloriesGoal
		}
	}
	status.RemainingCalories = status.CaloriesGoal - status.CaloriesConsumed

	window, err := HistoryWindow(db)
	if err != nil {
		return nil, err
	}
	recent, err := RecentWeights(db, window)
	if err != nil {
		return nil, err
	}
	if status.CaloriesGoal > 0 {
		status.Progress = nutrition.ComputeProgressView(status.CaloriesConsumed, status.CaloriesGoal, profile.Goal, recent)
	} else {
		status.Progress = model.ProgressView{Trend: nutrition.WeightTrend(recent)}
	}

	plan, err := TodayMealPlan(db, day, rng)
	if err != nil {
		return nil, err
	}
	status.MealPlan = plan
	status.Motivation = nutrition.MotivationalMessage(rng, profile)
	status.Guidance = nutrition.GoalGuidance(profile.Goal)
	return status, nil
}
