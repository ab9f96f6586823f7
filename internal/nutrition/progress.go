package nutrition

import (
	"fmt"
	"math"

	"github.com/NextGenXplorer/NutriGuide/internal/model"
)

// DefaultHistoryWindow is how many recent weight samples the progress views show.
const DefaultHistoryWindow = 7

// PercentOfGoal requires goal > 0.
func PercentOfGoal(consumed, goal int) float64 {
	return float64(consumed) / float64(goal) * 100
}

// ProgressTip bands the percent of goal into feedback text. Lower band
// bounds are inclusive: 50, 80, 100 and 110 each start a new band.
func ProgressTip(consumed, goal int, userGoal model.Goal) string {
	percent := PercentOfGoal(consumed, goal)
	switch {
	case percent < 50:
		return fmt.Sprintf("You've consumed %.0f%% of your daily calories. Make sure to eat nutritious meals throughout the day to meet your goal!", math.Round(percent))
	case percent < 80:
		return fmt.Sprintf("Great progress! You're at %.0f%% of your calorie goal. Stay on track with balanced meals.", math.Round(percent))
	case percent < 100:
		meal := "snack"
		if userGoal == model.GoalLose {
			meal = "dinner"
		}
		return fmt.Sprintf("Almost there! You've reached %.0f%% of your goal. A light, healthy %s will complete your day perfectly.", math.Round(percent), meal)
	case percent < 110:
		return "Perfect! You've met your calorie goal. Stay hydrated and maintain this consistency!"
	default:
		return fmt.Sprintf("You're %.0f%% over your goal. No worries! Consider lighter meals tomorrow and stay active.", math.Round(percent-100))
	}
}

// WeightTrend compares the first two samples of a newest-first history.
func WeightTrend(history []model.WeightSample) model.WeightTrend {
	if len(history) < 2 {
		return model.WeightTrend{}
	}
	diff := history[0].WeightKg - history[1].WeightKg
	switch {
	case diff > 0:
		return model.WeightTrend{Available: true, Direction: model.TrendUp, Magnitude: diff}
	case diff < 0:
		return model.WeightTrend{Available: true, Direction: model.TrendDown, Magnitude: -diff}
	default:
		return model.WeightTrend{Available: true, Direction: model.TrendStable, Magnitude: 0}
	}
}

// RecentWeights takes samples in the order they were recorded and returns the
// last n of them, newest first. n <= 0 uses DefaultHistoryWindow.
func RecentWeights(samples []model.WeightSample, n int) []model.WeightSample {
	if n <= 0 {
		n = DefaultHistoryWindow
	}
	start := len(samples) - n
	if start < 0 {
		start = 0
	}
	out := make([]model.WeightSample, 0, len(samples)-start)
	for i := len(samples) - 1; i >= start; i-- {
		out = append(out, samples[i])
	}
	return out
}

// ComputeProgressView bundles percent, tip and trend. weightHistory is
// newest-first, as returned by RecentWeights.
func ComputeProgressView(consumed, goal int, userGoal model.Goal, weightHistory []model.WeightSample) model.ProgressView {
	return model.ProgressView{
		Percent: PercentOfGoal(consumed, goal),
		Tip:     ProgressTip(consumed, goal, userGoal),
		Trend:   WeightTrend(weightHistory),
	}
}
