package nutrition

import (
	"math"

	"github.com/NextGenXplorer/NutriGuide/internal/model"
)

const goalCalorieAdjustment = 500

var activityMultipliers = map[model.ActivityLevel]float64{
	model.ActivityLow:      1.2,
	model.ActivityModerate: 1.55,
	model.ActivityHigh:     1.9,
}

var macroRatios = map[model.Goal]model.Macros{
	model.GoalLose:     {Carbs: 40, Protein: 30, Fats: 30},
	model.GoalGain:     {Carbs: 50, Protein: 25, Fats: 25},
	model.GoalMaintain: {Carbs: 45, Protein: 25, Fats: 30},
}

// AnalyzeProfile derives BMI, its category, the daily calorie goal and the
// macro split from a profile. Inputs are assumed validated; a zero height
// yields a non-finite BMI.
func AnalyzeProfile(p model.UserProfile) model.BMIResult {
	bmi := BMI(p.WeightKg, p.HeightCm)
	return model.BMIResult{
		BMI:              bmi,
		Category:         CategoryFor(bmi),
		DailyCalorieGoal: DailyCalories(p),
		Macros:           MacroRatios(p.Goal),
	}
}

func BMI(weightKg, heightCm float64) float64 {
	m := heightCm / 100
	return weightKg / (m * m)
}

// CategoryFor bands a BMI value. Each boundary belongs to the higher band.
func CategoryFor(bmi float64) model.BMICategory {
	switch {
	case bmi < 18.5:
		return model.CategoryUnderweight
	case bmi < 25:
		return model.CategoryNormal
	case bmi < 30:
		return model.CategoryOverweight
	default:
		return model.CategoryObese
	}
}

// BMR uses the Mifflin-St Jeor equation. Only male takes the +5 constant;
// female and other both take -161.
func BMR(p model.UserProfile) float64 {
	base := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	if p.Gender == model.GenderMale {
		return base + 5
	}
	return base - 161
}

func TDEE(p model.UserProfile) float64 {
	return BMR(p) * activityMultipliers[p.ActivityLevel]
}

func DailyCalories(p model.UserProfile) int {
	tdee := TDEE(p)
	switch p.Goal {
	case model.GoalLose:
		tdee -= goalCalorieAdjustment
	case model.GoalGain:
		tdee += goalCalorieAdjustment
	}
	return int(math.Round(tdee))
}

// MacroRatios returns the fixed carbs/protein/fats split for a goal. Unknown
// goals get the maintain split.
func MacroRatios(goal model.Goal) model.Macros {
	if m, ok := macroRatios[goal]; ok {
		return m
	}
	return macroRatios[model.GoalMaintain]
}
