package nutrition_test

import (
	"testing"

	"github.com/NextGenXplorer/NutriGuide/internal/model"
	"github.com/NextGenXplorer/NutriGuide/internal/nutrition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseProfile() model.UserProfile {
	return model.UserProfile{
		Name:              "Asha",
		Age:               30,
		HeightCm:          175,
		WeightKg:          76.75,
		Gender:            model.GenderMale,
		ActivityLevel:     model.ActivityModerate,
		Goal:              model.GoalMaintain,
		DietaryPreference: model.DietVegetarian,
	}
}

func TestAnalyzeProfileBMIFormula(t *testing.T) {
	t.Parallel()
	cases := []struct {
		height, weight float64
	}{
		{175, 70},
		{160, 55.5},
		{190, 102.3},
		{150, 40},
	}
	for _, c := range cases {
		p := baseProfile()
		p.HeightCm = c.height
		p.WeightKg = c.weight
		got := nutrition.AnalyzeProfile(p)
		want := c.weight / ((c.height / 100) * (c.height / 100))
		assert.InDelta(t, want, got.BMI, 1e-9, "height=%v weight=%v", c.height, c.weight)
		assert.Equal(t, nutrition.CategoryFor(want), got.Category)
	}
}

func TestCategoryForBoundaries(t *testing.T) {
	t.Parallel()
	cases := []struct {
		bmi  float64
		want model.BMICategory
	}{
		{18.49, model.CategoryUnderweight},
		{18.5, model.CategoryNormal},
		{24.99, model.CategoryNormal},
		{25.0, model.CategoryOverweight},
		{29.99, model.CategoryOverweight},
		{30.0, model.CategoryObese},
		{42, model.CategoryObese},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, nutrition.CategoryFor(c.bmi), "bmi=%v", c.bmi)
	}
}

func TestMacroRatiosSumToHundred(t *testing.T) {
	t.Parallel()
	for _, goal := range []model.Goal{model.GoalLose, model.GoalMaintain, model.GoalGain} {
		m := nutrition.MacroRatios(goal)
		assert.Equal(t, 100, m.Carbs+m.Protein+m.Fats, "goal=%s", goal)
	}
	assert.Equal(t, model.Macros{Carbs: 40, Protein: 30, Fats: 30}, nutrition.MacroRatios(model.GoalLose))
	assert.Equal(t, model.Macros{Carbs: 50, Protein: 25, Fats: 25}, nutrition.MacroRatios(model.GoalGain))
	assert.Equal(t, model.Macros{Carbs: 45, Protein: 25, Fats: 30}, nutrition.MacroRatios(model.GoalMaintain))
}

func TestDailyCaloriesReferenceProfile(t *testing.T) {
	t.Parallel()
	p := baseProfile()
	require.InDelta(t, 1716.25, nutrition.BMR(p), 1e-9)
	require.InDelta(t, 2660.1875, nutrition.TDEE(p), 1e-9)
	assert.Equal(t, 2660, nutrition.AnalyzeProfile(p).DailyCalorieGoal)

	p.Goal = model.GoalLose
	assert.Equal(t, 2160, nutrition.AnalyzeProfile(p).DailyCalorieGoal)

	p.Goal = model.GoalGain
	assert.Equal(t, 3160, nutrition.AnalyzeProfile(p).DailyCalorieGoal)
}

func TestDailyCaloriesSeventyKilogramMale(t *testing.T) {
	t.Parallel()
	p := baseProfile()
	p.WeightKg = 70
	require.InDelta(t, 1648.75, nutrition.BMR(p), 1e-9)
	assert.Equal(t, 2556, nutrition.DailyCalories(p))

	p.Goal = model.GoalLose
	assert.Equal(t, 2056, nutrition.DailyCalories(p))
}

func TestActivityMultipliers(t *testing.T) {
	t.Parallel()
	p := baseProfile()
	p.ActivityLevel = model.ActivityLow
	assert.InDelta(t, 1716.25*1.2, nutrition.TDEE(p), 1e-9)
	p.ActivityLevel = model.ActivityHigh
	assert.InDelta(t, 1716.25*1.9, nutrition.TDEE(p), 1e-9)
}

// "other" shares the female constant. This mirrors existing behaviour and is
// not a settled medical policy.
func TestBMROtherGenderUsesFemaleBranch(t *testing.T) {
	t.Parallel()
	female := baseProfile()
	female.Gender = model.GenderFemale
	other := baseProfile()
	other.Gender = model.GenderOther

	assert.InDelta(t, 1550.25, nutrition.BMR(female), 1e-9)
	assert.Equal(t, nutrition.BMR(female), nutrition.BMR(other))
	assert.Equal(t, nutrition.DailyCalories(female), nutrition.DailyCalories(other))
}

func TestAnalyzeProfileIsDeterministic(t *testing.T) {
	t.Parallel()
	p := baseProfile()
	assert.Equal(t, nutrition.AnalyzeProfile(p), nutrition.AnalyzeProfile(p))
}
