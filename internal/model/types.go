package model

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type ActivityLevel string

const (
	ActivityLow      ActivityLevel = "low"
	ActivityModerate ActivityLevel = "moderate"
	ActivityHigh     ActivityLevel = "high"
)

type Goal string

const (
	GoalLose     Goal = "lose"
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"
)

type DietaryPreference string

const (
	DietVegetarian DietaryPreference = "vegetarian"
	DietVegan      DietaryPreference = "vegan"
	DietNonVeg     DietaryPreference = "non-veg"
)

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

type BMICategory string

const (
	CategoryUnderweight BMICategory = "Underweight"
	CategoryNormal      BMICategory = "Normal"
	CategoryOverweight  BMICategory = "Overweight"
	CategoryObese       BMICategory = "Obese"
)

type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

type UserProfile struct {
	Name              string            `json:"name" yaml:"name" validate:"required"`
	Age               int               `json:"age" yaml:"age" validate:"gt=0,lte=150"`
	HeightCm          float64           `json:"height_cm" yaml:"height_cm" validate:"gt=0,lte=300"`
	WeightKg          float64           `json:"weight_kg" yaml:"weight_kg" validate:"gt=0,lte=700"`
	Gender            Gender            `json:"gender" yaml:"gender" validate:"oneof=male female other"`
	ActivityLevel     ActivityLevel     `json:"activity_level" yaml:"activity_level" validate:"oneof=low moderate high"`
	Goal              Goal              `json:"goal" yaml:"goal" validate:"oneof=lose maintain gain"`
	DietaryPreference DietaryPreference `json:"dietary_preference" yaml:"dietary_preference" validate:"oneof=vegetarian vegan non-veg"`
}

// Macros holds percentage shares of daily calories; the three fields sum to 100.
type Macros struct {
	Carbs   int `json:"carbs"`
	Protein int `json:"protein"`
	Fats    int `json:"fats"`
}

type BMIResult struct {
	BMI              float64     `json:"bmi"`
	Category         BMICategory `json:"category"`
	DailyCalorieGoal int         `json:"daily_calorie_goal"`
	Macros           Macros      `json:"macros"`
}

type MealPlan struct {
	Breakfast string `json:"breakfast" yaml:"breakfast"`
	Lunch     string `json:"lunch" yaml:"lunch"`
	Dinner    string `json:"dinner" yaml:"dinner"`
	Snacks    string `json:"snacks" yaml:"snacks"`
}

type FoodLogEntry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Calories  int       `json:"calories"`
	Timestamp time.Time `json:"timestamp"`
	MealType  MealType  `json:"meal_type"`
}

type DailyProgress struct {
	Date             string         `json:"date"`
	CaloriesConsumed int            `json:"calories_consumed"`
	CaloriesGoal     int            `json:"calories_goal"`
	FoodLogs         []FoodLogEntry `json:"food_logs"`
}

type WeightSample struct {
	Date     string  `json:"date" yaml:"date"`
	WeightKg float64 `json:"weight_kg" yaml:"weight_kg"`
}

// WeightTrend compares the two most recent weight samples. Available is false
// when fewer than two samples exist.
type WeightTrend struct {
	Available bool           `json:"available"`
	Direction TrendDirection `json:"direction,omitempty"`
	Magnitude float64        `json:"magnitude"`
}

type ProgressView struct {
	Percent float64     `json:"percent"`
	Tip     string      `json:"tip"`
	Trend   WeightTrend `json:"trend"`
}
