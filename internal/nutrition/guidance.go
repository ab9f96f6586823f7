package nutrition

import (
	"fmt"
	"strings"

	"github.com/NextGenXplorer/NutriGuide/internal/model"
)

var motivationTemplates = []string{
	"%s, every healthy choice you make is a step towards a better you! Keep going! 💪",
	"You're doing amazing, %s! Consistency is the key to success. 🌟",
	"%s, remember: progress, not perfection. You've got this! 🎯",
	"Great work today, %s! Your future self will thank you for these healthy habits. 🙌",
	"%s, nutrition is self-care. You're investing in your health every day! 💚",
	"Stay strong, %s! Small daily improvements lead to stunning long-term results. 🚀",
	"%s, your commitment to health is inspiring! Keep nourishing your body well. 🥗",
	"Believe in yourself, %s! Every meal is an opportunity to fuel your goals. ⭐",
}

// MotivationalMessage picks one template uniformly. Repeats across calls are expected.
func MotivationalMessage(rng Rand, profile model.UserProfile) string {
	return fmt.Sprintf(motivationTemplates[rng.Intn(len(motivationTemplates))], profile.Name)
}

func GoalGuidance(goal model.Goal) string {
	switch goal {
	case model.GoalLose:
		return "Keep up the good work! Focus on consistent healthy eating and staying active."
	case model.GoalGain:
		return "Stay consistent with your calorie surplus and strength training for healthy weight gain."
	default:
		return "Great job maintaining your weight! Continue your balanced approach."
	}
}

// QuickSuggestions lists coaching prompt starters. profile may be nil.
func QuickSuggestions(profile *model.UserProfile) []string {
	out := []string{
		"Give me meal ideas for today",
		"What healthy snacks can I have?",
		"How much exercise should I do?",
		"How much water should I drink?",
		"Tips for better sleep?",
	}
	if profile == nil {
		return out
	}
	switch profile.Goal {
	case model.GoalLose:
		out = append(out, "Best foods for weight loss?")
	case model.GoalGain:
		out = append(out, "High-calorie healthy foods?")
	}
	return out
}

// CoachingContext renders the profile and its analysis as a plain-text block
// for an external coaching client to prepend to its prompt.
func CoachingContext(profile model.UserProfile, result model.BMIResult) string {
	var b strings.Builder
	b.WriteString("Current User Profile:\n")
	fmt.Fprintf(&b, "- Name: %s\n", profile.Name)
	fmt.Fprintf(&b, "- Age: %d years\n", profile.Age)
	fmt.Fprintf(&b, "- Height: %g cm\n", profile.HeightCm)
	fmt.Fprintf(&b, "- Weight: %g kg\n", profile.WeightKg)
	fmt.Fprintf(&b, "- Gender: %s\n", profile.Gender)
	fmt.Fprintf(&b, "- Activity Level: %s\n", profile.ActivityLevel)
	fmt.Fprintf(&b, "- Goal: %s weight\n", profile.Goal)
	fmt.Fprintf(&b, "- Dietary Preference: %s\n", profile.DietaryPreference)
	fmt.Fprintf(&b, "- BMI: %.1f (%s)\n", result.BMI, result.Category)
	fmt.Fprintf(&b, "- Daily Calorie Goal: %d cal\n", result.DailyCalorieGoal)
	fmt.Fprintf(&b, "- Macros: Carbs %d%%, Protein %d%%, Fats %d%%\n", result.Macros.Carbs, result.Macros.Protein, result.Macros.Fats)
	return b.String()
}
