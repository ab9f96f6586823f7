package service

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/NextGenXplorer/NutriGuide/internal/model"
	"github.com/NextGenXplorer/NutriGuide/internal/nutrition"
)

// NormalizeProfile trims the name and lower-cases the enumerated fields.
func NormalizeProfile(p model.UserProfile) model.UserProfile {
	p.Name = strings.TrimSpace(p.Name)
	p.Gender = model.Gender(strings.ToLower(strings.TrimSpace(string(p.Gender))))
	p.ActivityLevel = model.ActivityLevel(strings.ToLower(strings.TrimSpace(string(p.ActivityLevel))))
	p.Goal = model.Goal(strings.ToLower(strings.TrimSpace(string(p.Goal))))
	p.DietaryPreference = model.DietaryPreference(strings.ToLower(strings.TrimSpace(string(p.DietaryPreference))))
	return p
}

func ValidateProfile(p model.UserProfile) error {
	return validateStruct(NormalizeProfile(p))
}

// SaveProfile stores p as the single user profile, replacing any previous one.
func SaveProfile(db *sql.DB, p model.UserProfile) error {
	p = NormalizeProfile(p)
	if err := validateStruct(p); err != nil {
		return err
	}
	_, err := db.Exec(`
INSERT INTO profile(id, name, age, height_cm, weight_kg, gender, activity_level, goal, dietary_preference, updated_at)
VALUES(1, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(id) DO UPDATE SET
  name=excluded.name,
  age=excluded.age,
  height_cm=excluded.height_cm,
  weight_kg=excluded.weight_kg,
  gender=excluded.gender,
  activity_level=excluded.activity_level,
  goal=excluded.goal,
  dietary_preference=excluded.dietary_preference,
  updated_at=excluded.updated_at
`, p.Name, p.Age, p.HeightCm, p.WeightKg, string(p.Gender), string(p.ActivityLevel), string(p.Goal), string(p.DietaryPreference))
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	slog.Info("profile saved", "goal", p.Goal, "activity", p.ActivityLevel)
	return nil
}

// GetProfile returns nil without error when no profile has been saved.
func GetProfile(db *sql.DB) (*model.UserProfile, error) {
	var p model.UserProfile
	var gender, activity, goal, diet string
	err := db.QueryRow(`
SELECT name, age, height_cm, weight_kg, gender, activity_level, goal, dietary_preference
FROM profile
WHERE id = 1
`).Scan(&p.Name, &p.Age, &p.HeightCm, &p.WeightKg, &gender, &activity, &goal, &diet)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	p.Gender = model.Gender(gender)
	p.ActivityLevel = model.ActivityLevel(activity)
	p.Goal = model.Goal(goal)
	p.DietaryPreference = model.DietaryPreference(diet)
	return &p, nil
}

// RequireProfile is GetProfile for callers that cannot proceed without one.
func RequireProfile(db *sql.DB) (model.UserProfile, error) {
	p, err := GetProfile(db)
	if err != nil {
		return model.UserProfile{}, err
	}
	if p == nil {
		return model.UserProfile{}, ErrNoProfile
	}
	return *p, nil
}

// CurrentTarget analyzes the saved profile. It returns nil when no profile exists.
func CurrentTarget(db *sql.DB) (*model.BMIResult, error) {
	p, err := GetProfile(db)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	result := nutrition.AnalyzeProfile(*p)
	return &result, nil
}
