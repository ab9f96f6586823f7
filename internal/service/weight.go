package service

import (
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/NextGenXplorer/NutriGuide/internal/model"
	"github.com/NextGenXplorer/NutriGuide/internal/nutrition"
)

const kgPerPound = 0.45359237

// MaxWeightKg bounds accepted weights; it matches the profile validation tag.
const MaxWeightKg = 700

type WeightInput struct {
	Weight float64
	Unit   string
	Date   string
}

// UpdateWeight appends a weight sample. The profile's current weight follows
// the newest sample by date, so a backdated entry joins the history without
// moving the calorie target.
func UpdateWeight(db *sql.DB, in WeightInput) (model.WeightSample, error) {
	weightKg, err := ToKg(in.Weight, in.Unit)
	if err != nil {
		return model.WeightSample{}, err
	}
	date, err := resolveDate(in.Date)
	if err != nil {
		return model.WeightSample{}, err
	}
	profile, err := RequireProfile(db)
	if err != nil {
		return model.WeightSample{}, err
	}

	tx, err := db.Begin()
	if err != nil {
		return model.WeightSample{}, fmt.Errorf("begin weight tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`INSERT INTO weight_samples(sample_date, weight_kg) VALUES(?, ?)`, date, weightKg); err != nil {
		return model.WeightSample{}, fmt.Errorf("add weight sample: %w", err)
	}
	if _, err := tx.Exec(`
UPDATE profile SET
  weight_kg = (SELECT weight_kg FROM weight_samples ORDER BY sample_date DESC, id DESC LIMIT 1),
  updated_at = CURRENT_TIMESTAMP
WHERE id = 1
`); err != nil {
		return model.WeightSample{}, fmt.Errorf("update profile weight: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return model.WeightSample{}, fmt.Errorf("commit weight: %w", err)
	}
	slog.Debug("weight recorded", "date", date, "weight_kg", weightKg, "previous_kg", profile.WeightKg)
	return model.WeightSample{Date: date, WeightKg: weightKg}, nil
}

// WeightHistory returns every sample in chronological order.
func WeightHistory(db *sql.DB) ([]model.WeightSample, error) {
	rows, err := db.Query(`SELECT sample_date, weight_kg FROM weight_samples ORDER BY sample_date ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list weight samples: %w", err)
	}
	defer rows.Close()

	items := make([]model.WeightSample, 0)
	for rows.Next() {
		var s model.WeightSample
		if err := rows.Scan(&s.Date, &s.WeightKg); err != nil {
			return nil, fmt.Errorf("scan weight sample: %w", err)
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate weight samples: %w", err)
	}
	return items, nil
}

// RecentWeights returns up to n samples, newest first.
func RecentWeights(db *sql.DB, n int) ([]model.WeightSample, error) {
	history, err := WeightHistory(db)
	if err != nil {
		return nil, err
	}
	return nutrition.RecentWeights(history, n), nil
}

// CurrentWeightTrend compares the latest two samples inside the configured window.
func CurrentWeightTrend(db *sql.DB) (model.WeightTrend, error) {
	window, err := HistoryWindow(db)
	if err != nil {
		return model.WeightTrend{}, err
	}
	recent, err := RecentWeights(db, window)
	if err != nil {
		return model.WeightTrend{}, err
	}
	return nutrition.WeightTrend(recent), nil
}

func normalizeUnit(unit string) (string, error) {
	u := strings.ToLower(strings.TrimSpace(unit))
	switch u {
	case "", "kg":
		return "kg", nil
	case "lb", "lbs":
		return "lb", nil
	default:
		return "", fmt.Errorf("invalid weight unit %q (use kg or lb)", unit)
	}
}

// ToKg converts weight in unit to kilograms. The result must be a finite
// value in (0, MaxWeightKg].
func ToKg(weight float64, unit string) (float64, error) {
	u, err := normalizeUnit(unit)
	if err != nil {
		return 0, err
	}
	kg := weight
	if u == "lb" {
		kg = weight * kgPerPound
	}
	if err := checkWeightKg(kg); err != nil {
		return 0, err
	}
	return kg, nil
}

func checkWeightKg(kg float64) error {
	if math.IsNaN(kg) || math.IsInf(kg, 0) {
		return fmt.Errorf("weight must be a finite number")
	}
	if kg <= 0 {
		return fmt.Errorf("weight must be > 0")
	}
	if kg > MaxWeightKg {
		return fmt.Errorf("weight must be <= %d kg", MaxWeightKg)
	}
	return nil
}

func WeightFromKg(weightKg float64, unit string) (float64, error) {
	u, err := normalizeUnit(unit)
	if err != nil {
		return 0, err
	}
	if u == "lb" {
		return weightKg / kgPerPound, nil
	}
	return weightKg, nil
}
