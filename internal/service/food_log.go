package service

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/NextGenXplorer/NutriGuide/internal/model"
	"github.com/NextGenXplorer/NutriGuide/internal/nutrition"
)

type FoodLogInput struct {
	Name     string         `json:"name" validate:"required,max=200"`
	Calories int            `json:"calories" validate:"gt=0"`
	MealType model.MealType `json:"meal_type" validate:"oneof=breakfast lunch dinner snack"`
	LoggedAt time.Time      `json:"-"`
}

// AddFoodLog records a meal on the local day of in.LoggedAt (now when zero).
// The day's record is created on first use with the profile's calorie goal.
func AddFoodLog(db *sql.DB, in FoodLogInput) (*model.DailyProgress, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.MealType = model.MealType(strings.ToLower(strings.TrimSpace(string(in.MealType))))
	if in.MealType == "" {
		in.MealType = model.MealSnack
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if in.LoggedAt.IsZero() {
		in.LoggedAt = time.Now()
	}

	target, err := CurrentTarget(db)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrNoProfile
	}

	entry := model.FoodLogEntry{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Calories:  in.Calories,
		Timestamp: in.LoggedAt,
		MealType:  in.MealType,
	}
	date := dateKey(in.LoggedAt)

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin food log tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	load := func(d string) (*model.DailyProgress, error) { return loadDailyProgress(tx, d) }
	save := func(p model.DailyProgress) error { return saveDailyProgress(tx, p) }
	progress, err := nutrition.RecordFoodLog(date, entry, target.DailyCalorieGoal, load, save)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit food log: %w", err)
	}
	slog.Debug("food logged", "date", date, "calories", entry.Calories, "consumed", progress.CaloriesConsumed)
	return &progress, nil
}

// GetDailyProgress returns nil without error when nothing was logged on date.
func GetDailyProgress(db *sql.DB, date string) (*model.DailyProgress, error) {
	date, err := resolveDate(date)
	if err != nil {
		return nil, err
	}
	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin read tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	return loadDailyProgress(tx, date)
}

func ListFoodLogs(db *sql.DB, date string) ([]model.FoodLogEntry, error) {
	p, err := GetDailyProgress(db, date)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return []model.FoodLogEntry{}, nil
	}
	return p.FoodLogs, nil
}

type queryer interface {
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
}

func loadDailyProgress(q queryer, date string) (*model.DailyProgress, error) {
	p := model.DailyProgress{Date: date}
	err := q.QueryRow(`SELECT calories_consumed, calories_goal FROM daily_progress WHERE progress_date = ?`, date).
		Scan(&p.CaloriesConsumed, &p.CaloriesGoal)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("load daily progress %s: %w", date, err)
	}
	logs, err := loadFoodLogs(q, date)
	if err != nil {
		return nil, err
	}
	p.FoodLogs = logs
	return &p, nil
}

func loadFoodLogs(q queryer, date string) ([]model.FoodLogEntry, error) {
	rows, err := q.Query(`
SELECT id, name, calories, logged_at, meal_type
FROM food_logs
WHERE progress_date = ?
ORDER BY position ASC
`, date)
	if err != nil {
		return nil, fmt.Errorf("list food logs %s: %w", date, err)
	}
	defer rows.Close()

	logs := make([]model.FoodLogEntry, 0)
	for rows.Next() {
		var e model.FoodLogEntry
		var loggedAt, mealType string
		if err := rows.Scan(&e.ID, &e.Name, &e.Calories, &loggedAt, &mealType); err != nil {
			return nil, fmt.Errorf("scan food log: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, loggedAt)
		if err != nil {
			return nil, fmt.Errorf("parse logged_at: %w", err)
		}
		e.Timestamp = ts
		e.MealType = model.MealType(mealType)
		logs = append(logs, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate food logs: %w", err)
	}
	return logs, nil
}

// saveDailyProgress upserts the totals row and inserts the logs appended since
// the last save. Logs are append-only: rows already stored for the day keep
// their positions, and a conflicting id is an error.
func saveDailyProgress(tx *sql.Tx, p model.DailyProgress) error {
	_, err := tx.Exec(`
INSERT INTO daily_progress(progress_date, calories_consumed, calories_goal, updated_at)
VALUES(?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(progress_date) DO UPDATE SET
  calories_consumed=excluded.calories_consumed,
  updated_at=excluded.updated_at
`, p.Date, p.CaloriesConsumed, p.CaloriesGoal)
	if err != nil {
		return fmt.Errorf("save daily progress %s: %w", p.Date, err)
	}
	var stored int
	if err := tx.QueryRow(`SELECT COUNT(1) FROM food_logs WHERE progress_date = ?`, p.Date).Scan(&stored); err != nil {
		return fmt.Errorf("count food logs %s: %w", p.Date, err)
	}
	if stored > len(p.FoodLogs) {
		return fmt.Errorf("save daily progress %s: %d stored logs but %d given", p.Date, stored, len(p.FoodLogs))
	}
	for i := stored; i < len(p.FoodLogs); i++ {
		e := p.FoodLogs[i]
		if _, err := tx.Exec(`
INSERT INTO food_logs(id, progress_date, position, name, calories, logged_at, meal_type)
VALUES(?, ?, ?, ?, ?, ?, ?)
`, e.ID, p.Date, i, e.Name, e.Calories, e.Timestamp.Format(time.RFC3339Nano), string(e.MealType)); err != nil {
			return fmt.Errorf("save food log %s: %w", e.ID, err)
		}
	}
	return nil
}

// foodLogDate returns the day a log id is stored under, or "" when unknown.
func foodLogDate(q queryer, id string) (string, error) {
	var date string
	err := q.QueryRow(`SELECT progress_date FROM food_logs WHERE id = ?`, id).Scan(&date)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("look up food log %s: %w", id, err)
	}
	return date, nil
}
