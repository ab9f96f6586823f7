package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v2"

	"github.com/NextGenXplorer/NutriGuide/internal/model"
	"github.com/NextGenXplorer/NutriGuide/internal/nutrition"
)

const exportVersion = 1

type ExportFoodLog struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Calories int    `json:"calories" yaml:"calories"`
	LoggedAt string `json:"logged_at" yaml:"logged_at"`
	MealType string `json:"meal_type" yaml:"meal_type"`
}

type ExportDay struct {
	Date             string          `json:"date" yaml:"date"`
	CaloriesConsumed int             `json:"calories_consumed" yaml:"calories_consumed"`
	CaloriesGoal     int             `json:"calories_goal" yaml:"calories_goal"`
	FoodLogs         []ExportFoodLog `json:"food_logs" yaml:"food_logs"`
}

type ExportMealPlan struct {
	Date      string `json:"date" yaml:"date"`
	Breakfast string `json:"breakfast" yaml:"breakfast"`
	Lunch     string `json:"lunch" yaml:"lunch"`
	Dinner    string `json:"dinner" yaml:"dinner"`
	Snacks    string `json:"snacks" yaml:"snacks"`
}

type ExportData struct {
	Version    int                  `json:"version" yaml:"version"`
	ExportedAt string               `json:"exported_at" yaml:"exported_at"`
	Profile    *model.UserProfile   `json:"profile,omitempty" yaml:"profile,omitempty"`
	Days       []ExportDay          `json:"days" yaml:"days"`
	Weights    []model.WeightSample `json:"weights" yaml:"weights"`
	MealPlans  []ExportMealPlan     `json:"meal_plans" yaml:"meal_plans"`
	Config     map[string]string    `json:"config,omitempty" yaml:"config,omitempty"`
}

type ImportMode string

const (
	ImportModeMerge   ImportMode = "merge"
	ImportModeReplace ImportMode = "replace"
)

type ImportOptions struct {
	Mode   ImportMode
	DryRun bool
}

type ImportReport struct {
	Inserted int      `json:"inserted"`
	Updated  int      `json:"updated"`
	Skipped  int      `json:"skipped"`
	DryRun   bool     `json:"dry_run,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func ExportDataSnapshot(db *sql.DB) (*ExportData, error) {
	out := &ExportData{
		Version:    exportVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Days:       []ExportDay{},
		MealPlans:  []ExportMealPlan{},
	}

	profile, err := GetProfile(db)
	if err != nil {
		return nil, err
	}
	out.Profile = profile

	dayRows, err := db.Query(`SELECT progress_date FROM daily_progress ORDER BY progress_date ASC`)
	if err != nil {
		return nil, fmt.Errorf("export days: %w", err)
	}
	dates := make([]string, 0)
	for dayRows.Next() {
		var d string
		if err := dayRows.Scan(&d); err != nil {
			_ = dayRows.Close()
			return nil, fmt.Errorf("scan export day: %w", err)
		}
		dates = append(dates, d)
	}
	_ = dayRows.Close()

	for _, d := range dates {
		p, err := GetDailyProgress(db, d)
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue
		}
		day := ExportDay{Date: p.Date, CaloriesConsumed: p.CaloriesConsumed, CaloriesGoal: p.CaloriesGoal, FoodLogs: []ExportFoodLog{}}
		for _, e := range p.FoodLogs {
			day.FoodLogs = append(day.FoodLogs, ExportFoodLog{
				ID:       e.ID,
				Name:     e.Name,
				Calories: e.Calories,
				LoggedAt: e.Timestamp.Format(time.RFC3339Nano),
				MealType: string(e.MealType),
			})
		}
		out.Days = append(out.Days, day)
	}

	weights, err := WeightHistory(db)
	if err != nil {
		return nil, err
	}
	out.Weights = weights

	planRows, err := db.Query(`SELECT plan_date, breakfast, lunch, dinner, snacks FROM meal_plans ORDER BY plan_date ASC`)
	if err != nil {
		return nil, fmt.Errorf("export meal plans: %w", err)
	}
	for planRows.Next() {
		var p ExportMealPlan
		if err := planRows.Scan(&p.Date, &p.Breakfast, &p.Lunch, &p.Dinner, &p.Snacks); err != nil {
			_ = planRows.Close()
			return nil, fmt.Errorf("scan export meal plan: %w", err)
		}
		out.MealPlans = append(out.MealPlans, p)
	}
	_ = planRows.Close()

	cfg, err := ListConfig(db)
	if err != nil {
		return nil, err
	}
	out.Config = cfg
	return out, nil
}

// EncodeExport writes data as json or yaml.
func EncodeExport(w io.Writer, data *ExportData, format string) error {
	switch normalizeFormat(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("encode json export: %w", err)
		}
	case "yaml":
		b, err := yaml.Marshal(data)
		if err != nil {
			return fmt.Errorf("encode yaml export: %w", err)
		}
		if _, err := w.Write(b); err != nil {
			return fmt.Errorf("write yaml export: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q (use json or yaml)", format)
	}
	return nil
}

// DecodeExport reads data written by EncodeExport.
func DecodeExport(r io.Reader, format string) (*ExportData, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read import data: %w", err)
	}
	var data ExportData
	switch normalizeFormat(format) {
	case "json":
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("decode json import: %w", err)
		}
	case "yaml":
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("decode yaml import: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q (use json or yaml)", format)
	}
	if data.Version > exportVersion {
		return nil, fmt.Errorf("import version %d is newer than supported version %d", data.Version, exportVersion)
	}
	return &data, nil
}

// FormatFromPath guesses json or yaml from a file extension.
func FormatFromPath(path string) string {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return "yaml"
	}
	return "json"
}

func normalizeFormat(format string) string {
	f := strings.ToLower(strings.TrimSpace(format))
	switch f {
	case "", "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	default:
		return f
	}
}

func ImportDataSnapshot(db *sql.DB, data *ExportData) (ImportReport, error) {
	return ImportDataSnapshotWithOptions(db, data, ImportOptions{Mode: ImportModeMerge})
}

// ImportDataSnapshotWithOptions loads data in one transaction. Merge keeps
// existing records and adds what is new; replace clears user data first. A
// dry run performs the same work and rolls it back.
func ImportDataSnapshotWithOptions(db *sql.DB, data *ExportData, opts ImportOptions) (ImportReport, error) {
	report := ImportReport{DryRun: opts.DryRun}
	if data == nil {
		return report, fmt.Errorf("import data is required")
	}
	mode := normalizeImportMode(opts.Mode)

	tx, err := db.Begin()
	if err != nil {
		return report, fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if mode == ImportModeReplace {
		if err := clearUserData(tx); err != nil {
			return report, err
		}
	}

	if data.Profile != nil {
		if err := importProfile(tx, *data.Profile, &report); err != nil {
			return report, err
		}
	}
	for _, d := range data.Days {
		if err := importDay(tx, d, &report); err != nil {
			return report, err
		}
	}
	for _, w := range data.Weights {
		if err := importWeight(tx, w, &report); err != nil {
			return report, err
		}
	}
	for _, p := range data.MealPlans {
		if err := importMealPlan(tx, p, &report); err != nil {
			return report, err
		}
	}
	for key, value := range data.Config {
		check, ok := configValidators[key]
		if !ok {
			report.Skipped++
			report.Warnings = append(report.Warnings, fmt.Sprintf("unknown config key %q ignored", key))
			continue
		}
		normalized, err := check(value)
		if err != nil {
			report.Skipped++
			report.Warnings = append(report.Warnings, fmt.Sprintf("config %s: %v", key, err))
			continue
		}
		if _, err := tx.Exec(`
INSERT INTO app_config(key, value, updated_at) VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, normalized); err != nil {
			return report, fmt.Errorf("import config %q: %w", key, err)
		}
		report.Updated++
	}

	if opts.DryRun {
		return report, nil
	}
	if err := tx.Commit(); err != nil {
		return report, fmt.Errorf("commit import: %w", err)
	}
	slog.Info("import applied", "mode", mode, "inserted", report.Inserted, "updated", report.Updated, "skipped", report.Skipped)
	return report, nil
}

func importProfile(tx *sql.Tx, p model.UserProfile, report *ImportReport) error {
	p = NormalizeProfile(p)
	if err := validateStruct(p); err != nil {
		return fmt.Errorf("import profile: %w", err)
	}
	var exists int
	existsErr := tx.QueryRow(`SELECT 1 FROM profile WHERE id = 1`).Scan(&exists)
	if existsErr != nil && existsErr != sql.ErrNoRows {
		return fmt.Errorf("check existing profile: %w", existsErr)
	}
	if _, err := tx.Exec(`
INSERT INTO profile(id, name, age, height_cm, weight_kg, gender, activity_level, goal, dietary_preference, updated_at)
VALUES(1, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(id) DO UPDATE SET
  name=excluded.name, age=excluded.age, height_cm=excluded.height_cm, weight_kg=excluded.weight_kg,
  gender=excluded.gender, activity_level=excluded.activity_level, goal=excluded.goal,
  dietary_preference=excluded.dietary_preference, updated_at=excluded.updated_at
`, p.Name, p.Age, p.HeightCm, p.WeightKg, string(p.Gender), string(p.ActivityLevel), string(p.Goal), string(p.DietaryPreference)); err != nil {
		return fmt.Errorf("import profile: %w", err)
	}
	if existsErr == nil {
		report.Updated++
	} else {
		report.Inserted++
	}
	return nil
}

// importDay appends logs whose ids are not stored yet on any day. The consumed total is
// always recomputed from the stored logs; an existing day keeps its goal.
func importDay(tx *sql.Tx, d ExportDay, report *ImportReport) error {
	if _, err := parseDate(d.Date); err != nil {
		return fmt.Errorf("import day: %w", err)
	}
	current, err := loadDailyProgress(tx, d.Date)
	if err != nil {
		return err
	}

	goal := d.CaloriesGoal
	if goal < 0 {
		goal = 0
	}
	next := current
	if current == nil {
		report.Inserted++
	}
	known := map[string]struct{}{}
	if current != nil {
		for _, e := range current.FoodLogs {
			known[e.ID] = struct{}{}
		}
	}

	for _, f := range d.FoodLogs {
		entry, err := importFoodLogEntry(f)
		if err != nil {
			return fmt.Errorf("import food log on %s: %w", d.Date, err)
		}
		if _, ok := known[entry.ID]; ok {
			report.Skipped++
			continue
		}
		storedOn, err := foodLogDate(tx, entry.ID)
		if err != nil {
			return err
		}
		if storedOn != "" {
			report.Skipped++
			report.Warnings = append(report.Warnings, fmt.Sprintf("day %s: food log %s already stored on %s, skipped", d.Date, entry.ID, storedOn))
			continue
		}
		known[entry.ID] = struct{}{}
		updated := nutrition.AppendFoodLog(next, d.Date, entry, goal)
		next = &updated
		report.Inserted++
	}

	if next == nil {
		next = &model.DailyProgress{Date: d.Date, CaloriesGoal: goal, FoodLogs: []model.FoodLogEntry{}}
	}
	next.CaloriesConsumed = nutrition.SumCalories(next.FoodLogs)
	if d.CaloriesConsumed != 0 && current == nil && d.CaloriesConsumed != next.CaloriesConsumed {
		report.Warnings = append(report.Warnings, fmt.Sprintf("day %s: consumed total %d recomputed to %d", d.Date, d.CaloriesConsumed, next.CaloriesConsumed))
	}
	return saveDailyProgress(tx, *next)
}

func importFoodLogEntry(f ExportFoodLog) (model.FoodLogEntry, error) {
	in := FoodLogInput{
		Name:     strings.TrimSpace(f.Name),
		Calories: f.Calories,
		MealType: model.MealType(strings.ToLower(strings.TrimSpace(f.MealType))),
	}
	if err := validateStruct(in); err != nil {
		return model.FoodLogEntry{}, err
	}
	ts, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(f.LoggedAt))
	if err != nil {
		return model.FoodLogEntry{}, fmt.Errorf("invalid logged_at %q", f.LoggedAt)
	}
	id := strings.TrimSpace(f.ID)
	if id == "" {
		id = uuid.NewString()
	}
	return model.FoodLogEntry{ID: id, Name: in.Name, Calories: in.Calories, Timestamp: ts, MealType: in.MealType}, nil
}

func importWeight(tx *sql.Tx, w model.WeightSample, report *ImportReport) error {
	if _, err := parseDate(w.Date); err != nil {
		return fmt.Errorf("import weight: %w", err)
	}
	if err := checkWeightKg(w.WeightKg); err != nil {
		return fmt.Errorf("import weight on %s: %w", w.Date, err)
	}
	var exists int
	err := tx.QueryRow(`SELECT 1 FROM weight_samples WHERE sample_date = ? AND weight_kg = ? LIMIT 1`, w.Date, w.WeightKg).Scan(&exists)
	if err == nil {
		report.Skipped++
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("check weight sample %s: %w", w.Date, err)
	}
	if _, err := tx.Exec(`INSERT INTO weight_samples(sample_date, weight_kg) VALUES(?, ?)`, w.Date, w.WeightKg); err != nil {
		return fmt.Errorf("import weight %s: %w", w.Date, err)
	}
	report.Inserted++
	return nil
}

func importMealPlan(tx *sql.Tx, p ExportMealPlan, report *ImportReport) error {
	if _, err := parseDate(p.Date); err != nil {
		return fmt.Errorf("import meal plan: %w", err)
	}
	res, err := tx.Exec(`
INSERT INTO meal_plans(plan_date, breakfast, lunch, dinner, snacks)
VALUES(?, ?, ?, ?, ?)
ON CONFLICT(plan_date) DO NOTHING
`, p.Date, p.Breakfast, p.Lunch, p.Dinner, p.Snacks)
	if err != nil {
		return fmt.Errorf("import meal plan %s: %w", p.Date, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		report.Skipped++
	} else {
		report.Inserted++
	}
	return nil
}

func normalizeImportMode(mode ImportMode) ImportMode {
	switch ImportMode(strings.ToLower(strings.TrimSpace(string(mode)))) {
	case ImportModeReplace:
		return ImportModeReplace
	default:
		return ImportModeMerge
	}
}

// ParseImportMode validates a user-supplied mode.
func ParseImportMode(s string) (ImportMode, error) {
	switch ImportMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ImportModeMerge:
		return ImportModeMerge, nil
	case ImportModeReplace:
		return ImportModeReplace, nil
	default:
		return "", fmt.Errorf("invalid import mode %q (use merge or replace)", s)
	}
}

func clearUserData(tx *sql.Tx) error {
	stmts := []string{
		`DELETE FROM food_logs`,
		`DELETE FROM daily_progress`,
		`DELETE FROM weight_samples`,
		`DELETE FROM meal_plans`,
		`DELETE FROM profile`,
	}
	for _, s := range stmts {
		if _, err := tx.Exec(s); err != nil {
			return fmt.Errorf("clear user data: %w", err)
		}
	}
	return nil
}
