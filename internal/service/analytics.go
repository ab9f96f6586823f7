package service

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/NextGenXplorer/NutriGuide/internal/model"
)

// DefaultAdherenceTolerance is the accepted deviation from a day's goal.
const DefaultAdherenceTolerance = 0.10

type MealTypeBreakdown struct {
	MealType model.MealType `json:"meal_type"`
	Calories int            `json:"calories"`
	Entries  int            `json:"entries"`
}

type DaySummary struct {
	Date     string  `json:"date"`
	Consumed int     `json:"calories_consumed"`
	Goal     int     `json:"calories_goal"`
	Entries  int     `json:"entries"`
	Percent  float64 `json:"percent_of_goal"`
}

type AdherenceSummary struct {
	EvaluatedDays   int     `json:"evaluated_days"`
	WithinGoalDays  int     `json:"within_goal_days"`
	PercentWithin   float64 `json:"percent_within_goal"`
	SkippedGoalDays int     `json:"days_without_goal"`
}

type HistoryReport struct {
	FromDate              string               `json:"from_date"`
	ToDate                string               `json:"to_date"`
	TotalCalories         int                  `json:"total_calories"`
	DaysWithEntries       int                  `json:"days_with_entries"`
	AverageCaloriesPerDay float64              `json:"avg_calories_per_day"`
	HighestDay            *DaySummary          `json:"highest_day,omitempty"`
	LowestDay             *DaySummary          `json:"lowest_day,omitempty"`
	Adherence             AdherenceSummary     `json:"adherence"`
	ByMealType            []MealTypeBreakdown  `json:"by_meal_type"`
	Days                  []DaySummary         `json:"days"`
	Weights               []model.WeightSample `json:"weights"`
	WeightChangeKg        *float64             `json:"weight_change_kg,omitempty"`
}

// HistoryRange summarises the days in [from, to]. A day counts as adherent
// when its consumed total is within tolerance of the goal stored on it.
func HistoryRange(db *sql.DB, from, to time.Time, tolerance float64) (*HistoryReport, error) {
	from = beginningOfDay(from)
	to = beginningOfDay(to)
	if from.After(to) {
		return nil, fmt.Errorf("from date must be <= to date")
	}
	if tolerance < 0 {
		return nil, fmt.Errorf("tolerance must be >= 0")
	}

	report := &HistoryReport{
		FromDate: dateKey(from),
		ToDate:   dateKey(to),
	}

	days, err := loadDaySummaries(db, report.FromDate, report.ToDate)
	if err != nil {
		return nil, err
	}
	report.Days = days

	for i := range days {
		if days[i].Entries == 0 {
			continue
		}
		report.DaysWithEntries++
		report.TotalCalories += days[i].Consumed
	}
	if report.DaysWithEntries > 0 {
		report.AverageCaloriesPerDay = float64(report.TotalCalories) / float64(report.DaysWithEntries)
		report.HighestDay, report.LowestDay = extremeDays(days)
	}
	report.Adherence = calculateAdherence(days, tolerance)

	breakdown, err := loadMealTypeBreakdown(db, report.FromDate, report.ToDate)
	if err != nil {
		return nil, err
	}
	report.ByMealType = breakdown

	weights, err := loadWeightsBetween(db, report.FromDate, report.ToDate)
	if err != nil {
		return nil, err
	}
	report.Weights = weights
	if len(weights) >= 2 {
		change := weights[len(weights)-1].WeightKg - weights[0].WeightKg
		report.WeightChangeKg = &change
	}
	return report, nil
}

// HistoryWeek is HistoryRange over the seven days ending on end.
func HistoryWeek(db *sql.DB, end time.Time) (*HistoryReport, error) {
	end = beginningOfDay(end)
	return HistoryRange(db, end.AddDate(0, 0, -6), end, DefaultAdherenceTolerance)
}

func loadDaySummaries(db *sql.DB, from, to string) ([]DaySummary, error) {
	rows, err := db.Query(`
SELECT d.progress_date, d.calories_consumed, d.calories_goal, COUNT(f.id)
FROM daily_progress d
LEFT JOIN food_logs f ON f.progress_date = d.progress_date
WHERE d.progress_date >= ? AND d.progress_date <= ?
GROUP BY d.progress_date
ORDER BY d.progress_date ASC
`, from, to)
	if err != nil {
		return nil, fmt.Errorf("query day summaries: %w", err)
	}
	defer rows.Close()

	items := make([]DaySummary, 0)
	for rows.Next() {
		var d DaySummary
		if err := rows.Scan(&d.Date, &d.Consumed, &d.Goal, &d.Entries); err != nil {
			return nil, fmt.Errorf("scan day summary: %w", err)
		}
		if d.Goal > 0 {
			d.Percent = float64(d.Consumed) / float64(d.Goal) * 100
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate day summaries: %w", err)
	}
	return items, nil
}

func loadMealTypeBreakdown(db *sql.DB, from, to string) ([]MealTypeBreakdown, error) {
	rows, err := db.Query(`
SELECT meal_type, SUM(calories), COUNT(1)
FROM food_logs
WHERE progress_date >= ? AND progress_date <= ?
GROUP BY meal_type
ORDER BY SUM(calories) DESC, meal_type ASC
`, from, to)
	if err != nil {
		return nil, fmt.Errorf("query meal type breakdown: %w", err)
	}
	defer rows.Close()

	items := make([]MealTypeBreakdown, 0)
	for rows.Next() {
		var b MealTypeBreakdown
		var mealType string
		if err := rows.Scan(&mealType, &b.Calories, &b.Entries); err != nil {
			return nil, fmt.Errorf("scan meal type breakdown: %w", err)
		}
		b.MealType = model.MealType(mealType)
		items = append(items, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meal type breakdown: %w", err)
	}
	return items, nil
}

func loadWeightsBetween(db *sql.DB, from, to string) ([]model.WeightSample, error) {
	rows, err := db.Query(`
SELECT sample_date, weight_kg
FROM weight_samples
WHERE sample_date >= ? AND sample_date <= ?
ORDER BY sample_date ASC, id ASC
`, from, to)
	if err != nil {
		return nil, fmt.Errorf("query weights in range: %w", err)
	}
	defer rows.Close()

	items := make([]model.WeightSample, 0)
	for rows.Next() {
		var s model.WeightSample
		if err := rows.Scan(&s.Date, &s.WeightKg); err != nil {
			return nil, fmt.Errorf("scan weight in range: %w", err)
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate weights in range: %w", err)
	}
	return items, nil
}

func calculateAdherence(days []DaySummary, tolerance float64) AdherenceSummary {
	out := AdherenceSummary{}
	for _, d := range days {
		if d.Goal <= 0 {
			out.SkippedGoalDays++
			continue
		}
		out.EvaluatedDays++
		if AdherenceWithin(float64(d.Consumed), float64(d.Goal), tolerance) {
			out.WithinGoalDays++
		}
	}
	if out.EvaluatedDays > 0 {
		out.PercentWithin = (float64(out.WithinGoalDays) / float64(out.EvaluatedDays)) * 100
	}
	return out
}

func AdherenceWithin(actual float64, target float64, tolerance float64) bool {
	if target == 0 {
		return actual == 0
	}
	lower := target * (1 - tolerance)
	upper := target * (1 + tolerance)
	return actual >= lower && actual <= upper
}

func extremeDays(days []DaySummary) (*DaySummary, *DaySummary) {
	copied := make([]DaySummary, 0, len(days))
	for _, d := range days {
		if d.Entries > 0 {
			copied = append(copied, d)
		}
	}
	if len(copied) == 0 {
		return nil, nil
	}
	sort.SliceStable(copied, func(i, j int) bool {
		return copied[i].Consumed < copied[j].Consumed
	})
	low := copied[0]
	high := copied[len(copied)-1]
	return &high, &low
}
