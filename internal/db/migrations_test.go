package db_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/NextGenXplorer/NutriGuide/internal/db"
)

func TestApplyMigrationsIdempotentAndSeedsDefaults(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "nutriguide.db")
	sqldb, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("first apply migrations: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("second apply migrations: %v", err)
	}

	var migrationCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM schema_migrations`).Scan(&migrationCount); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if migrationCount != 4 {
		t.Fatalf("expected 4 migration versions, got %d", migrationCount)
	}

	for _, table := range []string{"profile", "app_config", "daily_progress", "food_logs", "weight_samples", "meal_plans"} {
		var count int
		if err := sqldb.QueryRow(`SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&count); err != nil {
			t.Fatalf("check %s table: %v", table, err)
		}
		if count != 1 {
			t.Fatalf("expected %s table to exist", table)
		}
	}

	var unit string
	if err := sqldb.QueryRow(`SELECT value FROM app_config WHERE key = 'weight_unit'`).Scan(&unit); err != nil {
		t.Fatalf("read seeded weight_unit: %v", err)
	}
	if unit != "kg" {
		t.Fatalf("expected seeded weight_unit kg, got %q", unit)
	}

	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("expected db file to exist: %v", err)
	}
}

func TestProfileTableAllowsSingleRow(t *testing.T) {
	t.Parallel()

	sqldb, err := db.Open(filepath.Join(t.TempDir(), "nutriguide.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	_, err = sqldb.Exec(`
INSERT INTO profile(id, name, age, height_cm, weight_kg, gender, activity_level, goal, dietary_preference)
VALUES(2, 'x', 30, 170, 70, 'male', 'low', 'lose', 'vegan')`)
	if err == nil {
		t.Fatalf("expected second profile row to be rejected")
	}
}

func TestApplyMigrationsWrapsCheckError(t *testing.T) {
	t.Parallel()

	sqldb, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New err: %v", err)
	}
	defer sqldb.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT 1 FROM schema_migrations WHERE version = \?`).
		WithArgs(1).
		WillReturnError(errors.New("disk I/O error"))

	err = db.ApplyMigrations(sqldb)
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := err.Error(); got != "check migration version 1: disk I/O error" {
		t.Fatalf("unexpected error: %q", got)
	}
}
