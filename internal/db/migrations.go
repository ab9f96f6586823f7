package db

import (
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial_schema",
		sql: `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS profile (
  id INTEGER PRIMARY KEY CHECK(id = 1),
  name TEXT NOT NULL,
  age INTEGER NOT NULL CHECK(age > 0),
  height_cm REAL NOT NULL CHECK(height_cm > 0),
  weight_kg REAL NOT NULL CHECK(weight_kg > 0),
  gender TEXT NOT NULL CHECK(gender IN ('male', 'female', 'other')),
  activity_level TEXT NOT NULL CHECK(activity_level IN ('low', 'moderate', 'high')),
  goal TEXT NOT NULL CHECK(goal IN ('lose', 'maintain', 'gain')),
  dietary_preference TEXT NOT NULL CHECK(dietary_preference IN ('vegetarian', 'vegan', 'non-veg')),
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS app_config (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
	{
		version: 2,
		name:    "daily_progress",
		sql: `
CREATE TABLE IF NOT EXISTS daily_progress (
  progress_date TEXT PRIMARY KEY,
  calories_consumed INTEGER NOT NULL DEFAULT 0 CHECK(calories_consumed >= 0),
  calories_goal INTEGER NOT NULL DEFAULT 0 CHECK(calories_goal >= 0),
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS food_logs (
  id TEXT PRIMARY KEY,
  progress_date TEXT NOT NULL,
  position INTEGER NOT NULL CHECK(position >= 0),
  name TEXT NOT NULL,
  calories INTEGER NOT NULL CHECK(calories > 0),
  logged_at DATETIME NOT NULL,
  meal_type TEXT NOT NULL CHECK(meal_type IN ('breakfast', 'lunch', 'dinner', 'snack')),
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(progress_date) REFERENCES daily_progress(progress_date) ON DELETE CASCADE,
  UNIQUE(progress_date, position)
);

CREATE INDEX IF NOT EXISTS idx_food_logs_progress_date ON food_logs(progress_date);
`,
	},
	{
		version: 3,
		name:    "weight_samples",
		sql: `
CREATE TABLE IF NOT EXISTS weight_samples (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  sample_date TEXT NOT NULL,
  weight_kg REAL NOT NULL CHECK(weight_kg > 0),
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_weight_samples_sample_date ON weight_samples(sample_date);
`,
	},
	{
		version: 4,
		name:    "meal_plans",
		sql: `
CREATE TABLE IF NOT EXISTS meal_plans (
  plan_date TEXT PRIMARY KEY,
  breakfast TEXT NOT NULL,
  lunch TEXT NOT NULL,
  dinner TEXT NOT NULL,
  snacks TEXT NOT NULL,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
}

var defaultConfig = map[string]string{
	"weight_unit":    "kg",
	"history_window": "7",
}

func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE version = ?`, m.version).Scan(&exists)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration version %d: %w", m.version, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration tx: %w", err)
		}

		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration version %d: %w", m.version, err)
		}
	}

	for key, value := range defaultConfig {
		if _, err := db.Exec(`INSERT OR IGNORE INTO app_config(key, value) VALUES(?, ?)`, key, value); err != nil {
			return fmt.Errorf("seed default config %s: %w", key, err)
		}
	}

	return nil
}
