package service

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/NextGenXplorer/NutriGuide/internal/nutrition"
)

const (
	ConfigWeightUnit    = "weight_unit"
	ConfigHistoryWindow = "history_window"
)

var configValidators = map[string]func(string) (string, error){
	ConfigWeightUnit: func(v string) (string, error) {
		u := strings.ToLower(v)
		if u == "lbs" {
			u = "lb"
		}
		if u != "kg" && u != "lb" {
			return "", fmt.Errorf("weight_unit must be kg or lb")
		}
		return u, nil
	},
	ConfigHistoryWindow: func(v string) (string, error) {
		n, err := strconv.Atoi(v)
		if err != nil || n < 2 {
			return "", fmt.Errorf("history_window must be an integer >= 2")
		}
		return strconv.Itoa(n), nil
	},
}

// ConfigKeys lists the recognised preference keys in display order.
func ConfigKeys() []string {
	return []string{ConfigHistoryWindow, ConfigWeightUnit}
}

func SetConfig(db *sql.DB, key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return fmt.Errorf("config key is required")
	}
	check, ok := configValidators[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (expected one of: %s)", key, strings.Join(ConfigKeys(), ", "))
	}
	normalized, err := check(strings.TrimSpace(value))
	if err != nil {
		return err
	}
	_, err = db.Exec(`
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, normalized)
	if err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	return nil
}

func GetConfig(db *sql.DB, key string) (string, bool, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return "", false, fmt.Errorf("config key is required")
	}
	var value string
	err := db.QueryRow(`SELECT value FROM app_config WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get config %q: %w", key, err)
	}
	return value, true, nil
}

func ListConfig(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM app_config ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list config: %w", err)
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan config: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate config: %w", err)
	}
	return out, nil
}

// WeightUnit returns the preferred display unit, kg when unset.
func WeightUnit(db *sql.DB) (string, error) {
	v, ok, err := GetConfig(db, ConfigWeightUnit)
	if err != nil {
		return "", err
	}
	if !ok || v == "" {
		return "kg", nil
	}
	return v, nil
}

// HistoryWindow returns how many weight samples feed the trend view.
func HistoryWindow(db *sql.DB) (int, error) {
	v, ok, err := GetConfig(db, ConfigHistoryWindow)
	if err != nil {
		return 0, err
	}
	if !ok {
		return nutrition.DefaultHistoryWindow, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 2 {
		return nutrition.DefaultHistoryWindow, nil
	}
	return n, nil
}
