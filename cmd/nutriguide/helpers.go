package nutriguide

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/NextGenXplorer/NutriGuide/internal/app"
	"github.com/NextGenXplorer/NutriGuide/internal/db"
)

func resolveDBPath() (string, error) {
	settings, err := app.ResolveSettings(dbPath, logLevel)
	if err != nil {
		return "", err
	}
	return settings.DBPath, nil
}

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.OpenMigrated(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()
	return run(sqldb)
}

func parseDateOrToday(flag, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation(app.DateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q (expected YYYY-MM-DD)", flag, value)
	}
	return t, nil
}

func parseDateTimeOrNow(date, timeStr string) (time.Time, error) {
	date = strings.TrimSpace(date)
	timeStr = strings.TrimSpace(timeStr)
	if date == "" && timeStr == "" {
		return time.Now(), nil
	}
	if date == "" {
		date = time.Now().Format(app.DateLayout)
	}
	if timeStr == "" {
		timeStr = "12:00"
	}
	t, err := time.ParseInLocation(app.DateLayout+" 15:04", date+" "+timeStr, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date/--time (expected YYYY-MM-DD and HH:MM)")
	}
	return t, nil
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(w, string(b))
	return nil
}
