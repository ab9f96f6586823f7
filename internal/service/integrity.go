package service

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const backupPrefix = "nutriguide-"

type BackupInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
}

type DoctorReport struct {
	MissingProfile    bool     `json:"missing_profile"`
	MismatchedTotals  int      `json:"mismatched_totals"`
	ZeroGoalDays      int      `json:"zero_goal_days"`
	FixedTotals       int      `json:"fixed_totals,omitempty"`
	FixedGoals        int      `json:"fixed_goals,omitempty"`
	AffectedDates     []string `json:"affected_dates,omitempty"`
	UnfixableWarnings []string `json:"warnings,omitempty"`
}

// Healthy reports whether the last doctor run found nothing left to repair.
func (r DoctorReport) Healthy() bool {
	return r.MismatchedTotals-r.FixedTotals == 0 && r.ZeroGoalDays-r.FixedGoals == 0
}

// BackupFileName names a backup taken at t.
func BackupFileName(t time.Time) string {
	return backupPrefix + t.Format("20060102-150405") + ".db"
}

// CreateBackup writes a consistent snapshot of db to outPath with a
// .sha256 sidecar.
func CreateBackup(db *sql.DB, outPath string) (BackupInfo, error) {
	if strings.TrimSpace(outPath) == "" {
		return BackupInfo{}, fmt.Errorf("backup output path is required")
	}
	if _, err := os.Stat(outPath); err == nil {
		return BackupInfo{}, fmt.Errorf("backup %s already exists", outPath)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("create backup directory: %w", err)
	}
	if _, err := db.Exec(`VACUUM INTO ?`, outPath); err != nil {
		return BackupInfo{}, fmt.Errorf("snapshot database: %w", err)
	}
	checksum, err := fileSHA256(outPath)
	if err != nil {
		return BackupInfo{}, err
	}
	if err := os.WriteFile(outPath+".sha256", []byte(checksum+"\n"), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write checksum file: %w", err)
	}
	st, err := os.Stat(outPath)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("stat backup: %w", err)
	}
	slog.Info("backup created", "path", outPath, "bytes", st.Size())
	return BackupInfo{Path: outPath, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()}, nil
}

// RestoreBackup copies backupPath over dbPath after verifying its checksum
// sidecar when one exists.
func RestoreBackup(backupPath, dbPath string, force bool) error {
	if strings.TrimSpace(backupPath) == "" || strings.TrimSpace(dbPath) == "" {
		return fmt.Errorf("backup path and db path are required")
	}
	if _, err := os.Stat(backupPath); err != nil {
		return fmt.Errorf("stat backup: %w", err)
	}
	if !force {
		if _, err := os.Stat(dbPath); err == nil {
			return fmt.Errorf("target db already exists; use --force to overwrite")
		}
	}
	if expected, err := os.ReadFile(backupPath + ".sha256"); err == nil {
		actual, err := fileSHA256(backupPath)
		if err != nil {
			return err
		}
		if strings.TrimSpace(string(expected)) != actual {
			return fmt.Errorf("backup checksum mismatch")
		}
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		_ = os.Remove(dbPath + suffix)
	}
	if err := copyFile(backupPath, dbPath); err != nil {
		return err
	}
	slog.Info("backup restored", "from", backupPath, "to", dbPath)
	return nil
}

// ListBackups returns the .db files in dir, newest first. A missing dir is empty.
func ListBackups(dir string) ([]BackupInfo, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupInfo{}, nil
		}
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	out := make([]BackupInfo, 0)
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".db") {
			continue
		}
		full := filepath.Join(dir, f.Name())
		st, err := os.Stat(full)
		if err != nil {
			continue
		}
		checksum := ""
		if b, err := os.ReadFile(full + ".sha256"); err == nil {
			checksum = strings.TrimSpace(string(b))
		}
		out = append(out, BackupInfo{Path: full, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Path > out[j].Path
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// RunDoctor looks for day records whose consumed total disagrees with their
// logs and for days stored without a calorie goal. With fix, totals are
// recomputed and missing goals are seeded from the current profile target.
func RunDoctor(db *sql.DB, fix bool) (DoctorReport, error) {
	report := DoctorReport{}

	target, err := CurrentTarget(db)
	if err != nil {
		return report, err
	}
	report.MissingProfile = target == nil

	mismatched, err := queryDates(db, `
SELECT d.progress_date
FROM daily_progress d
LEFT JOIN food_logs f ON f.progress_date = d.progress_date
GROUP BY d.progress_date
HAVING d.calories_consumed != COALESCE(SUM(f.calories), 0)
ORDER BY d.progress_date ASC
`)
	if err != nil {
		return report, fmt.Errorf("doctor totals check: %w", err)
	}
	report.MismatchedTotals = len(mismatched)

	zeroGoal, err := queryDates(db, `SELECT progress_date FROM daily_progress WHERE calories_goal <= 0 ORDER BY progress_date ASC`)
	if err != nil {
		return report, fmt.Errorf("doctor goal check: %w", err)
	}
	report.ZeroGoalDays = len(zeroGoal)
	report.AffectedDates = mergeDates(mismatched, zeroGoal)

	if !fix || (len(mismatched) == 0 && len(zeroGoal) == 0) {
		return report, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return report, fmt.Errorf("doctor fix begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	fixedTotals := 0
	for _, date := range mismatched {
		if _, err := tx.Exec(`
UPDATE daily_progress
SET calories_consumed = (SELECT COALESCE(SUM(calories), 0) FROM food_logs WHERE progress_date = ?),
    updated_at = CURRENT_TIMESTAMP
WHERE progress_date = ?
`, date, date); err != nil {
			return report, fmt.Errorf("doctor fix totals %s: %w", date, err)
		}
		fixedTotals++
	}

	fixedGoals := 0
	warnings := make([]string, 0)
	if len(zeroGoal) > 0 {
		if target == nil || target.DailyCalorieGoal <= 0 {
			warnings = append(warnings, "cannot seed missing goals without a profile")
		} else {
			for _, date := range zeroGoal {
				if _, err := tx.Exec(`UPDATE daily_progress SET calories_goal = ?, updated_at = CURRENT_TIMESTAMP WHERE progress_date = ?`, target.DailyCalorieGoal, date); err != nil {
					return report, fmt.Errorf("doctor fix goal %s: %w", date, err)
				}
				fixedGoals++
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return report, fmt.Errorf("doctor fix commit: %w", err)
	}
	report.FixedTotals = fixedTotals
	report.FixedGoals = fixedGoals
	if len(warnings) > 0 {
		report.UnfixableWarnings = warnings
	}
	slog.Info("doctor repaired records", "totals", fixedTotals, "goals", fixedGoals)
	return report, nil
}

func queryDates(db *sql.DB, query string) ([]string, error) {
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]string, 0)
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func mergeDates(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, d := range list {
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			out = append(out, d)
		}
	}
	sort.Strings(out)
	return out
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source file: %w", err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy file: %w", err)
	}
	if err := out.Sync(); err != nil {
		return fmt.Errorf("sync destination file: %w", err)
	}
	return nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for checksum: %w", err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
