package service_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	dbpkg "github.com/NextGenXplorer/NutriGuide/internal/db"
	"github.com/NextGenXplorer/NutriGuide/internal/model"
	"github.com/NextGenXplorer/NutriGuide/internal/service"
)

func TestBackupCreateListRestore(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()
	seedProfile(t, db)

	dir := filepath.Join(t.TempDir(), "backups")
	out := filepath.Join(dir, service.BackupFileName(time.Date(2026, 3, 1, 10, 30, 0, 0, time.Local)))
	info, err := service.CreateBackup(db, out)
	if err != nil {
		t.Fatalf("create backup: %v", err)
	}
	if info.Checksum == "" || info.SizeBytes == 0 {
		t.Fatalf("unexpected backup info: %+v", info)
	}
	if filepath.Base(out) != "nutriguide-20260301-103000.db" {
		t.Fatalf("unexpected backup name: %s", out)
	}
	if _, err := service.CreateBackup(db, out); err == nil {
		t.Fatalf("expected error when backup exists")
	}

	list, err := service.ListBackups(dir)
	if err != nil {
		t.Fatalf("list backups: %v", err)
	}
	if len(list) != 1 || list[0].Checksum != info.Checksum {
		t.Fatalf("unexpected backups: %+v", list)
	}

	target := filepath.Join(t.TempDir(), "restored.db")
	if err := service.RestoreBackup(out, target, false); err != nil {
		t.Fatalf("restore backup: %v", err)
	}
	if err := service.RestoreBackup(out, target, false); err == nil {
		t.Fatalf("expected error without force")
	}
	restored, err := dbpkg.Open(target)
	if err != nil {
		t.Fatalf("open restored: %v", err)
	}
	defer restored.Close()
	p, err := service.GetProfile(restored)
	if err != nil || p == nil || p.Name != "Asha" {
		t.Fatalf("expected restored profile, got %+v, %v", p, err)
	}
}

func TestRestoreBackupDetectsChecksumMismatch(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	out := filepath.Join(t.TempDir(), "snap.db")
	if _, err := service.CreateBackup(db, out); err != nil {
		t.Fatalf("create backup: %v", err)
	}
	if err := os.WriteFile(out+".sha256", []byte("deadbeef\n"), 0o644); err != nil {
		t.Fatalf("tamper checksum: %v", err)
	}
	err := service.RestoreBackup(out, filepath.Join(t.TempDir(), "x.db"), true)
	if err == nil || err.Error() != "backup checksum mismatch" {
		t.Fatalf("expected checksum mismatch, got %v", err)
	}
}

func TestListBackupsMissingDirIsEmpty(t *testing.T) {
	t.Parallel()
	list, err := service.ListBackups(filepath.Join(t.TempDir(), "none"))
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty list, got %+v, %v", list, err)
	}
}

func TestRunDoctorFindsAndFixesTotalsAndGoals(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()
	seedProfile(t, db)

	if _, err := service.AddFoodLog(db, service.FoodLogInput{
		Name: "Khichdi", Calories: 400, MealType: model.MealDinner,
		LoggedAt: time.Date(2026, 3, 1, 20, 0, 0, 0, time.Local),
	}); err != nil {
		t.Fatalf("add food log: %v", err)
	}
	if _, err := db.Exec(`UPDATE daily_progress SET calories_consumed = 5 WHERE progress_date = '2026-03-01'`); err != nil {
		t.Fatalf("corrupt totals: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO daily_progress(progress_date, calories_consumed, calories_goal) VALUES('2026-02-28', 0, 0)`); err != nil {
		t.Fatalf("insert zero-goal day: %v", err)
	}

	report, err := service.RunDoctor(db, false)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if report.MismatchedTotals != 1 || report.ZeroGoalDays != 1 || report.Healthy() {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(report.AffectedDates) != 2 || report.AffectedDates[0] != "2026-02-28" {
		t.Fatalf("unexpected affected dates: %v", report.AffectedDates)
	}

	fixed, err := service.RunDoctor(db, true)
	if err != nil {
		t.Fatalf("doctor fix: %v", err)
	}
	if fixed.FixedTotals != 1 || fixed.FixedGoals != 1 || !fixed.Healthy() {
		t.Fatalf("unexpected fix report: %+v", fixed)
	}

	p, err := service.GetDailyProgress(db, "2026-03-01")
	if err != nil || p.CaloriesConsumed != 400 {
		t.Fatalf("expected recomputed total 400, got %+v, %v", p, err)
	}
	p, err = service.GetDailyProgress(db, "2026-02-28")
	if err != nil || p.CaloriesGoal != 2660 {
		t.Fatalf("expected seeded goal 2660, got %+v, %v", p, err)
	}

	again, err := service.RunDoctor(db, false)
	if err != nil || !again.Healthy() || again.MismatchedTotals != 0 {
		t.Fatalf("expected healthy store, got %+v, %v", again, err)
	}
}
