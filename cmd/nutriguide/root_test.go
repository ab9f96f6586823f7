package nutriguide

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/NextGenXplorer/NutriGuide/internal/service"
)

// resetFlags restores every flag to its default so successive Execute calls
// on the shared rootCmd do not leak values into each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, "", args...)
	if err != nil {
		t.Fatalf("%v failed: %v\n%s", args, err, out)
	}
	return out
}

func stubTerminal(t *testing.T, isTTY bool) {
	t.Helper()
	prev := stdinIsTerminal
	stdinIsTerminal = func() bool { return isTTY }
	t.Cleanup(func() { stdinIsTerminal = prev })
}

func setProfile(t *testing.T, path string) {
	t.Helper()
	out := mustRun(t, "--db", path, "profile", "set",
		"--name", "Asha", "--age", "30", "--height", "175", "--weight", "76.75",
		"--gender", "male", "--activity", "moderate", "--goal", "maintain", "--diet", "vegetarian")
	if !strings.Contains(out, "Daily calorie goal: 2660 kcal") {
		t.Fatalf("unexpected profile output:\n%s", out)
	}
}

func TestRootHelp(t *testing.T) {
	out, err := run(t, "", "--help")
	if err != nil {
		t.Fatalf("execute root help: %v", err)
	}
	if !strings.Contains(out, "nutriguide") {
		t.Fatalf("expected help output, got %q", out)
	}
}

func TestInitCommandIdempotent(t *testing.T) {
	stubTerminal(t, false)
	path := filepath.Join(t.TempDir(), "nutriguide.db")
	for i := 0; i < 2; i++ {
		out, err := run(t, "", "--db", path, "init")
		if err != nil {
			t.Fatalf("init run %d failed: %v", i+1, err)
		}
		if !strings.Contains(out, "Next: nutriguide profile set") {
			t.Fatalf("expected profile hint, got:\n%s", out)
		}
	}
}

func TestInitOnboardingPrompts(t *testing.T) {
	stubTerminal(t, true)
	path := filepath.Join(t.TempDir(), "nutriguide.db")
	answers := "Asha\n30\n175\n76.75\nmale\n\n\n\n"
	out, err := run(t, answers, "--db", path, "init")
	if err != nil {
		t.Fatalf("init with prompts: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Welcome, Asha!") || !strings.Contains(out, "Daily calorie goal: 2660 kcal") {
		t.Fatalf("unexpected onboarding output:\n%s", out)
	}

	out = mustRun(t, "--db", path, "init")
	if !strings.Contains(out, "Profile: Asha") {
		t.Fatalf("expected existing profile on second init, got:\n%s", out)
	}
}

func TestInitOnboardingRejectsInvalidAnswers(t *testing.T) {
	stubTerminal(t, true)
	path := filepath.Join(t.TempDir(), "nutriguide.db")
	_, err := run(t, "Asha\n-3\n175\n70\nmale\n\n\n\n", "--db", path, "init")
	if err == nil || !strings.Contains(err.Error(), "age must be > 0") {
		t.Fatalf("expected age validation error, got %v", err)
	}
}

func TestProfileSetRejectsInvalidGender(t *testing.T) {
	stubTerminal(t, false)
	path := filepath.Join(t.TempDir(), "nutriguide.db")
	_, err := run(t, "", "--db", path, "profile", "set",
		"--name", "Asha", "--age", "30", "--height", "175", "--weight", "70", "--gender", "robot")
	if err == nil || !strings.Contains(err.Error(), "gender must be one of") {
		t.Fatalf("expected gender validation error, got %v", err)
	}
}

func TestFoodAndTodayFlow(t *testing.T) {
	stubTerminal(t, false)
	path := filepath.Join(t.TempDir(), "nutriguide.db")

	if _, err := run(t, "", "--db", path, "food", "add", "Dal", "--calories", "400"); err == nil {
		t.Fatalf("expected food add without profile to fail")
	}

	setProfile(t, path)
	mustRun(t, "--db", path, "food", "add", "Poha", "--calories", "300", "--meal", "breakfast", "--date", "2026-03-01", "--time", "08:30")
	out := mustRun(t, "--db", path, "food", "add", "Dal", "rice", "--calories", "450", "--meal", "lunch", "--date", "2026-03-01")
	if !strings.Contains(out, "Logged Dal rice (450 kcal, lunch)") || !strings.Contains(out, "2026-03-01: 750 / 2660 kcal") {
		t.Fatalf("unexpected food add output:\n%s", out)
	}

	// A later profile change does not move the goal fixed on the day.
	mustRun(t, "--db", path, "profile", "set", "--goal", "lose")

	out = mustRun(t, "--db", path, "--seed", "7", "today", "--date", "2026-03-01", "--json")
	var status service.TodayStatus
	if err := json.Unmarshal([]byte(out), &status); err != nil {
		t.Fatalf("decode today json: %v\n%s", err, out)
	}
	if status.CaloriesConsumed != 750 || status.CaloriesGoal != 2660 || status.RemainingCalories != 1910 {
		t.Fatalf("unexpected totals: %+v", status)
	}
	if len(status.FoodLogs) != 2 || status.FoodLogs[0].Name != "Poha" {
		t.Fatalf("unexpected food logs: %+v", status.FoodLogs)
	}
	if !strings.HasPrefix(status.Progress.Tip, "You've consumed 28%") {
		t.Fatalf("unexpected tip %q", status.Progress.Tip)
	}
	if !strings.Contains(status.Motivation, "Asha") {
		t.Fatalf("expected name in motivation, got %q", status.Motivation)
	}

	out = mustRun(t, "--db", path, "food", "list", "--date", "2026-03-01")
	if !strings.Contains(out, "08:30\tbreakfast\t300\tPoha") || !strings.Contains(out, "Total: 750 kcal") {
		t.Fatalf("unexpected food list:\n%s", out)
	}
}

func TestFoodAddRejectsNonPositiveCalories(t *testing.T) {
	stubTerminal(t, false)
	path := filepath.Join(t.TempDir(), "nutriguide.db")
	setProfile(t, path)
	_, err := run(t, "", "--db", path, "food", "add", "Air", "--calories", "0")
	if err == nil || !strings.Contains(err.Error(), "calories must be > 0") {
		t.Fatalf("expected calories validation error, got %v", err)
	}
}

func TestPlanTodayIsStableAcrossSeeds(t *testing.T) {
	stubTerminal(t, false)
	path := filepath.Join(t.TempDir(), "nutriguide.db")
	setProfile(t, path)

	first := mustRun(t, "--db", path, "--seed", "1", "plan", "today", "--date", "2026-03-01", "--json")
	second := mustRun(t, "--db", path, "--seed", "2", "plan", "today", "--date", "2026-03-01", "--json")
	if first != second {
		t.Fatalf("plan changed within the day:\n%s\n%s", first, second)
	}
	for _, key := range []string{`"breakfast"`, `"lunch"`, `"dinner"`, `"snacks"`} {
		if !strings.Contains(first, key) {
			t.Fatalf("plan json missing %s:\n%s", key, first)
		}
	}
}

func TestWeightCommandsUpdateTarget(t *testing.T) {
	stubTerminal(t, false)
	path := filepath.Join(t.TempDir(), "nutriguide.db")
	setProfile(t, path)

	mustRun(t, "--db", path, "weight", "add", "71", "--date", "2026-03-01")
	out := mustRun(t, "--db", path, "weight", "add", "70", "--date", "2026-03-02")
	if !strings.Contains(out, "New daily calorie goal: 2556 kcal") {
		t.Fatalf("unexpected weight add output:\n%s", out)
	}

	out = mustRun(t, "--db", path, "weight", "trend")
	if !strings.Contains(out, "Weight trend: down 1.0 kg") {
		t.Fatalf("unexpected trend output:\n%s", out)
	}

	if _, err := run(t, "", "--db", path, "weight", "add", "inf"); err == nil || !strings.Contains(err.Error(), "finite") {
		t.Fatalf("expected non-finite weight to be rejected, got %v", err)
	}
	if _, err := run(t, "", "--db", path, "profile", "set", "--height", "inf"); err == nil || !strings.Contains(err.Error(), "height_cm must be <= 300") {
		t.Fatalf("expected non-finite height to be rejected, got %v", err)
	}

	mustRun(t, "--db", path, "config", "set", "weight_unit", "lbs")
	out = mustRun(t, "--db", path, "weight", "list")
	if !strings.Contains(out, "DATE\tWEIGHT(lb)") || !strings.Contains(out, "2026-03-02\t154.3") {
		t.Fatalf("unexpected weight list:\n%s", out)
	}
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nutriguide.db")
	out := mustRun(t, "--db", path, "config", "get")
	if !strings.Contains(out, "history_window=7") || !strings.Contains(out, "weight_unit=kg") {
		t.Fatalf("unexpected defaults:\n%s", out)
	}
	if _, err := run(t, "", "--db", path, "config", "set", "history_window", "1"); err == nil {
		t.Fatalf("expected history_window validation error")
	}
	if _, err := run(t, "", "--db", path, "config", "set", "theme", "dark"); err == nil {
		t.Fatalf("expected unknown key error")
	}
	mustRun(t, "--db", path, "config", "set", "history_window", "14")
	if out := mustRun(t, "--db", path, "config", "get", "history_window"); strings.TrimSpace(out) != "14" {
		t.Fatalf("expected 14, got %q", out)
	}
}

func TestHistoryWeekJSON(t *testing.T) {
	stubTerminal(t, false)
	path := filepath.Join(t.TempDir(), "nutriguide.db")
	setProfile(t, path)
	mustRun(t, "--db", path, "food", "add", "Poha", "--calories", "2600", "--date", "2026-03-01")
	mustRun(t, "--db", path, "food", "add", "Salad", "--calories", "900", "--date", "2026-02-27")

	out := mustRun(t, "--db", path, "history", "week", "--end", "2026-03-01", "--json")
	var report service.HistoryReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode history json: %v\n%s", err, out)
	}
	if report.FromDate != "2026-02-23" || report.ToDate != "2026-03-01" {
		t.Fatalf("unexpected range %s..%s", report.FromDate, report.ToDate)
	}
	if report.TotalCalories != 3500 || report.DaysWithEntries != 2 {
		t.Fatalf("unexpected totals: %+v", report)
	}
	if report.Adherence.EvaluatedDays != 2 || report.Adherence.WithinGoalDays != 1 {
		t.Fatalf("unexpected adherence: %+v", report.Adherence)
	}

	if _, err := run(t, "", "--db", path, "history", "range", "--from", "2026-03-05", "--to", "2026-03-01"); err == nil {
		t.Fatalf("expected inverted range to fail")
	}
}

func TestExportResetImportRoundTrip(t *testing.T) {
	stubTerminal(t, false)
	dir := t.TempDir()
	path := filepath.Join(dir, "nutriguide.db")
	setProfile(t, path)
	mustRun(t, "--db", path, "food", "add", "Poha", "--calories", "300", "--date", "2026-03-01")
	mustRun(t, "--db", path, "weight", "add", "76", "--date", "2026-03-01")
	mustRun(t, "--db", path, "plan", "today", "--date", "2026-03-01")

	exportPath := filepath.Join(dir, "export.yaml")
	mustRun(t, "--db", path, "export", "--out", exportPath)

	if _, err := run(t, "", "--db", path, "reset"); err == nil {
		t.Fatalf("expected reset without --force to fail")
	}
	mustRun(t, "--db", path, "reset", "--force")
	if _, err := run(t, "", "--db", path, "profile", "show"); err == nil {
		t.Fatalf("expected missing profile after reset")
	}

	out := mustRun(t, "--db", path, "import", "--in", exportPath, "--dry-run")
	if !strings.Contains(out, "Import dry-run:") {
		t.Fatalf("unexpected dry-run output:\n%s", out)
	}
	if _, err := run(t, "", "--db", path, "profile", "show"); err == nil {
		t.Fatalf("dry-run import must not write")
	}

	mustRun(t, "--db", path, "import", "--in", exportPath)
	out = mustRun(t, "--db", path, "profile", "show")
	if !strings.Contains(out, "Name: Asha") || !strings.Contains(out, "Weight: 76.0 kg") {
		t.Fatalf("unexpected profile after import:\n%s", out)
	}
	out = mustRun(t, "--db", path, "food", "list", "--date", "2026-03-01")
	if !strings.Contains(out, "Total: 300 kcal") {
		t.Fatalf("unexpected food list after import:\n%s", out)
	}

	out = mustRun(t, "--db", path, "import", "--in", exportPath)
	if !strings.Contains(out, "inserted=0") {
		t.Fatalf("expected second import to insert nothing:\n%s", out)
	}
}

func TestBackupAndDoctor(t *testing.T) {
	stubTerminal(t, false)
	dir := t.TempDir()
	path := filepath.Join(dir, "nutriguide.db")
	setProfile(t, path)
	mustRun(t, "--db", path, "food", "add", "Poha", "--calories", "300", "--date", "2026-03-01")

	out := mustRun(t, "--db", path, "doctor")
	if !strings.Contains(out, "Mismatched daily totals: 0") {
		t.Fatalf("unexpected doctor output:\n%s", out)
	}

	backupPath := filepath.Join(dir, "snap.db")
	out = mustRun(t, "--db", path, "backup", "create", "--out", backupPath)
	if !strings.Contains(out, "Created backup: "+backupPath) {
		t.Fatalf("unexpected backup output:\n%s", out)
	}
	if _, err := run(t, "", "--db", path, "backup", "create", "--out", backupPath); err == nil {
		t.Fatalf("expected existing backup file to be rejected")
	}

	restored := filepath.Join(dir, "restored.db")
	mustRun(t, "--db", restored, "backup", "restore", "--file", backupPath)
	out = mustRun(t, "--db", restored, "food", "list", "--date", "2026-03-01")
	if !strings.Contains(out, "Total: 300 kcal") {
		t.Fatalf("unexpected food list in restored db:\n%s", out)
	}
	if _, err := run(t, "", "--db", restored, "backup", "restore", "--file", backupPath); err == nil {
		t.Fatalf("expected restore over existing db without --force to fail")
	}
}

func TestCoachContext(t *testing.T) {
	stubTerminal(t, false)
	path := filepath.Join(t.TempDir(), "nutriguide.db")
	out := mustRun(t, "--db", path, "coach", "context")
	if strings.Contains(out, "- Name:") || !strings.Contains(out, "Suggested questions:") {
		t.Fatalf("unexpected coach output without profile:\n%s", out)
	}

	setProfile(t, path)
	out = mustRun(t, "--db", path, "coach", "context")
	if !strings.Contains(out, "- Name: Asha") || !strings.Contains(out, "- Daily Calorie Goal: 2660 cal") {
		t.Fatalf("unexpected coach output:\n%s", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out := mustRun(t, "version")
	if !strings.Contains(out, "nutriguide") {
		t.Fatalf("unexpected version output %q", out)
	}
}
