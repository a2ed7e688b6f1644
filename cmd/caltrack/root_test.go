package caltrack

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/saadjs/caltrack/internal/nutrition"
	"github.com/saadjs/caltrack/internal/service"
)

// resetFlags restores every flag to its default so that values and Changed
// state do not leak between runs of the shared root command.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

type cliEnv struct {
	dbPath    string
	backupDir string
}

func newCLIEnv(t *testing.T) cliEnv {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	return cliEnv{dbPath: filepath.Join(dir, "caltrack.db"), backupDir: filepath.Join(dir, "backups")}
}

func (e cliEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--db", e.dbPath, "--backup-dir", e.backupDir, "--tz", "UTC"}, args...))
	err := rootCmd.Execute()
	return buf.String(), err
}

func (e cliEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, "", args...)
	if err != nil {
		t.Fatalf("caltrack %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestRootHelp(t *testing.T) {
	env := newCLIEnv(t)
	out := env.mustRun(t, "--help")
	if !strings.Contains(out, "caltrack") {
		t.Fatalf("expected help output, got %q", out)
	}
}

func TestInitCommandIdempotent(t *testing.T) {
	env := newCLIEnv(t)
	for i := 0; i < 2; i++ {
		out := env.mustRun(t, "init")
		if !strings.Contains(out, "schema v2") {
			t.Fatalf("init run %d: unexpected output %q", i+1, out)
		}
	}
}

func TestInvalidGlobalFlagsFail(t *testing.T) {
	env := newCLIEnv(t)
	if _, err := env.run(t, "", "--log-level", "loud", "today"); err == nil {
		t.Fatalf("expected invalid log level to fail")
	}
	if _, err := env.run(t, "", "--tz", "Mars/Base", "today"); err == nil {
		t.Fatalf("expected invalid time zone to fail")
	}
	if _, err := env.run(t, "", "--locale", "xx", "today"); err == nil {
		t.Fatalf("expected unsupported locale to fail")
	}
}

func TestEntryAddListShowDelete(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun(t, "entry", "add", "--name", "oats", "--amount", "50", "--kcal", "380", "--protein", "13")
	if !strings.Contains(out, "Added oats: 190 kcal (id 1)") {
		t.Fatalf("unexpected add output: %q", out)
	}
	env.mustRun(t, "entry", "add", "--name", "milk", "--amount", "1", "--unit", "cup", "--density", "1.03", "--kcal", "64")

	out = env.mustRun(t, "entry", "list", "--json")
	var lines []service.EntryLine
	if err := json.Unmarshal([]byte(out), &lines); err != nil {
		t.Fatalf("parse list json: %v\n%s", err, out)
	}
	if len(lines) != 2 || lines[0].Name != "milk" || lines[1].Calories != 190 {
		t.Fatalf("unexpected entries: %+v", lines)
	}
	if lines[0].AmountG < 243 || lines[0].AmountG > 244 {
		t.Fatalf("expected cup converted to grams, got %.2f", lines[0].AmountG)
	}

	out = env.mustRun(t, "entry", "show", "1")
	if !strings.Contains(out, "Protein: 6.5 g") {
		t.Fatalf("unexpected show output: %q", out)
	}

	env.mustRun(t, "entry", "delete", "1")
	if _, err := env.run(t, "", "entry", "show", "1"); err == nil {
		t.Fatalf("expected deleted entry lookup to fail")
	}
	if _, err := env.run(t, "", "entry", "delete", "0"); err == nil {
		t.Fatalf("expected non-positive id to fail")
	}
}

func TestEntryAddRejectsInvalidAmount(t *testing.T) {
	env := newCLIEnv(t)
	if _, err := env.run(t, "", "entry", "add", "--name", "x", "--amount", "-5", "--kcal", "100"); err == nil {
		t.Fatalf("expected negative amount to fail")
	}
	if _, err := env.run(t, "", "entry", "add", "--name", "x", "--amount", "1", "--unit", "cup", "--kcal", "100"); err == nil {
		t.Fatalf("expected volume unit without density to fail")
	}
}

func TestTodayAgainstManualGoal(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "profile", "set", "--manual-goal", "400")
	env.mustRun(t, "entry", "add", "--name", "pasta", "--amount", "250", "--kcal", "150")

	out := env.mustRun(t, "today", "--json")
	var status service.TodayStatus
	if err := json.Unmarshal([]byte(out), &status); err != nil {
		t.Fatalf("parse today json: %v\n%s", err, out)
	}
	if status.ConsumedCalories != 375 || status.GoalCalories != 400 || status.RemainingCalories != 25 {
		t.Fatalf("unexpected today totals: %+v", status)
	}
	if status.Band != nutrition.BandWarning {
		t.Fatalf("expected warning band at 93.75%%, got %s", status.Band)
	}

	out = env.mustRun(t, "today")
	for _, want := range []string{"Goal: 400 kcal (manual)", "Consumed: 375 kcal", "Remaining: 25 kcal", "Progress: 94% (warning)", "pasta"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in today output:\n%s", want, out)
		}
	}

	out = env.mustRun(t, "today", "--date", "2001-01-01")
	if !strings.Contains(out, "No entries for 2001-01-01") {
		t.Fatalf("expected empty day message, got:\n%s", out)
	}
	if _, err := env.run(t, "", "today", "--date", "01/02/2001"); err == nil {
		t.Fatalf("expected malformed date to fail")
	}
}

func TestProfileAdvancedGoal(t *testing.T) {
	env := newCLIEnv(t)
	out := env.mustRun(t, "profile", "set", "--mode", "advanced", "--age", "30", "--sex", "male",
		"--height", "180", "--weight", "80", "--activity", "moderate", "--weekly-goal", "0")
	if !strings.Contains(out, "Goal: 2,873 kcal (calculated)") {
		t.Fatalf("unexpected profile output:\n%s", out)
	}

	out = env.mustRun(t, "goal", "show", "--json")
	var view goalView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("parse goal json: %v\n%s", err, out)
	}
	if view.Goal != 2873 || view.GoalType != "calculated" || !view.InputsComplete {
		t.Fatalf("unexpected goal view: %+v", view)
	}

	out = env.mustRun(t, "profile", "mode", "simple")
	if !strings.Contains(out, "Goal: 2,000 kcal (manual)") {
		t.Fatalf("expected default manual goal in simple mode:\n%s", out)
	}

	out = env.mustRun(t, "profile", "show")
	if !strings.Contains(out, "Weight (kg): 80") || !strings.Contains(out, "Mode: simple") {
		t.Fatalf("expected advanced values kept after switching mode:\n%s", out)
	}

	if _, err := env.run(t, "", "profile", "set", "--sex", "robot"); err == nil {
		t.Fatalf("expected invalid sex to fail")
	}
	if _, err := env.run(t, "", "profile", "set"); err == nil {
		t.Fatalf("expected empty update to fail")
	}
}

func TestLocalePreferenceAndFlag(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "config", "set", "locale", "de")

	out := env.mustRun(t, "today")
	if !strings.Contains(out, "Datum:") || !strings.Contains(out, "Ziel: 2.000 kcal (manuell)") {
		t.Fatalf("expected german output:\n%s", out)
	}
	out = env.mustRun(t, "--locale", "en", "today")
	if !strings.Contains(out, "Date:") {
		t.Fatalf("expected --locale to win over stored preference:\n%s", out)
	}

	out = env.mustRun(t, "config", "get", "locale")
	if strings.TrimSpace(out) != "de" {
		t.Fatalf("unexpected config get output %q", out)
	}
	if _, err := env.run(t, "", "config", "set", "weight_kg", "80"); err == nil {
		t.Fatalf("expected profile key to be rejected by config set")
	}
	env.mustRun(t, "config", "set", "locale", "")
	if _, err := env.run(t, "", "config", "get", "locale"); err == nil {
		t.Fatalf("expected cleared locale to be unset")
	}
}

func TestHistoryAndAnalytics(t *testing.T) {
	env := newCLIEnv(t)
	out := env.mustRun(t, "history")
	if !strings.Contains(out, "No history yet") {
		t.Fatalf("expected empty history, got:\n%s", out)
	}

	env.mustRun(t, "entry", "add", "--name", "rice", "--amount", "200", "--kcal", "130")
	out = env.mustRun(t, "history", "--json")
	var report service.HistoryReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("parse history json: %v\n%s", err, out)
	}
	if len(report.Days) != 1 || report.Days[0].TotalCalories != 260 || report.Days[0].Band != nutrition.BandUnder {
		t.Fatalf("unexpected history: %+v", report)
	}

	out = env.mustRun(t, "analytics")
	if !strings.Contains(out, "Total: 260 kcal over 1 logged day(s)") || !strings.Contains(out, "Logging streak: 1") {
		t.Fatalf("unexpected analytics output:\n%s", out)
	}
	if _, err := env.run(t, "", "history", "--from", "2026-02-10", "--to", "2026-02-01"); err == nil {
		t.Fatalf("expected reversed range to fail")
	}
}

func TestExportImportJSONAndCSV(t *testing.T) {
	src := newCLIEnv(t)
	src.mustRun(t, "profile", "set", "--manual-goal", "1800")
	src.mustRun(t, "entry", "add", "--name", "apple", "--amount", "150", "--kcal", "52")
	src.mustRun(t, "entry", "add", "--name", "bread, rye", "--amount", "60", "--kcal", "259")

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "export.json")
	csvPath := filepath.Join(dir, "export.csv")
	if out := src.mustRun(t, "export", "--out", jsonPath); !strings.Contains(out, "Exported 2 entries") {
		t.Fatalf("unexpected export output %q", out)
	}
	src.mustRun(t, "export", "--format", "csv", "--out", csvPath)

	dst := newCLIEnv(t)
	out := dst.mustRun(t, "import", "--in", jsonPath, "--dry-run")
	if !strings.Contains(out, "Dry-run import validated") {
		t.Fatalf("unexpected dry-run output %q", out)
	}
	if out := dst.mustRun(t, "entry", "list"); strings.Count(out, "\n") != 1 {
		t.Fatalf("expected dry run to write nothing:\n%s", out)
	}

	out = dst.mustRun(t, "import", "--in", jsonPath)
	if !strings.Contains(out, "inserted=4") {
		t.Fatalf("unexpected import report %q", out)
	}
	if out := dst.mustRun(t, "goal", "show"); !strings.Contains(out, "Goal: 1,800 kcal (manual)") {
		t.Fatalf("expected imported manual goal:\n%s", out)
	}

	if _, err := dst.run(t, "", "import", "--in", csvPath, "--format", "csv", "--mode", "fail"); err == nil {
		t.Fatalf("expected fail mode to reject duplicate entries")
	}
	out = dst.mustRun(t, "import", "--in", csvPath, "--format", "csv", "--mode", "skip")
	if !strings.Contains(out, "inserted=0") || !strings.Contains(out, "skipped=2") {
		t.Fatalf("unexpected csv skip report %q", out)
	}

	if _, err := dst.run(t, "", "import", "--in", jsonPath, "--mode", "replace"); err == nil {
		t.Fatalf("expected unknown import mode to fail")
	}
	if _, err := dst.run(t, "", "export", "--format", "xml", "--out", filepath.Join(dir, "x")); err == nil {
		t.Fatalf("expected unknown export format to fail")
	}
}

func TestBackupCreateListRestore(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "entry", "add", "--name", "soup", "--amount", "300", "--kcal", "40")

	out := env.mustRun(t, "backup", "create")
	if !strings.Contains(out, "Created backup: "+env.backupDir) {
		t.Fatalf("unexpected backup output %q", out)
	}
	out = env.mustRun(t, "backup", "list")
	if strings.Count(out, "\n") != 2 {
		t.Fatalf("expected one backup listed:\n%s", out)
	}
	backups, err := service.ListBackups(env.backupDir)
	if err != nil || len(backups) != 1 {
		t.Fatalf("list backups: %v %+v", err, backups)
	}

	env.mustRun(t, "entry", "delete", "1")
	if _, err := env.run(t, "", "backup", "restore", "--file", backups[0].Path); err == nil {
		t.Fatalf("expected restore without --force to refuse existing db")
	}
	env.mustRun(t, "backup", "restore", "--file", backups[0].Path, "--force")
	if out := env.mustRun(t, "entry", "show", "1"); !strings.Contains(out, "Name: soup") {
		t.Fatalf("expected restored entry:\n%s", out)
	}
}

func TestVersion(t *testing.T) {
	env := newCLIEnv(t)
	if out := env.mustRun(t, "version"); !strings.HasPrefix(out, "caltrack ") {
		t.Fatalf("unexpected version output %q", out)
	}
}
