package service

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/saadjs/caltrack/internal/common"
	"github.com/saadjs/caltrack/internal/dbx"
	"github.com/saadjs/caltrack/internal/logging"
	"github.com/saadjs/caltrack/internal/model"
)

const exportFormatVersion = 1

type ExportData struct {
	ExportID   string            `json:"export_id"`
	Version    int               `json:"version"`
	ExportedAt time.Time         `json:"exported_at"`
	Entries    []model.Entry     `json:"entries"`
	Profile    map[string]string `json:"profile"`
}

type ImportMode string

const (
	ImportModeFail  ImportMode = "fail"
	ImportModeSkip  ImportMode = "skip"
	ImportModeMerge ImportMode = "merge"
)

func ParseImportMode(s string) (ImportMode, error) {
	switch m := ImportMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ImportModeFail, ImportModeSkip, ImportModeMerge:
		return m, nil
	case "":
		return ImportModeMerge, nil
	}
	return "", fmt.Errorf("%w: import mode must be fail, skip or merge", common.ErrInvalidInput)
}

type ImportOptions struct {
	Mode   ImportMode
	DryRun bool
}

type ImportReport struct {
	Inserted  int      `json:"inserted"`
	Updated   int      `json:"updated"`
	Skipped   int      `json:"skipped"`
	Conflicts int      `json:"conflicts"`
	Warnings  []string `json:"warnings,omitempty"`
}

// importablePrefs are the preference keys an import may write. Derived goal
// keys are recomputed afterwards instead.
var importablePrefs = []string{
	model.PrefProfileMode,
	model.PrefManualGoal,
	model.PrefAge,
	model.PrefSex,
	model.PrefHeightCm,
	model.PrefWeightKg,
	model.PrefActivityLevel,
	model.PrefWeeklyWeightGoalKg,
	model.PrefLocale,
}

var errDryRun = errors.New("dry run")

func ExportDataSnapshot(ctx context.Context, db *sql.DB) (*ExportData, error) {
	rows, err := entryRepo(db).GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("export entries: %w", err)
	}
	// Oldest first reads naturally in a file.
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	prefs, err := prefRepo(db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("export profile: %w", err)
	}
	profile := make(map[string]string)
	for _, key := range importablePrefs {
		if v, ok := prefs[key]; ok {
			profile[key] = v
		}
	}
	return &ExportData{
		ExportID:   uuid.NewString(),
		Version:    exportFormatVersion,
		ExportedAt: Clock().UTC(),
		Entries:    rows,
		Profile:    profile,
	}, nil
}

// ImportDataSnapshot loads data in one transaction. An entry already present
// with the same name, created_at and amount is a duplicate: fail aborts,
// skip and merge leave the stored entry alone. For profile keys, merge
// overwrites, skip only fills unset keys and fail aborts on a differing value.
func ImportDataSnapshot(ctx context.Context, db *sql.DB, log logging.Logger, data *ExportData, opts ImportOptions) (ImportReport, error) {
	log = loggerOr(log)
	report := ImportReport{}
	if data == nil {
		return report, fmt.Errorf("%w: import data is empty", common.ErrInvalidInput)
	}
	if opts.Mode == "" {
		opts.Mode = ImportModeMerge
	}
	if _, err := ParseImportMode(string(opts.Mode)); err != nil {
		return report, err
	}

	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := entryRepo(tx)
		for idx, e := range data.Entries {
			exists, err := entryExists(ctx, tx, e)
			if err != nil {
				return err
			}
			if exists {
				if opts.Mode == ImportModeFail {
					report.Conflicts++
					return fmt.Errorf("import entry %q at %d: %w", e.Name, e.CreatedAt, common.ErrConflict)
				}
				report.Skipped++
				continue
			}
			if _, err := repo.Import(ctx, e); err != nil {
				if errors.Is(err, common.ErrInvalidInput) {
					report.Warnings = append(report.Warnings, fmt.Sprintf("entry[%d] %s", idx, err))
					report.Skipped++
					continue
				}
				return fmt.Errorf("import entry %q: %w", e.Name, err)
			}
			report.Inserted++
		}

		prefs := prefRepo(tx)
		profile, err := LoadProfile(ctx, prefs)
		if err != nil {
			return err
		}
		profileTouched := false
		for _, key := range importablePrefs {
			value, ok := data.Profile[key]
			if !ok || strings.TrimSpace(value) == "" {
				continue
			}
			current, exists, err := prefs.Get(ctx, key)
			if err != nil {
				return err
			}
			switch {
			case exists && current == value:
				report.Skipped++
				continue
			case exists && opts.Mode == ImportModeFail:
				report.Conflicts++
				return fmt.Errorf("import preference %q: %w", key, common.ErrConflict)
			case exists && opts.Mode == ImportModeSkip:
				report.Skipped++
				continue
			}
			if err := validateImportedPref(key, value); err != nil {
				report.Warnings = append(report.Warnings, fmt.Sprintf("profile[%s] %s", key, err))
				report.Skipped++
				continue
			}
			if u, ok := profileUpdateFor(key, value); ok {
				applyProfileUpdate(&profile, u)
				profileTouched = true
			} else if err := prefs.Set(ctx, key, value); err != nil {
				return err
			}
			if exists {
				report.Updated++
			} else {
				report.Inserted++
			}
		}
		if profileTouched {
			if _, err := saveProfileTx(ctx, tx, RecomputeGoal(profile)); err != nil {
				return err
			}
		}
		if opts.DryRun {
			return errDryRun
		}
		return nil
	})
	if errors.Is(err, errDryRun) {
		log.Info(ctx, "import dry run", "inserted", report.Inserted, "skipped", report.Skipped)
		return report, nil
	}
	if err != nil {
		return report, err
	}
	log.Info(ctx, "import finished", "export_id", data.ExportID, "inserted", report.Inserted,
		"updated", report.Updated, "skipped", report.Skipped)
	return report, nil
}

// validateImportedPref applies the same checks as profile and config edits.
func validateImportedPref(key, value string) error {
	if u, ok := profileUpdateFor(key, value); ok {
		return validateProfileUpdate(u)
	}
	if validate, ok := settableKeys[key]; ok {
		return validate(value)
	}
	return nil
}

func entryExists(ctx context.Context, tx dbx.DBTX, e model.Entry) (bool, error) {
	var n int
	err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM entries WHERE name = ? AND created_at = ? AND amount_g = ?`,
		strings.TrimSpace(e.Name), e.CreatedAt, e.AmountG).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("find existing entry %q: %w", e.Name, err)
	}
	return n > 0, nil
}

var csvHeader = []string{
	"name", "amount_g", "calories_per_100g", "protein_per_100g", "carbs_per_100g", "fat_per_100g",
	"saturated_fat_per_100g", "sugars_per_100g", "salt_per_100g", "created_at",
}

const csvTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// ExportEntriesCSV writes all entries, oldest first.
func ExportEntriesCSV(ctx context.Context, db *sql.DB, w io.Writer) (int, error) {
	data, err := ExportDataSnapshot(ctx, db)
	if err != nil {
		return 0, err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return 0, fmt.Errorf("write export csv header: %w", err)
	}
	for _, e := range data.Entries {
		record := []string{
			e.Name,
			formatFloat(e.AmountG),
			formatFloat(e.CaloriesPer100G),
			formatFloat(e.ProteinPer100G),
			formatFloat(e.CarbsPer100G),
			formatFloat(e.FatPer100G),
			formatFloat(e.SaturatedFatPer100G),
			formatFloat(e.SugarsPer100G),
			formatFloat(e.SaltPer100G),
			time.UnixMilli(e.CreatedAt).UTC().Format(csvTimeLayout),
		}
		if err := cw.Write(record); err != nil {
			return 0, fmt.Errorf("write export csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flush export csv: %w", err)
	}
	return len(data.Entries), nil
}

// ReadEntriesCSV parses a file written by ExportEntriesCSV. Columns are
// matched by header name; only name, amount_g, calories_per_100g and
// created_at are required.
func ReadEntriesCSV(r io.Reader) (*ExportData, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read import csv: %w", err)
	}
	if len(records) == 0 {
		return &ExportData{}, nil
	}
	cols := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"name", "amount_g", "calories_per_100g", "created_at"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: csv is missing column %q", common.ErrInvalidInput, required)
		}
	}

	out := &ExportData{Entries: make([]model.Entry, 0, len(records)-1)}
	for line, rec := range records[1:] {
		row := line + 2
		get := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		num := func(name string) (float64, error) {
			s := get(name)
			if s == "" {
				return 0, nil
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return 0, fmt.Errorf("%w: csv row %d: %s is not a number", common.ErrInvalidInput, row, name)
			}
			return v, nil
		}

		e := model.Entry{Name: get("name")}
		fields := []struct {
			col string
			dst *float64
		}{
			{"amount_g", &e.AmountG},
			{"calories_per_100g", &e.CaloriesPer100G},
			{"protein_per_100g", &e.ProteinPer100G},
			{"carbs_per_100g", &e.CarbsPer100G},
			{"fat_per_100g", &e.FatPer100G},
			{"saturated_fat_per_100g", &e.SaturatedFatPer100G},
			{"sugars_per_100g", &e.SugarsPer100G},
			{"salt_per_100g", &e.SaltPer100G},
		}
		for _, f := range fields {
			v, err := num(f.col)
			if err != nil {
				return nil, err
			}
			*f.dst = v
		}
		created, err := parseCSVTime(get("created_at"))
		if err != nil {
			return nil, fmt.Errorf("%w: csv row %d: %v", common.ErrInvalidInput, row, err)
		}
		e.CreatedAt = created
		out.Entries = append(out.Entries, e)
	}
	return out, nil
}

func parseCSVTime(s string) (int64, error) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ms, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return 0, fmt.Errorf("invalid created_at %q (use RFC3339 or unix milliseconds)", s)
	}
	return t.UnixMilli(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
