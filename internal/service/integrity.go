package service

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/saadjs/caltrack/internal/db"
	"github.com/saadjs/caltrack/internal/logging"
	"github.com/saadjs/caltrack/internal/nutrition"
)

type BackupInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
}

type DoctorReport struct {
	SchemaVersion      int64 `json:"schema_version"`
	Entries            int   `json:"entries"`
	ZeroCalorieEntries int   `json:"zero_calorie_entries"`
	DuplicateEntryRows int   `json:"duplicate_entry_rows"`
	StaleGoalCache     bool  `json:"stale_goal_cache"`
	FixedGoalCache     bool  `json:"fixed_goal_cache,omitempty"`
}

// Healthy reports whether nothing needs attention. Zero-calorie entries are
// informational: they are valid diary rows that count as 0 kcal.
func (r DoctorReport) Healthy() bool {
	return r.DuplicateEntryRows == 0 && !r.StaleGoalCache
}

// CreateBackup writes a consistent copy of the open database to outPath with
// a .sha256 sidecar.
func CreateBackup(ctx context.Context, sqldb *sql.DB, outPath string) (BackupInfo, error) {
	if strings.TrimSpace(outPath) == "" {
		return BackupInfo{}, fmt.Errorf("backup output path is required")
	}
	if _, err := os.Stat(outPath); err == nil {
		return BackupInfo{}, fmt.Errorf("backup %s already exists", outPath)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("create backup directory: %w", err)
	}
	if _, err := sqldb.ExecContext(ctx, `VACUUM INTO ?`, outPath); err != nil {
		return BackupInfo{}, fmt.Errorf("write backup: %w", err)
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
	return BackupInfo{Path: outPath, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()}, nil
}

// RestoreBackup verifies the sidecar checksum when present and copies the
// backup over dbPath. The target database must not be open.
func RestoreBackup(backupPath, dbPath string, force bool) error {
	if strings.TrimSpace(backupPath) == "" || strings.TrimSpace(dbPath) == "" {
		return fmt.Errorf("backup path and db path are required")
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
	return copyFile(backupPath, dbPath)
}

// ListBackups returns the .db files in dir, newest first. A missing dir has
// no backups.
func ListBackups(dir string) ([]BackupInfo, error) {
	files, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []BackupInfo{}, nil
	}
	if err != nil {
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
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// RunDoctor checks the diary for entries that count as 0 kcal, duplicate
// rows and a stale calculated goal cache. With fix, the cache is rewritten.
func RunDoctor(ctx context.Context, sqldb *sql.DB, log logging.Logger, fix bool) (DoctorReport, error) {
	log = loggerOr(log)
	report := DoctorReport{}

	version, err := db.SchemaVersion(ctx, sqldb)
	if err != nil {
		return report, fmt.Errorf("doctor schema check: %w", err)
	}
	report.SchemaVersion = version

	rows, err := entryRepo(sqldb).GetAll(ctx)
	if err != nil {
		return report, fmt.Errorf("doctor entry scan: %w", err)
	}
	report.Entries = len(rows)
	for _, e := range rows {
		if err := nutrition.ValidateEntry(e); err != nil {
			report.ZeroCalorieEntries++
			log.Debug(ctx, "entry counts as 0 kcal", "id", e.ID, "reason", err.Error())
		}
	}

	if err := sqldb.QueryRowContext(ctx, `
SELECT COALESCE(SUM(cnt-1),0) FROM (
  SELECT COUNT(*) AS cnt
  FROM entries
  GROUP BY name, created_at, amount_g
  HAVING cnt > 1
)
`).Scan(&report.DuplicateEntryRows); err != nil {
		return report, fmt.Errorf("doctor duplicate query: %w", err)
	}

	p, err := LoadProfile(ctx, prefRepo(sqldb))
	if err != nil {
		return report, err
	}
	fresh := RecomputeGoal(p)
	report.StaleGoalCache = !derivedEqual(p, fresh)
	if fix && report.StaleGoalCache {
		if _, err := SaveProfile(ctx, sqldb, fresh); err != nil {
			return report, fmt.Errorf("doctor fix goal cache: %w", err)
		}
		report.FixedGoalCache = true
		log.Info(ctx, "goal cache rewritten", "goal", fresh.CalculatedGoal, "type", fresh.ActiveGoalType)
	}
	return report, nil
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
