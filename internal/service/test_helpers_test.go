package service_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/saadjs/caltrack/internal/db"
	"github.com/saadjs/caltrack/internal/model"
	"github.com/saadjs/caltrack/internal/repositories/entries"
	"github.com/saadjs/caltrack/internal/repositories/preferences"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "caltrack.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })
	if err := db.Migrate(context.Background(), sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

func seedEntry(t *testing.T, sqldb *sql.DB, name string, amount, density float64, at time.Time) model.Entry {
	t.Helper()
	repo := entries.NewSQLiteRepository(sqldb, func() time.Time { return at })
	e, err := repo.Add(context.Background(), model.NewEntry{Name: name, AmountG: amount, CaloriesPer100G: density})
	if err != nil {
		t.Fatalf("seed entry %s: %v", name, err)
	}
	return e
}

func setPref(t *testing.T, sqldb *sql.DB, key, value string) {
	t.Helper()
	if err := preferences.NewSQLiteRepository(sqldb).Set(context.Background(), key, value); err != nil {
		t.Fatalf("set preference %s: %v", key, err)
	}
}

func getPref(t *testing.T, sqldb *sql.DB, key string) (string, bool) {
	t.Helper()
	v, ok, err := preferences.NewSQLiteRepository(sqldb).Get(context.Background(), key)
	if err != nil {
		t.Fatalf("get preference %s: %v", key, err)
	}
	return v, ok
}

func ptr(s string) *string { return &s }

func utc(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", value, time.UTC)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return ts
}
