package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/saadjs/caltrack/internal/common"
	"github.com/saadjs/caltrack/internal/model"
	"github.com/saadjs/caltrack/internal/service"
)

func TestAddEntryDerivesCalories(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()

	line, err := service.AddEntry(ctx, db, nil, model.NewEntry{Name: "pasta", AmountG: 250, CaloriesPer100G: 37, ProteinPer100G: 5})
	if err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if line.ID <= 0 || line.Calories != 93 || line.Nutrients.ProteinG != 12.5 {
		t.Fatalf("unexpected entry line: %+v", line)
	}

	got, err := service.EntryByID(ctx, db, line.ID)
	if err != nil {
		t.Fatalf("entry by id: %v", err)
	}
	if got.Name != "pasta" || got.Calories != 93 {
		t.Fatalf("unexpected entry: %+v", got)
	}
}

func TestAddEntryRejectsInvalidInput(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	_, err := service.AddEntry(context.Background(), db, nil, model.NewEntry{Name: "x", AmountG: -5, CaloriesPer100G: 10})
	if !errors.Is(err, common.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestListEntriesByDayAndLimit(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()

	seedEntry(t, db, "a", 100, 100, utc(t, "2026-02-19 08:00"))
	seedEntry(t, db, "b", 100, 100, utc(t, "2026-02-20 08:00"))
	seedEntry(t, db, "c", 100, 100, utc(t, "2026-02-20 09:00"))

	day, err := service.ListEntries(ctx, db, service.ListEntriesFilter{Date: "2026-02-20", Location: time.UTC})
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(day) != 2 || day[0].Name != "c" {
		t.Fatalf("unexpected day entries: %+v", day)
	}

	limited, err := service.ListEntries(ctx, db, service.ListEntriesFilter{Limit: 1, Location: time.UTC})
	if err != nil {
		t.Fatalf("list entries with limit: %v", err)
	}
	if len(limited) != 1 || limited[0].Name != "c" {
		t.Fatalf("unexpected limited entries: %+v", limited)
	}
}

func TestDeleteEntry(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()

	e := seedEntry(t, db, "a", 100, 100, utc(t, "2026-02-19 08:00"))
	if err := service.DeleteEntry(ctx, db, nil, e.ID); err != nil {
		t.Fatalf("delete entry: %v", err)
	}
	if _, err := service.EntryByID(ctx, db, e.ID); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := service.DeleteEntry(ctx, db, nil, e.ID); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestConfigOnlyAcceptsKnownKeys(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()

	if err := service.SetConfig(ctx, db, "Locale", "DE"); err != nil {
		t.Fatalf("set locale: %v", err)
	}
	if v, ok, err := service.GetConfig(ctx, db, "locale"); err != nil || !ok || v != "de" {
		t.Fatalf("expected locale de, got %q %v %v", v, ok, err)
	}
	if err := service.SetConfig(ctx, db, "locale", "fr"); !errors.Is(err, common.ErrInvalidInput) {
		t.Fatalf("expected unsupported locale error, got %v", err)
	}
	if err := service.SetConfig(ctx, db, "age", "30"); !errors.Is(err, common.ErrInvalidInput) {
		t.Fatalf("expected profile keys to be refused, got %v", err)
	}
	if err := service.SetConfig(ctx, db, "locale", ""); err != nil {
		t.Fatalf("clear locale: %v", err)
	}
	if _, ok, _ := service.GetConfig(ctx, db, "locale"); ok {
		t.Fatalf("expected locale cleared")
	}
}
