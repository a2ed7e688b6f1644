package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/saadjs/caltrack/internal/common"
	"github.com/saadjs/caltrack/internal/logging"
	"github.com/saadjs/caltrack/internal/model"
	"github.com/saadjs/caltrack/internal/nutrition"
)

// EntryLine is an entry with its derived values.
type EntryLine struct {
	model.Entry
	Calories  int                  `json:"calories"`
	Nutrients model.NutrientTotals `json:"nutrients"`
}

func lineFor(e model.Entry) EntryLine {
	return EntryLine{Entry: e, Calories: nutrition.CalculateCalories(e), Nutrients: nutrition.ScaleNutrients(e)}
}

func AddEntry(ctx context.Context, db *sql.DB, log logging.Logger, in model.NewEntry) (EntryLine, error) {
	log = loggerOr(log)
	e, err := entryRepo(db).Add(ctx, in)
	if err != nil {
		return EntryLine{}, fmt.Errorf("add entry: %w", err)
	}
	line := lineFor(e)
	if err := nutrition.ValidateEntry(e); err != nil {
		log.Warn(ctx, "entry counts as 0 kcal", "id", e.ID, "reason", err.Error())
	}
	log.Info(ctx, "entry added", "id", e.ID, "name", e.Name, "kcal", line.Calories)
	return line, nil
}

type ListEntriesFilter struct {
	// Date limits the list to one calendar day in Location.
	Date     string
	Location *time.Location
	Limit    int
}

// ListEntries returns entries newest first.
func ListEntries(ctx context.Context, db *sql.DB, filter ListEntriesFilter) ([]EntryLine, error) {
	if err := validateNonNegativeInt("limit", filter.Limit); err != nil {
		return nil, err
	}
	var (
		rows []model.Entry
		err  error
	)
	if filter.Date != "" {
		rows, err = entryRepo(db).GetForDay(ctx, filter.Date, filter.Location)
	} else {
		rows, err = entryRepo(db).GetAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	var out []EntryLine
	for _, b := range nutrition.GroupByDay(rows, filter.Location) {
		for _, e := range b.Entries {
			out = append(out, lineFor(e))
		}
	}
	if out == nil {
		out = []EntryLine{}
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func EntryByID(ctx context.Context, db *sql.DB, id int64) (EntryLine, error) {
	if id <= 0 {
		return EntryLine{}, fmt.Errorf("%w: entry id must be > 0", common.ErrInvalidInput)
	}
	e, err := entryRepo(db).GetByID(ctx, id)
	if err != nil {
		return EntryLine{}, err
	}
	return lineFor(e), nil
}

func DeleteEntry(ctx context.Context, db *sql.DB, log logging.Logger, id int64) error {
	if err := entryRepo(db).Delete(ctx, id); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	loggerOr(log).Info(ctx, "entry deleted", "id", id)
	return nil
}
