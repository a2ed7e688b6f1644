package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/saadjs/caltrack/internal/logging"
	"github.com/saadjs/caltrack/internal/model"
	"github.com/saadjs/caltrack/internal/nutrition"
)

type TodayStatus struct {
	Date              string               `json:"date"`
	Entries           []EntryLine          `json:"entries"`
	ConsumedCalories  int                  `json:"consumed_calories"`
	Nutrients         model.NutrientTotals `json:"nutrients"`
	GoalCalories      int                  `json:"goal_calories"`
	GoalType          model.GoalType       `json:"goal_type"`
	Mode              model.Mode           `json:"mode"`
	InputsComplete    bool                 `json:"inputs_complete"`
	RemainingCalories int                  `json:"remaining_calories"`
	Percent           float64              `json:"percent"`
	Band              nutrition.Band       `json:"band"`
	InvalidEntries    int                  `json:"invalid_entries"`
}

// TodaySummary totals one calendar day (empty date means today in loc) against
// the active goal.
func TodaySummary(ctx context.Context, db *sql.DB, log logging.Logger, date string, loc *time.Location) (*TodayStatus, error) {
	log = loggerOr(log)
	if loc == nil {
		loc = time.Local
	}
	day, err := parseDay(date, loc)
	if err != nil {
		return nil, err
	}
	key := day.Format(nutrition.DateLayout)

	rows, err := entryRepo(db).GetForDay(ctx, key, loc)
	if err != nil {
		return nil, fmt.Errorf("today summary: %w", err)
	}
	goal, err := CurrentGoal(ctx, db, log)
	if err != nil {
		return nil, err
	}

	status := &TodayStatus{
		Date:           key,
		Entries:        []EntryLine{},
		GoalCalories:   goal.Resolution.Goal,
		GoalType:       goal.Resolution.Type,
		Mode:           goal.Profile.Mode,
		InputsComplete: goal.Resolution.Complete,
	}
	for _, b := range nutrition.GroupByDay(rows, loc) {
		for _, e := range b.Entries {
			if err := nutrition.ValidateEntry(e); err != nil {
				status.InvalidEntries++
				log.Warn(ctx, "entry counts as 0 kcal", "id", e.ID, "reason", err.Error())
			}
			line := lineFor(e)
			status.Entries = append(status.Entries, line)
			status.ConsumedCalories += line.Calories
			status.Nutrients = status.Nutrients.Add(line.Nutrients)
		}
	}
	status.RemainingCalories = status.GoalCalories - status.ConsumedCalories
	status.Percent = nutrition.Percent(float64(status.ConsumedCalories), float64(status.GoalCalories))
	status.Band = nutrition.Classify(float64(status.ConsumedCalories), float64(status.GoalCalories))
	return status, nil
}
