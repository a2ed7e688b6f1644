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

type HistoryFilter struct {
	// From and To are inclusive YYYY-MM-DD dates; either may be empty.
	From string
	To   string
	// Limit caps the number of days returned; 0 means all.
	Limit int
}

type HistoryDay struct {
	model.DailyBucket
	Band nutrition.Band `json:"band"`
}

type HistoryReport struct {
	Goal     int            `json:"goal"`
	GoalType model.GoalType `json:"goal_type"`
	Days     []HistoryDay   `json:"days"`
}

// History groups entries into calendar days of loc, newest first, and bands
// each day against the current goal.
func History(ctx context.Context, db *sql.DB, log logging.Logger, filter HistoryFilter, loc *time.Location) (*HistoryReport, error) {
	if loc == nil {
		loc = time.Local
	}
	if err := validateNonNegativeInt("limit", filter.Limit); err != nil {
		return nil, err
	}
	rows, err := loadRange(ctx, db, filter.From, filter.To, loc)
	if err != nil {
		return nil, err
	}
	goal, err := CurrentGoal(ctx, db, log)
	if err != nil {
		return nil, err
	}

	buckets := nutrition.GroupByDay(rows, loc)
	if filter.Limit > 0 && len(buckets) > filter.Limit {
		buckets = buckets[:filter.Limit]
	}
	report := &HistoryReport{Goal: goal.Resolution.Goal, GoalType: goal.Resolution.Type, Days: make([]HistoryDay, 0, len(buckets))}
	for _, b := range buckets {
		report.Days = append(report.Days, HistoryDay{
			DailyBucket: b,
			Band:        nutrition.Classify(float64(b.TotalCalories), float64(goal.Resolution.Goal)),
		})
	}
	return report, nil
}

// loadRange reads entries between two inclusive calendar dates of loc.
func loadRange(ctx context.Context, db *sql.DB, from, to string, loc *time.Location) ([]model.Entry, error) {
	if from == "" && to == "" {
		rows, err := entryRepo(db).GetAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("load history: %w", err)
		}
		return rows, nil
	}
	start := time.UnixMilli(0)
	if from != "" {
		t, err := parseDay(from, loc)
		if err != nil {
			return nil, err
		}
		start = t
	}
	end := time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)
	if to != "" {
		t, err := parseDay(to, loc)
		if err != nil {
			return nil, err
		}
		end = t.AddDate(0, 0, 1)
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: from date must be <= to date", common.ErrInvalidInput)
	}
	rows, err := entryRepo(db).GetRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return rows, nil
}
