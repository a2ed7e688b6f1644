package service

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/saadjs/caltrack/internal/logging"
	"github.com/saadjs/caltrack/internal/model"
	"github.com/saadjs/caltrack/internal/nutrition"
)

type DaySummary struct {
	Date      string               `json:"date"`
	Calories  int                  `json:"calories"`
	Entries   int                  `json:"entries"`
	Nutrients model.NutrientTotals `json:"nutrients"`
	Band      nutrition.Band       `json:"band"`
}

type Streak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

type AnalyticsReport struct {
	FromDate              string                 `json:"from_date"`
	ToDate                string                 `json:"to_date"`
	Goal                  int                    `json:"goal"`
	TotalCalories         int                    `json:"total_calories"`
	Nutrients             model.NutrientTotals   `json:"nutrients"`
	DaysWithEntries       int                    `json:"days_with_entries"`
	AverageCaloriesPerDay float64                `json:"avg_calories_per_day"`
	HighestDay            *DaySummary            `json:"highest_day,omitempty"`
	LowestDay             *DaySummary            `json:"lowest_day,omitempty"`
	BandCounts            map[nutrition.Band]int `json:"band_counts"`
	LoggingStreak         Streak                 `json:"logging_streak"`
	NotOverStreak         Streak                 `json:"not_over_streak"`
	Days                  []DaySummary           `json:"days"`
}

// Analytics summarizes the days between from and to (inclusive, either may
// be empty) against the current goal. Days are returned oldest first.
func Analytics(ctx context.Context, db *sql.DB, log logging.Logger, from, to string, loc *time.Location) (*AnalyticsReport, error) {
	if loc == nil {
		loc = time.Local
	}
	rows, err := loadRange(ctx, db, from, to, loc)
	if err != nil {
		return nil, err
	}
	goal, err := CurrentGoal(ctx, db, log)
	if err != nil {
		return nil, err
	}

	report := &AnalyticsReport{
		Goal:       goal.Resolution.Goal,
		BandCounts: map[nutrition.Band]int{},
		Days:       []DaySummary{},
	}
	buckets := nutrition.GroupByDay(rows, loc)
	for i := len(buckets) - 1; i >= 0; i-- {
		b := buckets[i]
		d := DaySummary{
			Date:      b.Date,
			Calories:  b.TotalCalories,
			Entries:   len(b.Entries),
			Nutrients: b.Nutrients,
			Band:      nutrition.Classify(float64(b.TotalCalories), float64(report.Goal)),
		}
		report.Days = append(report.Days, d)
		report.TotalCalories += d.Calories
		report.Nutrients = report.Nutrients.Add(d.Nutrients)
		report.BandCounts[d.Band]++
	}
	report.DaysWithEntries = len(report.Days)
	if report.DaysWithEntries > 0 {
		report.AverageCaloriesPerDay = float64(report.TotalCalories) / float64(report.DaysWithEntries)
		report.HighestDay, report.LowestDay = extremeDays(report.Days)
		report.FromDate = report.Days[0].Date
		report.ToDate = report.Days[len(report.Days)-1].Date
	}
	if from != "" {
		report.FromDate = from
	}
	if to != "" {
		report.ToDate = to
	}

	series := fillDaySeries(report.Days, report.FromDate, report.ToDate)
	report.LoggingStreak = computeStreak(series, func(d DaySummary) bool { return d.Entries > 0 })
	report.NotOverStreak = computeStreak(series, func(d DaySummary) bool {
		return d.Entries > 0 && d.Band != nutrition.BandDanger
	})
	return report, nil
}

// fillDaySeries inserts empty days so that streaks see gaps.
func fillDaySeries(days []DaySummary, from, to string) []DaySummary {
	if from == "" || to == "" {
		return days
	}
	start, err1 := time.Parse(nutrition.DateLayout, from)
	end, err2 := time.Parse(nutrition.DateLayout, to)
	if err1 != nil || err2 != nil || end.Before(start) {
		return days
	}
	byDate := make(map[string]DaySummary, len(days))
	for _, d := range days {
		byDate[d.Date] = d
	}
	out := make([]DaySummary, 0)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(nutrition.DateLayout)
		if d, ok := byDate[key]; ok {
			out = append(out, d)
			continue
		}
		out = append(out, DaySummary{Date: key})
	}
	return out
}

func computeStreak(days []DaySummary, predicate func(DaySummary) bool) Streak {
	var s Streak
	run := 0
	for i := range days {
		if predicate(days[i]) {
			run++
			if run > s.Longest {
				s.Longest = run
			}
			continue
		}
		run = 0
	}
	for i := len(days) - 1; i >= 0; i-- {
		if !predicate(days[i]) {
			break
		}
		s.Current++
	}
	return s
}

func extremeDays(days []DaySummary) (*DaySummary, *DaySummary) {
	if len(days) == 0 {
		return nil, nil
	}
	copied := make([]DaySummary, len(days))
	copy(copied, days)
	sort.SliceStable(copied, func(i, j int) bool {
		return copied[i].Calories < copied[j].Calories
	})
	low := copied[0]
	high := copied[len(copied)-1]
	return &high, &low
}
