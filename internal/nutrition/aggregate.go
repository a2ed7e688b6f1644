package nutrition

import (
	"sort"
	"time"

	"github.com/saadjs/caltrack/internal/model"
)

const DateLayout = "2006-01-02"

// DayKey returns the calendar date of a unix-millisecond timestamp in loc.
// A nil loc means the local time zone.
func DayKey(createdAtMs int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(createdAtMs).In(loc).Format(DateLayout)
}

// GroupByDay buckets entries by the calendar day of CreatedAt in loc.
// Buckets come back newest day first and entries inside a bucket newest
// first. Totals are recomputed on every call and the input is not modified.
func GroupByDay(entries []model.Entry, loc *time.Location) []model.DailyBucket {
	if len(entries) == 0 {
		return []model.DailyBucket{}
	}

	index := make(map[string]int)
	buckets := make([]model.DailyBucket, 0)
	for _, e := range entries {
		key := DayKey(e.CreatedAt, loc)
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, model.DailyBucket{Date: key})
		}
		b := &buckets[i]
		b.Entries = append(b.Entries, e)
		b.TotalCalories += CalculateCalories(e)
		b.Nutrients = b.Nutrients.Add(ScaleNutrients(e))
	}

	for i := range buckets {
		sortNewestFirst(buckets[i].Entries)
	}
	// The key is fixed-width and zero padded, so string order is date order.
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Date > buckets[j].Date
	})
	return buckets
}

func sortNewestFirst(entries []model.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CreatedAt != entries[j].CreatedAt {
			return entries[i].CreatedAt > entries[j].CreatedAt
		}
		return entries[i].ID > entries[j].ID
	})
}
