package service

import (
	"sort"
	"time"

	"github.com/profullstack/fastlog/internal/model"
)

// AggregateCalories rolls meal/drink entries into one total per day.
//
// Days are the UTC calendar date of the stored timestamp, not the
// configured timezone; the today filters below are timezone-aware. The
// mismatch is inherited behavior kept on purpose, since changing it would
// move entries across days near timezone boundaries. Entries with unknown
// calories neither contribute to a sum nor create a day.
func AggregateCalories(entries []model.LogEntry) []model.DailyAggregate {
	totals := make(map[string]int)
	for _, e := range entries {
		if e.Calories == nil {
			continue
		}
		totals[e.Timestamp.UTC().Format("2006-01-02")] += *e.Calories
	}
	return sortedAggregates(totals)
}

// AggregateExerciseCalories is AggregateCalories over burned calories.
func AggregateExerciseCalories(entries []model.ExerciseEntry) []model.DailyAggregate {
	totals := make(map[string]int)
	for _, e := range entries {
		if e.CaloriesBurned == nil {
			continue
		}
		totals[e.Timestamp.UTC().Format("2006-01-02")] += *e.CaloriesBurned
	}
	return sortedAggregates(totals)
}

// sortedAggregates attaches the noon-UTC sort key to each day and orders
// the series ascending.
func sortedAggregates(totals map[string]int) []model.DailyAggregate {
	out := make([]model.DailyAggregate, 0, len(totals))
	for date, total := range totals {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			continue
		}
		out = append(out, model.DailyAggregate{
			Date:           date,
			Total:          total,
			Representative: time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, time.UTC),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Representative.Before(out[j].Representative)
	})
	return out
}

// FilterToday keeps entries whose timestamp falls on now's calendar date
// in loc.
func FilterToday(entries []model.LogEntry, loc *time.Location, now time.Time) []model.LogEntry {
	today := now.In(loc).Format("2006-01-02")
	out := make([]model.LogEntry, 0)
	for _, e := range entries {
		if e.Timestamp.In(loc).Format("2006-01-02") == today {
			out = append(out, e)
		}
	}
	return out
}

// FilterTodayExercises is FilterToday over exercise entries.
func FilterTodayExercises(entries []model.ExerciseEntry, loc *time.Location, now time.Time) []model.ExerciseEntry {
	today := now.In(loc).Format("2006-01-02")
	out := make([]model.ExerciseEntry, 0)
	for _, e := range entries {
		if e.Timestamp.In(loc).Format("2006-01-02") == today {
			out = append(out, e)
		}
	}
	return out
}
