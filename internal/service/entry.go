package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/profullstack/fastlog/internal/model"
	"github.com/profullstack/fastlog/internal/storage"
)

// LogIntake appends a meal or drink entry. Calories may be nil when no
// estimate is available. A zero timestamp means now.
func LogIntake(ctx context.Context, store storage.Store, kind model.EntryKind, description string, calories *int, at time.Time) (model.LogEntry, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return model.LogEntry{}, fmt.Errorf("description is required")
	}
	if kind != model.KindMeal && kind != model.KindDrink {
		return model.LogEntry{}, fmt.Errorf("invalid entry kind %q (expected meal or drink)", kind)
	}
	if calories != nil && *calories < 0 {
		return model.LogEntry{}, fmt.Errorf("calories must be >= 0")
	}
	if at.IsZero() {
		at = time.Now()
	}
	return store.AppendEntry(ctx, model.LogEntry{
		Kind:        kind,
		Description: description,
		Calories:    calories,
		Timestamp:   at.UTC(),
	})
}

// LogExercise appends an exercise entry. CaloriesBurned may be nil.
func LogExercise(ctx context.Context, store storage.Store, description string, minutes float64, burned *int, at time.Time) (model.ExerciseEntry, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return model.ExerciseEntry{}, fmt.Errorf("description is required")
	}
	if minutes <= 0 {
		return model.ExerciseEntry{}, fmt.Errorf("duration must be > 0 minutes")
	}
	if burned != nil && *burned < 0 {
		return model.ExerciseEntry{}, fmt.Errorf("calories burned must be >= 0")
	}
	if at.IsZero() {
		at = time.Now()
	}
	return store.AppendExercise(ctx, model.ExerciseEntry{
		Description:     description,
		DurationMinutes: minutes,
		CaloriesBurned:  burned,
		Timestamp:       at.UTC(),
	})
}

// LogWeight appends a weight entry. The value is stored in the caller's
// configured unit system.
func LogWeight(ctx context.Context, store storage.Store, weight float64, at time.Time) (model.WeightEntry, error) {
	if weight <= 0 {
		return model.WeightEntry{}, fmt.Errorf("weight must be > 0")
	}
	if at.IsZero() {
		at = time.Now()
	}
	return store.AppendWeight(ctx, model.WeightEntry{
		Weight:    weight,
		Timestamp: at.UTC(),
	})
}

// TodayEntries returns today's meals and drinks in loc.
func TodayEntries(ctx context.Context, store storage.Store, loc *time.Location, now time.Time) ([]model.LogEntry, error) {
	entries, err := store.LoadEntries(ctx)
	if err != nil {
		return nil, err
	}
	return FilterToday(entries, loc, now), nil
}

// TodayExercises returns today's exercises in loc.
func TodayExercises(ctx context.Context, store storage.Store, loc *time.Location, now time.Time) ([]model.ExerciseEntry, error) {
	exercises, err := store.LoadExercises(ctx)
	if err != nil {
		return nil, err
	}
	return FilterTodayExercises(exercises, loc, now), nil
}

// CalorieHistory returns the chart-ready daily intake series.
func CalorieHistory(ctx context.Context, store storage.Store) ([]model.DailyAggregate, error) {
	entries, err := store.LoadEntries(ctx)
	if err != nil {
		return nil, err
	}
	return AggregateCalories(entries), nil
}

// ExerciseHistory returns the chart-ready daily burned-calorie series.
func ExerciseHistory(ctx context.Context, store storage.Store) ([]model.DailyAggregate, error) {
	exercises, err := store.LoadExercises(ctx)
	if err != nil {
		return nil, err
	}
	return AggregateExerciseCalories(exercises), nil
}
