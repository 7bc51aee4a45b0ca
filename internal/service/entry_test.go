package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/profullstack/fastlog/internal/model"
	"github.com/profullstack/fastlog/internal/service"
)

func TestLogIntakeValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := service.LogIntake(ctx, store, model.KindMeal, "   ", nil, time.Time{}); err == nil {
		t.Fatalf("expected empty description error")
	}
	if _, err := service.LogIntake(ctx, store, model.EntryKind("snack"), "chips", nil, time.Time{}); err == nil {
		t.Fatalf("expected invalid kind error")
	}
	if _, err := service.LogIntake(ctx, store, model.KindMeal, "chips", intPtr(-1), time.Time{}); err == nil {
		t.Fatalf("expected negative calories error")
	}

	entry, err := service.LogIntake(ctx, store, model.KindDrink, " green tea ", nil, time.Time{})
	if err != nil {
		t.Fatalf("log drink: %v", err)
	}
	if entry.Description != "green tea" {
		t.Fatalf("expected trimmed description, got %q", entry.Description)
	}
	if entry.Calories != nil {
		t.Fatalf("expected unknown calories to stay nil")
	}
	if entry.Timestamp.IsZero() || entry.Timestamp.Location() != time.UTC {
		t.Fatalf("expected a UTC timestamp, got %v", entry.Timestamp)
	}
}

func TestLogExerciseValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := service.LogExercise(ctx, store, "run", 0, nil, time.Time{}); err == nil {
		t.Fatalf("expected non-positive duration error")
	}
	if _, err := service.LogExercise(ctx, store, "run", -5, nil, time.Time{}); err == nil {
		t.Fatalf("expected negative duration error")
	}

	ex, err := service.LogExercise(ctx, store, "run", 32.5, intPtr(280), time.Time{})
	if err != nil {
		t.Fatalf("log exercise: %v", err)
	}
	if ex.DurationMinutes != 32.5 || *ex.CaloriesBurned != 280 {
		t.Fatalf("unexpected exercise entry: %+v", ex)
	}
}

func TestLogWeightValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := service.LogWeight(ctx, store, 0, time.Time{}); err == nil {
		t.Fatalf("expected non-positive weight error")
	}

	w, err := service.LogWeight(ctx, store, 82.4, time.Time{})
	if err != nil {
		t.Fatalf("log weight: %v", err)
	}
	if w.Weight != 82.4 {
		t.Fatalf("unexpected weight entry: %+v", w)
	}
}

func TestTodayEntriesAndCalorieHistory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2023, 12, 2, 10, 0, 0, 0, time.UTC)

	if _, err := service.LogIntake(ctx, store, model.KindMeal, "eggs", intPtr(400), now.Add(-1*time.Hour)); err != nil {
		t.Fatalf("log today's meal: %v", err)
	}
	if _, err := service.LogIntake(ctx, store, model.KindMeal, "pizza", intPtr(900), now.Add(-30*time.Hour)); err != nil {
		t.Fatalf("log yesterday's meal: %v", err)
	}

	today, err := service.TodayEntries(ctx, store, time.UTC, now)
	if err != nil {
		t.Fatalf("today entries: %v", err)
	}
	if len(today) != 1 || today[0].Description != "eggs" {
		t.Fatalf("expected only today's meal, got %+v", today)
	}

	history, err := service.CalorieHistory(ctx, store)
	if err != nil {
		t.Fatalf("calorie history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 aggregate days, got %d", len(history))
	}
	if history[0].Date != "2023-12-01" || history[0].Total != 900 {
		t.Fatalf("expected 2023-12-01 = 900 first, got %+v", history[0])
	}
	if history[1].Date != "2023-12-02" || history[1].Total != 400 {
		t.Fatalf("expected 2023-12-02 = 400 second, got %+v", history[1])
	}
}
