package service_test

import (
	"testing"
	"time"

	"github.com/profullstack/fastlog/internal/model"
	"github.com/profullstack/fastlog/internal/service"
)

func TestAggregateCaloriesSumsByUTCDate(t *testing.T) {
	day := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)
	entries := []model.LogEntry{
		{Kind: model.KindMeal, Description: "oatmeal", Calories: intPtr(400), Timestamp: day.Add(8 * time.Hour)},
		{Kind: model.KindDrink, Description: "latte", Calories: intPtr(50), Timestamp: day.Add(9 * time.Hour)},
		{Kind: model.KindMeal, Description: "pasta", Calories: intPtr(600), Timestamp: day.Add(19 * time.Hour)},
		{Kind: model.KindDrink, Description: "water", Calories: nil, Timestamp: day.Add(12 * time.Hour)},
	}

	got := service.AggregateCalories(entries)
	if len(got) != 1 {
		t.Fatalf("expected 1 aggregate, got %d", len(got))
	}
	if got[0].Date != "2023-12-01" || got[0].Total != 1050 {
		t.Fatalf("expected 2023-12-01 = 1050, got %+v", got[0])
	}
}

func TestAggregateCaloriesNullOnlyDayCreatesNoGroup(t *testing.T) {
	entries := []model.LogEntry{
		{Kind: model.KindDrink, Description: "water", Timestamp: time.Date(2023, 12, 1, 10, 0, 0, 0, time.UTC)},
		{Kind: model.KindMeal, Description: "soup", Calories: intPtr(200), Timestamp: time.Date(2023, 12, 2, 10, 0, 0, 0, time.UTC)},
	}
	got := service.AggregateCalories(entries)
	if len(got) != 1 {
		t.Fatalf("expected the null-only day to be absent, got %+v", got)
	}
	if got[0].Date != "2023-12-02" {
		t.Fatalf("expected 2023-12-02, got %s", got[0].Date)
	}
}

func TestAggregateCaloriesBucketsByUTCNotLocalDate(t *testing.T) {
	// 2023-12-01 23:30 UTC is already 2023-12-02 in Tokyo; the aggregator
	// must still bucket it under the UTC date.
	entries := []model.LogEntry{
		{Kind: model.KindMeal, Description: "late snack", Calories: intPtr(150), Timestamp: time.Date(2023, 12, 1, 23, 30, 0, 0, time.UTC)},
	}
	got := service.AggregateCalories(entries)
	if len(got) != 1 || got[0].Date != "2023-12-01" {
		t.Fatalf("expected UTC-date bucket 2023-12-01, got %+v", got)
	}
}

func TestAggregateSortsAscendingByRepresentative(t *testing.T) {
	entries := []model.LogEntry{
		{Kind: model.KindMeal, Calories: intPtr(500), Timestamp: time.Date(2023, 12, 3, 9, 0, 0, 0, time.UTC)},
		{Kind: model.KindMeal, Calories: intPtr(300), Timestamp: time.Date(2023, 12, 1, 9, 0, 0, 0, time.UTC)},
		{Kind: model.KindMeal, Calories: intPtr(400), Timestamp: time.Date(2023, 12, 2, 9, 0, 0, 0, time.UTC)},
	}
	got := service.AggregateCalories(entries)
	if len(got) != 3 {
		t.Fatalf("expected 3 aggregates, got %d", len(got))
	}
	for i, date := range []string{"2023-12-01", "2023-12-02", "2023-12-03"} {
		if got[i].Date != date {
			t.Fatalf("expected %s at index %d, got %s", date, i, got[i].Date)
		}
	}
	noon := time.Date(2023, 12, 1, 12, 0, 0, 0, time.UTC)
	if !got[0].Representative.Equal(noon) {
		t.Fatalf("expected noon-UTC sort key, got %v", got[0].Representative)
	}
}

func TestAggregateExerciseCalories(t *testing.T) {
	day := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)
	exercises := []model.ExerciseEntry{
		{Description: "run", DurationMinutes: 30, CaloriesBurned: intPtr(320), Timestamp: day.Add(7 * time.Hour)},
		{Description: "walk", DurationMinutes: 20, CaloriesBurned: nil, Timestamp: day.Add(12 * time.Hour)},
		{Description: "lift", DurationMinutes: 45, CaloriesBurned: intPtr(180), Timestamp: day.Add(18 * time.Hour)},
	}
	got := service.AggregateExerciseCalories(exercises)
	if len(got) != 1 || got[0].Total != 500 {
		t.Fatalf("expected one 500-calorie day, got %+v", got)
	}
}

func TestFilterTodayIsTimezoneAware(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	// 23:30 UTC Dec 1 = 08:30 Dec 2 in Tokyo.
	lateUTC := time.Date(2023, 12, 1, 23, 30, 0, 0, time.UTC)
	morningUTC := time.Date(2023, 12, 1, 9, 0, 0, 0, time.UTC)
	entries := []model.LogEntry{
		{Kind: model.KindMeal, Description: "breakfast in tokyo", Timestamp: lateUTC},
		{Kind: model.KindMeal, Description: "yesterday in tokyo", Timestamp: morningUTC},
	}

	now := time.Date(2023, 12, 2, 1, 0, 0, 0, time.UTC) // Dec 2 in Tokyo
	got := service.FilterToday(entries, tokyo, now)
	if len(got) != 1 || got[0].Description != "breakfast in tokyo" {
		t.Fatalf("expected only the Tokyo-Dec-2 entry, got %+v", got)
	}

	// The same instant filtered in UTC picks up neither entry on Dec 2.
	got = service.FilterToday(entries, time.UTC, now)
	if len(got) != 0 {
		t.Fatalf("expected no UTC-Dec-2 entries, got %+v", got)
	}
}

func TestFilterTodayExercises(t *testing.T) {
	now := time.Date(2023, 12, 2, 10, 0, 0, 0, time.UTC)
	exercises := []model.ExerciseEntry{
		{Description: "today", DurationMinutes: 10, Timestamp: now.Add(-2 * time.Hour)},
		{Description: "yesterday", DurationMinutes: 10, Timestamp: now.Add(-26 * time.Hour)},
	}
	got := service.FilterTodayExercises(exercises, time.UTC, now)
	if len(got) != 1 || got[0].Description != "today" {
		t.Fatalf("expected only today's exercise, got %+v", got)
	}
}
