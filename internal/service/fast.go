package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/profullstack/fastlog/internal/model"
	"github.com/profullstack/fastlog/internal/storage"
)

var (
	// ErrActiveFastExists is returned by StartFast while a session is open.
	// A stale fast is never closed automatically.
	ErrActiveFastExists = errors.New("a fast is already in progress")

	// ErrNoActiveFast is returned by EndFast when no session is open.
	ErrNoActiveFast = errors.New("no fast is in progress")

	// ErrInvalidInterval is returned when the end time is not after the
	// active session's start time.
	ErrInvalidInterval = errors.New("end time must be after the fast's start time")
)

// StartFast opens a new fast session. A zero startAt means now. The start
// is stored as a UTC instant and returned.
func StartFast(ctx context.Context, store storage.Store, startAt time.Time) (time.Time, error) {
	fasts, err := store.LoadFasts(ctx)
	if err != nil {
		return time.Time{}, err
	}
	for _, f := range fasts {
		if f.Active() {
			return time.Time{}, fmt.Errorf("%w (started %s)", ErrActiveFastExists, f.StartTime.Local().Format("2006-01-02 15:04"))
		}
	}
	if startAt.IsZero() {
		startAt = time.Now()
	}
	startAt = startAt.UTC()
	if _, err := store.AppendFast(ctx, model.FastSession{StartTime: startAt}); err != nil {
		return time.Time{}, err
	}
	return startAt, nil
}

// EndFast closes the active session, computing its duration in hours
// rounded to one decimal, and returns the completed session. A zero endAt
// means now.
func EndFast(ctx context.Context, store storage.Store, endAt time.Time) (model.FastSession, error) {
	active, err := CurrentFast(ctx, store)
	if err != nil {
		return model.FastSession{}, err
	}
	if active == nil {
		return model.FastSession{}, ErrNoActiveFast
	}
	if endAt.IsZero() {
		endAt = time.Now()
	}
	endAt = endAt.UTC()
	if !endAt.After(active.StartTime) {
		return model.FastSession{}, fmt.Errorf("%w (started %s)", ErrInvalidInterval, active.StartTime.Local().Format("2006-01-02 15:04"))
	}

	hours := round1(endAt.Sub(active.StartTime).Hours())
	if err := store.UpdateActiveFast(ctx, storage.FastPatch{EndTime: endAt, DurationHours: hours}); err != nil {
		return model.FastSession{}, err
	}

	done := *active
	done.EndTime = &endAt
	done.DurationHours = &hours
	return done, nil
}

// CurrentFast returns the session with no end time, or nil.
func CurrentFast(ctx context.Context, store storage.Store) (*model.FastSession, error) {
	fasts, err := store.LoadFasts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range fasts {
		if fasts[i].Active() {
			return &fasts[i], nil
		}
	}
	return nil, nil
}

// FastHistory returns all completed sessions, oldest first. The backends
// promise no particular load order, so it sorts defensively.
func FastHistory(ctx context.Context, store storage.Store) ([]model.FastSession, error) {
	fasts, err := store.LoadFasts(ctx)
	if err != nil {
		return nil, err
	}
	done := make([]model.FastSession, 0, len(fasts))
	for _, f := range fasts {
		if !f.Active() {
			done = append(done, f)
		}
	}
	sort.Slice(done, func(i, j int) bool {
		return done[i].StartTime.Before(done[j].StartTime)
	})
	return done, nil
}

// FastStats summarizes completed sessions with a positive duration.
// Sessions with a non-positive duration are excluded as invalid data, not
// corrected. With no valid sessions every field is zero.
func FastStats(ctx context.Context, store storage.Store) (model.FastStats, error) {
	done, err := FastHistory(ctx, store)
	if err != nil {
		return model.FastStats{}, err
	}

	var stats model.FastStats
	var sum float64
	for _, f := range done {
		if f.DurationHours == nil || *f.DurationHours <= 0 {
			continue
		}
		h := *f.DurationHours
		if stats.Count == 0 || h > stats.MaxHours {
			stats.MaxHours = h
		}
		if stats.Count == 0 || h < stats.MinHours {
			stats.MinHours = h
		}
		sum += h
		stats.Count++
	}
	if stats.Count > 0 {
		stats.AverageHours = round1(sum / float64(stats.Count))
	}
	return stats, nil
}

// ParseTimestamp parses an explicit start/end time. It accepts a date+time
// form or a time-only form that is combined with today's local date.
func ParseTimestamp(s string, now time.Time) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("15:04", s, time.Local); err == nil {
		y, m, d := now.Local().Date()
		return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, time.Local), nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q (expected \"YYYY-MM-DD HH:MM\" or \"HH:MM\")", s)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
