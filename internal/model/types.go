package model

import "time"

// EntryKind distinguishes the two kinds of intake log records.
type EntryKind string

const (
	KindMeal  EntryKind = "meal"
	KindDrink EntryKind = "drink"
)

// FastSession is one start-to-end interval of not eating. A nil EndTime
// marks the session as active; DurationHours is set exactly once when the
// session is closed.
type FastSession struct {
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	DurationHours *float64   `json:"duration_hours"`
}

// Active reports whether the session has not been ended yet.
func (s FastSession) Active() bool {
	return s.EndTime == nil
}

// LogEntry is a single meal or drink record. Calories may legitimately be
// unknown (nil).
type LogEntry struct {
	Kind        EntryKind `json:"kind"`
	Description string    `json:"description"`
	Calories    *int      `json:"calories"`
	Timestamp   time.Time `json:"timestamp"`
}

type ExerciseEntry struct {
	Description     string    `json:"description"`
	DurationMinutes float64   `json:"duration_minutes"`
	CaloriesBurned  *int      `json:"calories_burned"`
	Timestamp       time.Time `json:"timestamp"`
}

// WeightEntry records a body weight. The unit is implied by the configured
// unit system at the time of logging.
type WeightEntry struct {
	Weight    float64   `json:"weight"`
	Timestamp time.Time `json:"timestamp"`
}

// DailyAggregate is the derived per-day total of a calorie field. It is
// computed fresh on every read and never persisted. Representative is the
// date at local noon in UTC and exists purely as a stable sort key.
type DailyAggregate struct {
	Date           string    `json:"date"`
	Total          int       `json:"total"`
	Representative time.Time `json:"-"`
}

// FastStats summarizes completed fast sessions with a positive duration.
type FastStats struct {
	Count        int     `json:"count"`
	AverageHours float64 `json:"average_hours"`
	MaxHours     float64 `json:"max_hours"`
	MinHours     float64 `json:"min_hours"`
}
