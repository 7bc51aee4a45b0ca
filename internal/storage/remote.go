package storage

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/profullstack/fastlog/internal/model"
)

// RemoteStore persists every collection in a hosted Postgres database, one
// table per collection. Timestamps are stored as RFC3339 text in UTC so
// lexicographic and chronological order agree. Loads are ordered by
// timestamp ascending.
type RemoteStore struct {
	db *sql.DB
}

// BuildDSN combines the configured endpoint (a postgres:// URL) with the
// credential, injected as the URL password. An empty credential leaves the
// endpoint untouched.
func BuildDSN(endpoint, credential string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid remote endpoint %q: %w", endpoint, err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return "", fmt.Errorf("invalid remote endpoint %q: expected a postgres:// URL", endpoint)
	}
	if credential != "" {
		user := "postgres"
		if u.User != nil && u.User.Username() != "" {
			user = u.User.Username()
		}
		u.User = url.UserPassword(user, credential)
	}
	return u.String(), nil
}

// OpenRemote connects to the remote database. Connectivity and auth
// failures wrap ErrUnavailable; nothing is retried.
func OpenRemote(ctx context.Context, endpoint, credential string) (*RemoteStore, error) {
	dsn, err := BuildDSN(endpoint, credential)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open remote database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to remote database: %w: %w", ErrUnavailable, err)
	}
	return &RemoteStore{db: db}, nil
}

// NewRemote wraps an already-open database handle. Used by tests and by
// init to run against a prepared connection.
func NewRemote(db *sql.DB) *RemoteStore {
	return &RemoteStore{db: db}
}

// Close releases the underlying connection pool.
func (s *RemoteStore) Close() error {
	return s.db.Close()
}

func tableFor(c Collection) (string, error) {
	switch c {
	case CollectionFasts, CollectionEntries, CollectionWeights, CollectionExercises:
		return string(c), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCollection, c)
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored timestamp %q: %w", raw, err)
	}
	return t, nil
}

func (s *RemoteStore) LoadFasts(ctx context.Context) ([]model.FastSession, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT start_time, end_time, duration_hours FROM fasts ORDER BY start_time ASC`)
	if err != nil {
		return nil, fmt.Errorf("load fasts: %w: %w", ErrUnavailable, err)
	}
	defer rows.Close()

	fasts := make([]model.FastSession, 0)
	for rows.Next() {
		var f model.FastSession
		var startRaw string
		var endRaw sql.NullString
		var duration sql.NullFloat64
		if err := rows.Scan(&startRaw, &endRaw, &duration); err != nil {
			return nil, fmt.Errorf("scan fast: %w", err)
		}
		if f.StartTime, err = parseTime(startRaw); err != nil {
			return nil, err
		}
		if endRaw.Valid {
			end, err := parseTime(endRaw.String)
			if err != nil {
				return nil, err
			}
			f.EndTime = &end
		}
		if duration.Valid {
			v := duration.Float64
			f.DurationHours = &v
		}
		fasts = append(fasts, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fasts: %w: %w", ErrUnavailable, err)
	}
	return fasts, nil
}

func (s *RemoteStore) AppendFast(ctx context.Context, f model.FastSession) (model.FastSession, error) {
	var endRaw any
	var duration any
	if f.EndTime != nil {
		endRaw = formatTime(*f.EndTime)
	}
	if f.DurationHours != nil {
		duration = *f.DurationHours
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO fasts(start_time, end_time, duration_hours) VALUES($1, $2, $3)`,
		formatTime(f.StartTime), endRaw, duration)
	if err != nil {
		return model.FastSession{}, fmt.Errorf("append fast: %w: %w", ErrUnavailable, err)
	}
	return f, nil
}

// UpdateActiveFast closes the open session in a single statement, filtered
// by end_time IS NULL, so two racing invocations cannot both close it.
// Returns ErrNotFound when no session is open.
func (s *RemoteStore) UpdateActiveFast(ctx context.Context, p FastPatch) error {
	res, err := s.db.ExecContext(ctx, `
UPDATE fasts SET end_time = $1, duration_hours = $2 WHERE end_time IS NULL`,
		formatTime(p.EndTime), p.DurationHours)
	if err != nil {
		return fmt.Errorf("update active fast: %w: %w", ErrUnavailable, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no active fast to update: %w", ErrNotFound)
	}
	return nil
}

func (s *RemoteStore) LoadEntries(ctx context.Context) ([]model.LogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT kind, description, calories, timestamp FROM entries ORDER BY timestamp ASC`)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w: %w", ErrUnavailable, err)
	}
	defer rows.Close()

	entries := make([]model.LogEntry, 0)
	for rows.Next() {
		var e model.LogEntry
		var kind string
		var calories sql.NullInt64
		var tsRaw string
		if err := rows.Scan(&kind, &e.Description, &calories, &tsRaw); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Kind = model.EntryKind(kind)
		if calories.Valid {
			v := int(calories.Int64)
			e.Calories = &v
		}
		if e.Timestamp, err = parseTime(tsRaw); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w: %w", ErrUnavailable, err)
	}
	return entries, nil
}

func (s *RemoteStore) AppendEntry(ctx context.Context, e model.LogEntry) (model.LogEntry, error) {
	var calories any
	if e.Calories != nil {
		calories = *e.Calories
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO entries(kind, description, calories, timestamp) VALUES($1, $2, $3, $4)`,
		string(e.Kind), e.Description, calories, formatTime(e.Timestamp))
	if err != nil {
		return model.LogEntry{}, fmt.Errorf("append entry: %w: %w", ErrUnavailable, err)
	}
	return e, nil
}

func (s *RemoteStore) LoadWeights(ctx context.Context) ([]model.WeightEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT weight, timestamp FROM weights ORDER BY timestamp ASC`)
	if err != nil {
		return nil, fmt.Errorf("load weights: %w: %w", ErrUnavailable, err)
	}
	defer rows.Close()

	weights := make([]model.WeightEntry, 0)
	for rows.Next() {
		var w model.WeightEntry
		var tsRaw string
		if err := rows.Scan(&w.Weight, &tsRaw); err != nil {
			return nil, fmt.Errorf("scan weight: %w", err)
		}
		if w.Timestamp, err = parseTime(tsRaw); err != nil {
			return nil, err
		}
		weights = append(weights, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate weights: %w: %w", ErrUnavailable, err)
	}
	return weights, nil
}

func (s *RemoteStore) AppendWeight(ctx context.Context, w model.WeightEntry) (model.WeightEntry, error) {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO weights(weight, timestamp) VALUES($1, $2)`,
		w.Weight, formatTime(w.Timestamp))
	if err != nil {
		return model.WeightEntry{}, fmt.Errorf("append weight: %w: %w", ErrUnavailable, err)
	}
	return w, nil
}

func (s *RemoteStore) LoadExercises(ctx context.Context) ([]model.ExerciseEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT description, duration_minutes, calories_burned, timestamp FROM exercises ORDER BY timestamp ASC`)
	if err != nil {
		return nil, fmt.Errorf("load exercises: %w: %w", ErrUnavailable, err)
	}
	defer rows.Close()

	exercises := make([]model.ExerciseEntry, 0)
	for rows.Next() {
		var e model.ExerciseEntry
		var burned sql.NullInt64
		var tsRaw string
		if err := rows.Scan(&e.Description, &e.DurationMinutes, &burned, &tsRaw); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		if burned.Valid {
			v := int(burned.Int64)
			e.CaloriesBurned = &v
		}
		if e.Timestamp, err = parseTime(tsRaw); err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exercises: %w: %w", ErrUnavailable, err)
	}
	return exercises, nil
}

func (s *RemoteStore) AppendExercise(ctx context.Context, e model.ExerciseEntry) (model.ExerciseEntry, error) {
	var burned any
	if e.CaloriesBurned != nil {
		burned = *e.CaloriesBurned
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO exercises(description, duration_minutes, calories_burned, timestamp) VALUES($1, $2, $3, $4)`,
		e.Description, e.DurationMinutes, burned, formatTime(e.Timestamp))
	if err != nil {
		return model.ExerciseEntry{}, fmt.Errorf("append exercise: %w: %w", ErrUnavailable, err)
	}
	return e, nil
}

func (s *RemoteStore) Clear(ctx context.Context, c Collection) error {
	table, err := tableFor(c)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM `+table); err != nil {
		return fmt.Errorf("clear %s: %w: %w", table, ErrUnavailable, err)
	}
	return nil
}

func (s *RemoteStore) ClearAll(ctx context.Context) error {
	for _, c := range Collections {
		if err := s.Clear(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
