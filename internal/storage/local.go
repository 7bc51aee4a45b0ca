package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/profullstack/fastlog/internal/model"
)

// loadOutcome distinguishes how a collection file was read, so callers and
// tests can tell an empty collection from a corrupt one that was recovered
// as empty.
type loadOutcome int

const (
	loadedOK loadOutcome = iota
	loadedMissing
	loadedRecovered
)

// LocalStore keeps one JSON array file per collection inside dir. Every
// mutation rewrites the whole array; two concurrent processes can lose
// writes, which is accepted for a single-user tool.
type LocalStore struct {
	dir string
	log *slog.Logger
}

// NewLocal creates the data directory if needed and returns a store over it.
func NewLocal(dir string, logger *slog.Logger) (*LocalStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &LocalStore{dir: dir, log: logger}, nil
}

// Dir returns the data directory backing the store.
func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) path(c Collection) string {
	return filepath.Join(s.dir, string(c)+".json")
}

// readArray loads a JSON array file. A missing file is an empty collection;
// malformed JSON is also treated as empty (availability over corruption
// detection) but reported through the outcome value.
func readArray[T any](path string) ([]T, loadOutcome, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []T{}, loadedMissing, nil
	}
	if err != nil {
		return nil, loadedOK, fmt.Errorf("read %s: %w", path, err)
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return []T{}, loadedRecovered, nil
	}
	if records == nil {
		records = []T{}
	}
	return records, loadedOK, nil
}

// writeArray rewrites the whole collection file with 2-space indentation.
func writeArray[T any](path string, records []T) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (s *LocalStore) warnRecovered(c Collection) {
	s.log.Warn("collection file is not valid JSON, treating as empty",
		"collection", string(c), "path", s.path(c))
}

func loadLocal[T any](s *LocalStore, c Collection) ([]T, error) {
	records, outcome, err := readArray[T](s.path(c))
	if err != nil {
		return nil, err
	}
	if outcome == loadedRecovered {
		s.warnRecovered(c)
	}
	return records, nil
}

func appendLocal[T any](s *LocalStore, c Collection, record T) (T, error) {
	records, err := loadLocal[T](s, c)
	if err != nil {
		var zero T
		return zero, err
	}
	records = append(records, record)
	if err := writeArray(s.path(c), records); err != nil {
		var zero T
		return zero, err
	}
	return record, nil
}

func (s *LocalStore) LoadFasts(ctx context.Context) ([]model.FastSession, error) {
	return loadLocal[model.FastSession](s, CollectionFasts)
}

func (s *LocalStore) AppendFast(ctx context.Context, f model.FastSession) (model.FastSession, error) {
	return appendLocal(s, CollectionFasts, f)
}

// UpdateActiveFast patches the session with a nil end time. When no session
// is active it silently does nothing.
func (s *LocalStore) UpdateActiveFast(ctx context.Context, p FastPatch) error {
	fasts, err := loadLocal[model.FastSession](s, CollectionFasts)
	if err != nil {
		return err
	}
	for i := range fasts {
		if fasts[i].Active() {
			end := p.EndTime.UTC()
			hours := p.DurationHours
			fasts[i].EndTime = &end
			fasts[i].DurationHours = &hours
			return writeArray(s.path(CollectionFasts), fasts)
		}
	}
	return nil
}

func (s *LocalStore) LoadEntries(ctx context.Context) ([]model.LogEntry, error) {
	return loadLocal[model.LogEntry](s, CollectionEntries)
}

func (s *LocalStore) AppendEntry(ctx context.Context, e model.LogEntry) (model.LogEntry, error) {
	return appendLocal(s, CollectionEntries, e)
}

func (s *LocalStore) LoadWeights(ctx context.Context) ([]model.WeightEntry, error) {
	return loadLocal[model.WeightEntry](s, CollectionWeights)
}

func (s *LocalStore) AppendWeight(ctx context.Context, w model.WeightEntry) (model.WeightEntry, error) {
	return appendLocal(s, CollectionWeights, w)
}

func (s *LocalStore) LoadExercises(ctx context.Context) ([]model.ExerciseEntry, error) {
	return loadLocal[model.ExerciseEntry](s, CollectionExercises)
}

func (s *LocalStore) AppendExercise(ctx context.Context, e model.ExerciseEntry) (model.ExerciseEntry, error) {
	return appendLocal(s, CollectionExercises, e)
}

func (s *LocalStore) Clear(ctx context.Context, c Collection) error {
	switch c {
	case CollectionFasts:
		return writeArray(s.path(c), []model.FastSession{})
	case CollectionEntries:
		return writeArray(s.path(c), []model.LogEntry{})
	case CollectionWeights:
		return writeArray(s.path(c), []model.WeightEntry{})
	case CollectionExercises:
		return writeArray(s.path(c), []model.ExerciseEntry{})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCollection, c)
	}
}

func (s *LocalStore) ClearAll(ctx context.Context) error {
	for _, c := range Collections {
		if err := s.Clear(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
