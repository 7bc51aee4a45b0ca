// Package storage persists the four record collections (fasts, entries,
// weights, exercises) behind a single Store contract with two
// implementations: JSON files on disk and a hosted Postgres database.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/profullstack/fastlog/internal/model"
)

// Collection names one of the four persisted record sets.
type Collection string

const (
	CollectionFasts     Collection = "fasts"
	CollectionEntries   Collection = "entries"
	CollectionWeights   Collection = "weights"
	CollectionExercises Collection = "exercises"
)

// Collections lists every collection, in the order they are cleared by
// ClearAll.
var Collections = []Collection{
	CollectionFasts,
	CollectionEntries,
	CollectionWeights,
	CollectionExercises,
}

var (
	// ErrUnavailable wraps connectivity and auth failures against the
	// remote backend. It is never retried automatically.
	ErrUnavailable = errors.New("storage unavailable")

	// ErrNotFound is returned by the remote backend when UpdateActiveFast
	// matches no open session. The local backend treats the same case as a
	// silent no-op.
	ErrNotFound = errors.New("record not found")

	// ErrUnknownCollection is returned by Clear for a name outside the
	// four known collections.
	ErrUnknownCollection = errors.New("unknown collection")
)

// FastPatch carries the two fields set when the active fast is closed.
type FastPatch struct {
	EndTime       time.Time
	DurationHours float64
}

// Store is the uniform contract over both backends.
//
// Load order differs between backends: the local store returns insertion
// order, the remote store returns timestamp-ascending order. Callers that
// care about order must sort.
type Store interface {
	LoadFasts(ctx context.Context) ([]model.FastSession, error)
	AppendFast(ctx context.Context, s model.FastSession) (model.FastSession, error)
	// UpdateActiveFast applies the patch to the unique session with a nil
	// end time.
	UpdateActiveFast(ctx context.Context, p FastPatch) error

	LoadEntries(ctx context.Context) ([]model.LogEntry, error)
	AppendEntry(ctx context.Context, e model.LogEntry) (model.LogEntry, error)

	LoadWeights(ctx context.Context) ([]model.WeightEntry, error)
	AppendWeight(ctx context.Context, w model.WeightEntry) (model.WeightEntry, error)

	LoadExercises(ctx context.Context) ([]model.ExerciseEntry, error)
	AppendExercise(ctx context.Context, e model.ExerciseEntry) (model.ExerciseEntry, error)

	Clear(ctx context.Context, c Collection) error
	ClearAll(ctx context.Context) error
}
