package service_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/profullstack/fastlog/internal/storage"
)

func newTestStore(t *testing.T) *storage.LocalStore {
	t.Helper()
	s, err := storage.NewLocal(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}
	return s
}

func intPtr(v int) *int {
	return &v
}
