package fastlog

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/profullstack/fastlog/internal/app"
	"github.com/profullstack/fastlog/internal/config"
	"github.com/profullstack/fastlog/internal/service"
	"github.com/profullstack/fastlog/internal/storage"
)

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = app.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if storageFlag != "" {
		if err := cfg.SetOverride(storageFlag); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func localDataDir() (string, error) {
	if dataDirFlag != "" {
		return dataDirFlag, nil
	}
	return app.DefaultDataDir()
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, func(), error) {
	mode, err := cfg.StorageMode()
	if err != nil {
		return nil, nil, err
	}
	if mode == config.ModeRemote {
		remote, err := storage.OpenRemote(ctx, cfg.RemoteEndpoint(), cfg.RemoteCredential())
		if err != nil {
			return nil, nil, err
		}
		return remote, func() { remote.Close() }, nil
	}
	dir, err := localDataDir()
	if err != nil {
		return nil, nil, err
	}
	local, err := storage.NewLocal(dir, newLogger())
	if err != nil {
		return nil, nil, err
	}
	return local, func() {}, nil
}

// withStore resolves configuration, opens the selected backend, and runs
// the command body against it.
func withStore(run func(ctx context.Context, cfg *config.Config, store storage.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := context.Background()
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	return run(ctx, cfg, store)
}

// parseAt parses an optional --at value ("YYYY-MM-DD HH:MM" or "HH:MM").
// An empty value yields the zero time, which the services treat as now.
func parseAt(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return service.ParseTimestamp(value, time.Now())
}

func unitSystem(cfg *config.Config) service.UnitSystem {
	if cfg.UnitSystem() == "imperial" {
		return service.Imperial
	}
	return service.Metric
}
