package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/profullstack/fastlog/internal/config"
)

func load(t *testing.T, yamlBody string) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if yamlBody != "" {
		if err := os.WriteFile(path, []byte(yamlBody), 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

func TestStorageModeDefaultsToLocal(t *testing.T) {
	cfg := load(t, "")
	mode, err := cfg.StorageMode()
	if err != nil {
		t.Fatalf("resolve mode: %v", err)
	}
	if mode != config.ModeLocal {
		t.Fatalf("expected local default, got %q", mode)
	}
}

func TestStorageModeAutoDetectsRemoteFromCredentials(t *testing.T) {
	cfg := load(t, "remote:\n  endpoint: postgres://db.example.com/fastlog\n  credential: s3cret\n")
	mode, err := cfg.StorageMode()
	if err != nil {
		t.Fatalf("resolve mode: %v", err)
	}
	if mode != config.ModeRemote {
		t.Fatalf("expected auto-detected remote, got %q", mode)
	}
}

func TestStorageModePersistedBeatsAutoDetect(t *testing.T) {
	cfg := load(t, "storage: local\nremote:\n  endpoint: postgres://db.example.com/fastlog\n  credential: s3cret\n")
	mode, err := cfg.StorageMode()
	if err != nil {
		t.Fatalf("resolve mode: %v", err)
	}
	if mode != config.ModeLocal {
		t.Fatalf("expected persisted local, got %q", mode)
	}
}

func TestStorageModeEnvBeatsPersisted(t *testing.T) {
	t.Setenv(config.EnvStorage, "remote")
	cfg := load(t, "storage: local\n")
	mode, err := cfg.StorageMode()
	if err != nil {
		t.Fatalf("resolve mode: %v", err)
	}
	if mode != config.ModeRemote {
		t.Fatalf("expected env remote, got %q", mode)
	}
}

func TestStorageModeOverrideBeatsEnv(t *testing.T) {
	t.Setenv(config.EnvStorage, "remote")
	cfg := load(t, "")
	if err := cfg.SetOverride("local"); err != nil {
		t.Fatalf("set override: %v", err)
	}
	mode, err := cfg.StorageMode()
	if err != nil {
		t.Fatalf("resolve mode: %v", err)
	}
	if mode != config.ModeLocal {
		t.Fatalf("expected override local, got %q", mode)
	}
}

func TestStorageModeCachedUntilInvalidated(t *testing.T) {
	cfg := load(t, "")
	mode, err := cfg.StorageMode()
	if err != nil {
		t.Fatalf("resolve mode: %v", err)
	}
	if mode != config.ModeLocal {
		t.Fatalf("expected local, got %q", mode)
	}

	// A change without invalidation keeps serving the cached answer.
	t.Setenv(config.EnvStorage, "remote")
	mode, err = cfg.StorageMode()
	if err != nil {
		t.Fatalf("resolve cached mode: %v", err)
	}
	if mode != config.ModeLocal {
		t.Fatalf("expected cached local, got %q", mode)
	}

	cfg.InvalidateStorageMode()
	mode, err = cfg.StorageMode()
	if err != nil {
		t.Fatalf("resolve invalidated mode: %v", err)
	}
	if mode != config.ModeRemote {
		t.Fatalf("expected remote after invalidation, got %q", mode)
	}
}

func TestSetRejectsInvalidValues(t *testing.T) {
	cfg := load(t, "")
	if err := cfg.Set("storage", "cloud"); err == nil {
		t.Fatalf("expected invalid storage mode error")
	}
	if err := cfg.Set("units", "stones"); err == nil {
		t.Fatalf("expected invalid unit system error")
	}
	if err := cfg.Set("timezone", "Mars/Olympus_Mons"); err == nil {
		t.Fatalf("expected invalid timezone error")
	}
	if err := cfg.Set("nope", "x"); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestSetSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load fresh config: %v", err)
	}
	for key, value := range map[string]string{
		"storage":           "remote",
		"remote.endpoint":   "postgres://db.example.com/fastlog",
		"remote.credential": "s3cret",
		"units":             "imperial",
		"timezone":          "America/New_York",
	} {
		if err := cfg.Set(key, value); err != nil {
			t.Fatalf("set %s: %v", key, err)
		}
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("save config: %v", err)
	}

	reloaded, err := config.Load(path)
	if err != nil {
		t.Fatalf("reload config: %v", err)
	}
	if reloaded.Units != "imperial" || reloaded.Timezone != "America/New_York" {
		t.Fatalf("unexpected reloaded config: %+v", reloaded)
	}
	mode, err := reloaded.StorageMode()
	if err != nil {
		t.Fatalf("resolve reloaded mode: %v", err)
	}
	if mode != config.ModeRemote {
		t.Fatalf("expected remote, got %q", mode)
	}
	loc, err := reloaded.Location()
	if err != nil {
		t.Fatalf("location: %v", err)
	}
	if loc.String() != "America/New_York" {
		t.Fatalf("expected America/New_York, got %s", loc)
	}
}
