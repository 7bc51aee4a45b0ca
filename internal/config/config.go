// Package config loads and persists the yaml configuration file and
// resolves the storage backend. The resolved mode is cached on the Config
// object itself, never in package state, so callers that change the
// setting mid-process invalidate one object, not a hidden global.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/profullstack/fastlog/internal/app"
)

// Mode selects the storage backend.
type Mode string

const (
	ModeLocal  Mode = "local"
	ModeRemote Mode = "remote"
)

// Environment overrides. Env values take precedence over the persisted
// file; an explicit runtime override (the --storage flag) beats both.
const (
	EnvStorage          = "FASTLOG_STORAGE"
	EnvRemoteEndpoint   = "FASTLOG_REMOTE_ENDPOINT"
	EnvRemoteCredential = "FASTLOG_REMOTE_CREDENTIAL"
	EnvGeminiAPIKey     = "FASTLOG_GEMINI_API_KEY"
)

type Remote struct {
	Endpoint   string `yaml:"endpoint,omitempty"`
	Credential string `yaml:"credential,omitempty"`
}

type Config struct {
	Storage      string `yaml:"storage,omitempty"`
	Remote       Remote `yaml:"remote,omitempty"`
	Units        string `yaml:"units,omitempty"`
	Timezone     string `yaml:"timezone,omitempty"`
	GeminiAPIKey string `yaml:"gemini_api_key,omitempty"`

	path string

	override     Mode
	resolvedMode Mode
	modeResolved bool
}

// Load reads the config file. A missing file yields a zero config bound to
// the same path, so first runs work without an init step.
func Load(path string) (*Config, error) {
	cfg := &Config{path: path}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config back to its file.
func (c *Config) Save() error {
	if err := app.EnsureDir(c.path); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// SetOverride installs the runtime storage override (from --storage). It
// takes the highest precedence in StorageMode.
func (c *Config) SetOverride(mode string) error {
	m, err := parseMode(mode)
	if err != nil {
		return err
	}
	c.override = m
	c.InvalidateStorageMode()
	return nil
}

// StorageMode resolves the backend once and caches the answer for the rest
// of the process. Priority: runtime override, FASTLOG_STORAGE, persisted
// value, auto-detect (remote endpoint and credential both configured),
// local.
func (c *Config) StorageMode() (Mode, error) {
	if c.modeResolved {
		return c.resolvedMode, nil
	}
	mode, err := c.resolveMode()
	if err != nil {
		return "", err
	}
	c.resolvedMode = mode
	c.modeResolved = true
	return mode, nil
}

// InvalidateStorageMode drops the cached resolution. Required after
// changing the storage setting mid-process.
func (c *Config) InvalidateStorageMode() {
	c.modeResolved = false
}

func (c *Config) resolveMode() (Mode, error) {
	if c.override != "" {
		return c.override, nil
	}
	if v := os.Getenv(EnvStorage); v != "" {
		return parseMode(v)
	}
	if c.Storage != "" {
		return parseMode(c.Storage)
	}
	if c.RemoteEndpoint() != "" && c.RemoteCredential() != "" {
		return ModeRemote, nil
	}
	return ModeLocal, nil
}

func parseMode(v string) (Mode, error) {
	switch Mode(v) {
	case ModeLocal, ModeRemote:
		return Mode(v), nil
	default:
		return "", fmt.Errorf("invalid storage mode %q (expected local or remote)", v)
	}
}

// RemoteEndpoint returns the remote endpoint, env override first.
func (c *Config) RemoteEndpoint() string {
	if v := os.Getenv(EnvRemoteEndpoint); v != "" {
		return v
	}
	return c.Remote.Endpoint
}

// RemoteCredential returns the remote credential, env override first.
func (c *Config) RemoteCredential() string {
	if v := os.Getenv(EnvRemoteCredential); v != "" {
		return v
	}
	return c.Remote.Credential
}

// APIKey returns the Gemini API key, env override first.
func (c *Config) APIKey() string {
	if v := os.Getenv(EnvGeminiAPIKey); v != "" {
		return v
	}
	return c.GeminiAPIKey
}

// UnitSystem returns the configured unit system, defaulting to metric.
func (c *Config) UnitSystem() string {
	if c.Units == "" {
		return "metric"
	}
	return c.Units
}

// Location returns the preferred timezone, defaulting to the system zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Keys lists the settable configuration keys, in display order.
func Keys() []string {
	return []string{"storage", "remote.endpoint", "remote.credential", "units", "timezone", "gemini_api_key"}
}

// Set validates and applies one key. Enumerated and timezone values are
// rejected before anything is persisted.
func (c *Config) Set(key, value string) error {
	switch key {
	case "storage":
		if _, err := parseMode(value); err != nil {
			return err
		}
		c.Storage = value
		c.InvalidateStorageMode()
	case "remote.endpoint":
		c.Remote.Endpoint = value
		c.InvalidateStorageMode()
	case "remote.credential":
		c.Remote.Credential = value
		c.InvalidateStorageMode()
	case "units":
		if value != "metric" && value != "imperial" {
			return fmt.Errorf("invalid unit system %q (expected metric or imperial)", value)
		}
		c.Units = value
	case "timezone":
		if _, err := time.LoadLocation(value); err != nil {
			return fmt.Errorf("invalid timezone %q (expected an IANA identifier like America/New_York)", value)
		}
		c.Timezone = value
	case "gemini_api_key":
		c.GeminiAPIKey = value
	default:
		return fmt.Errorf("unknown config key %q (known keys: %v)", key, Keys())
	}
	return nil
}

// Get returns the value for a key and whether it is set.
func (c *Config) Get(key string) (string, bool, error) {
	switch key {
	case "storage":
		return c.Storage, c.Storage != "", nil
	case "remote.endpoint":
		return c.Remote.Endpoint, c.Remote.Endpoint != "", nil
	case "remote.credential":
		return c.Remote.Credential, c.Remote.Credential != "", nil
	case "units":
		return c.Units, c.Units != "", nil
	case "timezone":
		return c.Timezone, c.Timezone != "", nil
	case "gemini_api_key":
		return c.GeminiAPIKey, c.GeminiAPIKey != "", nil
	default:
		return "", false, fmt.Errorf("unknown config key %q (known keys: %v)", key, Keys())
	}
}
