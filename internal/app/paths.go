package app

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName     = "fastlog"
	configFileName = "config.yaml"
	dataDirName    = "data"
)

// DefaultConfigPath returns the path of the yaml config file under the
// user's config directory.
func DefaultConfigPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, configFileName), nil
}

// DefaultDataDir returns the directory holding the local backend's JSON
// collection files.
func DefaultDataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, dataDirName), nil
}

// EnsureDir creates the directory for path's parent if it is missing.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}
