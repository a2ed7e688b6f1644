package app

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName     = "caltrack"
	dbFileName     = "caltrack.db"
	configFileName = "config.json"
	backupDirName  = "backups"
)

func baseDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

func DefaultDBPath() (string, error) {
	dir, err := baseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dbFileName), nil
}

func DefaultConfigPath() (string, error) {
	dir, err := baseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

func DefaultBackupDir() (string, error) {
	dir, err := baseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, backupDirName), nil
}

// EnsureDBDir creates the parent directory of path. In-memory databases are
// left alone.
func EnsureDBDir(path string) error {
	if path == ":memory:" {
		return nil
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return nil
}
