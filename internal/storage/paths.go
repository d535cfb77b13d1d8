// Package storage persists generated flip tables in BadgerDB so a consumer
// can load them at startup instead of regenerating them.
package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	appName = "ntest"

	// DataDirEnv overrides the platform data directory when set.
	DataDirEnv = "NTEST_DATA_DIR"

	tablesDir = "tables"
)

// baseDir returns the per-user directory that application data lives under:
// ~/Library/Application Support on macOS, %APPDATA% on Windows and
// $XDG_DATA_HOME (default ~/.local/share) elsewhere.
func baseDir() (string, error) {
	var env, fallback []string
	switch runtime.GOOS {
	case "darwin":
		fallback = []string{"Library", "Application Support"}
	case "windows":
		env, fallback = []string{"APPDATA"}, []string{"AppData", "Roaming"}
	default:
		env, fallback = []string{"XDG_DATA_HOME"}, []string{".local", "share"}
	}

	for _, name := range env {
		if dir := os.Getenv(name); dir != "" {
			return dir, nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{home}, fallback...)...), nil
}

// GetDataDir returns the application data directory, creating it if needed.
// NTEST_DATA_DIR wins over the platform default.
func GetDataDir() (string, error) {
	dir := os.Getenv(DataDirEnv)
	if dir == "" {
		base, err := baseDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(base, appName)
	}
	return ensureDir(dir)
}

// GetDatabaseDir returns the badger directory holding the flip tables.
func GetDatabaseDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(dataDir, tablesDir))
}

func ensureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
