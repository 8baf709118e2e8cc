// ABOUTME: Standard filesystem paths for blinko-go configuration and local state
// ABOUTME: Resolves ~/.blinko-go/ for global and .blinko-go/ for project-local paths

package config

import (
	"os"
	"path/filepath"
)

const (
	globalDirName  = ".blinko-go"
	projectDirName = ".blinko-go"
)

// GlobalDir returns the user-global config directory (~/.blinko-go/).
// BLINKO_HOME overrides it.
func GlobalDir() string {
	if v := os.Getenv("BLINKO_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// ProjectDir returns the project-local config directory.
func ProjectDir(projectRoot string) string {
	return filepath.Join(projectRoot, projectDirName)
}

// GlobalConfigFile returns the path to the global config file.
func GlobalConfigFile() string {
	return filepath.Join(GlobalDir(), "config.yaml")
}

// ProjectConfigFile returns the path to the project-local config file.
func ProjectConfigFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), "config.yaml")
}

// StorageFile is the local key/value store for preferences, saved
// credentials and cached link previews.
func StorageFile() string {
	return filepath.Join(GlobalDir(), "storage.json")
}

// LogFile is where the TUI writes logs while it owns the terminal.
func LogFile() string {
	return filepath.Join(GlobalDir(), "blinko.log")
}

// EnsureDir creates dir with user-only permissions if missing.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o700)
}

func dirOf(path string) string {
	return filepath.Dir(path)
}
