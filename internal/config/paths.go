// ABOUTME: Standard filesystem paths for postdash configuration and data
// ABOUTME: Everything lives under ~/.postdash/ unless overridden by config

package config

import (
	"os"
	"path/filepath"
	"strings"
)

const globalDirName = ".postdash"

// GlobalDir returns the user-global directory (~/.postdash/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// GlobalConfigFile returns the path to the optional YAML config file.
func GlobalConfigFile() string {
	return filepath.Join(GlobalDir(), "config.yaml")
}

// DefaultDBPath returns the default accounts database path.
func DefaultDBPath() string {
	return filepath.Join(GlobalDir(), "accounts.db")
}

// DefaultLogPath returns the default log file path.
func DefaultLogPath() string {
	return filepath.Join(GlobalDir(), "postdash.log")
}

// GlobalKeybindingsFile returns the path to the keybinding override file.
func GlobalKeybindingsFile() string {
	return filepath.Join(GlobalDir(), "keys.yaml")
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// EnsureDir creates a directory and all parents if they don't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o700)
}
