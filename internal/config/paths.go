package config

import (
	"os"
	"path/filepath"
)

const appDirName = ".retrace"

// DataDir returns the base data directory for Retrace.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDirName), nil
}

// ConfigPath returns the path to the main configuration file.
func ConfigPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "config.toml"), nil
}

// PreferencesPath returns the path to the persisted UI preferences file.
func PreferencesPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "preferences.toml"), nil
}

// LogPath returns the path to the log file.
func LogPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "retrace.log"), nil
}
