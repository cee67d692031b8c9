package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPreferencesDefaults(t *testing.T) {
	t.Setenv("HOME", filepath.Join(t.TempDir(), "home"))
	prefs, err := LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if prefs.ViewMode != ViewModeProject {
		t.Fatalf("unexpected view mode: %q", prefs.ViewMode)
	}
	if prefs.Source != SourceClaude {
		t.Fatalf("unexpected source: %q", prefs.Source)
	}
}

func TestSaveAndLoadPreferences(t *testing.T) {
	t.Setenv("HOME", filepath.Join(t.TempDir(), "home"))

	saved := Preferences{ViewMode: ViewModeTimeline, Source: SourceCodex}
	if err := SavePreferences(saved); err != nil {
		t.Fatalf("SavePreferences: %v", err)
	}

	prefs, err := LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if prefs != saved {
		t.Fatalf("round trip mismatch: got %+v want %+v", prefs, saved)
	}
}

func TestLoadPreferencesRejectsUnknownValues(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv("HOME", home)

	dataDir := filepath.Join(home, ".retrace")
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	content := []byte("view_mode = \"grid\"\nsource = \"copilot\"\n")
	if err := os.WriteFile(filepath.Join(dataDir, "preferences.toml"), content, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	prefs, err := LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if prefs.ViewMode != ViewModeProject || prefs.Source != SourceClaude {
		t.Fatalf("unknown values must fall back to defaults, got %+v", prefs)
	}
}
