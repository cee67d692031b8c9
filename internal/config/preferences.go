package config

import (
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	ViewModeProject  = "project"
	ViewModeTimeline = "timeline"
)

const (
	SourceClaude = "claude"
	SourceCodex  = "codex"
	SourceGemini = "gemini"
)

// Preferences are the UI choices persisted between runs. Unknown or
// missing values fall back to defaults on load.
type Preferences struct {
	ViewMode string `toml:"view_mode"`
	Source   string `toml:"source"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		ViewMode: ViewModeProject,
		Source:   SourceClaude,
	}
}

func LoadPreferences() (Preferences, error) {
	path, err := PreferencesPath()
	if err != nil {
		return Preferences{}, err
	}
	prefs := DefaultPreferences()
	if err := readTOML(path, &prefs); err != nil {
		return Preferences{}, err
	}
	return prefs.normalized(), nil
}

// SavePreferences writes preferences, creating the data directory on
// first use.
func SavePreferences(prefs Preferences) error {
	path, err := PreferencesPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := toml.Marshal(prefs.normalized())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func (p Preferences) normalized() Preferences {
	switch strings.TrimSpace(p.ViewMode) {
	case ViewModeProject, ViewModeTimeline:
		p.ViewMode = strings.TrimSpace(p.ViewMode)
	default:
		p.ViewMode = ViewModeProject
	}
	switch strings.TrimSpace(p.Source) {
	case SourceClaude, SourceCodex, SourceGemini:
		p.Source = strings.TrimSpace(p.Source)
	default:
		p.Source = SourceClaude
	}
	return p
}

// Sources lists the selectable session sources in display order.
func Sources() []string {
	return []string{SourceClaude, SourceCodex, SourceGemini}
}
