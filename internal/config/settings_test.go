package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("HOME", filepath.Join(t.TempDir(), "home"))
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.StoreAddress() != "127.0.0.1:8000" {
		t.Fatalf("unexpected store address: %q", cfg.StoreAddress())
	}
	if cfg.StoreBaseURL() != "http://127.0.0.1:8000" {
		t.Fatalf("unexpected store base url: %q", cfg.StoreBaseURL())
	}
	if cfg.LogLevel() != "info" {
		t.Fatalf("unexpected log level: %q", cfg.LogLevel())
	}
}

func TestLoadConfigFromTOML(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv("HOME", home)

	dataDir := filepath.Join(home, ".retrace")
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	content := []byte("[store]\naddress = \"http://127.0.0.1:9999/\"\n\n[logging]\nlevel = \"debug\"\n")
	if err := os.WriteFile(filepath.Join(dataDir, "config.toml"), content, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.StoreAddress() != "127.0.0.1:9999" {
		t.Fatalf("unexpected store address: %q", cfg.StoreAddress())
	}
	if cfg.StoreBaseURL() != "http://127.0.0.1:9999" {
		t.Fatalf("unexpected store base url: %q", cfg.StoreBaseURL())
	}
	if cfg.LogLevel() != "debug" {
		t.Fatalf("unexpected log level: %q", cfg.LogLevel())
	}
}

func TestLoadConfigEmptyFile(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv("HOME", home)

	dataDir := filepath.Join(home, ".retrace")
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, "config.toml"), []byte("  \n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.StoreAddress() != "127.0.0.1:8000" {
		t.Fatalf("blank file must keep defaults, got %q", cfg.StoreAddress())
	}
}
