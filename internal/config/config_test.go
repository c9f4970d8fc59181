package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestRead_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Read(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Expected default addr :8080, got %q", cfg.Server.Addr)
	}
	if cfg.Roster.File != "data/roster.yaml" || cfg.Roster.Level != 50 || cfg.Roster.MinBaseTotal != 400 {
		t.Errorf("Unexpected roster defaults: %+v", cfg.Roster)
	}
	if cfg.SessionTTL() != time.Hour {
		t.Errorf("Expected default session TTL 1h, got %v", cfg.SessionTTL())
	}
	if cfg.Pace() != 600*time.Millisecond {
		t.Errorf("Expected default pace 600ms, got %v", cfg.Pace())
	}
}

func TestRead_Overrides(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = "127.0.0.1:9000"

[roster]
database = "pokedex.sqlite3"
level = 70

[battle]
seed = 42
pace_ms = 0
`)
	cfg, err := Read(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Expected addr override, got %q", cfg.Server.Addr)
	}
	if cfg.Roster.Database != "pokedex.sqlite3" || cfg.Roster.Level != 70 {
		t.Errorf("Expected roster overrides, got %+v", cfg.Roster)
	}
	if cfg.Roster.File != "data/roster.yaml" {
		t.Errorf("Expected untouched keys to keep defaults, got file %q", cfg.Roster.File)
	}
	if cfg.Battle.Seed != 42 || cfg.Pace() != 0 {
		t.Errorf("Expected seed 42 and no pacing, got %+v", cfg.Battle)
	}
}

func TestRead_Invalid(t *testing.T) {
	tests := map[string]string{
		"syntax":   "[server\naddr = 1",
		"level":    "[roster]\nlevel = 101",
		"negative": "[battle]\npace_ms = -5",
		"ttl":      "[server]\nsession_ttl_min = -1",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Read(writeConfig(t, body)); err == nil {
				t.Error("Expected error")
			}
		})
	}
}
