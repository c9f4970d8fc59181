// Package config reads the server's TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server struct {
		Addr string `toml:"addr"`

		// SessionTTLMin drops battles idle for this many minutes; 0 keeps them.
		SessionTTLMin int `toml:"session_ttl_min"`
	} `toml:"server"`
	Roster struct {
		// Database is a PokeAPI SQLite dump. When empty, File is used.
		Database     string `toml:"database"`
		File         string `toml:"file"`
		Level        int    `toml:"level"`
		MinBaseTotal int    `toml:"min_base_total"`
	} `toml:"roster"`
	Battle struct {
		// Seed 0 seeds from the clock.
		Seed      int64  `toml:"seed"`
		TypeChart string `toml:"type_chart"`
		PaceMS    int    `toml:"pace_ms"`
	} `toml:"battle"`
}

// Default is the configuration used when no file is present.
func Default() Config {
	var cfg Config
	cfg.Server.Addr = ":8080"
	cfg.Server.SessionTTLMin = 60
	cfg.Roster.File = "data/roster.yaml"
	cfg.Roster.Level = 50
	cfg.Roster.MinBaseTotal = 400
	cfg.Battle.PaceMS = 600
	return cfg
}

// Pace is the delay between streamed log lines.
func (c Config) Pace() time.Duration {
	return time.Duration(c.Battle.PaceMS) * time.Millisecond
}

// SessionTTL is how long an idle battle is kept.
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.Server.SessionTTLMin) * time.Minute
}

// Read loads path over the defaults. A missing file is not an error.
func Read(path string) (*Config, error) {
	cfg := Default()
	_, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error while reading config %s: %w", path, err)
	}
	if cfg.Roster.Level < 1 || cfg.Roster.Level > 100 {
		return nil, fmt.Errorf("roster level %d out of range 1-100", cfg.Roster.Level)
	}
	if cfg.Server.SessionTTLMin < 0 {
		return nil, fmt.Errorf("negative session_ttl_min %d", cfg.Server.SessionTTLMin)
	}
	if cfg.Battle.PaceMS < 0 {
		return nil, fmt.Errorf("negative pace_ms %d", cfg.Battle.PaceMS)
	}
	return &cfg, nil
}
