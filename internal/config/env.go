package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ServerEnv holds the settings the server reads from its environment.
type ServerEnv struct {
	ConfigPath       string        `env:"WARLORD_CONFIG"            envDefault:"./warlord_config.yaml"`
	DatabasePath     string        `env:"WARLORD_DB"                envDefault:"./data/warlord.db"`
	Address          string        `env:"WARLORD_ADDR"`
	PlacementTimeout time.Duration `env:"WARLORD_PLACEMENT_TIMEOUT" envDefault:"60s"`
	ScanInterval     time.Duration `env:"WARLORD_SCAN_INTERVAL"     envDefault:"5s"`
}

// LoadServerEnv parses ServerEnv from the process environment.
func LoadServerEnv() (ServerEnv, error) {
	var cfg ServerEnv
	if err := env.Parse(&cfg); err != nil {
		return ServerEnv{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.PlacementTimeout <= 0 {
		return ServerEnv{}, errors.New("parse env: WARLORD_PLACEMENT_TIMEOUT must be positive")
	}
	if cfg.ScanInterval <= 0 {
		cfg.ScanInterval = 5 * time.Second
	}
	return cfg, nil
}
