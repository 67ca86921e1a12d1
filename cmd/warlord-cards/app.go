package main

import (
	"os"
	"path/filepath"

	"github.com/ericogr/warlord-cards/internal/config"
	"github.com/ericogr/warlord-cards/internal/logging"
	"github.com/ericogr/warlord-cards/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid warlord configuration", err, logging.Fields{"config_path": path, "hint": "create a warlord_config.yaml with 'card_list' and 'warlord_list' arrays and optional 'rules' and 'server.address'"})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string, cfg *config.LoadedConfig) storage.Repository {
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logging.Fatal("Failed to create database directory", err, logging.Fields{"dir": dir})
		}
	}
	db, err := storage.OpenAndMigrate(dbPath, cfg.Cards, cfg.Warlords)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db)
}
