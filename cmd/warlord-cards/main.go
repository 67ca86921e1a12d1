package main

import (
	"github.com/ericogr/warlord-cards/internal/api"
	"github.com/ericogr/warlord-cards/internal/config"
	"github.com/ericogr/warlord-cards/internal/constants"
	"github.com/ericogr/warlord-cards/internal/logging"
	"github.com/ericogr/warlord-cards/internal/service"
	"github.com/ericogr/warlord-cards/internal/version"

	"github.com/gin-gonic/gin"
)

func main() {
	env, err := config.LoadServerEnv()
	if err != nil {
		logging.Fatal("Invalid environment", err, nil)
	}
	// The catalog file is required. Its path comes from WARLORD_CONFIG and
	// defaults to ./warlord_config.yaml in the current working directory.
	cfg := loadConfigOrExit(env.ConfigPath)

	// The database mirrors the catalog and keeps finished matches.
	repo := createRepositoryOrExit(env.DatabasePath, cfg)
	matches := service.NewManager(repo, cfg.Rules, env.PlacementTimeout)
	if _, err := matches.Catalog(); err != nil {
		logging.Fatal("Failed to load catalog", err, nil)
	}

	startTimeoutScanner(matches, env.ScanInterval)

	handler := api.NewGameHandler(repo, matches)
	router := gin.Default()
	apiRoutes := router.Group(constants.RouteAPIPrefix)
	api.RegisterRoutes(apiRoutes, handler)

	// WARLORD_ADDR wins over server.address from the config file.
	addr := cfg.ServerAddress
	if env.Address != "" {
		addr = env.Address
	}
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr, "version": version.Version})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
