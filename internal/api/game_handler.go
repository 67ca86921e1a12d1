package api

import (
	"github.com/ericogr/warlord-cards/internal/service"
	"github.com/ericogr/warlord-cards/internal/storage"
)

// GameHandler groups all match-related HTTP handlers.
type GameHandler struct {
	repo    storage.Repository
	matches *service.Manager
}

// NewGameHandler creates a new GameHandler backed by the repository for
// the catalog and match history, and by the manager for live matches.
func NewGameHandler(repo storage.Repository, matches *service.Manager) *GameHandler {
	return &GameHandler{repo: repo, matches: matches}
}
