package api

import (
	"github.com/ericogr/warlord-cards/internal/constants"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the match API on the given group.
func RegisterRoutes(rg *gin.RouterGroup, h *GameHandler) {
	rg.GET(constants.RouteVersion, Version)
	rg.GET(constants.RouteCards, h.ListCards)
	rg.GET(constants.RouteWarlords, h.ListWarlords)

	rg.GET(constants.RouteMatches, h.ListMatches)
	rg.POST(constants.RouteMatches, h.CreateMatch)
	rg.GET(constants.RouteMatchByID, h.GetMatch)
	rg.POST(constants.RouteMatchPlace, h.PlaceCard)
	rg.POST(constants.RouteMatchSkip, h.SkipPlacement)
}
