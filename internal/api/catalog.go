package api

import (
	"net/http"

	"github.com/ericogr/warlord-cards/internal/constants"
	"github.com/gin-gonic/gin"
)

// ListCards returns every card definition in the catalog.
func (h *GameHandler) ListCards(c *gin.Context) {
	cards, err := h.repo.GetCards()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchCards})
		return
	}
	c.JSON(http.StatusOK, cards)
}

// ListWarlords returns every warlord definition in the catalog.
func (h *GameHandler) ListWarlords(c *gin.Context) {
	warlords, err := h.repo.GetWarlords()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchWarlords})
		return
	}
	c.JSON(http.StatusOK, warlords)
}
