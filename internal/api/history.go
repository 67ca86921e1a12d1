package api

import (
	"net/http"
	"strconv"

	"github.com/ericogr/warlord-cards/internal/constants"
	"github.com/gin-gonic/gin"
)

// ListMatches returns the most recent finished matches, 20 by default.
func (h *GameHandler) ListMatches(c *gin.Context) {
	// optional ?limit=N
	limit := 20
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	recs, err := h.repo.ListRecentMatches(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchMatches})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(recs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeMatch})
		return
	}
	c.JSON(http.StatusOK, out)
}

// writeRecord answers with the stored outcome of a finished match.
func (h *GameHandler) writeRecord(c *gin.Context, id string) {
	rec, err := h.repo.GetMatch(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(rec)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeMatch})
		return
	}
	c.JSON(http.StatusOK, out)
}
