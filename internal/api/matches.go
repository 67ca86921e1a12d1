package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ericogr/warlord-cards/internal/constants"
	"github.com/ericogr/warlord-cards/internal/engine"
	"github.com/ericogr/warlord-cards/internal/game"
	"github.com/ericogr/warlord-cards/internal/logging"
	"github.com/ericogr/warlord-cards/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PlaceRequest is the body of a placement. Cell uses the board notation,
// lane letter then column ("B2").
type PlaceRequest struct {
	CardID int    `json:"card_id"`
	Cell   string `json:"cell"`
}

// CreateMatch starts a match against the bot. An empty body picks
// everything at random.
func (h *GameHandler) CreateMatch(c *gin.Context) {
	var req service.CreateMatchRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
			return
		}
	}
	if req.FirstSide != "" && req.FirstSide != game.SidePlayer && req.FirstSide != game.SideBot {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	v, err := h.matches.CreateMatch(req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCatalog) || errors.Is(err, engine.ErrEmptyCatalog) {
			c.JSON(http.StatusServiceUnavailable, gin.H{constants.JSONKeyError: constants.ErrCatalogEmpty})
			return
		}
		logging.Error("failed to create match", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateMatch})
		return
	}
	c.JSON(http.StatusCreated, v)
}

// GetMatch returns a live match, or its stored record once it has been
// evicted from memory.
func (h *GameHandler) GetMatch(c *gin.Context) {
	id, ok := matchIDParam(c)
	if !ok {
		return
	}
	v, err := h.matches.GetMatch(id)
	if err == nil {
		c.JSON(http.StatusOK, v)
		return
	}
	h.writeRecord(c, id)
}

// PlaceCard deploys a card from the player's hand.
func (h *GameHandler) PlaceCard(c *gin.Context) {
	id, ok := matchIDParam(c)
	if !ok {
		return
	}
	var req PlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CardID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	cell, err := game.ParseCell(req.Cell)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidCell, constants.JSONKeyDetails: err.Error()})
		return
	}
	v, err := h.matches.Place(id, req.CardID, cell)
	if err != nil {
		writeCommandError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// SkipPlacement gives up the player's placement for the current turn.
func (h *GameHandler) SkipPlacement(c *gin.Context) {
	id, ok := matchIDParam(c)
	if !ok {
		return
	}
	v, err := h.matches.Skip(id)
	if err != nil {
		writeCommandError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func matchIDParam(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Param("matchID"))
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidMatchID})
		return "", false
	}
	return id, true
}

// writeCommandError maps placement rejections to HTTP statuses.
func writeCommandError(c *gin.Context, id string, err error) {
	switch {
	case errors.Is(err, service.ErrMatchNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
	case errors.Is(err, engine.ErrMatchFinished):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchFinished})
	case errors.Is(err, engine.ErrNotYourTurn):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNotYourTurn})
	case errors.Is(err, engine.ErrNotPlacementPhase):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrPlacementClosed})
	case errors.Is(err, engine.ErrAlreadyPlaced):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrAlreadyPlaced})
	case errors.Is(err, engine.ErrNotHumanControlled):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrSideNotHuman})
	case errors.Is(err, engine.ErrCardNotInHand):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrCardNotInHand})
	case errors.Is(err, engine.ErrInvalidPlacement):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidPlacement})
	default:
		logging.Error("placement command failed", err, logging.Fields{constants.LogFieldMatchID: id})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedPlaceCard})
	}
}
