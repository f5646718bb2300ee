package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"guess-master/internal/middleware"
	"guess-master/internal/services"
)

type SessionHandler struct {
	gameEngine *services.GameEngine
}

func NewSessionHandler(gameEngine *services.GameEngine) *SessionHandler {
	return &SessionHandler{gameEngine: gameEngine}
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	game, err := h.gameEngine.GetGame(c.Request.Context(), c.GetString(middleware.GameIDKey))
	if err != nil {
		respondGameError(c, "Failed to get game", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"game":    game,
	})
}

func (h *SessionHandler) EndSession(c *gin.Context) {
	game, err := h.gameEngine.EndGame(c.Request.Context(), c.GetString(middleware.GameIDKey))
	if err != nil {
		respondGameError(c, "Failed to end game", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"game":    game,
	})
}

func (h *SessionHandler) GetHistory(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	if err != nil {
		limit = 0
	}

	guesses, err := h.gameEngine.History(c.Request.Context(), c.GetString(middleware.GameIDKey), limit)
	if err != nil {
		respondGameError(c, "Failed to get guess history", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"guesses": guesses,
		"count":   len(guesses),
	})
}
