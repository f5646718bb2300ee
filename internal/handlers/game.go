package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"guess-master/internal/middleware"
	"guess-master/internal/models"
	"guess-master/internal/services"
)

const GameTokenHeader = "X-Game-Token"

type GameHandler struct {
	gameEngine *services.GameEngine
	jwtService *services.JWTService
}

func NewGameHandler(gameEngine *services.GameEngine, jwtService *services.JWTService) *GameHandler {
	return &GameHandler{
		gameEngine: gameEngine,
		jwtService: jwtService,
	}
}

// StartGame restarts the caller's game. Token holders restart their own game;
// ?mode=private issues a fresh private game; everyone else resets the shared one.
func (h *GameHandler) StartGame(c *gin.Context) {
	gameID := c.GetString(middleware.GameIDKey)
	if gameID == models.DefaultGameID && c.Query("mode") == "private" {
		gameID = models.GenerateGameID()
	}

	resp, err := h.gameEngine.StartGame(c.Request.Context(), gameID)
	if err != nil {
		respondGameError(c, "Failed to start the game", err)
		return
	}

	if gameID != models.DefaultGameID {
		token, err := h.jwtService.GenerateToken(gameID)
		if err != nil {
			log.Printf("Failed to issue game token: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue game token"})
			return
		}
		c.Header(GameTokenHeader, token)
	}

	c.JSON(http.StatusOK, resp)
}

func (h *GameHandler) MakeGuess(c *gin.Context) {
	var req models.GuessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.gameEngine.MakeGuess(c.Request.Context(), c.GetString(middleware.GameIDKey), req.Guess)
	if err != nil {
		respondGameError(c, "Failed to submit guess", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func respondGameError(c *gin.Context, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrGameNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrGameOver):
		status = http.StatusConflict
	case errors.Is(err, services.ErrRateLimited):
		status = http.StatusTooManyRequests
	default:
		log.Printf("%s: %v", message, err)
	}

	c.JSON(status, gin.H{
		"error":   message,
		"details": err.Error(),
	})
}
