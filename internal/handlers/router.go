package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"guess-master/internal/config"
	"guess-master/internal/middleware"
	"guess-master/internal/services"
)

// RouterConfig holds per-IP request limits. Zero values take the config defaults.
type RouterConfig struct {
	GuessRateLimit int
	StartRateLimit int
	RateWindow     time.Duration
}

// NewRouter wires the game endpoints. wsHandler may be nil to disable /ws.
func NewRouter(gameEngine *services.GameEngine, jwtService *services.JWTService, wsHandler *WebSocketHandler, cfg RouterConfig) *gin.Engine {
	if cfg.RateWindow == 0 {
		cfg.RateWindow = time.Minute
	}
	if cfg.GuessRateLimit == 0 {
		cfg.GuessRateLimit = config.DefaultRateLimit
	}
	if cfg.StartRateLimit == 0 {
		cfg.StartRateLimit = config.DefaultStartRateLimit
	}

	gameHandler := NewGameHandler(gameEngine, jwtService)
	sessionHandler := NewSessionHandler(gameEngine)

	router := gin.Default()
	router.Use(middleware.CORS())

	game := router.Group("/")
	game.Use(middleware.GameSession(jwtService))
	{
		game.GET("/start",
			middleware.RateLimit(gameEngine, "start", cfg.StartRateLimit, cfg.RateWindow),
			gameHandler.StartGame,
		)
		game.POST("/guess",
			middleware.RateLimit(gameEngine, "guess", cfg.GuessRateLimit, cfg.RateWindow),
			gameHandler.MakeGuess,
		)

		session := game.Group("/session")
		{
			session.GET("", sessionHandler.GetSession)
			session.DELETE("", sessionHandler.EndSession)
			session.GET("/history", sessionHandler.GetHistory)
		}
	}

	if wsHandler != nil {
		router.GET("/ws", wsHandler.HandleWebSocket)
	}

	return router
}
