package services

import "time"

const (
	KeyGameSession  = "game:session:%s"
	KeyGameGuesses  = "game:%s:guesses"
	KeyRateLimit    = "ratelimit:%s:%s"
	MaxGuessHistory = 100

	TTLGameSession = 24 * time.Hour
	TTLGuesses     = 24 * time.Hour

	DefaultHistoryLimit = 50
)
