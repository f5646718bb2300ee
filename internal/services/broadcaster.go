package services

import "guess-master/internal/models"

type Broadcaster interface {
	BroadcastGameStarted(gameID string, prize float64)
	BroadcastGuess(gameID string, guess int, outcome models.GuessOutcome, prize float64)
}
