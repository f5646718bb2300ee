package models

import "time"

type GuessOutcome string

const (
	GuessOutcomeLow     GuessOutcome = "low"
	GuessOutcomeHigh    GuessOutcome = "high"
	GuessOutcomeCorrect GuessOutcome = "correct"
)

// Messages returned to players. Clients detect a win by the "Correct" substring.
const (
	MessageGameStarted = "Game started! Guess a number between 1 and 100."
	MessageCorrect     = "🎉 Correct! You won!"
	MessageTooLow      = "Too low! Try again."
	MessageTooHigh     = "Too high! Try again."
)

type GuessRequest struct {
	Guess int `json:"guess" binding:"required,min=1,max=100"`
}

// GameResponse is the body of both /start and /guess.
type GameResponse struct {
	Message string  `json:"message"`
	Prize   float64 `json:"prize"`
}

type GuessRecord struct {
	GameID     string       `json:"game_id" redis:"game_id"`
	Guess      int          `json:"guess" redis:"guess"`
	Outcome    GuessOutcome `json:"outcome" redis:"outcome"`
	PrizeAfter float64      `json:"prize_after" redis:"prize_after"`
	CreatedAt  time.Time    `json:"created_at" redis:"created_at"`
}
