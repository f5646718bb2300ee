package models

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/google/uuid"
)

func GenerateGameID() string {
	return fmt.Sprintf("game_%s_%s",
		time.Now().Format("20060102"),
		uuid.NewString())
}

// GenerateSecret draws a number uniformly from [MinGuess, MaxGuess].
func GenerateSecret() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(MaxGuess-MinGuess+1))
	if err != nil {
		return 0, fmt.Errorf("failed to generate secret: %w", err)
	}
	return int(n.Int64()) + MinGuess, nil
}

func (r *GuessRequest) Validate() error {
	if r.Guess < MinGuess || r.Guess > MaxGuess {
		return fmt.Errorf("guess must be between %d and %d, got %d", MinGuess, MaxGuess, r.Guess)
	}
	return nil
}

// HalvePrize applies the miss penalty, never dropping below MinimumPrize.
func HalvePrize(prize float64) float64 {
	return math.Max(prize/2, MinimumPrize)
}

func Judge(guess, secret int) (GuessOutcome, string) {
	switch {
	case guess == secret:
		return GuessOutcomeCorrect, MessageCorrect
	case guess < secret:
		return GuessOutcomeLow, MessageTooLow
	default:
		return GuessOutcomeHigh, MessageTooHigh
	}
}

func FormatPrize(prize float64) string {
	return fmt.Sprintf("%.4f SOL", prize)
}

func NewGameSession(id string) (*GameSession, error) {
	secret, err := GenerateSecret()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &GameSession{
		ID:        id,
		Secret:    secret,
		Prize:     StartingPrize,
		Status:    GameStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
