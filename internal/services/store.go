package services

import (
	"context"
	"errors"
	"time"

	"guess-master/internal/models"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameOver     = errors.New("game is over")
	ErrRateLimited  = errors.New("rate limit exceeded")
)

// GameStore persists game sessions, guess history and rate-limit counters.
type GameStore interface {
	SaveGame(ctx context.Context, session *models.GameSession) error
	GetGame(ctx context.Context, gameID string) (*models.GameSession, error)
	// UpdateGame applies fn to the stored session atomically. An error from fn
	// aborts the update and is returned unchanged.
	UpdateGame(ctx context.Context, gameID string, fn func(*models.GameSession) error) (*models.GameSession, error)

	AppendGuess(ctx context.Context, record *models.GuessRecord) error
	GuessHistory(ctx context.Context, gameID string, limit int64) ([]*models.GuessRecord, error)

	CheckRateLimit(ctx context.Context, subject, action string, limit int, window time.Duration) (bool, error)
	PurgeStale(ctx context.Context, maxAge time.Duration) (int, error)

	Close() error
}

func clampHistoryLimit(limit int64) int64 {
	if limit <= 0 || limit > MaxGuessHistory {
		return DefaultHistoryLimit
	}
	return limit
}
