package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"guess-master/internal/models"
)

type GameEngine struct {
	store       GameStore
	broadcaster Broadcaster
}

func NewGameEngine(store GameStore) *GameEngine {
	return &GameEngine{store: store}
}

// SetBroadcaster attaches a spectator feed. A nil broadcaster disables it.
func (ge *GameEngine) SetBroadcaster(b Broadcaster) {
	ge.broadcaster = b
}

// StartGame (re)creates gameID with a fresh secret and the starting prize.
func (ge *GameEngine) StartGame(ctx context.Context, gameID string) (*models.GameResponse, error) {
	session, err := models.NewGameSession(gameID)
	if err != nil {
		return nil, err
	}

	if err := ge.store.SaveGame(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	log.Printf("New game started: %s", session.ID)

	if ge.broadcaster != nil {
		ge.broadcaster.BroadcastGameStarted(session.ID, session.Prize)
	}

	return &models.GameResponse{
		Message: models.MessageGameStarted,
		Prize:   session.Prize,
	}, nil
}

func (ge *GameEngine) MakeGuess(ctx context.Context, gameID string, guess int) (*models.GameResponse, error) {
	req := models.GuessRequest{Guess: guess}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid guess: %w", err)
	}

	var (
		outcome models.GuessOutcome
		message string
	)

	session, err := ge.store.UpdateGame(ctx, gameID, func(s *models.GameSession) error {
		if s.Status != models.GameStatusActive {
			return ErrGameOver
		}

		outcome, message = models.Judge(guess, s.Secret)
		s.Attempts++
		if outcome == models.GuessOutcomeCorrect {
			s.Status = models.GameStatusWon
		} else {
			s.Prize = models.HalvePrize(s.Prize)
		}
		return nil
	})

	// The shared game exists from the first request on, as if started at boot.
	if errors.Is(err, ErrGameNotFound) && gameID == models.DefaultGameID {
		if _, err := ge.StartGame(ctx, gameID); err != nil {
			return nil, err
		}
		return ge.MakeGuess(ctx, gameID, guess)
	}
	if err != nil {
		return nil, err
	}

	log.Printf("Guess on %s: %d (%s)", gameID, guess, outcome)

	record := &models.GuessRecord{
		GameID:     gameID,
		Guess:      guess,
		Outcome:    outcome,
		PrizeAfter: session.Prize,
		CreatedAt:  time.Now(),
	}
	if err := ge.store.AppendGuess(ctx, record); err != nil {
		log.Printf("Failed to record guess on %s: %v", gameID, err)
	}

	if ge.broadcaster != nil {
		ge.broadcaster.BroadcastGuess(gameID, guess, outcome, session.Prize)
	}

	return &models.GameResponse{
		Message: message,
		Prize:   session.Prize,
	}, nil
}

func (ge *GameEngine) GetGame(ctx context.Context, gameID string) (*models.GameView, error) {
	session, err := ge.store.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	view := session.View()
	return &view, nil
}

// EndGame marks the game ended; the session stays readable until it expires.
func (ge *GameEngine) EndGame(ctx context.Context, gameID string) (*models.GameView, error) {
	session, err := ge.store.UpdateGame(ctx, gameID, func(s *models.GameSession) error {
		s.Status = models.GameStatusEnded
		return nil
	})
	if err != nil {
		return nil, err
	}
	view := session.View()
	return &view, nil
}

func (ge *GameEngine) History(ctx context.Context, gameID string, limit int64) ([]*models.GuessRecord, error) {
	if _, err := ge.store.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	return ge.store.GuessHistory(ctx, gameID, limit)
}

func (ge *GameEngine) CheckRateLimit(ctx context.Context, subject, action string, limit int, window time.Duration) error {
	allowed, err := ge.store.CheckRateLimit(ctx, subject, action, limit, window)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrRateLimited
	}
	return nil
}

func (ge *GameEngine) CleanupStaleGames(ctx context.Context, maxAge time.Duration) {
	n, err := ge.store.PurgeStale(ctx, maxAge)
	if err != nil {
		log.Printf("Failed to clean up stale games: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Cleaned up %d stale games", n)
	}
}
