package services_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"guess-master/internal/models"
	"guess-master/internal/services"
)

type recordingBroadcaster struct {
	mu      sync.Mutex
	started []string
	guesses []models.GuessOutcome
}

func (b *recordingBroadcaster) BroadcastGameStarted(gameID string, prize float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.started = append(b.started, gameID)
}

func (b *recordingBroadcaster) BroadcastGuess(gameID string, guess int, outcome models.GuessOutcome, prize float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.guesses = append(b.guesses, outcome)
}

// secretOf reads the stored secret so tests can steer outcomes.
func secretOf(t *testing.T, store services.GameStore, gameID string) int {
	t.Helper()
	session, err := store.GetGame(context.Background(), gameID)
	if err != nil {
		t.Fatalf("Failed to get game: %v", err)
	}
	return session.Secret
}

func TestGameEngine(t *testing.T) {
	store := services.NewMemoryStore()
	gameEngine := services.NewGameEngine(store)
	broadcaster := &recordingBroadcaster{}
	gameEngine.SetBroadcaster(broadcaster)

	ctx := context.Background()
	gameID := models.GenerateGameID()

	resp, err := gameEngine.StartGame(ctx, gameID)
	if err != nil {
		t.Fatalf("Failed to start game: %v", err)
	}

	if resp.Message != models.MessageGameStarted {
		t.Errorf("Unexpected start message: %q", resp.Message)
	}
	if resp.Prize != 1.0 {
		t.Errorf("Expected prize 1.0, got %f", resp.Prize)
	}

	secret := secretOf(t, store, gameID)
	miss := secret + 1
	if miss > models.MaxGuess {
		miss = secret - 1
	}

	resp, err = gameEngine.MakeGuess(ctx, gameID, miss)
	if err != nil {
		t.Fatalf("Failed to guess: %v", err)
	}
	if resp.Prize != 0.5 {
		t.Errorf("Expected prize 0.5 after a miss, got %f", resp.Prize)
	}
	if strings.Contains(resp.Message, "Correct") {
		t.Errorf("Miss should not report Correct: %q", resp.Message)
	}

	resp, err = gameEngine.MakeGuess(ctx, gameID, secret)
	if err != nil {
		t.Fatalf("Failed to guess: %v", err)
	}
	if resp.Message != models.MessageCorrect {
		t.Errorf("Expected %q, got %q", models.MessageCorrect, resp.Message)
	}
	if resp.Prize != 0.5 {
		t.Errorf("Correct guess should keep prize 0.5, got %f", resp.Prize)
	}

	if _, err := gameEngine.MakeGuess(ctx, gameID, secret); !errors.Is(err, services.ErrGameOver) {
		t.Errorf("Expected ErrGameOver after a win, got %v", err)
	}

	view, err := gameEngine.GetGame(ctx, gameID)
	if err != nil {
		t.Fatalf("Failed to get game: %v", err)
	}
	if view.Status != models.GameStatusWon || view.Attempts != 2 {
		t.Errorf("Unexpected game view: %+v", view)
	}

	history, err := gameEngine.History(ctx, gameID, 0)
	if err != nil {
		t.Fatalf("Failed to get history: %v", err)
	}
	if len(history) != 2 || history[0].Outcome != models.GuessOutcomeCorrect {
		t.Errorf("Expected newest-first history with a correct guess on top, got %d records", len(history))
	}

	if len(broadcaster.started) != 1 || len(broadcaster.guesses) != 2 {
		t.Errorf("Unexpected broadcasts: %d starts, %d guesses", len(broadcaster.started), len(broadcaster.guesses))
	}
}

func TestGameEnginePrizeFloor(t *testing.T) {
	store := services.NewMemoryStore()
	gameEngine := services.NewGameEngine(store)
	ctx := context.Background()

	if _, err := gameEngine.StartGame(ctx, "floor"); err != nil {
		t.Fatalf("Failed to start game: %v", err)
	}

	secret := secretOf(t, store, "floor")
	miss := 1
	if secret == 1 {
		miss = 2
	}

	var resp *models.GameResponse
	for i := 0; i < 20; i++ {
		var err error
		resp, err = gameEngine.MakeGuess(ctx, "floor", miss)
		if err != nil {
			t.Fatalf("Failed to guess: %v", err)
		}
	}

	if resp.Prize != models.MinimumPrize {
		t.Errorf("Expected prize floor %f, got %f", models.MinimumPrize, resp.Prize)
	}
}

func TestGameEngineUnknownGame(t *testing.T) {
	gameEngine := services.NewGameEngine(services.NewMemoryStore())
	ctx := context.Background()

	if _, err := gameEngine.MakeGuess(ctx, "missing", 50); !errors.Is(err, services.ErrGameNotFound) {
		t.Errorf("Expected ErrGameNotFound, got %v", err)
	}
	if _, err := gameEngine.GetGame(ctx, "missing"); !errors.Is(err, services.ErrGameNotFound) {
		t.Errorf("Expected ErrGameNotFound, got %v", err)
	}
	if _, err := gameEngine.History(ctx, "missing", 10); !errors.Is(err, services.ErrGameNotFound) {
		t.Errorf("Expected ErrGameNotFound, got %v", err)
	}
}

func TestGameEngineDefaultGameIsImplicit(t *testing.T) {
	gameEngine := services.NewGameEngine(services.NewMemoryStore())

	resp, err := gameEngine.MakeGuess(context.Background(), models.DefaultGameID, 50)
	if err != nil {
		t.Fatalf("Guess on default game should succeed without /start: %v", err)
	}
	if resp.Message == "" {
		t.Error("Expected a message")
	}
}

func TestGameEngineRejectsOutOfRange(t *testing.T) {
	gameEngine := services.NewGameEngine(services.NewMemoryStore())
	ctx := context.Background()

	if _, err := gameEngine.StartGame(ctx, "range"); err != nil {
		t.Fatalf("Failed to start game: %v", err)
	}
	for _, g := range []int{0, 101} {
		if _, err := gameEngine.MakeGuess(ctx, "range", g); err == nil {
			t.Errorf("Guess %d should be rejected", g)
		}
	}
}

func TestGameEngineEndGame(t *testing.T) {
	gameEngine := services.NewGameEngine(services.NewMemoryStore())
	ctx := context.Background()

	if _, err := gameEngine.StartGame(ctx, "end"); err != nil {
		t.Fatalf("Failed to start game: %v", err)
	}

	view, err := gameEngine.EndGame(ctx, "end")
	if err != nil {
		t.Fatalf("Failed to end game: %v", err)
	}
	if view.Status != models.GameStatusEnded {
		t.Errorf("Expected ended status, got %s", view.Status)
	}

	if _, err := gameEngine.MakeGuess(ctx, "end", 10); !errors.Is(err, services.ErrGameOver) {
		t.Errorf("Expected ErrGameOver, got %v", err)
	}
}

func TestGameEngineRateLimit(t *testing.T) {
	gameEngine := services.NewGameEngine(services.NewMemoryStore())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := gameEngine.CheckRateLimit(ctx, "10.0.0.1", "guess", 3, time.Minute); err != nil {
			t.Fatalf("Request %d should be allowed: %v", i+1, err)
		}
	}
	if err := gameEngine.CheckRateLimit(ctx, "10.0.0.1", "guess", 3, time.Minute); !errors.Is(err, services.ErrRateLimited) {
		t.Errorf("Expected ErrRateLimited, got %v", err)
	}
	if err := gameEngine.CheckRateLimit(ctx, "10.0.0.2", "guess", 3, time.Minute); err != nil {
		t.Errorf("Other subjects should not be limited: %v", err)
	}
}
