package services

import (
	"context"
	"testing"
	"time"

	"guess-master/internal/models"
)

var (
	_ GameStore = (*MemoryStore)(nil)
	_ GameStore = (*RedisStore)(nil)
)

func TestMemoryStoreRateWindowResets(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		store.CheckRateLimit(ctx, "ip", "guess", 2, time.Minute)
	}
	if allowed, _ := store.CheckRateLimit(ctx, "ip", "guess", 2, time.Minute); allowed {
		t.Fatal("third request inside the window should be denied")
	}

	now = now.Add(time.Minute)
	if allowed, _ := store.CheckRateLimit(ctx, "ip", "guess", 2, time.Minute); !allowed {
		t.Fatal("request after the window should be allowed")
	}
}

func TestMemoryStorePurgeStale(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	store.SaveGame(ctx, &models.GameSession{ID: "old", UpdatedAt: now.Add(-time.Hour)})
	store.SaveGame(ctx, &models.GameSession{ID: "fresh", UpdatedAt: now})

	n, err := store.PurgeStale(ctx, 10*time.Minute)
	if err != nil {
		t.Fatalf("PurgeStale: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 purged game, got %d", n)
	}
	if _, err := store.GetGame(ctx, "old"); err != ErrGameNotFound {
		t.Errorf("old game should be gone, got %v", err)
	}
	if _, err := store.GetGame(ctx, "fresh"); err != nil {
		t.Errorf("fresh game should remain: %v", err)
	}
}

func TestMemoryStoreHistoryCap(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < MaxGuessHistory+10; i++ {
		store.AppendGuess(ctx, &models.GuessRecord{GameID: "g", Guess: i%100 + 1})
	}

	records, _ := store.GuessHistory(ctx, "g", MaxGuessHistory)
	if len(records) != MaxGuessHistory {
		t.Fatalf("expected %d records, got %d", MaxGuessHistory, len(records))
	}
	last := (MaxGuessHistory+9)%100 + 1
	if records[0].Guess != last {
		t.Errorf("expected newest guess %d first, got %d", last, records[0].Guess)
	}
}
