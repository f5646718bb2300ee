package services

import (
	"context"
	"sync"
	"time"

	"guess-master/internal/models"
)

type rateWindow struct {
	count   int
	resetAt time.Time
}

// MemoryStore is the GameStore used when no Redis is configured.
type MemoryStore struct {
	mu      sync.Mutex
	games   map[string]models.GameSession
	guesses map[string][]models.GuessRecord
	limits  map[string]*rateWindow
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games:   make(map[string]models.GameSession),
		guesses: make(map[string][]models.GuessRecord),
		limits:  make(map[string]*rateWindow),
		now:     time.Now,
	}
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) SaveGame(_ context.Context, session *models.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.games[session.ID] = *session
	delete(s.guesses, session.ID)
	return nil
}

func (s *MemoryStore) GetGame(_ context.Context, gameID string) (*models.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.games[gameID]
	if !ok {
		return nil, ErrGameNotFound
	}
	return &session, nil
}

func (s *MemoryStore) UpdateGame(_ context.Context, gameID string, fn func(*models.GameSession) error) (*models.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.games[gameID]
	if !ok {
		return nil, ErrGameNotFound
	}

	if err := fn(&session); err != nil {
		return nil, err
	}
	session.UpdatedAt = s.now()

	s.games[gameID] = session
	return &session, nil
}

func (s *MemoryStore) AppendGuess(_ context.Context, record *models.GuessRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.guesses[record.GameID], *record)
	if len(history) > MaxGuessHistory {
		history = history[len(history)-MaxGuessHistory:]
	}
	s.guesses[record.GameID] = history
	return nil
}

func (s *MemoryStore) GuessHistory(_ context.Context, gameID string, limit int64) ([]*models.GuessRecord, error) {
	limit = clampHistoryLimit(limit)

	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.guesses[gameID]
	records := make([]*models.GuessRecord, 0, len(history))
	for i := len(history) - 1; i >= 0 && int64(len(records)) < limit; i-- {
		record := history[i]
		records = append(records, &record)
	}
	return records, nil
}

func (s *MemoryStore) CheckRateLimit(_ context.Context, subject, action string, limit int, window time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := subject + ":" + action
	now := s.now()

	w, ok := s.limits[key]
	if !ok || !now.Before(w.resetAt) {
		w = &rateWindow{resetAt: now.Add(window)}
		s.limits[key] = w
	}
	w.count++

	return w.count <= limit, nil
}

// PurgeStale drops games untouched for maxAge along with expired rate windows.
func (s *MemoryStore) PurgeStale(_ context.Context, maxAge time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	purged := 0
	for id, session := range s.games {
		if now.Sub(session.UpdatedAt) > maxAge {
			delete(s.games, id)
			delete(s.guesses, id)
			purged++
		}
	}

	for key, w := range s.limits {
		if !now.Before(w.resetAt) {
			delete(s.limits, key)
		}
	}

	return purged, nil
}
