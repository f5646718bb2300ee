package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"guess-master/internal/config"
	"guess-master/internal/models"

	"github.com/redis/go-redis/v9"
)

const maxTxRetries = 5

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(ctx context.Context, cfg *config.Config) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) SaveGame(ctx context.Context, session *models.GameSession) error {
	key := fmt.Sprintf(KeyGameSession, session.ID)

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal game session: %w", err)
	}

	if err := s.client.Set(ctx, key, data, TTLGameSession).Err(); err != nil {
		return fmt.Errorf("failed to save game session: %w", err)
	}

	// a fresh game starts with an empty history
	if err := s.client.Del(ctx, fmt.Sprintf(KeyGameGuesses, session.ID)).Err(); err != nil {
		return fmt.Errorf("failed to reset guess history: %w", err)
	}

	return nil
}

func (s *RedisStore) GetGame(ctx context.Context, gameID string) (*models.GameSession, error) {
	key := fmt.Sprintf(KeyGameSession, gameID)

	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game session: %w", err)
	}

	var session models.GameSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game session: %w", err)
	}

	return &session, nil
}

func (s *RedisStore) UpdateGame(ctx context.Context, gameID string, fn func(*models.GameSession) error) (*models.GameSession, error) {
	key := fmt.Sprintf(KeyGameSession, gameID)

	var updated models.GameSession
	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return ErrGameNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get game session: %w", err)
		}

		var session models.GameSession
		if err := json.Unmarshal([]byte(data), &session); err != nil {
			return fmt.Errorf("failed to unmarshal game session: %w", err)
		}

		if err := fn(&session); err != nil {
			return err
		}
		session.UpdatedAt = time.Now()

		payload, err := json.Marshal(&session)
		if err != nil {
			return fmt.Errorf("failed to marshal updated game session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, TTLGameSession)
			return nil
		})
		if err != nil {
			return err
		}

		updated = session
		return nil
	}

	for i := 0; i < maxTxRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return &updated, nil
	}

	return nil, fmt.Errorf("failed to update game %s: too much contention", gameID)
}

func (s *RedisStore) AppendGuess(ctx context.Context, record *models.GuessRecord) error {
	key := fmt.Sprintf(KeyGameGuesses, record.GameID)

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal guess record: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(record.CreatedAt.UnixNano()),
		Member: data,
	})
	// Keep only the last MaxGuessHistory guesses
	pipe.ZRemRangeByRank(ctx, key, 0, -(MaxGuessHistory + 1))
	pipe.Expire(ctx, key, TTLGuesses)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save guess record: %w", err)
	}
	return nil
}

func (s *RedisStore) GuessHistory(ctx context.Context, gameID string, limit int64) ([]*models.GuessRecord, error) {
	limit = clampHistoryLimit(limit)
	key := fmt.Sprintf(KeyGameGuesses, gameID)

	members, err := s.client.ZRevRange(ctx, key, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get guess history: %w", err)
	}

	records := make([]*models.GuessRecord, 0, len(members))
	for _, member := range members {
		var record models.GuessRecord
		if err := json.Unmarshal([]byte(member), &record); err != nil {
			continue
		}
		records = append(records, &record)
	}

	return records, nil
}

func (s *RedisStore) CheckRateLimit(ctx context.Context, subject, action string, limit int, window time.Duration) (bool, error) {
	key := fmt.Sprintf(KeyRateLimit, subject, action)

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit: %w", err)
	}

	if count == 1 {
		s.client.Expire(ctx, key, window)
	}

	return count <= int64(limit), nil
}

// PurgeStale is a no-op: every key written here carries a TTL.
func (s *RedisStore) PurgeStale(ctx context.Context, maxAge time.Duration) (int, error) {
	return 0, nil
}
