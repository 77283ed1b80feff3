package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"starbrew/internal/domain"
)

// RedisStore persists carts in Redis, one key per session. Entries carry a
// jittered TTL so abandoned carts age out instead of accumulating forever.
type RedisStore struct {
	client  *redis.Client
	baseTTL time.Duration
	logger  *log.Logger
}

func NewRedisStore(client *redis.Client, logger *log.Logger) *RedisStore {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &RedisStore{
		client:  client,
		baseTTL: 14 * 24 * time.Hour,
		logger:  logger,
	}
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, lines []domain.LineItem) error {
	data, err := json.Marshal(toStored(lines))
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	jitter := time.Duration(rand.Intn(3600)) * time.Second
	if err := s.client.Set(ctx, redisKey(sessionID), data, s.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) ([]domain.LineItem, error) {
	data, err := s.client.Get(ctx, redisKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		s.logger.Printf("cart store: redis get session=%s error=%v", sessionID, err)
		return nil, nil
	}

	var stored []storedLine
	if err := json.Unmarshal(data, &stored); err != nil {
		s.logger.Printf("cart store: discarding corrupt cart session=%s error=%v", sessionID, err)
		return nil, nil
	}
	return fromStored(stored), nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, redisKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func redisKey(sessionID string) string {
	return "cart:" + sessionID
}
