package store

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore tracks which issued session tokens are still valid. Tokens not
// marked (or already revoked/expired) are treated as revoked.
type TokenStore interface {
	Mark(ctx context.Context, key string, ttl time.Duration) error
	Valid(ctx context.Context, key string) (bool, error)
	Revoke(ctx context.Context, keys ...string) error
}

// RedisTokenStore keeps token validity keys in redis with their natural TTL.
type RedisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func (s *RedisTokenStore) Mark(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Set(ctx, key, "valid", ttl).Err()
}

func (s *RedisTokenStore) Valid(ctx context.Context, key string) (bool, error) {
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (s *RedisTokenStore) Revoke(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// MemoryTokenStore is the in-process token tracker for file/memory store
// deployments and tests.
type MemoryTokenStore struct {
	mu     sync.Mutex
	expiry map[string]time.Time
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{expiry: make(map[string]time.Time)}
}

func (s *MemoryTokenStore) Mark(_ context.Context, key string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expiry[key] = time.Now().Add(ttl)
	return nil
}

func (s *MemoryTokenStore) Valid(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deadline, ok := s.expiry[key]
	if !ok {
		return false, nil
	}
	if time.Now().After(deadline) {
		delete(s.expiry, key)
		return false, nil
	}
	return true, nil
}

func (s *MemoryTokenStore) Revoke(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.expiry, key)
	}
	return nil
}
