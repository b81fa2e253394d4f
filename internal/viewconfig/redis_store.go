package viewconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps configurations as string keys in Redis. All keys are
// namespaced as makerflow:{namespace}:viewcfg:{boardKey}.
type RedisStore struct {
	rdb       *redis.Client
	namespace string
}

// Compile-time verification that *RedisStore implements Store
var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a store for the given namespace
func NewRedisStore(opts *redis.Options, namespace string) (*RedisStore, error) {
	if namespace == "" {
		return nil, fmt.Errorf("namespace cannot be empty")
	}
	return &RedisStore{rdb: redis.NewClient(opts), namespace: namespace}, nil
}

// Key returns the Redis key of a board's configuration
func (s *RedisStore) Key(boardKey string) string {
	return fmt.Sprintf("makerflow:%s:viewcfg:%s", s.namespace, boardKey)
}

// Ping verifies Redis connectivity
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

// Load decodes the stored blob or returns defaults
func (s *RedisStore) Load(ctx context.Context, boardKey string) (*ViewConfig, error) {
	blob, err := s.rdb.Get(ctx, s.Key(boardKey)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Default(boardKey), nil
	}
	if err != nil {
		return Default(boardKey), fmt.Errorf("failed to read view configuration from Redis: %w", err)
	}
	return decodeLogged(boardKey, blob), nil
}

// Save encodes and stores cfg without expiry
func (s *RedisStore) Save(ctx context.Context, boardKey string, cfg *ViewConfig) error {
	blob, err := Encode(cfg)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, s.Key(boardKey), blob, 0).Err(); err != nil {
		return fmt.Errorf("failed to write view configuration to Redis: %w", err)
	}
	return nil
}

// Delete removes a board's configuration
func (s *RedisStore) Delete(ctx context.Context, boardKey string) error {
	if err := s.rdb.Del(ctx, s.Key(boardKey)).Err(); err != nil {
		return fmt.Errorf("failed to delete view configuration from Redis: %w", err)
	}
	return nil
}
