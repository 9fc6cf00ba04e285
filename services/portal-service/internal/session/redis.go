package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBackend keeps each session key as its own Redis string with a TTL
// that is refreshed on every write.
type RedisBackend struct {
	rdb    redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewRedisBackend(rdb redis.Cmdable, ttl time.Duration) *RedisBackend {
	return &RedisBackend{rdb: rdb, prefix: "portal:session", ttl: ttl}
}

func (b *RedisBackend) key(sessionID, key string) string {
	return b.prefix + ":" + sessionID + ":" + key
}

func (b *RedisBackend) Get(ctx context.Context, sessionID, key string) ([]byte, error) {
	raw, err := b.rdb.Get(ctx, b.key(sessionID, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session: redis get %s: %w", key, err)
	}
	return raw, nil
}

func (b *RedisBackend) Set(ctx context.Context, sessionID, key string, value []byte) error {
	if err := b.rdb.Set(ctx, b.key(sessionID, key), value, b.ttl).Err(); err != nil {
		return fmt.Errorf("session: redis set %s: %w", key, err)
	}
	return nil
}

func (b *RedisBackend) Delete(ctx context.Context, sessionID string, keys ...string) error {
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, b.key(sessionID, k))
	}
	if err := b.rdb.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("session: redis del: %w", err)
	}
	return nil
}
