package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "marketadmin:session:"

// RedisStore keeps sessions in Redis as JSON with a TTL matching the session expiry
type RedisStore struct {
	client     redis.Cmdable
	defaultTTL time.Duration
	now        func() time.Time
}

// NewRedisStore creates a session store backed by client.
// defaultTTL applies to sessions that carry no expiry.
func NewRedisStore(client redis.Cmdable, defaultTTL time.Duration) *RedisStore {
	return &RedisStore{
		client:     client,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// NewRedisClient creates a Redis client and checks connectivity
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

func (r *RedisStore) key(id string) string {
	return redisKeyPrefix + id
}

// Save stores s until its expiry
func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	ttl := r.defaultTTL
	if !s.ExpiresAt.IsZero() {
		ttl = s.ExpiresAt.Sub(r.now())
	}
	if ttl <= 0 {
		return errors.New("session already expired")
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session marshal: %w", err)
	}
	if err := r.client.Set(ctx, r.key(s.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("session store: %w", err)
	}
	return nil
}

// Get loads the session with id
func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("session get: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("session unmarshal: %w", err)
	}
	if s.Expired(r.now()) {
		return nil, ErrNotFound
	}
	return &s, nil
}

// Delete removes the session with id
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.key(id)).Err()
}

// Exists reports whether a session with id is stored. A failed lookup
// reports true so an unreachable Redis never clears live view snapshots.
func (r *RedisStore) Exists(ctx context.Context, id string) bool {
	n, err := r.client.Exists(ctx, r.key(id)).Result()
	if err != nil {
		return true
	}
	return n > 0
}
