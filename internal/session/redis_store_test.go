package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis integration test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client, err := NewRedisClient(ctx, fmt.Sprintf("%s:%s", host, port.Port()), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisStore_Integration(t *testing.T) {
	client := startRedis(t)
	ctx := context.Background()
	store := NewRedisStore(client, time.Hour)

	s := &Session{
		ID:        "redis-1",
		Token:     "tok",
		AdminID:   "a1",
		Roles:     []string{"admin"},
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	require.NoError(t, store.Save(ctx, s))
	assert.True(t, store.Exists(ctx, "redis-1"))

	got, err := store.Get(ctx, "redis-1")
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)
	assert.Equal(t, []string{"admin"}, got.Roles)

	ttl, err := client.TTL(ctx, redisKeyPrefix+"redis-1").Result()
	require.NoError(t, err)
	assert.InDelta(t, (10 * time.Minute).Seconds(), ttl.Seconds(), 5)

	require.NoError(t, store.Delete(ctx, "redis-1"))
	_, err = store.Get(ctx, "redis-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_RejectsExpired(t *testing.T) {
	store := NewRedisStore(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}), time.Hour)
	err := store.Save(context.Background(), &Session{ID: "x", ExpiresAt: time.Now().Add(-time.Second)})
	assert.Error(t, err)
}

func TestRedisStore_ExistsAssumesLiveOnError(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	require.NoError(t, client.Close())

	store := NewRedisStore(client, time.Hour)
	assert.True(t, store.Exists(context.Background(), "any"), "a failed lookup must not look like a gone session")
}
