//go:build integration

package roomlock

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)

	port := nat.Port("6379/tcp")
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{string(port)},
			WaitingFor:   wait.ForListeningPort(port).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	mapped, err := container.MappedPort(ctx, port)
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: host + ":" + mapped.Port()})
	t.Cleanup(func() {
		_ = rdb.Close()
		_ = container.Terminate(context.Background())
	})
	return rdb
}

func TestRedis_LockIsExclusiveAndReleasable(t *testing.T) {
	rdb := startRedis(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	first := NewRedis(rdb, 5*time.Second, 100*time.Millisecond, logger)
	second := NewRedis(rdb, 5*time.Second, 100*time.Millisecond, logger)

	unlock, err := first.Lock(context.Background(), 7)
	require.NoError(t, err)

	_, err = second.Lock(context.Background(), 7)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()

	unlock2, err := second.Lock(context.Background(), 7)
	require.NoError(t, err)
	unlock2()
}

func TestRedis_ReleaseKeepsAnotherHoldersLock(t *testing.T) {
	rdb := startRedis(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	l := NewRedis(rdb, 50*time.Millisecond, time.Second, logger)

	staleUnlock, err := l.Lock(context.Background(), 8)
	require.NoError(t, err)

	// TTL expires and another holder takes over
	time.Sleep(100 * time.Millisecond)
	unlock, err := l.Lock(context.Background(), 8)
	require.NoError(t, err)

	staleUnlock()

	exists, err := rdb.Exists(context.Background(), l.Key(8)).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)
	unlock()
}
