//go:build integration

package statesync

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"hotel-booking/internal/domain/room"
	"hotel-booking/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcwait "github.com/testcontainers/testcontainers-go/wait"
)

func startRabbitMQ(t *testing.T) *amqp.Connection {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "rabbitmq:3.13-alpine",
			ExposedPorts: []string{"5672/tcp"},
			WaitingFor:   tcwait.ForListeningPort("5672/tcp").WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	mappedPort, err := container.MappedPort(ctx, "5672")
	require.NoError(t, err)

	conn, err := amqp.DialConfig("amqp://guest:guest@"+host+":"+mappedPort.Port()+"/", amqp.Config{
		Dial: amqp.DefaultDial(10 * time.Second),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cleanupCancel()
		_ = conn.Close()
		_ = container.Terminate(cleanupCtx)
	})

	return conn
}

func TestAMQP_PublishThenConsume(t *testing.T) {
	conn := startRabbitMQ(t)
	const queue = "room_status_updates_it"

	publisher, err := NewAMQPPublisher(conn, queue, 2*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = publisher.Close() })

	consumer, err := NewAMQPConsumer(conn, queue, 1, 10*time.Millisecond, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = consumer.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var attempts int32
	applied := make(chan room.StatusChange, 1)
	go func() {
		_ = consumer.Run(ctx, func(_ context.Context, change room.StatusChange) error {
			// first delivery fails so the message must come back
			if atomic.AddInt32(&attempts, 1) == 1 {
				return errs.Mark(errors.New("db down"), errs.ErrPersistenceFailure)
			}
			applied <- change
			return nil
		})
	}()

	require.NoError(t, publisher.Publish(context.Background(), room.StatusChange{RoomID: 5, Status: room.StatusAvailable}))

	select {
	case change := <-applied:
		require.Equal(t, room.StatusChange{RoomID: 5, Status: room.StatusAvailable}, change)
		require.Equal(t, int32(2), atomic.LoadInt32(&attempts))
	case <-time.After(30 * time.Second):
		t.Fatal("message was not redelivered")
	}
}
