//go:build unit

package statesync

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hotel-booking/internal/domain/room"
	"hotel-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryChannel_PublishIsBounded(t *testing.T) {
	ch := NewMemoryChannel(1, 20*time.Millisecond, 0, discardLogger())

	require.NoError(t, ch.Publish(context.Background(), room.StatusChange{RoomID: 1, Status: room.StatusOccupied}))

	start := time.Now()
	err := ch.Publish(context.Background(), room.StatusChange{RoomID: 2, Status: room.StatusOccupied})
	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, 1, ch.Len())
}

func TestMemoryChannel_RejectsInvalidChange(t *testing.T) {
	ch := NewMemoryChannel(1, time.Second, 0, discardLogger())

	err := ch.Publish(context.Background(), room.StatusChange{RoomID: 1, Status: room.Status("ocupado")})

	assert.True(t, errs.Is(err, ErrInvalidMessage))
	assert.Equal(t, 0, ch.Len())
}

func TestMemoryChannel_RunRetriesTransientFailures(t *testing.T) {
	ch := NewMemoryChannel(4, time.Second, time.Millisecond, discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu       sync.Mutex
		attempts int
		applied  []room.StatusChange
	)
	done := make(chan struct{})
	handle := func(_ context.Context, change room.StatusChange) error {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		if attempts < 3 {
			return errs.Mark(errors.New("db down"), errs.ErrPersistenceFailure)
		}
		applied = append(applied, change)
		close(done)
		return nil
	}

	go func() { _ = ch.Run(ctx, handle) }()

	require.NoError(t, ch.Publish(ctx, room.StatusChange{RoomID: 1, Status: room.StatusAvailable}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("change was not applied")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []room.StatusChange{{RoomID: 1, Status: room.StatusAvailable}}, applied)
}

func TestMemoryChannel_RunDropsValidationFailures(t *testing.T) {
	ch := NewMemoryChannel(4, time.Second, time.Millisecond, discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := make(chan room.StatusChange, 4)
	handle := func(_ context.Context, change room.StatusChange) error {
		calls <- change
		if change.RoomID == 1 {
			return errs.Mark(errors.New("bad"), errs.ErrValidation)
		}
		return nil
	}

	go func() { _ = ch.Run(ctx, handle) }()

	require.NoError(t, ch.Publish(ctx, room.StatusChange{RoomID: 1, Status: room.StatusOccupied}))
	require.NoError(t, ch.Publish(ctx, room.StatusChange{RoomID: 2, Status: room.StatusOccupied}))

	assert.Equal(t, int64(1), (<-calls).RoomID)
	assert.Equal(t, int64(2), (<-calls).RoomID)

	select {
	case extra := <-calls:
		t.Fatalf("unexpected redelivery of room %d", extra.RoomID)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryChannel_RunStopsOnCancel(t *testing.T) {
	ch := NewMemoryChannel(1, time.Second, 0, discardLogger())
	ctx, cancel := context.WithCancel(context.Background())

	stopped := make(chan error, 1)
	go func() { stopped <- ch.Run(ctx, func(context.Context, room.StatusChange) error { return nil }) }()

	cancel()
	select {
	case err := <-stopped:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
