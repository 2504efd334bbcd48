package statesync

import (
	"context"
	"log/slog"
	"time"

	"hotel-booking/internal/domain/room"
	"hotel-booking/internal/pkg/errs"
)

// MemoryChannel is an in-process queue implementing both sides of the channel. It
// loses its contents when the process exits.
type MemoryChannel struct {
	messages       chan room.StatusChange
	enqueueTimeout time.Duration
	retryDelay     time.Duration
	logger         *slog.Logger
}

func NewMemoryChannel(capacity int, enqueueTimeout, retryDelay time.Duration, logger *slog.Logger) *MemoryChannel {
	return &MemoryChannel{
		messages:       make(chan room.StatusChange, capacity),
		enqueueTimeout: enqueueTimeout,
		retryDelay:     retryDelay,
		logger:         logger,
	}
}

func (m *MemoryChannel) Publish(ctx context.Context, change room.StatusChange) error {
	if _, err := Encode(change); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, m.enqueueTimeout)
	defer cancel()

	select {
	case m.messages <- change:
		return nil
	case <-ctx.Done():
		return errs.Wrap(ctx.Err(), "enqueue room status change")
	}
}

// Len reports the number of queued changes.
func (m *MemoryChannel) Len() int {
	return len(m.messages)
}

// Run delivers queued changes to handle. A change whose apply fails with anything but
// ErrValidation goes back to the end of the queue after the retry delay.
func (m *MemoryChannel) Run(ctx context.Context, handle Handler) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case change := <-m.messages:
			err := handle(ctx, change)
			if err == nil {
				continue
			}
			if errs.Is(err, errs.ErrValidation) {
				m.logger.Warn("dropping invalid state sync message",
					slog.Int64("room_id", change.RoomID),
					slog.String("error", err.Error()))
				continue
			}

			m.logger.Warn("state sync apply failed, requeueing",
				slog.Int64("room_id", change.RoomID),
				slog.String("status", change.Status.String()),
				slog.String("error", err.Error()))
			wait(ctx, m.retryDelay)
			select {
			case m.messages <- change:
			default:
				m.logger.Error("state sync channel full, change lost",
					slog.Int64("room_id", change.RoomID),
					slog.String("status", change.Status.String()))
			}
		}
	}
}
