//go:build unit

package statesync

import (
	"context"
	"errors"
	"testing"

	"hotel-booking/internal/domain/room"
	"hotel-booking/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
)

type ackRecorder struct {
	acks    int
	nacks   int
	requeue bool
}

func (a *ackRecorder) Ack(uint64, bool) error {
	a.acks++
	return nil
}

func (a *ackRecorder) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacks++
	a.requeue = requeue
	return nil
}

func (a *ackRecorder) Reject(_ uint64, requeue bool) error {
	a.nacks++
	a.requeue = requeue
	return nil
}

func TestAMQPConsumer_Handle(t *testing.T) {
	valid := []byte(`{"room_id":1,"status":"Occupied"}`)

	tests := []struct {
		name        string
		body        []byte
		handleErr   error
		wantApplied bool
		wantAck     bool
		wantRequeue bool
	}{
		{name: "ack after apply", body: valid, wantApplied: true, wantAck: true},
		{name: "drop undecodable body", body: []byte(`{`)},
		{name: "drop unknown status", body: []byte(`{"room_id":1,"status":"ocupado"}`)},
		{
			name:        "drop when the apply rejects the change",
			body:        valid,
			handleErr:   errs.Mark(errors.New("bad"), errs.ErrValidation),
			wantApplied: true,
		},
		{
			name:        "requeue transient failures",
			body:        valid,
			handleErr:   errs.Mark(errors.New("db down"), errs.ErrPersistenceFailure),
			wantApplied: true,
			wantRequeue: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			consumer := &AMQPConsumer{queue: "room_status_updates", logger: discardLogger()}
			rec := &ackRecorder{}
			applied := false

			consumer.handle(context.Background(), amqp.Delivery{
				Acknowledger: rec,
				DeliveryTag:  1,
				Body:         tt.body,
			}, func(_ context.Context, change room.StatusChange) error {
				applied = true
				assert.Equal(t, room.StatusChange{RoomID: 1, Status: room.StatusOccupied}, change)
				return tt.handleErr
			})

			assert.Equal(t, tt.wantApplied, applied)
			if tt.wantAck {
				assert.Equal(t, 1, rec.acks)
				assert.Equal(t, 0, rec.nacks)
				return
			}
			assert.Equal(t, 0, rec.acks)
			assert.Equal(t, 1, rec.nacks)
			assert.Equal(t, tt.wantRequeue, rec.requeue)
		})
	}
}
