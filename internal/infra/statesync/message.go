// Package statesync carries room status changes from the reservation-service to the
// room-service when the synchronous update could not be delivered.
//
// Delivery is at-least-once. Messages for different rooms are unordered; messages for
// one room are ordered on a best-effort basis only, so a redelivered change can briefly
// regress a room to an older status.
package statesync

import (
	"context"
	"encoding/json"

	"hotel-booking/internal/domain/room"
	"hotel-booking/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidMessage = errs.New("invalid state sync message")

// Message is the wire format shared by producer and consumer.
type Message struct {
	RoomID int64  `json:"room_id" validate:"required,gt=0"`
	Status string `json:"status" validate:"required,oneof=Available Occupied"`
}

// Handler applies one change. It must be idempotent.
type Handler func(ctx context.Context, change room.StatusChange) error

// Consumer drives a Handler until ctx is done.
type Consumer interface {
	Run(ctx context.Context, handle Handler) error
}

var validate = validator.New()

func Encode(change room.StatusChange) ([]byte, error) {
	msg := Message{RoomID: change.RoomID, Status: change.Status.String()}
	if err := validate.Struct(msg); err != nil {
		return nil, errs.Mark(err, ErrInvalidMessage)
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, errs.Wrap(err, "marshal state sync message")
	}
	return body, nil
}

func Decode(body []byte) (room.StatusChange, error) {
	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return room.StatusChange{}, errs.Mark(errs.Wrap(err, "unmarshal state sync message"), ErrInvalidMessage)
	}
	if err := validate.Struct(msg); err != nil {
		return room.StatusChange{}, errs.Mark(err, ErrInvalidMessage)
	}
	return room.StatusChange{RoomID: msg.RoomID, Status: room.Status(msg.Status)}, nil
}
