package reservation

import (
	"errors"
	"strings"
)

var (
	ErrEmptyGuestName   = errors.New("guest name cannot be empty")
	ErrGuestNameTooLong = errors.New("guest name is too long (max 255 characters)")
	ErrInvalidRoomID    = errors.New("room id must be positive")
	ErrInvalidDuration  = errors.New("duration in days must be positive")
)

const (
	MaxGuestNameLength = 255
)

// Reservation references a room by id; it does not own the room.
type Reservation struct {
	id             int64
	guestName      string
	roomID         int64
	durationInDays int
}

func NewReservation(guestName string, roomID int64, durationInDays int) (*Reservation, error) {
	guestName = strings.TrimSpace(guestName)
	if err := validate(guestName, roomID, durationInDays); err != nil {
		return nil, err
	}

	return &Reservation{
		guestName:      guestName,
		roomID:         roomID,
		durationInDays: durationInDays,
	}, nil
}

func Reconstruct(id int64, guestName string, roomID int64, durationInDays int) *Reservation {
	return &Reservation{
		id:             id,
		guestName:      guestName,
		roomID:         roomID,
		durationInDays: durationInDays,
	}
}

// Replace overwrites every attribute, keeping the identity.
func (r *Reservation) Replace(guestName string, roomID int64, durationInDays int) error {
	replacement, err := NewReservation(guestName, roomID, durationInDays)
	if err != nil {
		return err
	}
	r.guestName = replacement.guestName
	r.roomID = replacement.roomID
	r.durationInDays = replacement.durationInDays
	return nil
}

func validate(guestName string, roomID int64, durationInDays int) error {
	if guestName == "" {
		return ErrEmptyGuestName
	}
	if len(guestName) > MaxGuestNameLength {
		return ErrGuestNameTooLong
	}
	if roomID <= 0 {
		return ErrInvalidRoomID
	}
	if durationInDays <= 0 {
		return ErrInvalidDuration
	}
	return nil
}

func (r *Reservation) ID() int64           { return r.id }
func (r *Reservation) GuestName() string   { return r.guestName }
func (r *Reservation) RoomID() int64       { return r.roomID }
func (r *Reservation) DurationInDays() int { return r.durationInDays }
