package usecase

//go:generate mockgen -source=ports.go -destination=mock/mock_ports.go -package=mock

import (
	"context"

	"hotel-booking/internal/domain/reservation"
	"hotel-booking/internal/domain/room"
)

// RoomRepository is the room-service record store.
type RoomRepository interface {
	Create(ctx context.Context, r *room.Room) (*room.Room, error)
	FindByID(ctx context.Context, id int64) (*room.Room, error)
	FindAll(ctx context.Context) ([]*room.Room, error)
	Update(ctx context.Context, r *room.Room) (*room.Room, error)
	UpdateStatus(ctx context.Context, id int64, status room.Status) (*room.Room, error)
	Delete(ctx context.Context, id int64) error
}

// ReservationRepository is the reservation-service record store.
type ReservationRepository interface {
	Create(ctx context.Context, r *reservation.Reservation) (*reservation.Reservation, error)
	FindByID(ctx context.Context, id int64) (*reservation.Reservation, error)
	FindAll(ctx context.Context) ([]*reservation.Reservation, error)
	Update(ctx context.Context, r *reservation.Reservation) (*reservation.Reservation, error)
	Delete(ctx context.Context, id int64) error
}

// RoomSnapshot is the room state reported by the remote room-service.
type RoomSnapshot struct {
	ID       int64
	Category string
	Status   room.Status
}

// RoomGateway reaches the remote room-service. Implementations route every call
// through the circuit breaker guarding that dependency.
type RoomGateway interface {
	GetRoom(ctx context.Context, id int64) (*RoomSnapshot, error)
	SetRoomStatus(ctx context.Context, id int64, status room.Status) error
}

// RoomStatePublisher is the producer side of the state sync channel. Publish must
// return within a short bounded time whatever the broker does.
type RoomStatePublisher interface {
	Publish(ctx context.Context, change room.StatusChange) error
}

// RoomLocker provides an exclusive scope per room id. The returned unlock func
// must be called exactly once.
type RoomLocker interface {
	Lock(ctx context.Context, roomID int64) (unlock func(), err error)
}
