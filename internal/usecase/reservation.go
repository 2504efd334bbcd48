package usecase

//go:generate mockgen -source=reservation.go -destination=mock/mock_reservation.go -package=mock

import (
	"context"

	"hotel-booking/internal/domain/reservation"
	"hotel-booking/internal/pkg/errs"
)

// ReservationUseCase covers the reservation operations that never touch the room-service.
type ReservationUseCase interface {
	List(ctx context.Context) ([]*reservation.Reservation, error)
	Get(ctx context.Context, id int64) (*reservation.Reservation, error)
	// Update replaces every field. A changed room id is not checked against the room-service.
	Update(ctx context.Context, id int64, params ReservationParams) (*reservation.Reservation, error)
}

type reservationUseCaseImpl struct {
	reservationRepo ReservationRepository
}

func NewReservationUseCase(reservationRepo ReservationRepository) ReservationUseCase {
	return &reservationUseCaseImpl{
		reservationRepo: reservationRepo,
	}
}

func (u *reservationUseCaseImpl) List(ctx context.Context) ([]*reservation.Reservation, error) {
	reservations, err := u.reservationRepo.FindAll(ctx)
	if err != nil {
		return nil, reservationStoreError(err)
	}
	return reservations, nil
}

func (u *reservationUseCaseImpl) Get(ctx context.Context, id int64) (*reservation.Reservation, error) {
	res, err := u.reservationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, reservationStoreError(err)
	}
	return res, nil
}

func (u *reservationUseCaseImpl) Update(ctx context.Context, id int64, params ReservationParams) (*reservation.Reservation, error) {
	candidate, err := reservation.NewReservation(params.GuestName, params.RoomID, params.DurationInDays)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	replacement := reservation.Reconstruct(id, candidate.GuestName(), candidate.RoomID(), candidate.DurationInDays())

	updated, err := u.reservationRepo.Update(ctx, replacement)
	if err != nil {
		return nil, reservationStoreError(err)
	}
	return updated, nil
}
