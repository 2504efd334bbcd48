package repository

import (
	"context"
	"errors"

	"hotel-booking/internal/domain/reservation"
	"hotel-booking/internal/infra"

	"github.com/jackc/pgx/v5"
)

const (
	createReservation = `INSERT INTO reservations (guest_name, room_id, duration_in_days)
VALUES ($1, $2, $3)
RETURNING id, guest_name, room_id, duration_in_days`

	findReservationByID = `SELECT id, guest_name, room_id, duration_in_days FROM reservations WHERE id = $1`

	findAllReservations = `SELECT id, guest_name, room_id, duration_in_days FROM reservations ORDER BY id`

	updateReservation = `UPDATE reservations
SET guest_name = $2, room_id = $3, duration_in_days = $4, updated_at = NOW()
WHERE id = $1
RETURNING id, guest_name, room_id, duration_in_days`

	deleteReservation = `DELETE FROM reservations WHERE id = $1`
)

type ReservationRepository struct {
	db DBTX
}

func NewReservationRepository(db DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) (*reservation.Reservation, error) {
	row := r.db.QueryRow(ctx, createReservation, res.GuestName(), res.RoomID(), res.DurationInDays())
	created, err := scanReservation(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to create reservation", err)
	}
	return created, nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id int64) (*reservation.Reservation, error) {
	found, err := scanReservation(r.db.QueryRow(ctx, findReservationByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return found, nil
}

func (r *ReservationRepository) FindAll(ctx context.Context) ([]*reservation.Reservation, error) {
	rows, err := r.db.Query(ctx, findAllReservations)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}

	reservations, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*reservation.Reservation, error) {
		return scanReservation(row)
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan reservations", err)
	}
	return reservations, nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) (*reservation.Reservation, error) {
	row := r.db.QueryRow(ctx, updateReservation, res.ID(), res.GuestName(), res.RoomID(), res.DurationInDays())
	updated, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to update reservation", err)
	}
	return updated, nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, deleteReservation, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("reservation not found")
	}
	return nil
}

func scanReservation(row pgx.Row) (*reservation.Reservation, error) {
	var (
		id             int64
		guestName      string
		roomID         int64
		durationInDays int32
	)
	if err := row.Scan(&id, &guestName, &roomID, &durationInDays); err != nil {
		return nil, err
	}
	return reservation.Reconstruct(id, guestName, roomID, int(durationInDays)), nil
}
