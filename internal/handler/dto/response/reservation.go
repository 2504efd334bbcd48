package response

import (
	"hotel-booking/internal/domain/reservation"
)

type ReservationResponse struct {
	ID             int64  `json:"id"`
	GuestName      string `json:"guest_name"`
	RoomID         int64  `json:"room_id"`
	DurationInDays int    `json:"duration_in_days"`
}

func FromReservation(r *reservation.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:             r.ID(),
		GuestName:      r.GuestName(),
		RoomID:         r.RoomID(),
		DurationInDays: r.DurationInDays(),
	}
}

func FromReservations(reservations []*reservation.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, len(reservations))
	for i, r := range reservations {
		out[i] = FromReservation(r)
	}
	return out
}
