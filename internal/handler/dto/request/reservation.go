package request

import (
	"hotel-booking/internal/usecase"

	"github.com/jinzhu/copier"
)

type ReservationRequest struct {
	GuestName      string `json:"guest_name" binding:"required,max=255"`
	RoomID         int64  `json:"room_id" binding:"required,gt=0"`
	DurationInDays int    `json:"duration_in_days" binding:"required,gt=0"`
}

func (r ReservationRequest) ToParams() (usecase.ReservationParams, error) {
	var params usecase.ReservationParams
	if err := copier.Copy(&params, &r); err != nil {
		return usecase.ReservationParams{}, err
	}
	return params, nil
}
