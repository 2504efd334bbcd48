package request

import (
	"hotel-booking/internal/usecase"

	"github.com/jinzhu/copier"
)

type RoomRequest struct {
	Category string `json:"category" binding:"required,max=100"`
	Status   string `json:"status" binding:"required,oneof=Available Occupied"`
}

type RoomStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Available Occupied"`
}

func (r RoomRequest) ToParams() (usecase.RoomParams, error) {
	var params usecase.RoomParams
	if err := copier.Copy(&params, &r); err != nil {
		return usecase.RoomParams{}, err
	}
	return params, nil
}
