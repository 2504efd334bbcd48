package response

import (
	"hotel-booking/internal/domain/room"
)

type RoomResponse struct {
	ID       int64  `json:"id"`
	Category string `json:"category"`
	Status   string `json:"status"`
}

// DetailResponse carries a confirmation message.
type DetailResponse struct {
	Detail string `json:"detail"`
}

func FromRoom(r *room.Room) RoomResponse {
	return RoomResponse{
		ID:       r.ID(),
		Category: r.Category(),
		Status:   r.Status().String(),
	}
}

func FromRooms(rooms []*room.Room) []RoomResponse {
	out := make([]RoomResponse, len(rooms))
	for i, r := range rooms {
		out[i] = FromRoom(r)
	}
	return out
}
