package components

import (
	"hotel-booking/internal/handler"
	"hotel-booking/internal/handler/api"

	"go.uber.org/fx"
)

var RoomHandlerModule = fx.Module("handler/room",
	fx.Provide(
		api.NewRoomHandler,
	),
	fx.Invoke(handler.NewRoomRouter),
)

var ReservationHandlerModule = fx.Module("handler/reservation",
	fx.Provide(
		api.NewReservationHandler,
	),
	fx.Invoke(handler.NewReservationRouter),
)
