package bootstrap

import (
	"hotel-booking/cmd/bootstrap/components"
	"hotel-booking/internal/pkg/clock"

	"go.uber.org/fx"
)

var baseModule = fx.Options(
	ConfigModule,
	LoggerModule,
	TracingModule,
	ServerModule,
	fx.Provide(clock.NewRealClock),
)

// RoomServiceModule serves /rooms and applies queued room status corrections.
var RoomServiceModule = fx.Options(
	baseModule,
	RoomStoreModule,
	StateConsumerModule,
	components.RoomUseCaseModule,
	components.RoomHandlerModule,
)

// ReservationServiceModule serves /reservations and coordinates bookings with the room-service.
var ReservationServiceModule = fx.Options(
	baseModule,
	ReservationStoreModule,
	StatePublisherModule,
	components.RemoteModule,
	components.ReservationUseCaseModule,
	components.ReservationHandlerModule,
)
