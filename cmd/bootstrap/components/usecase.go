package components

import (
	"log/slog"

	"hotel-booking/internal/pkg/breaker"
	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/pkg/config"
	"hotel-booking/internal/usecase"

	"go.uber.org/fx"
)

var RoomUseCaseModule = fx.Module("usecase/room",
	fx.Provide(
		NewRoomStoreBreaker,
		usecase.NewRoomUseCase,
		usecase.NewRoomStatusApplier,
	),
)

var ReservationUseCaseModule = fx.Module("usecase/reservation",
	fx.Provide(
		usecase.NewBookingCoordinator,
		usecase.NewReservationUseCase,
	),
)

// NewRoomStoreBreaker guards the room-service's own store. Missing rooms do not count as failures.
func NewRoomStoreBreaker(cfg config.Config, clk clock.Clock, logger *slog.Logger) *breaker.CircuitBreaker {
	return newBreaker("room-store", cfg.Breaker, usecase.IsStoreCallSuccessful, clk, logger)
}

func newBreaker(name string, cfg config.BreakerConfig, isSuccessful func(error) bool, clk clock.Clock, logger *slog.Logger) *breaker.CircuitBreaker {
	return breaker.New(breaker.Settings{
		Name:             name,
		FailureThreshold: cfg.FailureThreshold,
		ResetTimeout:     cfg.ResetTimeout,
		IsSuccessful:     isSuccessful,
		OnStateChange: func(name string, from, to breaker.State) {
			logger.Warn("circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}, clk)
}
