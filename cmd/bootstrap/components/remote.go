package components

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"hotel-booking/internal/infra/roomclient"
	"hotel-booking/internal/infra/roomlock"
	"hotel-booking/internal/pkg/breaker"
	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/pkg/config"
	"hotel-booking/internal/usecase"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RemoteModule = fx.Module("remote",
	fx.Provide(
		NewRoomServiceBreaker,
		NewRoomGateway,
		NewRoomLocker,
	),
)

// NewRoomServiceBreaker is the single breaker shared by every call to the room-service.
func NewRoomServiceBreaker(cfg config.Config, clk clock.Clock, logger *slog.Logger) *breaker.CircuitBreaker {
	return newBreaker("room-service", cfg.Breaker, roomclient.IsCallSuccessful, clk, logger)
}

func NewRoomGateway(cfg config.Config, cb *breaker.CircuitBreaker) (usecase.RoomGateway, error) {
	return roomclient.New(cfg.RoomService.BaseURL, &http.Client{}, cb, cfg.RoomService.Timeout)
}

func NewRoomLocker(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (usecase.RoomLocker, error) {
	if cfg.Lock.Driver == config.LockDriverLocal {
		return roomlock.NewLocal(cfg.Lock.WaitTimeout), nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Lock.RedisAddr,
		Password: cfg.Lock.RedisPassword,
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rdb.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("ping redis at %s: %w", cfg.Lock.RedisAddr, err)
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})
	logger.Info("using redis room lock", slog.String("addr", cfg.Lock.RedisAddr))
	return roomlock.NewRedis(rdb, cfg.Lock.TTL, cfg.Lock.WaitTimeout, logger), nil
}
