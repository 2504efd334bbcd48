package bootstrap

import (
	"context"
	"log/slog"

	"hotel-booking/internal/infra/db"
	"hotel-booking/internal/infra/memstore"
	"hotel-booking/internal/infra/repository"
	"hotel-booking/internal/pkg/config"
	"hotel-booking/internal/usecase"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RoomStoreModule = fx.Module("db/rooms",
	fx.Provide(
		NewRoomStore,
	),
)

var ReservationStoreModule = fx.Module("db/reservations",
	fx.Provide(
		NewReservationStore,
	),
)

func NewRoomStore(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (usecase.RoomRepository, error) {
	if cfg.DB.Driver == config.StoreDriverMemory {
		logger.Warn("using in-memory room store, data is lost on restart")
		return memstore.NewRoomStore(), nil
	}

	pool, err := NewDB(lc, cfg, db.RoomMigrations)
	if err != nil {
		return nil, err
	}
	return repository.NewRoomRepository(pool), nil
}

func NewReservationStore(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (usecase.ReservationRepository, error) {
	if cfg.DB.Driver == config.StoreDriverMemory {
		logger.Warn("using in-memory reservation store, data is lost on restart")
		return memstore.NewReservationStore(), nil
	}

	pool, err := NewDB(lc, cfg, db.ReservationMigrations)
	if err != nil {
		return nil, err
	}
	return repository.NewReservationRepository(pool), nil
}

// NewDB migrates the service's schema and opens the pool; the pool closes with the app.
func NewDB(lc fx.Lifecycle, cfg config.Config, migrations db.MigrationSet) (*pgxpool.Pool, error) {
	if cfg.DB.RunMigrations {
		if err := db.RunMigrations(cfg.DB, migrations); err != nil {
			return nil, err
		}
	}

	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}
