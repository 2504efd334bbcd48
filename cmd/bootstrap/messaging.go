package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"hotel-booking/internal/infra/statesync"
	"hotel-booking/internal/pkg/config"
	"hotel-booking/internal/usecase"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/fx"
)

var StatePublisherModule = fx.Module("messaging/publisher",
	fx.Provide(
		NewRoomStatePublisher,
	),
)

var StateConsumerModule = fx.Module("messaging/consumer",
	fx.Provide(
		NewStateSyncConsumer,
	),
	fx.Invoke(RunStateSyncConsumer),
)

func dialAMQP(lc fx.Lifecycle, cfg config.StateSyncConfig) (*amqp.Connection, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return conn.Close()
		},
	})
	return conn, nil
}

// NewRoomStatePublisher returns nil when STATE_SYNC_DRIVER=none; failed propagations are then only logged.
func NewRoomStatePublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (usecase.RoomStatePublisher, error) {
	if cfg.StateSync.Driver == config.StateSyncDriverNone {
		logger.Warn("state sync disabled, failed room status updates will not be retried")
		return nil, nil
	}

	conn, err := dialAMQP(lc, cfg.StateSync)
	if err != nil {
		return nil, err
	}
	publisher, err := statesync.NewAMQPPublisher(conn, cfg.StateSync.Queue, cfg.StateSync.PublishTimeout)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})
	logger.Info("state sync publisher ready", slog.String("queue", cfg.StateSync.Queue))
	return publisher, nil
}

func NewStateSyncConsumer(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (statesync.Consumer, error) {
	if cfg.StateSync.Driver == config.StateSyncDriverNone {
		return nil, nil
	}

	conn, err := dialAMQP(lc, cfg.StateSync)
	if err != nil {
		return nil, err
	}
	consumer, err := statesync.NewAMQPConsumer(conn, cfg.StateSync.Queue, cfg.StateSync.Prefetch, cfg.StateSync.RetryDelay, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return consumer.Close()
		},
	})
	return consumer, nil
}

type consumerParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Consumer  statesync.Consumer
	Applier   *usecase.RoomStatusApplier
	Logger    *slog.Logger
}

// RunStateSyncConsumer applies queued room status changes for as long as the app runs.
func RunStateSyncConsumer(p consumerParams) {
	if p.Consumer == nil {
		p.Logger.Warn("state sync disabled, room status corrections will not be consumed")
		return
	}

	var cancel context.CancelFunc
	done := make(chan struct{})

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			var ctx context.Context
			ctx, cancel = context.WithCancel(context.Background())
			go func() {
				defer close(done)
				if err := p.Consumer.Run(ctx, p.Applier.Apply); err != nil {
					p.Logger.Error("state sync consumer exited", slog.String("error", err.Error()))
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}
