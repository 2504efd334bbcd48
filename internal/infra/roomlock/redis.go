package roomlock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"hotel-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const retryInterval = 50 * time.Millisecond

// releaseScript deletes the key only while it still holds our token, so an expired
// lock taken over by another instance is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis serialises bookings per room across reservation-service instances. The TTL
// bounds how long a crashed holder can block a room.
type Redis struct {
	rdb    *redis.Client
	ttl    time.Duration
	wait   time.Duration
	logger *slog.Logger
}

func NewRedis(rdb *redis.Client, ttl, wait time.Duration, logger *slog.Logger) *Redis {
	return &Redis{rdb: rdb, ttl: ttl, wait: wait, logger: logger}
}

func (r *Redis) Key(roomID int64) string {
	return fmt.Sprintf("lock:room:%d", roomID)
}

func (r *Redis) Lock(ctx context.Context, roomID int64) (func(), error) {
	key := r.Key(roomID)
	token := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, r.wait)
	defer cancel()

	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()

	for {
		ok, err := r.rdb.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil {
			return nil, errs.Wrapf(err, "lock room %d", roomID)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, errs.Wrapf(ctx.Err(), "lock room %d", roomID)
		case <-ticker.C:
		}
	}

	return func() {
		releaseCtx, releaseCancel := context.WithTimeout(context.Background(), time.Second)
		defer releaseCancel()

		if err := releaseScript.Run(releaseCtx, r.rdb, []string{key}, token).Err(); err != nil {
			r.logger.Warn("failed to release room lock",
				slog.Int64("room_id", roomID),
				slog.String("error", err.Error()))
		}
	}, nil
}
