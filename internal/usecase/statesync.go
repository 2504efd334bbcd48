package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"hotel-booking/internal/domain/room"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/pkg/errs"
)

// RoomStatusApplier is the consumer side of the state sync channel. It writes the
// carried status straight into the room store.
type RoomStatusApplier struct {
	roomRepo RoomRepository
	logger   *slog.Logger
}

func NewRoomStatusApplier(roomRepo RoomRepository, logger *slog.Logger) *RoomStatusApplier {
	return &RoomStatusApplier{
		roomRepo: roomRepo,
		logger:   logger,
	}
}

// Apply returns an ErrValidation-marked error for changes that can never be applied and
// an ErrPersistenceFailure-marked error for ones worth retrying. A change for an unknown
// room is dropped.
func (a *RoomStatusApplier) Apply(ctx context.Context, change room.StatusChange) error {
	if err := room.ValidateID(change.RoomID); err != nil {
		return errs.Mark(err, errs.ErrValidation)
	}
	if !change.Status.IsValid() {
		return errs.Mark(fmt.Errorf("%w: %q", room.ErrInvalidStatus, change.Status), errs.ErrValidation)
	}

	_, err := a.roomRepo.UpdateStatus(ctx, change.RoomID, change.Status)
	switch {
	case err == nil:
		a.logger.Info("room status applied from state sync channel",
			slog.Int64("room_id", change.RoomID),
			slog.String("status", change.Status.String()))
		return nil
	case infra.IsKind(err, infra.KindNotFound):
		a.logger.Warn("state sync change for unknown room dropped",
			slog.Int64("room_id", change.RoomID),
			slog.String("status", change.Status.String()))
		return nil
	default:
		return errs.Mark(err, errs.ErrPersistenceFailure)
	}
}
