package usecase

//go:generate mockgen -source=booking.go -destination=mock/mock_booking.go -package=mock

import (
	"context"
	"log/slog"

	"hotel-booking/internal/domain/reservation"
	"hotel-booking/internal/domain/room"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/pkg/errs"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "hotel-booking/usecase"

type ReservationParams struct {
	GuestName      string
	RoomID         int64
	DurationInDays int
}

// BookingCommands sequences the cross-service steps of creating and cancelling a booking.
type BookingCommands interface {
	// CreateBooking checks the remote room, stores the reservation and then marks the
	// room Occupied. Once the reservation is stored the call succeeds even if the
	// remote update does not land.
	CreateBooking(ctx context.Context, params ReservationParams) (*reservation.Reservation, error)
	// CancelBooking deletes the reservation and then releases the room on a best-effort basis.
	CancelBooking(ctx context.Context, id int64) error
}

type bookingCoordinator struct {
	rooms        RoomGateway
	reservations ReservationRepository
	publisher    RoomStatePublisher // nil when no sync channel is configured
	locker       RoomLocker
	logger       *slog.Logger
	tracer       trace.Tracer
}

func NewBookingCoordinator(
	rooms RoomGateway,
	reservations ReservationRepository,
	publisher RoomStatePublisher,
	locker RoomLocker,
	logger *slog.Logger,
) BookingCommands {
	return &bookingCoordinator{
		rooms:        rooms,
		reservations: reservations,
		publisher:    publisher,
		locker:       locker,
		logger:       logger,
		tracer:       otel.Tracer(tracerName),
	}
}

func (c *bookingCoordinator) CreateBooking(ctx context.Context, params ReservationParams) (*reservation.Reservation, error) {
	ctx, span := c.tracer.Start(ctx, "booking.create", trace.WithAttributes(
		attribute.Int64("room.id", params.RoomID),
	))
	defer span.End()

	candidate, err := reservation.NewReservation(params.GuestName, params.RoomID, params.DurationInDays)
	if err != nil {
		return nil, recordError(span, errs.Mark(err, errs.ErrValidation))
	}

	// held across check, commit and propagate so two requests cannot both see the room Available
	unlock, err := c.locker.Lock(ctx, params.RoomID)
	if err != nil {
		return nil, recordError(span, errs.Mark(err, errs.ErrRoomBusy))
	}
	defer unlock()

	snapshot, err := c.rooms.GetRoom(ctx, params.RoomID)
	if err != nil {
		return nil, recordError(span, err)
	}
	if !snapshot.Status.IsAvailable() {
		return nil, recordError(span, errs.Wrapf(errs.ErrRoomNotAvailable, "room %d is %s", snapshot.ID, snapshot.Status))
	}

	created, err := c.reservations.Create(ctx, candidate)
	if err != nil {
		return nil, recordError(span, errs.Mark(err, errs.ErrPersistenceFailure))
	}
	span.SetAttributes(attribute.Int64("reservation.id", created.ID()))

	c.propagate(ctx, "create_booking", room.StatusChange{RoomID: created.RoomID(), Status: room.StatusOccupied})

	return created, nil
}

func (c *bookingCoordinator) CancelBooking(ctx context.Context, id int64) error {
	ctx, span := c.tracer.Start(ctx, "booking.cancel", trace.WithAttributes(
		attribute.Int64("reservation.id", id),
	))
	defer span.End()

	existing, err := c.reservations.FindByID(ctx, id)
	if err != nil {
		return recordError(span, reservationStoreError(err))
	}
	span.SetAttributes(attribute.Int64("room.id", existing.RoomID()))

	if err := c.reservations.Delete(ctx, id); err != nil {
		return recordError(span, reservationStoreError(err))
	}

	c.propagate(ctx, "cancel_booking", room.StatusChange{RoomID: existing.RoomID(), Status: room.StatusAvailable})

	return nil
}

// propagate runs after the local write is final. Its failures are logged and handed to
// the state sync channel, never returned.
func (c *bookingCoordinator) propagate(ctx context.Context, operation string, change room.StatusChange) {
	span := trace.SpanFromContext(ctx)
	// the caller going away must not abort the remote update of an already committed write
	detached := context.WithoutCancel(ctx)

	err := c.rooms.SetRoomStatus(detached, change.RoomID, change.Status)
	if err == nil {
		return
	}

	span.AddEvent("room status propagation failed", trace.WithAttributes(
		attribute.String("error", err.Error()),
	))
	logArgs := []any{
		slog.String("operation", operation),
		slog.Int64("room_id", change.RoomID),
		slog.String("status", change.Status.String()),
	}
	c.logger.Warn("room status propagation failed", append(logArgs, slog.String("error", err.Error()))...)

	if c.publisher == nil {
		c.logger.Warn("no state sync channel configured, room status may stay stale", logArgs...)
		return
	}

	if pubErr := c.publisher.Publish(detached, change); pubErr != nil {
		span.AddEvent("state sync publish failed")
		c.logger.Error("state sync publish failed, room status may stay stale",
			append(logArgs, slog.String("error", pubErr.Error()))...)
		return
	}

	c.logger.Info("room status change queued on state sync channel", logArgs...)
}

func reservationStoreError(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, errs.ErrReservationNotFound)
	}
	return errs.Mark(err, errs.ErrPersistenceFailure)
}

func recordError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
