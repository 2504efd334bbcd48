package usecase

//go:generate mockgen -source=room.go -destination=mock/mock_room.go -package=mock

import (
	"context"

	"hotel-booking/internal/domain/room"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/pkg/breaker"
	"hotel-booking/internal/pkg/errs"
)

type RoomParams struct {
	Category string
	Status   string
}

type RoomUseCase interface {
	List(ctx context.Context) ([]*room.Room, error)
	Get(ctx context.Context, id int64) (*room.Room, error)
	Create(ctx context.Context, params RoomParams) (*room.Room, error)
	Update(ctx context.Context, id int64, params RoomParams) (*room.Room, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*room.Room, error)
	Delete(ctx context.Context, id int64) error
}

type roomUseCaseImpl struct {
	roomRepo RoomRepository
	breaker  *breaker.CircuitBreaker
}

// NewRoomUseCase routes every store call through storeBreaker.
func NewRoomUseCase(roomRepo RoomRepository, storeBreaker *breaker.CircuitBreaker) RoomUseCase {
	return &roomUseCaseImpl{
		roomRepo: roomRepo,
		breaker:  storeBreaker,
	}
}

// IsStoreCallSuccessful is the success predicate of the room store breaker. A missing
// record is an answer from a healthy store.
func IsStoreCallSuccessful(err error) bool {
	return err == nil || infra.IsKind(err, infra.KindNotFound)
}

func (u *roomUseCaseImpl) List(ctx context.Context) ([]*room.Room, error) {
	rooms, err := breaker.Call(u.breaker, func() ([]*room.Room, error) {
		return u.roomRepo.FindAll(ctx)
	})
	if err != nil {
		return nil, roomStoreError(err)
	}
	return rooms, nil
}

func (u *roomUseCaseImpl) Get(ctx context.Context, id int64) (*room.Room, error) {
	if err := room.ValidateID(id); err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	r, err := breaker.Call(u.breaker, func() (*room.Room, error) {
		return u.roomRepo.FindByID(ctx, id)
	})
	if err != nil {
		return nil, roomStoreError(err)
	}
	return r, nil
}

func (u *roomUseCaseImpl) Create(ctx context.Context, params RoomParams) (*room.Room, error) {
	candidate, err := room.NewRoom(params.Category, params.Status)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	created, err := breaker.Call(u.breaker, func() (*room.Room, error) {
		return u.roomRepo.Create(ctx, candidate)
	})
	if err != nil {
		return nil, roomStoreError(err)
	}
	return created, nil
}

func (u *roomUseCaseImpl) Update(ctx context.Context, id int64, params RoomParams) (*room.Room, error) {
	if err := room.ValidateID(id); err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	candidate, err := room.NewRoom(params.Category, params.Status)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	replacement := room.Reconstruct(id, candidate.Category(), candidate.Status())

	updated, err := breaker.Call(u.breaker, func() (*room.Room, error) {
		return u.roomRepo.Update(ctx, replacement)
	})
	if err != nil {
		return nil, roomStoreError(err)
	}
	return updated, nil
}

// UpdateStatus changes only the status; the category is left as stored.
func (u *roomUseCaseImpl) UpdateStatus(ctx context.Context, id int64, status string) (*room.Room, error) {
	if err := room.ValidateID(id); err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	st, err := room.NewStatus(status)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	updated, err := breaker.Call(u.breaker, func() (*room.Room, error) {
		return u.roomRepo.UpdateStatus(ctx, id, st)
	})
	if err != nil {
		return nil, roomStoreError(err)
	}
	return updated, nil
}

func (u *roomUseCaseImpl) Delete(ctx context.Context, id int64) error {
	if err := room.ValidateID(id); err != nil {
		return errs.Mark(err, errs.ErrValidation)
	}

	err := u.breaker.Execute(func() error {
		return u.roomRepo.Delete(ctx, id)
	})
	if err != nil {
		return roomStoreError(err)
	}
	return nil
}

func roomStoreError(err error) error {
	switch {
	case errs.Is(err, errs.ErrCircuitOpen):
		return err
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrRoomNotFound)
	default:
		return errs.Mark(err, errs.ErrPersistenceFailure)
	}
}
