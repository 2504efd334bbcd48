package repository

import (
	"context"
	"errors"

	"hotel-booking/internal/domain/room"
	"hotel-booking/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, pgx.Tx and pgxmock.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	createRoom = `INSERT INTO rooms (category, status)
VALUES ($1, $2)
RETURNING id, category, status`

	findRoomByID = `SELECT id, category, status FROM rooms WHERE id = $1`

	findAllRooms = `SELECT id, category, status FROM rooms ORDER BY id`

	updateRoom = `UPDATE rooms SET category = $2, status = $3, updated_at = NOW()
WHERE id = $1
RETURNING id, category, status`

	updateRoomStatus = `UPDATE rooms SET status = $2, updated_at = NOW()
WHERE id = $1
RETURNING id, category, status`

	deleteRoom = `DELETE FROM rooms WHERE id = $1`
)

type RoomRepository struct {
	db DBTX
}

func NewRoomRepository(db DBTX) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(ctx context.Context, rm *room.Room) (*room.Room, error) {
	row := r.db.QueryRow(ctx, createRoom, rm.Category(), rm.Status().String())
	created, err := scanRoom(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to create room", err)
	}
	return created, nil
}

func (r *RoomRepository) FindByID(ctx context.Context, id int64) (*room.Room, error) {
	found, err := scanRoom(r.db.QueryRow(ctx, findRoomByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room by ID", err)
	}
	return found, nil
}

func (r *RoomRepository) FindAll(ctx context.Context) ([]*room.Room, error) {
	rows, err := r.db.Query(ctx, findAllRooms)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}

	rooms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*room.Room, error) {
		return scanRoom(row)
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan rooms", err)
	}
	return rooms, nil
}

func (r *RoomRepository) Update(ctx context.Context, rm *room.Room) (*room.Room, error) {
	row := r.db.QueryRow(ctx, updateRoom, rm.ID(), rm.Category(), rm.Status().String())
	updated, err := scanRoom(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to update room", err)
	}
	return updated, nil
}

func (r *RoomRepository) UpdateStatus(ctx context.Context, id int64, status room.Status) (*room.Room, error) {
	updated, err := scanRoom(r.db.QueryRow(ctx, updateRoomStatus, id, status.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to update room status", err)
	}
	return updated, nil
}

func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, deleteRoom, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete room", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("room not found")
	}
	return nil
}

func scanRoom(row pgx.Row) (*room.Room, error) {
	var (
		id       int64
		category string
		status   string
	)
	if err := row.Scan(&id, &category, &status); err != nil {
		return nil, err
	}
	return room.Reconstruct(id, category, room.Status(status)), nil
}
