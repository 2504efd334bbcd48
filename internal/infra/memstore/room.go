// Package memstore holds process-local stores used when STORE_DRIVER=memory and in tests.
package memstore

import (
	"context"
	"sort"
	"sync"

	"hotel-booking/internal/domain/room"
	"hotel-booking/internal/infra"
)

type RoomStore struct {
	mu     sync.RWMutex
	nextID int64
	rooms  map[int64]room.Room
}

func NewRoomStore() *RoomStore {
	return &RoomStore{
		nextID: 1,
		rooms:  make(map[int64]room.Room),
	}
}

func (s *RoomStore) Create(_ context.Context, r *room.Room) (*room.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := room.Reconstruct(s.nextID, r.Category(), r.Status())
	s.rooms[stored.ID()] = *stored
	s.nextID++
	return stored, nil
}

func (s *RoomStore) FindByID(_ context.Context, id int64) (*room.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rooms[id]
	if !ok {
		return nil, infra.NotFound("room not found")
	}
	return &r, nil
}

func (s *RoomStore) FindAll(_ context.Context) ([]*room.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rooms := make([]*room.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		rooms = append(rooms, &r)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID() < rooms[j].ID() })
	return rooms, nil
}

func (s *RoomStore) Update(_ context.Context, r *room.Room) (*room.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[r.ID()]; !ok {
		return nil, infra.NotFound("room not found")
	}
	updated := room.Reconstruct(r.ID(), r.Category(), r.Status())
	s.rooms[r.ID()] = *updated
	return updated, nil
}

func (s *RoomStore) UpdateStatus(_ context.Context, id int64, status room.Status) (*room.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.rooms[id]
	if !ok {
		return nil, infra.NotFound("room not found")
	}
	updated := room.Reconstruct(id, current.Category(), status)
	s.rooms[id] = *updated
	return updated, nil
}

func (s *RoomStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[id]; !ok {
		return infra.NotFound("room not found")
	}
	delete(s.rooms, id)
	return nil
}
