package memstore

import (
	"context"
	"sort"
	"sync"

	"hotel-booking/internal/domain/reservation"
	"hotel-booking/internal/infra"
)

type ReservationStore struct {
	mu           sync.RWMutex
	nextID       int64
	reservations map[int64]reservation.Reservation
}

func NewReservationStore() *ReservationStore {
	return &ReservationStore{
		nextID:       1,
		reservations: make(map[int64]reservation.Reservation),
	}
}

func (s *ReservationStore) Create(_ context.Context, r *reservation.Reservation) (*reservation.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := reservation.Reconstruct(s.nextID, r.GuestName(), r.RoomID(), r.DurationInDays())
	s.reservations[stored.ID()] = *stored
	s.nextID++
	return stored, nil
}

func (s *ReservationStore) FindByID(_ context.Context, id int64) (*reservation.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reservations[id]
	if !ok {
		return nil, infra.NotFound("reservation not found")
	}
	return &r, nil
}

func (s *ReservationStore) FindAll(_ context.Context) ([]*reservation.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*reservation.Reservation, 0, len(s.reservations))
	for _, r := range s.reservations {
		list = append(list, &r)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID() < list[j].ID() })
	return list, nil
}

func (s *ReservationStore) Update(_ context.Context, r *reservation.Reservation) (*reservation.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reservations[r.ID()]; !ok {
		return nil, infra.NotFound("reservation not found")
	}
	updated := reservation.Reconstruct(r.ID(), r.GuestName(), r.RoomID(), r.DurationInDays())
	s.reservations[r.ID()] = *updated
	return updated, nil
}

func (s *ReservationStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reservations[id]; !ok {
		return infra.NotFound("reservation not found")
	}
	delete(s.reservations, id)
	return nil
}
