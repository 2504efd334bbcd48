// Package roomlock provides the per-room exclusive scope held across a booking's
// check, commit and propagate steps.
package roomlock

import (
	"context"
	"sync"
	"time"

	"hotel-booking/internal/pkg/errs"
)

type entry struct {
	sem  chan struct{}
	refs int
}

// Local serialises bookings per room inside one process. Entries are dropped when no
// caller holds or waits for them.
type Local struct {
	mu      sync.Mutex
	entries map[int64]*entry
	wait    time.Duration
}

// NewLocal returns a lock whose Lock gives up after wait; zero means wait until ctx is done.
func NewLocal(wait time.Duration) *Local {
	return &Local{
		entries: make(map[int64]*entry),
		wait:    wait,
	}
}

func (l *Local) Lock(ctx context.Context, roomID int64) (func(), error) {
	e := l.acquireEntry(roomID)

	if l.wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.wait)
		defer cancel()
	}

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		l.releaseEntry(roomID, e)
		return nil, errs.Wrapf(ctx.Err(), "lock room %d", roomID)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			l.releaseEntry(roomID, e)
		})
	}, nil
}

func (l *Local) acquireEntry(roomID int64) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[roomID]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		l.entries[roomID] = e
	}
	e.refs++
	return e
}

func (l *Local) releaseEntry(roomID int64, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.entries, roomID)
	}
}

func (l *Local) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
