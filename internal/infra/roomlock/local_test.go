//go:build unit

package roomlock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_SerialisesOneRoom(t *testing.T) {
	l := NewLocal(time.Second)

	var (
		inside  int32
		maxSeen int32
		wg      sync.WaitGroup
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), 1)
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxSeen)
				if n <= m || atomic.CompareAndSwapInt32(&maxSeen, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxSeen)
	assert.Equal(t, 0, l.size())
}

func TestLocal_DifferentRoomsDoNotBlock(t *testing.T) {
	l := NewLocal(50 * time.Millisecond)

	unlock1, err := l.Lock(context.Background(), 1)
	require.NoError(t, err)
	defer unlock1()

	unlock2, err := l.Lock(context.Background(), 2)
	require.NoError(t, err)
	unlock2()
}

func TestLocal_GivesUpAfterWait(t *testing.T) {
	l := NewLocal(20 * time.Millisecond)

	unlock, err := l.Lock(context.Background(), 1)
	require.NoError(t, err)

	_, err = l.Lock(context.Background(), 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	unlock() // second call is a no-op
	assert.Equal(t, 0, l.size())

	again, err := l.Lock(context.Background(), 1)
	require.NoError(t, err)
	again()
}

func TestLocal_HonoursCallerCancellation(t *testing.T) {
	l := NewLocal(0)

	unlock, err := l.Lock(context.Background(), 1)
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = l.Lock(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
