//go:build unit

package breaker_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"hotel-booking/internal/pkg/breaker"
	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDependency = errors.New("dependency failed")

func newBreaker(clk clock.Clock) *breaker.CircuitBreaker {
	return breaker.New(breaker.Settings{
		Name:             "test",
		FailureThreshold: 3,
		ResetTimeout:     10 * time.Second,
	}, clk)
}

func fail() error    { return errDependency }
func succeed() error { return nil }

func TestCircuitBreaker_Closed(t *testing.T) {
	t.Run("passes calls through and returns the underlying error", func(t *testing.T) {
		cb := newBreaker(clock.NewMockClock(time.Now()))

		assert.NoError(t, cb.Execute(succeed))
		assert.ErrorIs(t, cb.Execute(fail), errDependency)
		assert.Equal(t, breaker.StateClosed, cb.State())
		assert.Equal(t, 1, cb.Failures())
	})

	t.Run("only consecutive failures count", func(t *testing.T) {
		cb := newBreaker(clock.NewMockClock(time.Now()))

		_ = cb.Execute(fail)
		_ = cb.Execute(fail)
		require.NoError(t, cb.Execute(succeed))
		assert.Equal(t, 0, cb.Failures())

		_ = cb.Execute(fail)
		_ = cb.Execute(fail)
		assert.Equal(t, breaker.StateClosed, cb.State())
	})

	t.Run("errors classified as successful do not count", func(t *testing.T) {
		errNotFound := errors.New("not found")
		cb := breaker.New(breaker.Settings{
			FailureThreshold: 1,
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, errNotFound)
			},
		}, clock.NewMockClock(time.Now()))

		for range 5 {
			assert.ErrorIs(t, cb.Execute(func() error { return errNotFound }), errNotFound)
		}
		assert.Equal(t, breaker.StateClosed, cb.State())
		assert.Equal(t, 0, cb.Failures())
	})
}

func TestCircuitBreaker_Open(t *testing.T) {
	t.Run("opens at the threshold and fails fast without calling the dependency", func(t *testing.T) {
		clk := clock.NewMockClock(time.Now())
		cb := newBreaker(clk)

		var calls atomic.Int32
		call := func() error {
			calls.Add(1)
			return errDependency
		}

		for range 3 {
			assert.ErrorIs(t, cb.Execute(call), errDependency)
		}
		require.Equal(t, breaker.StateOpen, cb.State())
		require.EqualValues(t, 3, calls.Load())

		err := cb.Execute(call)
		assert.True(t, errs.Is(err, errs.ErrCircuitOpen))
		assert.EqualValues(t, 3, calls.Load())

		clk.Add(9 * time.Second)
		assert.True(t, errs.Is(cb.Execute(call), errs.ErrCircuitOpen))
		assert.EqualValues(t, 3, calls.Load())
	})

	t.Run("Call returns the zero value when open", func(t *testing.T) {
		cb := breaker.New(breaker.Settings{FailureThreshold: 1}, clock.NewMockClock(time.Now()))
		_, _ = breaker.Call(cb, func() (int, error) { return 0, errDependency })

		got, err := breaker.Call(cb, func() (int, error) { return 42, nil })
		assert.True(t, errs.Is(err, errs.ErrCircuitOpen))
		assert.Zero(t, got)
	})
}

func TestCircuitBreaker_HalfOpen(t *testing.T) {
	openBreaker := func(t *testing.T) (*breaker.CircuitBreaker, *clock.MockClock) {
		t.Helper()
		clk := clock.NewMockClock(time.Now())
		cb := newBreaker(clk)
		for range 3 {
			_ = cb.Execute(fail)
		}
		require.Equal(t, breaker.StateOpen, cb.State())
		return cb, clk
	}

	t.Run("moves to half-open once the reset timeout elapsed", func(t *testing.T) {
		cb, clk := openBreaker(t)
		clk.Add(10 * time.Second)
		assert.Equal(t, breaker.StateHalfOpen, cb.State())
	})

	t.Run("allows exactly one probe", func(t *testing.T) {
		cb, clk := openBreaker(t)
		clk.Add(10 * time.Second)

		release := make(chan struct{})
		started := make(chan struct{})
		done := make(chan error, 1)
		go func() {
			done <- cb.Execute(func() error {
				close(started)
				<-release
				return nil
			})
		}()
		<-started

		var extraCalls atomic.Int32
		err := cb.Execute(func() error {
			extraCalls.Add(1)
			return nil
		})
		assert.True(t, errs.Is(err, errs.ErrCircuitOpen))
		assert.Zero(t, extraCalls.Load())

		close(release)
		require.NoError(t, <-done)
		assert.Equal(t, breaker.StateClosed, cb.State())
		assert.Equal(t, 0, cb.Failures())
	})

	t.Run("successful probe fully resets the failure count", func(t *testing.T) {
		cb, clk := openBreaker(t)
		clk.Add(10 * time.Second)

		require.NoError(t, cb.Execute(succeed))
		assert.Equal(t, 0, cb.Failures())

		// the threshold applies from scratch again
		_ = cb.Execute(fail)
		_ = cb.Execute(fail)
		assert.Equal(t, breaker.StateClosed, cb.State())
	})

	t.Run("failed probe reopens and restarts the cooldown", func(t *testing.T) {
		cb, clk := openBreaker(t)
		clk.Add(10 * time.Second)

		assert.ErrorIs(t, cb.Execute(fail), errDependency)
		assert.Equal(t, breaker.StateOpen, cb.State())

		clk.Add(10*time.Second - time.Millisecond)
		assert.Equal(t, breaker.StateOpen, cb.State())

		clk.Add(time.Millisecond)
		assert.Equal(t, breaker.StateHalfOpen, cb.State())
	})
}

func TestCircuitBreaker_StaleResults(t *testing.T) {
	clk := clock.NewMockClock(time.Now())
	cb := newBreaker(clk)

	release := make(chan struct{})
	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- cb.Execute(func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	for range 3 {
		_ = cb.Execute(fail)
	}
	require.Equal(t, breaker.StateOpen, cb.State())

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, breaker.StateOpen, cb.State(), "a success from before the trip must not close the breaker")
}

func TestCircuitBreaker_PanicCountsAsFailure(t *testing.T) {
	cb := breaker.New(breaker.Settings{FailureThreshold: 1}, clock.NewMockClock(time.Now()))

	assert.Panics(t, func() {
		_ = cb.Execute(func() error { panic("boom") })
	})
	assert.Equal(t, breaker.StateOpen, cb.State())
}

func TestCircuitBreaker_ConcurrentFailures(t *testing.T) {
	const callers = 200
	cb := breaker.New(breaker.Settings{FailureThreshold: callers + 1}, clock.NewMockClock(time.Now()))

	var wg sync.WaitGroup
	wg.Add(callers)
	for range callers {
		go func() {
			defer wg.Done()
			_ = cb.Execute(fail)
		}()
	}
	wg.Wait()

	assert.Equal(t, callers, cb.Failures())
	assert.Equal(t, breaker.StateClosed, cb.State())

	_ = cb.Execute(fail)
	assert.Equal(t, breaker.StateOpen, cb.State())
}

func TestCircuitBreaker_OnStateChange(t *testing.T) {
	clk := clock.NewMockClock(time.Now())

	type transition struct{ from, to breaker.State }
	var got []transition
	cb := breaker.New(breaker.Settings{
		Name:             "rooms",
		FailureThreshold: 1,
		ResetTimeout:     time.Second,
		OnStateChange: func(name string, from, to breaker.State) {
			assert.Equal(t, "rooms", name)
			got = append(got, transition{from, to})
		},
	}, clk)

	_ = cb.Execute(fail)
	clk.Add(time.Second)
	_ = cb.Execute(succeed)

	assert.Equal(t, []transition{
		{breaker.StateClosed, breaker.StateOpen},
		{breaker.StateOpen, breaker.StateHalfOpen},
		{breaker.StateHalfOpen, breaker.StateClosed},
	}, got)
}
