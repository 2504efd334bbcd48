// Package breaker protects callers from repeatedly invoking an unhealthy dependency.
//
// A CircuitBreaker starts Closed and counts consecutive failures. Once the count reaches
// the failure threshold it opens and rejects every call with errs.ErrCircuitOpen without
// invoking the dependency. After the reset timeout it lets exactly one probe call through
// (HalfOpen): a successful probe closes the breaker, a failed one reopens it.
//
// One breaker is built per remote dependency at process start and handed to every call
// site that talks to that dependency.
package breaker

import (
	"sync"
	"time"

	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/pkg/errs"
)

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

const (
	DefaultFailureThreshold = 3
	DefaultResetTimeout     = 10 * time.Second
)

type Settings struct {
	Name             string
	FailureThreshold int
	ResetTimeout     time.Duration
	// IsSuccessful reports whether a call's error should count as a success.
	// Defaults to err == nil.
	IsSuccessful func(err error) bool
	// OnStateChange runs while the breaker lock is held and must not call back into the breaker.
	OnStateChange func(name string, from, to State)
}

type CircuitBreaker struct {
	name             string
	failureThreshold int
	resetTimeout     time.Duration
	isSuccessful     func(error) bool
	onStateChange    func(string, State, State)
	clock            clock.Clock

	mu            sync.Mutex
	state         State
	generation    uint64
	failures      int
	openedAt      time.Time
	probeInFlight bool
}

func New(settings Settings, clk clock.Clock) *CircuitBreaker {
	cb := &CircuitBreaker{
		name:             settings.Name,
		failureThreshold: settings.FailureThreshold,
		resetTimeout:     settings.ResetTimeout,
		isSuccessful:     settings.IsSuccessful,
		onStateChange:    settings.OnStateChange,
		clock:            clk,
		state:            StateClosed,
	}
	if cb.failureThreshold <= 0 {
		cb.failureThreshold = DefaultFailureThreshold
	}
	if cb.resetTimeout <= 0 {
		cb.resetTimeout = DefaultResetTimeout
	}
	if cb.isSuccessful == nil {
		cb.isSuccessful = func(err error) bool { return err == nil }
	}
	if cb.clock == nil {
		cb.clock = clock.NewRealClock()
	}
	return cb
}

func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// Execute runs fn unless the breaker rejects the call, and records its outcome.
// The error returned by fn is passed through unchanged.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	generation, err := cb.beforeCall()
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			cb.afterCall(generation, false)
			panic(p)
		}
	}()

	err = fn()
	cb.afterCall(generation, cb.isSuccessful(err))
	return err
}

// Call is Execute for functions that produce a value.
func Call[T any](cb *CircuitBreaker, fn func() (T, error)) (T, error) {
	var result T
	err := cb.Execute(func() error {
		var callErr error
		result, callErr = fn()
		return callErr
	})
	return result, err
}

func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	state, _ := cb.currentState(cb.clock.Now())
	return state
}

// Failures returns the current count of consecutive failures.
func (cb *CircuitBreaker) Failures() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.failures
}

func (cb *CircuitBreaker) beforeCall() (uint64, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	state, generation := cb.currentState(cb.clock.Now())
	switch state {
	case StateOpen:
		return generation, errs.ErrCircuitOpen
	case StateHalfOpen:
		if cb.probeInFlight {
			return generation, errs.ErrCircuitOpen
		}
		cb.probeInFlight = true
	}
	return generation, nil
}

func (cb *CircuitBreaker) afterCall(before uint64, success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := cb.clock.Now()
	state, generation := cb.currentState(now)
	// the call started under a state that no longer exists
	if generation != before {
		return
	}

	if success {
		cb.onSuccess(state, now)
	} else {
		cb.onFailure(state, now)
	}
}

func (cb *CircuitBreaker) onSuccess(state State, now time.Time) {
	switch state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.setState(StateClosed, now)
	}
}

func (cb *CircuitBreaker) onFailure(state State, now time.Time) {
	switch state {
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.failureThreshold {
			cb.setState(StateOpen, now)
		}
	case StateHalfOpen:
		cb.setState(StateOpen, now)
	}
}

func (cb *CircuitBreaker) currentState(now time.Time) (State, uint64) {
	if cb.state == StateOpen && !now.Before(cb.openedAt.Add(cb.resetTimeout)) {
		cb.setState(StateHalfOpen, now)
	}
	return cb.state, cb.generation
}

func (cb *CircuitBreaker) setState(to State, now time.Time) {
	if cb.state == to {
		return
	}

	from := cb.state
	cb.state = to
	cb.generation++
	cb.probeInFlight = false

	switch to {
	case StateClosed:
		cb.failures = 0
	case StateOpen:
		cb.openedAt = now
	}

	if cb.onStateChange != nil {
		cb.onStateChange(cb.name, from, to)
	}
}
