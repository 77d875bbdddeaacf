package retry

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned when the breaker rejects a call without
// attempting the operation
var ErrCircuitOpen = errors.New("circuit breaker open")

// BreakerState is the classic three-state breaker state
type BreakerState string

const (
	BreakerClosed   BreakerState = "closed"
	BreakerOpen     BreakerState = "open"
	BreakerHalfOpen BreakerState = "half-open"
)

// CircuitBreaker isolates a failing dependency. The caller owns the
// lifecycle: one breaker per external dependency. Sharing one breaker across
// documents is deliberate cross-document failure correlation (the oracle
// itself is down), not an accident.
type CircuitBreaker struct {
	mu           sync.Mutex
	threshold    int
	resetTimeout time.Duration

	failures    int
	lastFailure time.Time
	state       BreakerState

	now func() time.Time // injectable for tests
}

// NewCircuitBreaker creates a closed breaker that opens after threshold
// consecutive failures and allows a single probe after resetTimeout
func NewCircuitBreaker(threshold int, resetTimeout time.Duration) *CircuitBreaker {
	if threshold <= 0 {
		threshold = 1
	}
	return &CircuitBreaker{
		threshold:    threshold,
		resetTimeout: resetTimeout,
		state:        BreakerClosed,
		now:          time.Now,
	}
}

// Execute runs op under the breaker. In the open state calls are rejected
// immediately until resetTimeout has elapsed since the last failure; the
// first call after that becomes the single half-open probe. A successful
// probe closes the breaker and resets the failure count; a failed probe
// reopens it.
func (b *CircuitBreaker) Execute(ctx context.Context, op func(ctx context.Context) error) error {
	if err := b.allow(); err != nil {
		return err
	}

	err := op(ctx)
	b.record(err)
	return err
}

// allow decides whether a call may proceed, transitioning open -> half-open
// when the reset timeout has elapsed
func (b *CircuitBreaker) allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerOpen:
		if b.now().Sub(b.lastFailure) >= b.resetTimeout {
			b.state = BreakerHalfOpen
			return nil
		}
		return ErrCircuitOpen
	case BreakerHalfOpen:
		// A probe is already in flight
		return ErrCircuitOpen
	default:
		return nil
	}
}

// record updates breaker state from the call outcome
func (b *CircuitBreaker) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		b.failures = 0
		b.state = BreakerClosed
		return
	}

	b.failures++
	b.lastFailure = b.now()
	if b.state == BreakerHalfOpen || b.failures >= b.threshold {
		b.state = BreakerOpen
	}
}

// State returns the current breaker state
func (b *CircuitBreaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Failures returns the consecutive failure count
func (b *CircuitBreaker) Failures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures
}
