package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeClock drives the breaker's view of time
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(threshold int, reset time.Duration) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	b := NewCircuitBreaker(threshold, reset)
	b.now = clock.now
	return b, clock
}

func failing(ctx context.Context) error { return errors.New("connection refused") }
func succeeding(ctx context.Context) error { return nil }

func TestBreaker_OpensAtThreshold(t *testing.T) {
	b, _ := newTestBreaker(3, time.Minute)

	for i := 0; i < 2; i++ {
		if err := b.Execute(context.Background(), failing); err == nil {
			t.Fatal("Expected operation error")
		}
		if b.State() != BreakerClosed {
			t.Fatalf("Expected closed after %d failures, got %s", i+1, b.State())
		}
	}

	b.Execute(context.Background(), failing)
	if b.State() != BreakerOpen {
		t.Fatalf("Expected open after 3 failures, got %s", b.State())
	}
	if b.Failures() != 3 {
		t.Errorf("Expected 3 recorded failures, got %d", b.Failures())
	}
}

func TestBreaker_OpenRejectsWithoutCalling(t *testing.T) {
	b, _ := newTestBreaker(1, time.Minute)
	b.Execute(context.Background(), failing)

	called := false
	err := b.Execute(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("Expected ErrCircuitOpen, got %v", err)
	}
	if called {
		t.Error("Operation must not run while the breaker is open")
	}
}

func TestBreaker_HalfOpenProbeCloses(t *testing.T) {
	b, clock := newTestBreaker(1, time.Minute)
	b.Execute(context.Background(), failing)

	clock.advance(61 * time.Second)

	if err := b.Execute(context.Background(), succeeding); err != nil {
		t.Fatalf("Expected probe to run, got %v", err)
	}
	if b.State() != BreakerClosed {
		t.Errorf("Expected closed after successful probe, got %s", b.State())
	}
	if b.Failures() != 0 {
		t.Errorf("Expected failure count reset, got %d", b.Failures())
	}
}

func TestBreaker_FailedProbeReopens(t *testing.T) {
	b, clock := newTestBreaker(1, time.Minute)
	b.Execute(context.Background(), failing)

	clock.advance(61 * time.Second)

	if err := b.Execute(context.Background(), failing); err == nil {
		t.Fatal("Expected probe failure to surface")
	}
	if b.State() != BreakerOpen {
		t.Errorf("Expected reopen after failed probe, got %s", b.State())
	}

	// Full reset timeout applies again from the probe failure
	clock.advance(30 * time.Second)
	if err := b.Execute(context.Background(), succeeding); !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("Expected rejection before timeout elapses again, got %v", err)
	}
}

func TestBreaker_SingleProbeInFlight(t *testing.T) {
	b, clock := newTestBreaker(1, time.Minute)
	b.Execute(context.Background(), failing)
	clock.advance(61 * time.Second)

	probeStarted := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- b.Execute(context.Background(), func(ctx context.Context) error {
			close(probeStarted)
			<-release
			return nil
		})
	}()

	<-probeStarted
	// A second call while the probe is in flight is rejected
	if err := b.Execute(context.Background(), succeeding); !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("Expected concurrent call rejected during probe, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if b.State() != BreakerClosed {
		t.Errorf("Expected closed after probe, got %s", b.State())
	}
}

func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	b, _ := newTestBreaker(3, time.Minute)

	b.Execute(context.Background(), failing)
	b.Execute(context.Background(), failing)
	b.Execute(context.Background(), succeeding)

	if b.Failures() != 0 {
		t.Errorf("Expected failures reset on success, got %d", b.Failures())
	}

	// Two more failures still do not reach the threshold
	b.Execute(context.Background(), failing)
	b.Execute(context.Background(), failing)
	if b.State() != BreakerClosed {
		t.Errorf("Expected closed, got %s", b.State())
	}
}

func TestNewCircuitBreaker_ThresholdFloor(t *testing.T) {
	b := NewCircuitBreaker(0, time.Minute)
	b.Execute(context.Background(), failing)
	if b.State() != BreakerOpen {
		t.Errorf("Expected threshold floor of 1, state %s", b.State())
	}
}
