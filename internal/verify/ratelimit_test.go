package verify

import (
	"context"
	"testing"
	"time"

	"github.com/factgate/factgate/internal/model"
)

func TestRateLimitedOracle_ZeroRateDoesNotBlock(t *testing.T) {
	inner := &fakeOracle{result: &model.VerificationResult{Status: model.StatusVerified}}
	limited := NewRateLimitedOracle(inner, 0, 0)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for i := 0; i < 3; i++ {
		if _, err := limited.Verify(ctx, testClaim("claim-001")); err != nil {
			t.Fatalf("Call %d blocked or failed with zero rate: %v", i+1, err)
		}
	}
	if inner.calls != 3 {
		t.Errorf("Expected 3 inner calls, got %d", inner.calls)
	}
}

func TestRateLimitedOracle_ThrottledCallDoesNotReachInner(t *testing.T) {
	// Burst 1 at 1 rps: the second immediate call has to wait, and a dead
	// context surfaces instead of the inner oracle being called
	inner := &fakeOracle{result: &model.VerificationResult{Status: model.StatusVerified}}
	limited := NewRateLimitedOracle(inner, 1, 1)

	if _, err := limited.Verify(context.Background(), testClaim("claim-001")); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := limited.Verify(ctx, testClaim("claim-001")); err == nil {
		t.Error("Expected error from a cancelled wait")
	}
	if inner.calls != 1 {
		t.Errorf("Inner oracle must not run when the limiter rejects, got %d calls", inner.calls)
	}
}

func TestRateLimitedOracle_Name(t *testing.T) {
	limited := NewRateLimitedOracle(&fakeOracle{}, 2, 5)
	if limited.Name() != "fake" {
		t.Errorf("Expected inner name passed through, got %q", limited.Name())
	}
}
