package verify

import (
	"context"

	"github.com/factgate/factgate/internal/model"
	"golang.org/x/time/rate"
)

// RateLimitedOracle throttles calls to the inner oracle. One limiter guards
// the provider regardless of how many documents are in flight.
type RateLimitedOracle struct {
	inner   Oracle
	limiter *rate.Limiter
}

// NewRateLimitedOracle wraps inner with a token-bucket limiter. A zero or
// negative rate means unthrottled, not a limiter that never releases a token.
func NewRateLimitedOracle(inner Oracle, requestsPerSecond float64, burst int) *RateLimitedOracle {
	if burst <= 0 {
		burst = 1
	}
	limit := rate.Limit(requestsPerSecond)
	if requestsPerSecond <= 0 {
		limit = rate.Inf
	}
	return &RateLimitedOracle{
		inner:   inner,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Name returns the inner provider name
func (r *RateLimitedOracle) Name() string {
	return r.inner.Name()
}

// Verify waits for rate-limit clearance, then delegates
func (r *RateLimitedOracle) Verify(ctx context.Context, claim model.Claim) (*model.VerificationResult, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.inner.Verify(ctx, claim)
}
