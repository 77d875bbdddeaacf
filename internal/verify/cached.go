package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/factgate/factgate/internal/cache"
	"github.com/factgate/factgate/internal/model"
)

// CachedOracle wraps an oracle with a verdict cache. Hits are reported with
// source "cached"; misses go to the inner oracle and successful verdicts are
// stored for the configured TTL.
type CachedOracle struct {
	inner Oracle
	store cache.Cache
	ttl   time.Duration
}

// NewCachedOracle wraps inner with the given cache
func NewCachedOracle(inner Oracle, store cache.Cache, ttl time.Duration) *CachedOracle {
	return &CachedOracle{inner: inner, store: store, ttl: ttl}
}

// Name returns the inner provider name
func (c *CachedOracle) Name() string {
	return c.inner.Name()
}

// Verify returns a cached verdict when present, otherwise asks the inner
// oracle and caches the answer
func (c *CachedOracle) Verify(ctx context.Context, claim model.Claim) (*model.VerificationResult, error) {
	if result, ok := c.Cached(claim); ok {
		return result, nil
	}

	result, err := c.inner.Verify(ctx, claim)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(result); err == nil {
		_ = c.store.Set(cache.Key(string(claim.Type), claim.Value), data, c.ttl)
	}

	return result, nil
}

// Cached returns the cached verdict for a claim, if any. Also used as the
// retry fallback when the oracle is unreachable and the strategy is "cache".
func (c *CachedOracle) Cached(claim model.Claim) (*model.VerificationResult, bool) {
	data, ok := c.store.Get(cache.Key(string(claim.Type), claim.Value))
	if !ok {
		return nil, false
	}

	var result model.VerificationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false
	}

	// The cached verdict may have been stored for another document's claim
	result.ClaimID = claim.ID
	result.Source = model.SourceCached
	return &result, true
}

// Fallback adapts Cached to the retry executor's fallback signature
func (c *CachedOracle) Fallback(claim model.Claim) func(ctx context.Context) (*model.VerificationResult, error) {
	return func(ctx context.Context) (*model.VerificationResult, error) {
		if result, ok := c.Cached(claim); ok {
			return result, nil
		}
		return nil, fmt.Errorf("no cached verdict for claim %s", claim.ID)
	}
}
