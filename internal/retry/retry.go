package retry

import (
	"context"
	"time"

	"github.com/factgate/factgate/internal/model"
)

// sleepFunc is the sleep between attempts (injectable for tests)
var sleepFunc = sleepContext

// Result is the outcome of a retried operation
type Result[T any] struct {
	Success      bool
	Value        T
	Attempts     int
	UsedFallback bool
	Err          error
}

// Operation is a single attempt at the wrapped call
type Operation[T any] func(ctx context.Context) (T, error)

// Do runs op with classification-aware retry. Transient failures (network,
// rate limit, timeout, server) are retried up to cfg.MaxRetries additional
// attempts with the configured backoff schedule; auth and validation errors
// surface immediately. When every attempt fails and the strategy is cache,
// the supplied fallback is invoked; skip and manual give up quietly.
func Do[T any](ctx context.Context, cfg model.RetryConfig, op Operation[T], fallback Operation[T]) Result[T] {
	var res Result[T]

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		res.Attempts = attempt + 1

		value, err := op(ctx)
		if err == nil {
			res.Success = true
			res.Value = value
			return res
		}
		res.Err = err

		if !Classify(err).Retryable() {
			break
		}
		if attempt == cfg.MaxRetries {
			break
		}
		if err := sleepFunc(ctx, backoffFor(cfg.BackoffMs, attempt)); err != nil {
			res.Err = err
			return res
		}
	}

	if cfg.FallbackStrategy == model.FallbackCache && fallback != nil {
		if value, err := fallback(ctx); err == nil {
			res.Success = true
			res.Value = value
			res.UsedFallback = true
			return res
		}
	}

	return res
}

// backoffFor returns the sleep before the next attempt. The index clamps to
// the last configured value, so the schedule is monotonic non-decreasing
// rather than truly exponential unless configured that way.
func backoffFor(backoffMs []int, attempt int) time.Duration {
	if len(backoffMs) == 0 {
		return 0
	}
	if attempt >= len(backoffMs) {
		attempt = len(backoffMs) - 1
	}
	return time.Duration(backoffMs[attempt]) * time.Millisecond
}

// sleepContext sleeps for d or until the context is cancelled
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
