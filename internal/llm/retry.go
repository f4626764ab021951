package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

type retrier struct {
	inner Provider
	cfg   RetryConfig
}

// WithRetry resends failed requests with exponential backoff. Rate limits,
// outages and unknown failures use every attempt; a reply that fails
// schema validation gets one more try; truncation and cancellation stop
// immediately.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &retrier{inner: p, cfg: cfg}
}

func (r *retrier) ModelID() string { return r.inner.ModelID() }

func (r *retrier) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.cfg.MaxAttempts, 1)
	invalidAgain := false

	var err error
	for attempt := range attempts {
		if attempt > 0 {
			if werr := wait(ctx, r.delay(attempt-1, err)); werr != nil {
				return nil, werr
			}
		}

		var resp *Response
		if resp, err = r.inner.Generate(ctx, req); err == nil {
			return resp, nil
		}

		switch policyFor(err) {
		case retryNever:
			return nil, err
		case retryOnce:
			if invalidAgain {
				return nil, err
			}
			invalidAgain = true
		}
	}
	return nil, err
}

// delay is InitialWait*Multiplier^n capped at MaxWait with 20% jitter,
// unless the vendor asked for a specific pause.
func (r *retrier) delay(n int, cause error) time.Duration {
	var rl *RateLimitError
	if errors.As(cause, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	d := math.Min(float64(r.cfg.InitialWait)*math.Pow(r.cfg.Multiplier, float64(n)), float64(r.cfg.MaxWait))
	d *= 0.8 + 0.4*rand.Float64()
	return time.Duration(d)
}

func wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
