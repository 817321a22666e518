package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/intervue/internal/logger"
)

// RetryProvider retries transient failures with exponential backoff and
// jitter. With the default single attempt it is a pass-through.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	log    *zap.Logger
}

// WithRetry wraps p. MaxAttempts below one is treated as one.
func WithRetry(p Provider, cfg RetryConfig, log *zap.Logger) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RetryProvider{inner: p, config: cfg, log: log}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var lastErr error
	invalidSeen := false

	for attempt := 0; attempt < r.config.MaxAttempts; attempt++ {
		if attempt > 0 {
			wait := r.backoff(attempt-1, lastErr)
			logger.WithCtx(ctx, r.log).Debug("retrying llm request",
				zap.String("purpose", string(PurposeFrom(ctx))),
				zap.Int("attempt", attempt+1),
				zap.String("reason", FailureReason(lastErr)),
				zap.Duration("wait", wait),
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}

		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		switch FailureReason(err) {
		case ReasonTimeout, ReasonCanceled, ReasonTruncated, ReasonNotConfigured, ReasonUnauthorized:
			return nil, err
		case ReasonInvalidResponse:
			// A malformed reply gets one more try.
			if invalidSeen {
				return nil, err
			}
			invalidSeen = true
		}
	}
	return nil, lastErr
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// backoff returns the wait before retry number attempt+1. A rate limit with
// Retry-After wins over the computed delay.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	wait = math.Min(wait, float64(r.config.MaxWait))
	wait *= 1 + 0.2*(2*rand.Float64()-1)
	return time.Duration(math.Max(wait, 0))
}
