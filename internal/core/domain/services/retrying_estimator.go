package services

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// estimator is the payout calculation contract wrapped by RetryingEstimator.
type estimator interface {
	Calculate(ctx context.Context, distanceInKm decimal.Decimal) (decimal.Decimal, error)
}

// RetryConfig describes the retry behavior of RetryingEstimator.
type RetryConfig struct {
	// MaxAttempts bounds the total number of calls, including the first.
	MaxAttempts int
	// AttemptTimeout is the caller-side deadline applied to each attempt.
	AttemptTimeout time.Duration
	// BaseDelay is the backoff before the second attempt; it doubles per
	// attempt up to MaxDelay and is jittered.
	BaseDelay time.Duration
	// MaxDelay caps the backoff growth.
	MaxDelay time.Duration
}

// DefaultRetryConfig returns the retry policy used by the payout endpoint.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    4,
		AttemptTimeout: time.Second,
		BaseDelay:      50 * time.Millisecond,
		MaxDelay:       500 * time.Millisecond,
	}
}

// RetryingEstimator wraps a PayoutEstimator with the caller-side policy the
// estimation contract demands: a timeout per attempt and bounded retries with
// jittered exponential backoff for transient failures. When the attempts are
// exhausted the last error is surfaced; the result is never defaulted to zero.
type RetryingEstimator struct {
	next   estimator
	cfg    RetryConfig
	logger *slog.Logger
	rng    *rand.Rand
}

// NewRetryingEstimator wraps the given estimator with the retry policy.
func NewRetryingEstimator(next estimator, cfg RetryConfig, logger *slog.Logger) (*RetryingEstimator, error) {
	if next == nil {
		return nil, errs.NewValueIsRequiredError("next")
	}
	if cfg.MaxAttempts <= 0 {
		return nil, errs.NewValueIsInvalidError("maxAttempts")
	}

	return &RetryingEstimator{
		next:   next,
		cfg:    cfg,
		logger: logger.With("component", "retrying_estimator"),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // jitter, not crypto
	}, nil
}

// Calculate delegates to the wrapped estimator, retrying transient failures.
func (r *RetryingEstimator) Calculate(ctx context.Context, distanceInKm decimal.Decimal) (decimal.Decimal, error) {
	var lastErr error

	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		fee, err := r.calculateOnce(ctx, distanceInKm)
		if err == nil {
			return fee, nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == r.cfg.MaxAttempts || !isRetryable(err) {
			break
		}

		delay := r.jitteredBackoff(attempt)
		r.logger.WarnContext(ctx, "payout estimation retry",
			"attempt", attempt,
			"delay", delay,
			"error", err,
		)

		if !sleepWithContext(ctx, delay) {
			break
		}
	}

	return decimal.Decimal{}, lastErr
}

func (r *RetryingEstimator) calculateOnce(ctx context.Context, distanceInKm decimal.Decimal) (decimal.Decimal, error) {
	attemptCtx := ctx
	if r.cfg.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, r.cfg.AttemptTimeout)
		defer cancel()
	}

	return r.next.Calculate(attemptCtx, distanceInKm)
}

// jitteredBackoff doubles BaseDelay per attempt, caps it at MaxDelay, and
// keeps half the delay fixed with the other half randomized.
func (r *RetryingEstimator) jitteredBackoff(attempt int) time.Duration {
	delay := r.cfg.BaseDelay << (attempt - 1)
	if delay > r.cfg.MaxDelay {
		delay = r.cfg.MaxDelay
	}
	if delay <= 0 {
		return 0
	}
	half := delay / 2
	return half + time.Duration(r.rng.Int63n(int64(half)+1))
}

// isRetryable reports whether the error is a transient estimation failure or
// an attempt-level timeout. Validation errors and the like are not retried.
func isRetryable(err error) bool {
	return errors.Is(err, errs.ErrTransientEstimation) ||
		errors.Is(err, context.DeadlineExceeded)
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
