package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrInjectedFault is the cause carried by fault-injector failures.
var ErrInjectedFault = errors.New("injected estimation fault")

// Default fault-injection parameters, matching the production simulation:
// roughly 30% of calls fail transiently and each call incurs up to 400ms of
// random latency.
const (
	DefaultFailureRate = 0.30
	DefaultMaxLatency  = 400 * time.Millisecond
)

// FaultInjector decides whether a single estimation call fails or stalls.
// It is an explicit strategy passed to the estimator, not inline randomness,
// so tests can disable it deterministically.
type FaultInjector interface {
	// Inject blocks for the injected latency (respecting ctx) and returns a
	// non-nil error when the call should fail transiently.
	Inject(ctx context.Context) error
}

// RandomFaultInjector fails calls with a fixed probability and sleeps a
// random latency bounded by maxLatency before every call.
type RandomFaultInjector struct {
	failureRate float64
	maxLatency  time.Duration
	rng         *rand.Rand
}

// NewRandomFaultInjector creates an injector with the given failure
// probability (0..1) and latency upper bound.
func NewRandomFaultInjector(failureRate float64, maxLatency time.Duration) *RandomFaultInjector {
	return &RandomFaultInjector{
		failureRate: failureRate,
		maxLatency:  maxLatency,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // simulation, not crypto
	}
}

// Inject sleeps up to the configured latency bound, honoring context
// cancellation, then fails with the configured probability.
func (i *RandomFaultInjector) Inject(ctx context.Context) error {
	if i.maxLatency > 0 {
		delay := time.Duration(i.rng.Int63n(int64(i.maxLatency)))
		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	if i.rng.Float64() < i.failureRate {
		return ErrInjectedFault
	}
	return nil
}

// NopFaultInjector never fails and never delays. Used in tests and wherever
// deterministic estimation is required.
type NopFaultInjector struct{}

// Inject always succeeds immediately.
func (NopFaultInjector) Inject(_ context.Context) error {
	return nil
}

// payoutTier is one row of the rate table: distances up to uptoKm (exclusive
// upper bound, zero meaning unbounded) are paid perKm for each kilometer
// falling inside the tier.
type payoutTier struct {
	uptoKm decimal.Decimal
	perKm  decimal.Decimal
}

// PayoutEstimator computes the courier payout for a delivery distance from a
// fixed rate table: a base fee plus tiered per-kilometer rates. Long hauls
// are paid a lower marginal rate.
//
// The estimator is deliberately unreliable: the configured FaultInjector may
// fail a call transiently or stall it, exercising the caller's retry and
// timeout policy. Callers must treat TransientEstimationError as retryable
// and must apply a timeout; see RetryingEstimator.
type PayoutEstimator struct {
	baseFee  decimal.Decimal
	tiers    []payoutTier
	injector FaultInjector
}

// NewPayoutEstimator creates an estimator with the standard rate table and
// the given fault-injection strategy.
func NewPayoutEstimator(injector FaultInjector) (*PayoutEstimator, error) {
	if injector == nil {
		return nil, errs.NewValueIsRequiredError("injector")
	}

	return &PayoutEstimator{
		baseFee: decimal.NewFromInt(3),
		tiers: []payoutTier{
			{uptoKm: decimal.NewFromInt(5), perKm: decimal.NewFromInt(1)},
			{uptoKm: decimal.NewFromInt(20), perKm: decimal.RequireFromString("0.80")},
			{uptoKm: decimal.Decimal{}, perKm: decimal.RequireFromString("0.50")},
		},
		injector: injector,
	}, nil
}

// Calculate returns the payout fee for the given distance.
//
// A failure injected by the fault strategy is returned as
// TransientEstimationError; the rate calculation itself is pure and cannot
// fail transiently. The result is rounded to two decimal places.
func (e *PayoutEstimator) Calculate(ctx context.Context, distanceInKm decimal.Decimal) (decimal.Decimal, error) {
	if distanceInKm.IsNegative() || distanceInKm.IsZero() {
		return decimal.Decimal{}, errs.NewValueIsInvalidErrorWithCause(
			"distanceInKm",
			fmt.Errorf("%s is not greater than 0", distanceInKm),
		)
	}

	if err := e.injector.Inject(ctx); err != nil {
		return decimal.Decimal{}, errs.NewTransientEstimationError(err)
	}

	fee := e.baseFee
	covered := decimal.Decimal{}
	remaining := distanceInKm

	for _, tier := range e.tiers {
		if remaining.IsZero() {
			break
		}

		span := remaining
		if !tier.uptoKm.IsZero() {
			tierWidth := tier.uptoKm.Sub(covered)
			if span.GreaterThan(tierWidth) {
				span = tierWidth
			}
			covered = tier.uptoKm
		}

		fee = fee.Add(span.Mul(tier.perKm))
		remaining = remaining.Sub(span)
	}

	return fee.Round(2), nil
}
