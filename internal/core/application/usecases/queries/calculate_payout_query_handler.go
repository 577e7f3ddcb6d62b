package queries

import (
	"context"

	"github.com/shopspring/decimal"
)

// PayoutCalculator is the estimation contract consumed by the payout query.
// Implementations are expected to already carry the retry and timeout policy
// the unreliable estimation backend demands.
type PayoutCalculator interface {
	Calculate(ctx context.Context, distanceInKm decimal.Decimal) (decimal.Decimal, error)
}

// CalculatePayoutQueryHandler computes courier payout estimates. Purely
// computational; no database access.
type CalculatePayoutQueryHandler struct {
	calculator PayoutCalculator
}

// NewCalculatePayoutQueryHandler creates a handler backed by the given calculator.
func NewCalculatePayoutQueryHandler(calculator PayoutCalculator) CalculatePayoutQueryHandler {
	return CalculatePayoutQueryHandler{calculator: calculator}
}

// Handle executes the payout estimation. A TransientEstimationError means
// the bounded retries were exhausted; the caller surfaces the failure rather
// than defaulting the fee.
func (h CalculatePayoutQueryHandler) Handle(
	ctx context.Context,
	query CalculatePayoutQuery,
) (CalculatePayoutQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CalculatePayoutQueryResponse{}, err
	}

	fee, err := h.calculator.Calculate(ctx, query.DistanceInKm())
	if err != nil {
		return CalculatePayoutQueryResponse{}, err
	}

	return CalculatePayoutQueryResponse{
		DistanceInKm: query.DistanceInKm(),
		PayoutFee:    fee,
	}, nil
}
