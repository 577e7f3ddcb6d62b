package queries

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrCalculatePayoutQueryIsNotConstructed is returned when a
// CalculatePayoutQuery was not created via its constructor.
var ErrCalculatePayoutQueryIsNotConstructed = errors.New(
	"CalculatePayoutQuery must be created via NewCalculatePayoutQuery constructor",
)

// CalculatePayoutQuery requests a courier payout estimate for a delivery
// distance. The estimation backend is unreliable; the handler applies the
// retry and timeout policy.
type CalculatePayoutQuery struct { //nolint:recvcheck //using for validation
	distanceInKm decimal.Decimal

	guard guard.ConstructorGuard
}

// NewCalculatePayoutQuery creates a payout query for the given distance.
// The distance must be greater than zero.
func NewCalculatePayoutQuery(distanceInKm decimal.Decimal) (CalculatePayoutQuery, error) {
	q := CalculatePayoutQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setDistanceInKm(distanceInKm); err != nil {
		return CalculatePayoutQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q CalculatePayoutQuery) Validate() error {
	return q.guard.Validate(ErrCalculatePayoutQueryIsNotConstructed)
}

// DistanceInKm returns the delivery distance to estimate.
func (q CalculatePayoutQuery) DistanceInKm() decimal.Decimal {
	return q.distanceInKm
}

func (q *CalculatePayoutQuery) setDistanceInKm(distanceInKm decimal.Decimal) error {
	if !distanceInKm.IsPositive() {
		return errs.NewValueIsInvalidError("distanceInKm")
	}

	q.distanceInKm = distanceInKm
	return nil
}

// CalculatePayoutQueryResponse carries the estimated payout fee.
type CalculatePayoutQueryResponse struct {
	DistanceInKm decimal.Decimal
	PayoutFee    decimal.Decimal
}
