package delivery

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrPreparationDetailsAreNotConstructed is returned when PreparationDetails
// were not created through the NewPreparationDetails constructor.
var ErrPreparationDetailsAreNotConstructed = errors.New(
	"PreparationDetails must be created via NewPreparationDetails constructor",
)

// PreparationDetails is an immutable value object holding everything needed
// to place a delivery: the two contact points, the pricing components, and
// the expected delivery time. It is replaced wholesale on edit, never merged.
type PreparationDetails struct {
	sender               ContactPoint
	recipient            ContactPoint
	distanceFee          decimal.Decimal
	courierPayout        decimal.Decimal
	expectedDeliveryTime time.Duration

	guard guard.ConstructorGuard
}

// NewPreparationDetails creates validated PreparationDetails.
// Fees must be non-negative and the expected delivery time positive.
func NewPreparationDetails(
	sender ContactPoint,
	recipient ContactPoint,
	distanceFee decimal.Decimal,
	courierPayout decimal.Decimal,
	expectedDeliveryTime time.Duration,
) (PreparationDetails, error) {
	details := PreparationDetails{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		details.setSender(sender),
		details.setRecipient(recipient),
		details.setDistanceFee(distanceFee),
		details.setCourierPayout(courierPayout),
		details.setExpectedDeliveryTime(expectedDeliveryTime),
	); err != nil {
		return PreparationDetails{}, err
	}

	return details, nil
}

// Validate ensures the details were created through NewPreparationDetails.
func (d PreparationDetails) Validate() error {
	return d.guard.Validate(ErrPreparationDetailsAreNotConstructed)
}

// Sender returns the sender contact point.
func (d PreparationDetails) Sender() ContactPoint {
	return d.sender
}

// Recipient returns the recipient contact point.
func (d PreparationDetails) Recipient() ContactPoint {
	return d.recipient
}

// DistanceFee returns the fee charged for the delivery distance.
func (d PreparationDetails) DistanceFee() decimal.Decimal {
	return d.distanceFee
}

// CourierPayout returns the amount paid out to the courier.
func (d PreparationDetails) CourierPayout() decimal.Decimal {
	return d.courierPayout
}

// ExpectedDeliveryTime returns the promised delivery duration.
func (d PreparationDetails) ExpectedDeliveryTime() time.Duration {
	return d.expectedDeliveryTime
}

// TotalCost returns the sum of the distance fee and the courier payout.
func (d PreparationDetails) TotalCost() decimal.Decimal {
	return d.distanceFee.Add(d.courierPayout)
}

func (d *PreparationDetails) setSender(sender ContactPoint) error {
	if err := sender.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("sender", err)
	}
	d.sender = sender
	return nil
}

func (d *PreparationDetails) setRecipient(recipient ContactPoint) error {
	if err := recipient.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("recipient", err)
	}
	d.recipient = recipient
	return nil
}

func (d *PreparationDetails) setDistanceFee(fee decimal.Decimal) error {
	if fee.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("distanceFee", fmt.Errorf("%s is negative", fee))
	}
	d.distanceFee = fee
	return nil
}

func (d *PreparationDetails) setCourierPayout(payout decimal.Decimal) error {
	if payout.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("courierPayout", fmt.Errorf("%s is negative", payout))
	}
	d.courierPayout = payout
	return nil
}

func (d *PreparationDetails) setExpectedDeliveryTime(t time.Duration) error {
	if t <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("expectedDeliveryTime", fmt.Errorf("%s is not positive", t))
	}
	d.expectedDeliveryTime = t
	return nil
}
