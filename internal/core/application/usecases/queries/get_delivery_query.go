package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrGetDeliveryQueryIsNotConstructed is returned when a GetDeliveryQuery
// was not created via its constructor.
var ErrGetDeliveryQueryIsNotConstructed = errors.New(
	"GetDeliveryQuery must be created via NewGetDeliveryQuery constructor",
)

// GetDeliveryQuery retrieves the full state of a single delivery, including
// its preparation details and lifecycle timestamps.
type GetDeliveryQuery struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDeliveryQuery creates a query for the given delivery.
func NewGetDeliveryQuery(deliveryID kernel.UUID) (GetDeliveryQuery, error) {
	q := GetDeliveryQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setDeliveryID(deliveryID); err != nil {
		return GetDeliveryQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQueryIsNotConstructed)
}

// DeliveryID returns the requested delivery's identifier.
func (q GetDeliveryQuery) DeliveryID() kernel.UUID {
	return q.deliveryID
}

func (q *GetDeliveryQuery) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	q.deliveryID = deliveryID
	return nil
}

// ContactPointResponse represents one side of the delivery in the read model.
type ContactPointResponse struct {
	ZipCode    string
	Street     string
	Number     string
	Complement string
	Name       string
	Phone      string
}

// PreparationDetailsResponse represents the delivery's preparation details
// in the read model.
type PreparationDetailsResponse struct {
	Sender               ContactPointResponse
	Recipient            ContactPointResponse
	DistanceFee          decimal.Decimal
	CourierPayout        decimal.Decimal
	TotalCost            decimal.Decimal
	ExpectedDeliveryTime time.Duration
}

// GetDeliveryQueryResponse represents the full delivery state in the read
// model. Details is nil for an unprepared draft. CourierID is nil until
// pickup; during the assignment window its absence is a designed state, not
// an error.
type GetDeliveryQueryResponse struct {
	ID          kernel.UUID
	Status      string
	Details     *PreparationDetailsResponse
	CourierID   *kernel.UUID
	PlacedAt    *time.Time
	PickedUpAt  *time.Time
	FulfilledAt *time.Time
}
