package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrGetCourierQueryIsNotConstructed is returned when a GetCourierQuery
// was not created via its constructor.
var ErrGetCourierQueryIsNotConstructed = errors.New(
	"GetCourierQuery must be created via NewGetCourierQuery constructor",
)

// GetCourierQuery retrieves the full state of a single courier, including
// the ids of the deliveries currently held.
type GetCourierQuery struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCourierQuery creates a query for the given courier.
func NewGetCourierQuery(courierID kernel.UUID) (GetCourierQuery, error) {
	q := GetCourierQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setCourierID(courierID); err != nil {
		return GetCourierQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierQueryIsNotConstructed)
}

// CourierID returns the requested courier's identifier.
func (q GetCourierQuery) CourierID() kernel.UUID {
	return q.courierID
}

func (q *GetCourierQuery) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	q.courierID = courierID
	return nil
}

// GetCourierQueryResponse represents one courier with its full pending
// workload in the read model.
type GetCourierQueryResponse struct {
	ID                kernel.UUID
	Name              string
	PendingDeliveries []kernel.UUID
	LastFulfilledAt   time.Time
}
