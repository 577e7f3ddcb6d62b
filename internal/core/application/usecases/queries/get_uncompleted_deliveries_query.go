package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrGetUncompletedDeliveriesQueryIsNotConstructed is returned when a
// GetUncompletedDeliveriesQuery was not created via its constructor.
var ErrGetUncompletedDeliveriesQueryIsNotConstructed = errors.New(
	"GetUncompletedDeliveriesQuery must be created via NewGetUncompletedDeliveriesQuery constructor",
)

// GetUncompletedDeliveriesQuery retrieves all deliveries that have not yet
// been fulfilled, providing visibility into the active workload.
type GetUncompletedDeliveriesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetUncompletedDeliveriesQuery creates a query for unfulfilled deliveries.
func NewGetUncompletedDeliveriesQuery() GetUncompletedDeliveriesQuery {
	return GetUncompletedDeliveriesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetUncompletedDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetUncompletedDeliveriesQueryIsNotConstructed)
}

// GetUncompletedDeliveriesQueryResponse represents one active delivery in
// the read model. CourierID is nil until a courier picks the delivery up;
// PlacedAt is nil for drafts.
type GetUncompletedDeliveriesQueryResponse struct {
	ID        kernel.UUID
	Status    string
	CourierID *kernel.UUID
	PlacedAt  *time.Time
}
