// Package ports defines repository and messaging interfaces for the dispatch
// domain. These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates,
// including their pending workload and the fairness clock.
//
// Update performs a conditional write on the record version: when the stored
// version no longer matches the aggregate's, it fails with
// ConcurrentModificationError and persists nothing. Callers reload and retry.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	// The courier must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists changes to an existing courier aggregate, guarded by
	// the record version. Returns ConcurrentModificationError when the
	// stored version has moved since the aggregate was loaded.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	// Returns ObjectNotFoundError when no such courier exists.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAll retrieves every registered courier.
	GetAll(ctx context.Context) ([]*courier.Courier, error)

	// GetLeastRecentlyFulfilled retrieves up to limit couriers ordered by
	// fairness clock ascending, ties broken by id ascending. Used by the
	// dispatcher to pick the next courier for an incoming delivery.
	GetLeastRecentlyFulfilled(ctx context.Context, limit int) ([]*courier.Courier, error)

	// FindByPendingDelivery retrieves the courier currently holding the
	// given delivery in its pending workload. Returns ObjectNotFoundError
	// when no courier holds it.
	FindByPendingDelivery(ctx context.Context, deliveryID kernel.UUID) (*courier.Courier, error)
}
