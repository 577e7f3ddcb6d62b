package queries

import (
	"context"

	"dispatch/internal/core/ports"
)

// GetCourierQueryHandler retrieves a single courier through the repository.
// The read model includes the pending delivery ids, which only the write-side
// reconstruction carries.
type GetCourierQueryHandler struct {
	repo ports.CourierRepository
}

// NewGetCourierQueryHandler creates a handler for single courier queries.
func NewGetCourierQueryHandler(repo ports.CourierRepository) GetCourierQueryHandler {
	return GetCourierQueryHandler{repo: repo}
}

// Handle executes the query. Returns ObjectNotFoundError when the courier
// does not exist.
func (h GetCourierQueryHandler) Handle(
	ctx context.Context,
	query GetCourierQuery,
) (GetCourierQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCourierQueryResponse{}, err
	}

	aggregate, err := h.repo.Get(ctx, query.CourierID())
	if err != nil {
		return GetCourierQueryResponse{}, err
	}

	return GetCourierQueryResponse{
		ID:                aggregate.ID(),
		Name:              aggregate.Name(),
		PendingDeliveries: aggregate.PendingDeliveries(),
		LastFulfilledAt:   aggregate.LastFulfilledAt(),
	}, nil
}
