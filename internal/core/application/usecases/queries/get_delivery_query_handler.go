package queries

import (
	"context"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/ports"
)

// GetDeliveryQueryHandler retrieves a single delivery through the repository.
// Unlike the list queries this read model needs the full aggregate state,
// including preparation details, so it reuses the write-side reconstruction
// instead of duplicating the mapping over raw SQL.
type GetDeliveryQueryHandler struct {
	repo ports.DeliveryRepository
}

// NewGetDeliveryQueryHandler creates a handler for single delivery queries.
func NewGetDeliveryQueryHandler(repo ports.DeliveryRepository) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{repo: repo}
}

// Handle executes the query. Returns ObjectNotFoundError when the delivery
// does not exist.
func (h GetDeliveryQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryQuery,
) (GetDeliveryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	aggregate, err := h.repo.Get(ctx, query.DeliveryID())
	if err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	resp := GetDeliveryQueryResponse{
		ID:          aggregate.ID(),
		Status:      aggregate.Status().String(),
		CourierID:   aggregate.CourierID(),
		PlacedAt:    aggregate.PlacedAt(),
		PickedUpAt:  aggregate.PickedUpAt(),
		FulfilledAt: aggregate.FulfilledAt(),
	}

	if details := aggregate.PreparationDetails(); details != nil {
		resp.Details = &PreparationDetailsResponse{
			Sender:               contactPointResponse(details.Sender()),
			Recipient:            contactPointResponse(details.Recipient()),
			DistanceFee:          details.DistanceFee(),
			CourierPayout:        details.CourierPayout(),
			TotalCost:            details.TotalCost(),
			ExpectedDeliveryTime: details.ExpectedDeliveryTime(),
		}
	}

	return resp, nil
}

func contactPointResponse(cp delivery.ContactPoint) ContactPointResponse {
	return ContactPointResponse{
		ZipCode:    cp.ZipCode(),
		Street:     cp.Street(),
		Number:     cp.Number(),
		Complement: cp.Complement(),
		Name:       cp.Name(),
		Phone:      cp.Phone(),
	}
}
