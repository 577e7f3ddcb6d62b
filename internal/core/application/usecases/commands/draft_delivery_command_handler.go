package commands

import (
	"context"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

// DraftDeliveryCommandHandler creates new deliveries in Draft status.
// Drafting allocates the delivery id, stores the preparation details, and
// has no other side effects: no events, no courier interaction.
type DraftDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewDraftDeliveryCommandHandler creates a handler for delivery drafting.
func NewDraftDeliveryCommandHandler(uowFactory DeliveryUoWFactory) DraftDeliveryCommandHandler {
	return DraftDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the draft command and returns the allocated delivery id.
func (h DraftDeliveryCommandHandler) Handle(ctx context.Context, cmd DraftDeliveryCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate := delivery.New()
	if err := aggregate.EditPreparationDetails(cmd.Details()); err != nil {
		return kernel.UUID{}, err
	}

	if err := uow.DeliveryRepository().Add(ctx, aggregate); err != nil {
		return kernel.UUID{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return aggregate.ID(), nil
}
