package commands

import (
	"context"
)

// PlaceDeliveryCommandHandler transitions a drafted delivery to
// WaitingForCourier. On commit the unit of work publishes the placed event,
// which triggers courier assignment on the consuming side. A repeated place
// call fails with InvalidStateError and changes nothing.
type PlaceDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewPlaceDeliveryCommandHandler creates a handler for delivery placement.
func NewPlaceDeliveryCommandHandler(uowFactory DeliveryUoWFactory) PlaceDeliveryCommandHandler {
	return PlaceDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the place command.
func (h PlaceDeliveryCommandHandler) Handle(ctx context.Context, cmd PlaceDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryRepository()
	aggregate, err := repo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	if err = aggregate.Place(); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
