package commands

import (
	"context"
)

// PickUpDeliveryCommandHandler transitions a waiting delivery to PickedUp
// and records the collecting courier. The courier recorded here is the one
// physically holding the parcel; it is never reassigned afterward.
type PickUpDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewPickUpDeliveryCommandHandler creates a handler for delivery pickups.
func NewPickUpDeliveryCommandHandler(uowFactory DeliveryUoWFactory) PickUpDeliveryCommandHandler {
	return PickUpDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the pickup command.
func (h PickUpDeliveryCommandHandler) Handle(ctx context.Context, cmd PickUpDeliveryCommand) error {
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

	if err = aggregate.PickUp(cmd.CourierID()); err != nil {
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
