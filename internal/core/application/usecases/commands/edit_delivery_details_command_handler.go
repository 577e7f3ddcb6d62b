package commands

import (
	"context"
)

// EditDeliveryDetailsCommandHandler replaces the preparation details of a
// drafted delivery. Fails with InvalidStateError once the delivery has been
// placed; the details are frozen from placement onward.
type EditDeliveryDetailsCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewEditDeliveryDetailsCommandHandler creates a handler for detail edits.
func NewEditDeliveryDetailsCommandHandler(uowFactory DeliveryUoWFactory) EditDeliveryDetailsCommandHandler {
	return EditDeliveryDetailsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the edit command.
func (h EditDeliveryDetailsCommandHandler) Handle(ctx context.Context, cmd EditDeliveryDetailsCommand) error {
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

	if err = aggregate.EditPreparationDetails(cmd.Details()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
