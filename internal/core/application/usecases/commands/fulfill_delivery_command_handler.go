package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// FulfillDeliveryCommandHandler removes a fulfilled delivery from its
// courier's workload and advances that courier's fairness clock.
//
// The command is driven by fulfilled events. A duplicate event finds no
// courier holding the delivery and fails with AssignmentNotFoundError; the
// caller treats that as an already-processed duplicate and acknowledges it.
// Version conflicts are retried a bounded number of times.
type FulfillDeliveryCommandHandler struct {
	uowFactory CourierUoWFactory
	dispatcher services.CourierDispatcher
}

// NewFulfillDeliveryCommandHandler creates a handler for delivery fulfillment.
func NewFulfillDeliveryCommandHandler(uowFactory CourierUoWFactory) FulfillDeliveryCommandHandler {
	return FulfillDeliveryCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewCourierDispatcher(),
	}
}

// Handle processes the fulfillment command.
func (h FulfillDeliveryCommandHandler) Handle(ctx context.Context, cmd FulfillDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var lastErr error
	for attempt := 0; attempt < selectionRetries; attempt++ {
		err := h.tryFulfill(ctx, cmd)
		if err == nil || !errors.Is(err, errs.ErrConcurrentModification) {
			return err
		}
		lastErr = err
	}

	return lastErr
}

func (h FulfillDeliveryCommandHandler) tryFulfill(ctx context.Context, cmd FulfillDeliveryCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CourierRepository()

	holder, err := repo.FindByPendingDelivery(ctx, cmd.DeliveryID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewAssignmentNotFoundError(cmd.DeliveryID().String())
	}
	if err != nil {
		return err
	}

	fulfilled, err := h.dispatcher.Fulfill(cmd.DeliveryID(), []*courier.Courier{holder})
	if err != nil {
		return err
	}

	if err = repo.Update(ctx, fulfilled); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
