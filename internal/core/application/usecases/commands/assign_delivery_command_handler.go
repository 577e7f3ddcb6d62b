package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// selectionRetries bounds retries of the select-and-update cycle when a
// concurrent assignment moved the courier's record version.
const selectionRetries = 3

// candidateLimit is how many least-recently-active couriers are loaded per
// selection attempt. More than one so a retry after a version conflict has
// fallback candidates in the same snapshot.
const candidateLimit = 10

// AssignDeliveryCommandHandler assigns a placed delivery to the least
// recently active courier.
//
// The command is driven by placed events and is idempotent: when the
// delivery is already in some courier's workload the handler treats the call
// as a duplicate and succeeds without changes. Version conflicts from
// concurrent assignments are retried a bounded number of times with a fresh
// selection each round.
//
// Returns NoCourierAvailableError when the fleet is empty; the caller is
// expected to retry later rather than drop the delivery.
type AssignDeliveryCommandHandler struct {
	uowFactory CourierUoWFactory
	dispatcher services.CourierDispatcher
}

// NewAssignDeliveryCommandHandler creates a handler for delivery assignment.
func NewAssignDeliveryCommandHandler(uowFactory CourierUoWFactory) AssignDeliveryCommandHandler {
	return AssignDeliveryCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewCourierDispatcher(),
	}
}

// Handle processes the assignment command.
func (h AssignDeliveryCommandHandler) Handle(ctx context.Context, cmd AssignDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var lastErr error
	for attempt := 0; attempt < selectionRetries; attempt++ {
		err := h.tryAssign(ctx, cmd)
		if err == nil || !errors.Is(err, errs.ErrConcurrentModification) {
			return err
		}
		lastErr = err
	}

	return lastErr
}

func (h AssignDeliveryCommandHandler) tryAssign(ctx context.Context, cmd AssignDeliveryCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CourierRepository()

	// A redelivered placed event must not double-assign.
	_, err := repo.FindByPendingDelivery(ctx, cmd.DeliveryID())
	if err == nil {
		return nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	candidates, err := repo.GetLeastRecentlyFulfilled(ctx, candidateLimit)
	if err != nil {
		return err
	}

	selected, err := h.dispatcher.Assign(cmd.DeliveryID(), candidates)
	if err != nil {
		return err
	}

	if err = repo.Update(ctx, selected); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
