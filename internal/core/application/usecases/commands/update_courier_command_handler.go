package commands

import (
	"context"
	"errors"

	"dispatch/internal/pkg/errs"
)

// UpdateCourierCommandHandler renames a registered courier.
//
// The rename can race with the event-driven assignment flow moving the same
// courier's record version, so version conflicts are retried a bounded
// number of times with a fresh reload each round.
type UpdateCourierCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewUpdateCourierCommandHandler creates a handler for courier profile updates.
func NewUpdateCourierCommandHandler(uowFactory CourierUoWFactory) UpdateCourierCommandHandler {
	return UpdateCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the update command.
func (h UpdateCourierCommandHandler) Handle(ctx context.Context, cmd UpdateCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var lastErr error
	for attempt := 0; attempt < selectionRetries; attempt++ {
		err := h.tryUpdate(ctx, cmd)
		if err == nil || !errors.Is(err, errs.ErrConcurrentModification) {
			return err
		}
		lastErr = err
	}

	return lastErr
}

func (h UpdateCourierCommandHandler) tryUpdate(ctx context.Context, cmd UpdateCourierCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CourierRepository()

	aggregate, err := repo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = aggregate.Rename(cmd.Name()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
