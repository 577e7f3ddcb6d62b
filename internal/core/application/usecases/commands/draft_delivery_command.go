package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/pkg/guard"
)

// ErrDraftDeliveryCommandIsNotConstructed is returned when a
// DraftDeliveryCommand was not created via its constructor.
var ErrDraftDeliveryCommandIsNotConstructed = errors.New(
	"DraftDeliveryCommand must be created via NewDraftDeliveryCommand constructor",
)

// DraftDeliveryCommand represents a request to draft a new delivery with its
// initial preparation details. The delivery id is allocated by the handler
// and returned to the caller.
type DraftDeliveryCommand struct { //nolint:recvcheck //using for validation
	details delivery.PreparationDetails

	guard guard.ConstructorGuard
}

// NewDraftDeliveryCommand creates a command to draft a delivery with the
// given preparation details.
func NewDraftDeliveryCommand(details delivery.PreparationDetails) (DraftDeliveryCommand, error) {
	cmd := DraftDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setDetails(details); err != nil {
		return DraftDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DraftDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrDraftDeliveryCommandIsNotConstructed)
}

// Details returns the initial preparation details.
func (c DraftDeliveryCommand) Details() delivery.PreparationDetails {
	return c.details
}

func (c *DraftDeliveryCommand) setDetails(details delivery.PreparationDetails) error {
	if err := details.Validate(); err != nil {
		return err
	}

	c.details = details
	return nil
}
