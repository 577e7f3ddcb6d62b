package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrEditDeliveryDetailsCommandIsNotConstructed is returned when an
// EditDeliveryDetailsCommand was not created via its constructor.
var ErrEditDeliveryDetailsCommandIsNotConstructed = errors.New(
	"EditDeliveryDetailsCommand must be created via NewEditDeliveryDetailsCommand constructor",
)

// EditDeliveryDetailsCommand represents a request to replace the preparation
// details of a drafted delivery. The replacement is wholesale; there is no
// partial merge.
type EditDeliveryDetailsCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	details    delivery.PreparationDetails

	guard guard.ConstructorGuard
}

// NewEditDeliveryDetailsCommand creates a command to replace the preparation
// details of the given delivery.
func NewEditDeliveryDetailsCommand(
	deliveryID kernel.UUID,
	details delivery.PreparationDetails,
) (EditDeliveryDetailsCommand, error) {
	cmd := EditDeliveryDetailsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setDetails(details),
	); err != nil {
		return EditDeliveryDetailsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c EditDeliveryDetailsCommand) Validate() error {
	return c.guard.Validate(ErrEditDeliveryDetailsCommandIsNotConstructed)
}

// DeliveryID returns the target delivery's identifier.
func (c EditDeliveryDetailsCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Details returns the replacement preparation details.
func (c EditDeliveryDetailsCommand) Details() delivery.PreparationDetails {
	return c.details
}

func (c *EditDeliveryDetailsCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *EditDeliveryDetailsCommand) setDetails(details delivery.PreparationDetails) error {
	if err := details.Validate(); err != nil {
		return err
	}

	c.details = details
	return nil
}
