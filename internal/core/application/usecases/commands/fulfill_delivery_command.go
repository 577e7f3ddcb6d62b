package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrFulfillDeliveryCommandIsNotConstructed is returned when a
// FulfillDeliveryCommand was not created via its constructor.
var ErrFulfillDeliveryCommandIsNotConstructed = errors.New(
	"FulfillDeliveryCommand must be created via NewFulfillDeliveryCommand constructor",
)

// FulfillDeliveryCommand represents a request to release a fulfilled
// delivery from its courier's workload. Issued by the fulfilled-event
// consumer, so it may arrive more than once for the same delivery.
type FulfillDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewFulfillDeliveryCommand creates a command to fulfill the given delivery.
func NewFulfillDeliveryCommand(deliveryID kernel.UUID) (FulfillDeliveryCommand, error) {
	cmd := FulfillDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setDeliveryID(deliveryID); err != nil {
		return FulfillDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FulfillDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrFulfillDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the fulfilled delivery's identifier.
func (c FulfillDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

func (c *FulfillDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}
