package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrPickUpDeliveryCommandIsNotConstructed is returned when a
// PickUpDeliveryCommand was not created via its constructor.
var ErrPickUpDeliveryCommandIsNotConstructed = errors.New(
	"PickUpDeliveryCommand must be created via NewPickUpDeliveryCommand constructor",
)

// PickUpDeliveryCommand represents a request to record that a courier
// collected the delivery.
type PickUpDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	courierID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewPickUpDeliveryCommand creates a command for the given delivery and courier.
func NewPickUpDeliveryCommand(deliveryID, courierID kernel.UUID) (PickUpDeliveryCommand, error) {
	cmd := PickUpDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setCourierID(courierID),
	); err != nil {
		return PickUpDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PickUpDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrPickUpDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the target delivery's identifier.
func (c PickUpDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// CourierID returns the collecting courier's identifier.
func (c PickUpDeliveryCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *PickUpDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *PickUpDeliveryCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}
