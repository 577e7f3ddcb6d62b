package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrPlaceDeliveryCommandIsNotConstructed is returned when a
// PlaceDeliveryCommand was not created via its constructor.
var ErrPlaceDeliveryCommandIsNotConstructed = errors.New(
	"PlaceDeliveryCommand must be created via NewPlaceDeliveryCommand constructor",
)

// PlaceDeliveryCommand represents a request to place a drafted delivery,
// making it visible to couriers and starting the dispatch process.
type PlaceDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewPlaceDeliveryCommand creates a command to place the given delivery.
func NewPlaceDeliveryCommand(deliveryID kernel.UUID) (PlaceDeliveryCommand, error) {
	cmd := PlaceDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setDeliveryID(deliveryID); err != nil {
		return PlaceDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrPlaceDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the target delivery's identifier.
func (c PlaceDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

func (c *PlaceDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}
