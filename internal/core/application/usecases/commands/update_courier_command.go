package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrUpdateCourierCommandIsNotConstructed is returned when an
// UpdateCourierCommand was not created via its constructor.
var ErrUpdateCourierCommandIsNotConstructed = errors.New(
	"UpdateCourierCommand must be created via NewUpdateCourierCommand constructor",
)

// UpdateCourierCommand represents a request to update a registered courier's
// profile. Only the display name is mutable; the workload and fairness clock
// belong to the dispatch flow.
type UpdateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	name      string

	guard guard.ConstructorGuard
}

// NewUpdateCourierCommand creates a command to update a courier's profile.
func NewUpdateCourierCommand(courierID kernel.UUID, name string) (UpdateCourierCommand, error) {
	cmd := UpdateCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCourierID(courierID),
		cmd.setName(name),
	); err != nil {
		return UpdateCourierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCourierCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCourierCommandIsNotConstructed)
}

// CourierID returns the courier's identifier.
func (c UpdateCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Name returns the courier's new display name.
func (c UpdateCourierCommand) Name() string {
	return c.name
}

func (c *UpdateCourierCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *UpdateCourierCommand) setName(name string) error {
	if name == "" {
		return ErrCourierNameIsRequired
	}

	c.name = name
	return nil
}
