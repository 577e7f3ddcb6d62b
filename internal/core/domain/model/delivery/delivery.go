package delivery

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
// created through New or RestoreDelivery.
var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via New or RestoreDelivery")

// Delivery is the aggregate root of the delivery-tracking context. It owns
// the preparation details, the lifecycle status, and the transition
// timestamps, and it enforces the lifecycle state machine.
//
// Invariants:
//   - Status strictly advances through Draft -> WaitingForCourier ->
//     PickedUp -> Fulfilled; no transition skips a state or reverses.
//   - placedAt, pickedUpAt, and fulfilledAt are each set exactly once, at the
//     corresponding transition, and never cleared.
//   - courierID is set only at pickup and never reassigned.
//   - A failed operation is a strict no-op: the aggregate is left exactly as
//     it was before the call.
//
// A Delivery is never deleted; fulfilled deliveries remain as an audit trail.
type Delivery struct {
	id                 kernel.UUID
	status             Status
	preparationDetails *PreparationDetails
	courierID          *kernel.UUID

	placedAt    *time.Time
	pickedUpAt  *time.Time
	fulfilledAt *time.Time

	events []DomainEvent
	guard  guard.ConstructorGuard
}

// New produces a drafted Delivery: Draft status, freshly allocated id, no
// preparation details. It has no side effects beyond allocation and raises
// no events.
func New() *Delivery {
	return &Delivery{
		id:     kernel.NewUUID(),
		status: Draft,
		guard:  guard.NewConstructorGuard(),
	}
}

// RestoreDelivery reconstructs a Delivery aggregate from persistent storage.
// Unlike New it accepts the full persisted state, including timestamps and
// the assigned courier, and validates its consistency.
func RestoreDelivery(
	id kernel.UUID,
	status Status,
	details *PreparationDetails,
	courierID *kernel.UUID,
	placedAt, pickedUpAt, fulfilledAt *time.Time,
) (*Delivery, error) {
	d := &Delivery{
		status:             status,
		preparationDetails: details,
		courierID:          courierID,
		placedAt:           placedAt,
		pickedUpAt:         pickedUpAt,
		fulfilledAt:        fulfilledAt,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		status.Validate(),
		d.validateRestoredState(),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// validateRestoredState checks the cross-field consistency of persisted data.
func (d *Delivery) validateRestoredState() error {
	if d.preparationDetails != nil {
		if err := d.preparationDetails.Validate(); err != nil {
			return err
		}
	}

	if d.courierID != nil {
		if err := d.courierID.Validate(); err != nil {
			return err
		}
	}

	switch d.status {
	case WaitingForCourier:
		if d.placedAt == nil {
			return errs.NewValueIsRequiredError("placedAt")
		}
	case PickedUp:
		if d.placedAt == nil || d.pickedUpAt == nil {
			return errs.NewValueIsRequiredError("placedAt and pickedUpAt")
		}
		if d.courierID == nil {
			return errs.NewValueIsRequiredError("courierId")
		}
	case Fulfilled:
		if d.placedAt == nil || d.pickedUpAt == nil || d.fulfilledAt == nil {
			return errs.NewValueIsRequiredError("placedAt, pickedUpAt and fulfilledAt")
		}
		if d.courierID == nil {
			return errs.NewValueIsRequiredError("courierId")
		}
	}

	return nil
}

// Validate ensures the Delivery was constructed through New or RestoreDelivery.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

// IsEqual compares two deliveries by their unique identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier, assigned at draft time.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// Status returns the current lifecycle status.
func (d *Delivery) Status() Status {
	return d.status
}

// PreparationDetails returns the current details, or nil while unprepared.
func (d *Delivery) PreparationDetails() *PreparationDetails {
	return d.preparationDetails
}

// CourierID returns the assigned courier's id. It is nil in Draft and
// WaitingForCourier; the absence during the assignment window is a designed
// state exposed to callers, not an error.
func (d *Delivery) CourierID() *kernel.UUID {
	return d.courierID
}

// PlacedAt returns when the delivery was placed, or nil before placement.
func (d *Delivery) PlacedAt() *time.Time {
	return d.placedAt
}

// PickedUpAt returns when the delivery was picked up, or nil before pickup.
func (d *Delivery) PickedUpAt() *time.Time {
	return d.pickedUpAt
}

// FulfilledAt returns when the delivery was fulfilled, or nil before completion.
func (d *Delivery) FulfilledAt() *time.Time {
	return d.fulfilledAt
}

// EditPreparationDetails replaces the preparation details wholesale.
// Allowed only in Draft status; there is no partial merge.
func (d *Delivery) EditPreparationDetails(details PreparationDetails) error {
	if d.status != Draft {
		return errs.NewInvalidStateError("edit preparation details", d.status.String())
	}

	if err := details.Validate(); err != nil {
		return err
	}

	d.preparationDetails = &details
	return nil
}

// Place transitions the delivery from Draft to WaitingForCourier, sets
// placedAt, and raises a DeliveryPlacedEvent. It requires preparation
// details to be present. A failed call mutates nothing.
func (d *Delivery) Place() error {
	if d.status != Draft {
		return errs.NewInvalidStateError("place", d.status.String())
	}

	if d.preparationDetails == nil {
		return errs.NewValueIsRequiredError("preparationDetails")
	}

	now := time.Now().UTC()
	d.status = WaitingForCourier
	d.placedAt = &now
	d.raise(NewDeliveryPlacedEvent(d.id, now))
	return nil
}

// PickUp transitions the delivery from WaitingForCourier to PickedUp, stores
// the courier id, sets pickedUpAt, and raises a DeliveryPickedUpEvent.
func (d *Delivery) PickUp(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	if d.status != WaitingForCourier {
		return errs.NewInvalidStateError("pick up", d.status.String())
	}

	now := time.Now().UTC()
	d.status = PickedUp
	d.courierID = &courierID
	d.pickedUpAt = &now
	d.raise(NewDeliveryPickedUpEvent(d.id, courierID, now))
	return nil
}

// Complete transitions the delivery from PickedUp to Fulfilled, sets
// fulfilledAt, and raises a DeliveryFulfilledEvent.
func (d *Delivery) Complete() error {
	if d.status != PickedUp {
		return errs.NewInvalidStateError("complete", d.status.String())
	}

	now := time.Now().UTC()
	d.status = Fulfilled
	d.fulfilledAt = &now
	d.raise(NewDeliveryFulfilledEvent(d.id, now))
	return nil
}

// DomainEvents returns the events raised since the last clear.
// The returned slice is a copy to prevent external modification.
func (d *Delivery) DomainEvents() []DomainEvent {
	out := make([]DomainEvent, len(d.events))
	copy(out, d.events)
	return out
}

// ClearDomainEvents discards the collected events. Called by the unit of
// work after the events have been handed to the publisher.
func (d *Delivery) ClearDomainEvents() {
	d.events = nil
}

func (d *Delivery) raise(event DomainEvent) {
	d.events = append(d.events, event)
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}
