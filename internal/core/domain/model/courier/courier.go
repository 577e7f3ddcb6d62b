package courier

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to register a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or RestoreCourier")
	// ErrDeliveryAlreadyAssigned is returned when a delivery id is assigned to the courier twice.
	ErrDeliveryAlreadyAssigned = errors.New("delivery is already assigned to this courier")
)

// Courier is the aggregate root of the courier-management context. It tracks
// the courier's pending workload and the fairness clock used by the
// dispatcher to pick the next courier.
//
// Business rules:
//   - The fairness clock starts at registration time, so new couriers rank
//     first for assignment.
//   - Assigning a delivery the courier already holds is rejected.
//   - Fulfilling a delivery the courier does not hold fails with
//     AssignmentNotFoundError and mutates nothing; this is the idempotency
//     guard against duplicate completion events.
//   - Fulfillment advances the fairness clock to the current time, sending
//     the courier to the back of the assignment queue.
type Courier struct {
	id                kernel.UUID
	name              string
	pendingDeliveries []kernel.UUID
	lastFulfilledAt   time.Time
	version           int

	guard guard.ConstructorGuard
}

// NewCourier registers a new Courier with an empty workload.
// The fairness clock is initialized to the current time.
func NewCourier(id kernel.UUID, name string) (*Courier, error) {
	c := &Courier{
		lastFulfilledAt: time.Now().UTC(),
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage,
// including its pending workload, fairness clock, and record version.
func RestoreCourier(
	id kernel.UUID,
	name string,
	pendingDeliveries []kernel.UUID,
	lastFulfilledAt time.Time,
	version int,
) (*Courier, error) {
	c := &Courier{
		lastFulfilledAt: lastFulfilledAt,
		version:         version,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setPendingDeliveries(pendingDeliveries),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks that the Courier was created via one of the constructors.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares two couriers by their unique identifiers.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's name.
func (c *Courier) Name() string {
	return c.name
}

// LastFulfilledAt returns the fairness clock: the time of the courier's last
// fulfilled delivery, or the registration time if none has been fulfilled yet.
func (c *Courier) LastFulfilledAt() time.Time {
	return c.lastFulfilledAt
}

// Version returns the persistence record version used for conditional writes.
func (c *Courier) Version() int {
	return c.version
}

// PendingDeliveries returns the ids of deliveries assigned to this courier
// and not yet fulfilled. The returned slice is a copy.
func (c *Courier) PendingDeliveries() []kernel.UUID {
	out := make([]kernel.UUID, len(c.pendingDeliveries))
	copy(out, c.pendingDeliveries)
	return out
}

// Holds reports whether the delivery is currently in this courier's workload.
func (c *Courier) Holds(deliveryID kernel.UUID) bool {
	for _, id := range c.pendingDeliveries {
		if id.IsEqual(deliveryID) {
			return true
		}
	}
	return false
}

// Rename updates the courier's display name. The workload and fairness
// clock are untouched.
func (c *Courier) Rename(name string) error {
	return c.setName(name)
}

// Assign adds the delivery to the courier's pending workload.
// Assigning a delivery the courier already holds is rejected, so a replayed
// assignment event cannot double-count the workload.
func (c *Courier) Assign(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	if c.Holds(deliveryID) {
		return ErrDeliveryAlreadyAssigned
	}

	c.pendingDeliveries = append(c.pendingDeliveries, deliveryID)
	return nil
}

// Fulfill removes the delivery from the pending workload and advances the
// fairness clock to the current time. Returns AssignmentNotFoundError if the
// courier does not hold the delivery; the aggregate is left unchanged.
func (c *Courier) Fulfill(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	for i, id := range c.pendingDeliveries {
		if id.IsEqual(deliveryID) {
			c.pendingDeliveries = append(c.pendingDeliveries[:i], c.pendingDeliveries[i+1:]...)
			c.lastFulfilledAt = time.Now().UTC()
			return nil
		}
	}

	return errs.NewAssignmentNotFoundError(deliveryID.String())
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setPendingDeliveries(deliveries []kernel.UUID) error {
	for _, id := range deliveries {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.pendingDeliveries = make([]kernel.UUID, len(deliveries))
	copy(c.pendingDeliveries, deliveries)
	return nil
}
