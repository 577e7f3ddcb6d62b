package services

import (
	"strings"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// CourierDispatcher is a domain service that assigns incoming deliveries to
// couriers fairly and records fulfillment.
//
// Selection is greedy least-recently-active: the courier with the earliest
// fairness clock wins, with ties broken by courier id ascending for
// determinism. A courier that just finished a job carries the newest clock
// and therefore sorts to the back of the queue.
type CourierDispatcher struct{}

// NewCourierDispatcher creates a new CourierDispatcher instance.
func NewCourierDispatcher() CourierDispatcher {
	return CourierDispatcher{}
}

// Assign selects the courier with the earliest fairness clock among the
// given population and adds the delivery to its workload. Returns the
// mutated courier so the caller can persist it.
//
// Returns NoCourierAvailableError when the population is empty.
func (d CourierDispatcher) Assign(deliveryID kernel.UUID, couriers []*courier.Courier) (*courier.Courier, error) {
	if err := deliveryID.Validate(); err != nil {
		return nil, err
	}

	if len(couriers) == 0 {
		return nil, errs.NewNoCourierAvailableError(deliveryID.String())
	}

	selected, err := d.selectLeastRecentlyActive(couriers)
	if err != nil {
		return nil, err
	}

	if err = selected.Assign(deliveryID); err != nil {
		return nil, err
	}

	return selected, nil
}

// Fulfill finds the courier currently holding the delivery, removes it from
// the workload, and advances that courier's fairness clock. Returns the
// mutated courier so the caller can persist it.
//
// Returns AssignmentNotFoundError when no courier holds the delivery. This is
// the idempotency guard against duplicate completion events: a replay fails
// cleanly rather than corrupting another courier's state.
func (d CourierDispatcher) Fulfill(deliveryID kernel.UUID, couriers []*courier.Courier) (*courier.Courier, error) {
	if err := deliveryID.Validate(); err != nil {
		return nil, err
	}

	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}

		if !c.Holds(deliveryID) {
			continue
		}

		if err := c.Fulfill(deliveryID); err != nil {
			return nil, err
		}
		return c, nil
	}

	return nil, errs.NewAssignmentNotFoundError(deliveryID.String())
}

// selectLeastRecentlyActive returns the courier with the earliest fairness
// clock, breaking ties by courier id ascending.
func (d CourierDispatcher) selectLeastRecentlyActive(couriers []*courier.Courier) (*courier.Courier, error) {
	var selected *courier.Courier

	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}

		if selected == nil || beats(c, selected) {
			selected = c
		}
	}

	return selected, nil
}

// beats reports whether candidate ranks before current in the fairness order.
func beats(candidate, current *courier.Courier) bool {
	if candidate.LastFulfilledAt().Before(current.LastFulfilledAt()) {
		return true
	}
	if current.LastFulfilledAt().Before(candidate.LastFulfilledAt()) {
		return false
	}
	return strings.Compare(candidate.ID().String(), current.ID().String()) < 0
}
