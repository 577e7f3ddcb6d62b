package delivery

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// Event type tags. Integration events carry these tags on the wire so the
// consumer side can route them through its subscription registry.
const (
	DeliveryPlacedEventName    = "delivery.placed"
	DeliveryPickedUpEventName  = "delivery.picked_up"
	DeliveryFulfilledEventName = "delivery.fulfilled"
)

// DomainEvent is a fact raised by the Delivery aggregate during a unit of
// work. Events are collected on the aggregate and published as integration
// events after the owning transaction commits, keyed by the delivery id to
// preserve per-delivery ordering.
type DomainEvent interface {
	// EventName returns the event type tag used for routing.
	EventName() string

	// DeliveryID returns the id of the delivery the event is about.
	DeliveryID() kernel.UUID

	// OccurredAt returns when the transition happened.
	OccurredAt() time.Time
}

// DeliveryPlacedEvent signals that a delivery was placed and now awaits
// courier assignment. Consumed by the courier-management service's dispatcher.
type DeliveryPlacedEvent struct {
	deliveryID kernel.UUID
	occurredAt time.Time
}

// NewDeliveryPlacedEvent creates a DeliveryPlacedEvent for the given delivery.
func NewDeliveryPlacedEvent(deliveryID kernel.UUID, occurredAt time.Time) DeliveryPlacedEvent {
	return DeliveryPlacedEvent{deliveryID: deliveryID, occurredAt: occurredAt}
}

// EventName returns the event type tag.
func (e DeliveryPlacedEvent) EventName() string { return DeliveryPlacedEventName }

// DeliveryID returns the subject delivery id.
func (e DeliveryPlacedEvent) DeliveryID() kernel.UUID { return e.deliveryID }

// OccurredAt returns the transition timestamp.
func (e DeliveryPlacedEvent) OccurredAt() time.Time { return e.occurredAt }

// DeliveryPickedUpEvent signals that a courier collected the delivery.
// Published for observability; no consumer acts on it in this core.
type DeliveryPickedUpEvent struct {
	deliveryID kernel.UUID
	courierID  kernel.UUID
	occurredAt time.Time
}

// NewDeliveryPickedUpEvent creates a DeliveryPickedUpEvent for the given delivery and courier.
func NewDeliveryPickedUpEvent(deliveryID, courierID kernel.UUID, occurredAt time.Time) DeliveryPickedUpEvent {
	return DeliveryPickedUpEvent{deliveryID: deliveryID, courierID: courierID, occurredAt: occurredAt}
}

// EventName returns the event type tag.
func (e DeliveryPickedUpEvent) EventName() string { return DeliveryPickedUpEventName }

// DeliveryID returns the subject delivery id.
func (e DeliveryPickedUpEvent) DeliveryID() kernel.UUID { return e.deliveryID }

// CourierID returns the courier that picked the delivery up.
func (e DeliveryPickedUpEvent) CourierID() kernel.UUID { return e.courierID }

// OccurredAt returns the transition timestamp.
func (e DeliveryPickedUpEvent) OccurredAt() time.Time { return e.occurredAt }

// DeliveryFulfilledEvent signals that the delivery reached its recipient.
// Consumed by the courier-management service to free the courier's workload.
type DeliveryFulfilledEvent struct {
	deliveryID kernel.UUID
	occurredAt time.Time
}

// NewDeliveryFulfilledEvent creates a DeliveryFulfilledEvent for the given delivery.
func NewDeliveryFulfilledEvent(deliveryID kernel.UUID, occurredAt time.Time) DeliveryFulfilledEvent {
	return DeliveryFulfilledEvent{deliveryID: deliveryID, occurredAt: occurredAt}
}

// EventName returns the event type tag.
func (e DeliveryFulfilledEvent) EventName() string { return DeliveryFulfilledEventName }

// DeliveryID returns the subject delivery id.
func (e DeliveryFulfilledEvent) DeliveryID() kernel.UUID { return e.deliveryID }

// OccurredAt returns the transition timestamp.
func (e DeliveryFulfilledEvent) OccurredAt() time.Time { return e.occurredAt }
