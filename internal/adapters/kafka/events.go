// Package kafka provides the messaging transport between the
// delivery-tracking and courier-management services. Delivery lifecycle
// events are published to a single topic keyed by the delivery id, which
// gives per-delivery ordering while the topic itself stays partitioned.
// Delivery is at-least-once; consumers tolerate duplicates.
package kafka

import (
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// DefaultTopic is the delivery lifecycle events topic.
const DefaultTopic = "deliveries.v1.events"

// IntegrationEvent is the wire envelope for delivery lifecycle events.
// EventType carries the routing tag; CourierID is present only on pickup
// events.
type IntegrationEvent struct {
	EventType  string    `json:"eventType"`
	DeliveryID string    `json:"deliveryId"`
	CourierID  *string   `json:"courierId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewIntegrationEvent converts a domain event into its wire envelope.
func NewIntegrationEvent(event delivery.DomainEvent) IntegrationEvent {
	envelope := IntegrationEvent{
		EventType:  event.EventName(),
		DeliveryID: event.DeliveryID().String(),
		OccurredAt: event.OccurredAt(),
	}

	if pickedUp, ok := event.(delivery.DeliveryPickedUpEvent); ok {
		courierID := pickedUp.CourierID().String()
		envelope.CourierID = &courierID
	}

	return envelope
}

// Validate checks the envelope's structural invariants.
func (e IntegrationEvent) Validate() error {
	if e.EventType == "" {
		return errs.NewValueIsRequiredError("eventType")
	}
	if _, err := kernel.UUIDFromString(e.DeliveryID); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("deliveryId", err)
	}
	return nil
}

// ParseDeliveryID returns the subject delivery id of a validated envelope.
func (e IntegrationEvent) ParseDeliveryID() (kernel.UUID, error) {
	return kernel.UUIDFromString(e.DeliveryID)
}
