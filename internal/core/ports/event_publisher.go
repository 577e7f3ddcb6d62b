package ports

import (
	"context"

	"dispatch/internal/core/domain/model/delivery"
)

// EventPublisher publishes delivery domain events to the message broker as
// integration events. Implementations must key messages by the delivery id
// so that events about the same delivery are consumed in order, and must not
// return until the broker has acknowledged the write.
type EventPublisher interface {
	// Publish sends the given events in order. Delivery is at-least-once;
	// consumers are expected to tolerate duplicates.
	Publish(ctx context.Context, events ...delivery.DomainEvent) error
}
