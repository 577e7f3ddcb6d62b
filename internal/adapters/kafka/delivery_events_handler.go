package kafka

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// assignmentRetryEnqueuer accepts deliveries that could not be assigned
// because the fleet was empty, for a later retry.
type assignmentRetryEnqueuer interface {
	Enqueue(deliveryID kernel.UUID)
}

// DeliveryEventsHandler is the courier-management side of the event stream.
// It turns placed events into assignment commands and fulfilled events into
// workload releases, absorbing the duplicates an at-least-once stream
// produces:
//
//   - a duplicate placed event finds the delivery already assigned and is
//     acknowledged without changes;
//   - a duplicate fulfilled event fails with AssignmentNotFoundError, which
//     is logged and acknowledged rather than redelivered;
//   - an empty fleet parks the delivery on the retry queue instead of
//     spinning on broker redelivery.
type DeliveryEventsHandler struct {
	assign     commands.AssignDeliveryCommandHandler
	fulfill    commands.FulfillDeliveryCommandHandler
	retryQueue assignmentRetryEnqueuer
	logger     *slog.Logger
}

// NewDeliveryEventsHandler creates the courier-side event handler.
func NewDeliveryEventsHandler(
	assign commands.AssignDeliveryCommandHandler,
	fulfill commands.FulfillDeliveryCommandHandler,
	retryQueue assignmentRetryEnqueuer,
	logger *slog.Logger,
) *DeliveryEventsHandler {
	return &DeliveryEventsHandler{
		assign:     assign,
		fulfill:    fulfill,
		retryQueue: retryQueue,
		logger:     logger.With("component", "delivery_events_handler"),
	}
}

// RegisterOn binds the handler's subscriptions to the given registry.
// Pickup events carry no courier-side action and are left unregistered.
func (h *DeliveryEventsHandler) RegisterOn(registry *Registry) {
	registry.Register(delivery.DeliveryPlacedEventName, h.HandlePlaced)
	registry.Register(delivery.DeliveryFulfilledEventName, h.HandleFulfilled)
}

// HandlePlaced assigns the placed delivery to a courier.
func (h *DeliveryEventsHandler) HandlePlaced(ctx context.Context, event IntegrationEvent) error {
	deliveryID, err := event.ParseDeliveryID()
	if err != nil {
		return err
	}

	cmd, err := commands.NewAssignDeliveryCommand(deliveryID)
	if err != nil {
		return err
	}

	err = h.assign.Handle(ctx, cmd)
	if errors.Is(err, errs.ErrNoCourierAvailable) {
		h.logger.WarnContext(ctx, "no courier available, queued for retry",
			"deliveryId", event.DeliveryID,
		)
		h.retryQueue.Enqueue(deliveryID)
		return nil
	}

	return err
}

// HandleFulfilled releases the fulfilled delivery from its courier.
func (h *DeliveryEventsHandler) HandleFulfilled(ctx context.Context, event IntegrationEvent) error {
	deliveryID, err := event.ParseDeliveryID()
	if err != nil {
		return err
	}

	cmd, err := commands.NewFulfillDeliveryCommand(deliveryID)
	if err != nil {
		return err
	}

	err = h.fulfill.Handle(ctx, cmd)
	if errors.Is(err, errs.ErrAssignmentNotFound) {
		h.logger.WarnContext(ctx, "delivery not assigned to any courier, treating as duplicate",
			"deliveryId", event.DeliveryID,
		)
		return nil
	}

	return err
}
