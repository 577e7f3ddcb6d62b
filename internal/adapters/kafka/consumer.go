package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"dispatch/internal/pkg/errs"

	"github.com/IBM/sarama"
)

// HandlerFunc processes a single integration event. Returning a non-nil
// error leaves the message unacknowledged so the broker redelivers it;
// handlers translate benign duplicates into nil before returning.
type HandlerFunc func(ctx context.Context, event IntegrationEvent) error

// Registry routes integration events to handlers by their event type tag.
// Events with no registered handler are acknowledged and skipped, so adding
// new event types upstream does not wedge old consumers.
type Registry struct {
	handlers map[string]HandlerFunc
}

// NewRegistry creates an empty subscription registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]HandlerFunc)}
}

// Register binds a handler to an event type tag. The last registration for
// a tag wins.
func (r *Registry) Register(eventType string, handler HandlerFunc) {
	r.handlers[eventType] = handler
}

func (r *Registry) handlerFor(eventType string) (HandlerFunc, bool) {
	h, ok := r.handlers[eventType]
	return h, ok
}

// Consumer wraps a Sarama consumer group and dispatches delivery lifecycle
// events through a subscription registry. Offsets are committed only after
// the handler succeeds, giving at-least-once processing.
type Consumer struct {
	group    sarama.ConsumerGroup
	topic    string
	registry *Registry
	logger   *slog.Logger
}

// NewConsumer creates a consumer group member for the given topic. The
// consumer starts from the oldest offset so a fresh group processes the
// full event history.
func NewConsumer(brokers []string, groupID, topic string, registry *Registry, logger *slog.Logger) (*Consumer, error) {
	if len(brokers) == 0 {
		return nil, errs.NewValueIsRequiredError("brokers")
	}
	if groupID == "" {
		return nil, errs.NewValueIsRequiredError("groupID")
	}
	if topic == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}
	if registry == nil {
		return nil, errs.NewValueIsRequiredError("registry")
	}

	cfg := sarama.NewConfig()
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest

	group, err := sarama.NewConsumerGroup(brokers, groupID, cfg)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		group:    group,
		topic:    topic,
		registry: registry,
		logger:   logger.With("component", "kafka_consumer"),
	}, nil
}

// Run consumes until the context is cancelled. Rebalances restart the
// consume loop; transient group errors are logged and retried.
func (c *Consumer) Run(ctx context.Context) error {
	handler := &groupHandler{
		registry: c.registry,
		logger:   c.logger,
	}

	for {
		if err := c.group.Consume(ctx, []string{c.topic}, handler); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.ErrorContext(ctx, "consume error", "error", err)
			time.Sleep(time.Second)
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// Close shuts down the consumer group.
func (c *Consumer) Close() error {
	return c.group.Close()
}

type groupHandler struct {
	registry *Registry
	logger   *slog.Logger
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim processes one partition's messages sequentially. Malformed
// payloads and unknown event types are acknowledged and skipped; a handler
// failure aborts the claim so the message is redelivered.
func (h *groupHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		var event IntegrationEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			h.logger.Warn("malformed event payload", "error", err, "offset", msg.Offset)
			sess.MarkMessage(msg, "")
			continue
		}

		if err := event.Validate(); err != nil {
			h.logger.Warn("invalid event envelope", "error", err, "offset", msg.Offset)
			sess.MarkMessage(msg, "")
			continue
		}

		handler, ok := h.registry.handlerFor(event.EventType)
		if !ok {
			h.logger.Info("no handler for event type, skipping",
				"eventType", event.EventType,
				"deliveryId", event.DeliveryID,
			)
			sess.MarkMessage(msg, "")
			continue
		}

		if err := handler(sess.Context(), event); err != nil {
			h.logger.Error("event handling failed, leaving for redelivery",
				"eventType", event.EventType,
				"deliveryId", event.DeliveryID,
				"error", err,
			)
			return err
		}

		sess.MarkMessage(msg, "")
	}

	return nil
}
