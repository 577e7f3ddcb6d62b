package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/pkg/errs"

	"github.com/IBM/sarama"
)

// SyncPublisher publishes delivery domain events to Kafka using a
// synchronous producer: Publish does not return until the broker has
// acknowledged every message, so a committed transaction is never followed
// by a silently dropped event.
type SyncPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// NewSyncPublisher creates a publisher connected to the given brokers.
// Messages require acknowledgment from all in-sync replicas.
func NewSyncPublisher(brokers []string, topic string, logger *slog.Logger) (*SyncPublisher, error) {
	if len(brokers) == 0 {
		return nil, errs.NewValueIsRequiredError("brokers")
	}
	if topic == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}

	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}

	return &SyncPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger.With("component", "kafka_publisher"),
	}, nil
}

// Publish sends the given events in order, each keyed by its delivery id so
// consumers see events about one delivery in the order they were raised.
func (p *SyncPublisher) Publish(ctx context.Context, events ...delivery.DomainEvent) error {
	for _, event := range events {
		if err := ctx.Err(); err != nil {
			return err
		}

		envelope := NewIntegrationEvent(event)
		payload, err := json.Marshal(envelope)
		if err != nil {
			return err
		}

		msg := &sarama.ProducerMessage{
			Topic: p.topic,
			Key:   sarama.StringEncoder(envelope.DeliveryID),
			Value: sarama.ByteEncoder(payload),
		}

		partition, offset, err := p.producer.SendMessage(msg)
		if err != nil {
			return err
		}

		p.logger.InfoContext(ctx, "event published",
			"eventType", envelope.EventType,
			"deliveryId", envelope.DeliveryID,
			"partition", partition,
			"offset", offset,
		)
	}

	return nil
}

// Close shuts down the underlying producer.
func (p *SyncPublisher) Close() error {
	return p.producer.Close()
}
