package kafka

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRegistry_RoutesByEventType(t *testing.T) {
	registry := NewRegistry()

	var handled []string
	registry.Register(delivery.DeliveryPlacedEventName, func(context.Context, IntegrationEvent) error {
		handled = append(handled, delivery.DeliveryPlacedEventName)
		return nil
	})

	handler, ok := registry.handlerFor(delivery.DeliveryPlacedEventName)
	require.True(t, ok)
	require.NoError(t, handler(t.Context(), IntegrationEvent{}))
	assert.Equal(t, []string{delivery.DeliveryPlacedEventName}, handled)

	_, ok = registry.handlerFor(delivery.DeliveryPickedUpEventName)
	assert.False(t, ok, "unregistered event types must not route")
}

func TestRegistry_LastRegistrationWins(t *testing.T) {
	registry := NewRegistry()

	registry.Register("tag", func(context.Context, IntegrationEvent) error {
		t.Fatal("replaced handler must not run")
		return nil
	})
	registry.Register("tag", func(context.Context, IntegrationEvent) error {
		return nil
	})

	handler, ok := registry.handlerFor("tag")
	require.True(t, ok)
	assert.NoError(t, handler(t.Context(), IntegrationEvent{}))
}

func TestDeliveryEventsHandler_RegisterOn_SkipsPickupEvents(t *testing.T) {
	registry := NewRegistry()

	handler := NewDeliveryEventsHandler(
		commands.AssignDeliveryCommandHandler{},
		commands.FulfillDeliveryCommandHandler{},
		nil,
		discardLogger(),
	)
	handler.RegisterOn(registry)

	_, ok := registry.handlerFor(delivery.DeliveryPlacedEventName)
	assert.True(t, ok)
	_, ok = registry.handlerFor(delivery.DeliveryFulfilledEventName)
	assert.True(t, ok)
	_, ok = registry.handlerFor(delivery.DeliveryPickedUpEventName)
	assert.False(t, ok, "pickup events carry no courier-side action")
}

func TestSyncPublisher_Publish_KeysMessagesByDeliveryID(t *testing.T) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, cfg)

	aggregate := delivery.New()
	publisher := &SyncPublisher{
		producer: producer,
		topic:    DefaultTopic,
		logger:   discardLogger(),
	}

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, err := msg.Key.Encode()
		require.NoError(t, err)
		assert.Equal(t, aggregate.ID().String(), string(key))

		value, err := msg.Value.Encode()
		require.NoError(t, err)

		var envelope IntegrationEvent
		require.NoError(t, json.Unmarshal(value, &envelope))
		assert.Equal(t, delivery.DeliveryPlacedEventName, envelope.EventType)
		assert.Equal(t, DefaultTopic, msg.Topic)
		return nil
	})

	event := delivery.NewDeliveryPlacedEvent(aggregate.ID(), time.Now().UTC())
	err := publisher.Publish(t.Context(), event)

	require.NoError(t, err)
	require.NoError(t, producer.Close())
}

func TestSyncPublisher_Publish_StopsOnCancelledContext(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)

	publisher := &SyncPublisher{
		producer: producer,
		topic:    DefaultTopic,
		logger:   discardLogger(),
	}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	event := delivery.NewDeliveryPlacedEvent(kernel.NewUUID(), time.Now().UTC())
	err := publisher.Publish(ctx, event)

	require.ErrorIs(t, err, context.Canceled)
	require.NoError(t, producer.Close())
}
