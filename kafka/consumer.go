package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/warungio/stockpilot/pkg/logger"
)

// EventHandler handles a decoded sale event
type EventHandler func(ctx context.Context, event SaleRecordedEvent) error

// Consumer wraps a Kafka consumer group
type Consumer struct {
	consumer      sarama.ConsumerGroup
	groupID       string
	topics        []string
	handlers      map[string]EventHandler
	handlersMutex sync.RWMutex
}

// NewConsumer creates a new Kafka consumer group
func NewConsumer(brokers []string, groupID string, topics []string) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V2_6_0_0
	config.Consumer.Group.Rebalance.Strategy = sarama.NewBalanceStrategyRoundRobin()
	config.Consumer.Offsets.Initial = sarama.OffsetNewest
	config.Consumer.Return.Errors = true

	consumer, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka consumer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Str("group_id", groupID).
		Strs("topics", topics).
		Msg("Kafka consumer initialized")

	return &Consumer{
		consumer: consumer,
		groupID:  groupID,
		topics:   topics,
		handlers: make(map[string]EventHandler),
	}, nil
}

// RegisterHandler registers an event handler for a specific event type
func (c *Consumer) RegisterHandler(eventType string, handler EventHandler) {
	c.handlersMutex.Lock()
	defer c.handlersMutex.Unlock()
	c.handlers[eventType] = handler
}

// Start starts consuming messages until the context is cancelled
func (c *Consumer) Start(ctx context.Context) error {
	handler := &consumerGroupHandler{consumer: c}

	go func() {
		for {
			select {
			case <-ctx.Done():
				logger.Logger.Info().Msg("Consumer context cancelled, stopping")
				return
			default:
				if err := c.consumer.Consume(ctx, c.topics, handler); err != nil {
					logger.Logger.Error().Err(err).Msg("Error from consumer")
				}
			}
		}
	}()

	go func() {
		for err := range c.consumer.Errors() {
			logger.Logger.Error().Err(err).Msg("Consumer error")
		}
	}()

	logger.Logger.Info().
		Strs("topics", c.topics).
		Str("group_id", c.groupID).
		Msg("Kafka consumer started")

	return nil
}

// Close closes the Kafka consumer
func (c *Consumer) Close() error {
	if c.consumer != nil {
		return c.consumer.Close()
	}
	return nil
}

// consumerGroupHandler implements sarama.ConsumerGroupHandler
type consumerGroupHandler struct {
	consumer *Consumer
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		h.handleMessage(session.Context(), message)
		session.MarkMessage(message, "")
	}
	return nil
}

func (h *consumerGroupHandler) handleMessage(ctx context.Context, message *sarama.ConsumerMessage) {
	// Continue the trace started by the publisher
	carrier := propagation.MapCarrier{}
	for _, header := range message.Headers {
		key := string(header.Key)
		if key == "traceparent" || key == "tracestate" {
			carrier[key] = string(header.Value)
		}
	}
	ctx = otel.GetTextMapPropagator().Extract(ctx, carrier)

	tracer := otel.Tracer("kafka-consumer")
	ctx, span := tracer.Start(ctx, "kafka.consume.sale_recorded",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.source", message.Topic),
			attribute.Int("messaging.kafka.partition", int(message.Partition)),
			attribute.Int64("messaging.kafka.offset", message.Offset),
		),
	)
	defer span.End()

	eventType := ""
	for _, header := range message.Headers {
		if string(header.Key) == "event_type" {
			eventType = string(header.Value)
		}
	}
	if eventType == "" {
		span.SetStatus(codes.Error, "Message without event_type header")
		logger.Logger.Warn().Msg("Message without event_type header")
		return
	}
	span.SetAttributes(attribute.String("event.type", eventType))

	h.consumer.handlersMutex.RLock()
	handler, exists := h.consumer.handlers[eventType]
	h.consumer.handlersMutex.RUnlock()
	if !exists {
		logger.Logger.Warn().
			Str("event_type", eventType).
			Msg("No handler registered for event type")
		return
	}

	switch eventType {
	case EventTypeSaleRecorded:
		var event SaleRecordedEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to unmarshal event")
			logger.Logger.Error().
				Err(err).
				Str("event_type", eventType).
				Msg("Failed to unmarshal event")
			return
		}

		span.SetAttributes(
			attribute.Int64("sale.id", int64(event.SaleID)),
			attribute.Int64("goods.id", int64(event.GoodsID)),
		)

		if err := handler(ctx, event); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to handle event")
			logger.Logger.Error().
				Err(err).
				Str("event_id", event.EventID).
				Msg("Failed to handle event")
			return
		}
		span.SetStatus(codes.Ok, "Event handled")

	default:
		logger.Logger.Warn().
			Str("event_type", eventType).
			Msg("Unknown event type")
	}
}
