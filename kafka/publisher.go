package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/medeu/storefront/pkg/logger"
)

// Publisher wraps Kafka producer
type Publisher struct {
	producer sarama.SyncProducer
	brokers  []string
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return &Publisher{
		producer: producer,
		brokers:  brokers,
	}, nil
}

// PublishFavouriteAdded publishes a favourite added event with tracing
func (p *Publisher) PublishFavouriteAdded(ctx context.Context, userID, productID uint) error {
	return p.publishFavourite(ctx, EventTypeFavouriteAdded, userID, productID)
}

// PublishFavouriteRemoved publishes a favourite removed event with tracing
func (p *Publisher) PublishFavouriteRemoved(ctx context.Context, userID, productID uint) error {
	return p.publishFavourite(ctx, EventTypeFavouriteRemoved, userID, productID)
}

func (p *Publisher) publishFavourite(ctx context.Context, eventType string, userID, productID uint) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish."+eventType,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", TopicFavouriteEvents),
			attribute.String("event.type", eventType),
			attribute.Int64("user.id", int64(userID)),
			attribute.Int64("product.id", int64(productID)),
		),
	)
	defer span.End()

	event := FavouriteEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		UserID:    userID,
		ProductID: productID,
		Timestamp: time.Now(),
	}
	span.SetAttributes(attribute.String("event.id", event.EventID))

	eventBytes, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Inject trace context into Kafka headers
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(eventType)},
		{Key: []byte("event_id"), Value: []byte(event.EventID)},
	}
	for key, value := range carrier {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte(key),
			Value: []byte(value),
		})
	}

	msg := &sarama.ProducerMessage{
		Topic:   TopicFavouriteEvents,
		Key:     sarama.StringEncoder(fmt.Sprintf("user_%d", userID)),
		Value:   sarama.ByteEncoder(eventBytes),
		Headers: headers,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		logger.Error(ctx).
			Err(err).
			Str("event_id", event.EventID).
			Msg("Failed to publish favourite event")
		return fmt.Errorf("failed to send message: %w", err)
	}

	span.SetAttributes(
		attribute.Int64("messaging.kafka.partition", int64(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)

	logger.Info(ctx).
		Str("event_id", event.EventID).
		Str("event_type", eventType).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Favourite event published")
	return nil
}

// Close shuts down the producer
func (p *Publisher) Close() error {
	return p.producer.Close()
}
