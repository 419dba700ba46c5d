// Package kafka publishes order integration events to the notification topic.
package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"storefront/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

const (
	headerEventType = "event_type"
	headerEventID   = "event_id"
	headerVersion   = "version"
	payloadVersion  = "1.0"
)

// messageWriter is the part of kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher implements ports.EventPublisher on top of a kafka-go writer. Messages
// are keyed by order number so that events of one order stay in one partition.
type Publisher struct {
	writer messageWriter
	topic  string
	logger *slog.Logger
}

// NewPublisher creates a publisher that writes synchronously to topic and waits
// for all in-sync replicas.
func NewPublisher(brokers []string, topic string, logger *slog.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           10 * time.Second,
	}

	return newPublisher(writer, topic, logger)
}

func newPublisher(writer messageWriter, topic string, logger *slog.Logger) *Publisher {
	return &Publisher{
		writer: writer,
		topic:  topic,
		logger: logger.With("component", "kafka_publisher", "topic", topic),
	}
}

// Publish writes one event and returns once the broker acknowledged it.
func (p *Publisher) Publish(ctx context.Context, event ports.IntegrationEvent) error {
	msg := kafka.Message{
		Key:   []byte(event.Key),
		Value: event.Payload,
		Headers: []kafka.Header{
			{Key: headerEventType, Value: []byte(event.Name)},
			{Key: headerEventID, Value: []byte(event.ID)},
			{Key: headerVersion, Value: []byte(payloadVersion)},
		},
		Time: event.OccurredAt,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write %s for %s: %w", event.Name, event.Key, err)
	}

	p.logger.Debug("event published", "event_id", event.ID, "event", event.Name, "order_number", event.Key)
	return nil
}

// Close flushes pending writes and releases connections.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
