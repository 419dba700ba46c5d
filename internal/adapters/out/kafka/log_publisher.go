package kafka

import (
	"context"
	"log/slog"

	"storefront/internal/core/ports"
)

// LogPublisher is the EventPublisher used when no brokers are configured. It
// writes every event to the log and always succeeds.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "log_publisher")}
}

func (p *LogPublisher) Publish(ctx context.Context, event ports.IntegrationEvent) error {
	p.logger.InfoContext(ctx, "order notification",
		"event_id", event.ID,
		"event", event.Name,
		"order_number", event.Key,
		"occurred_at", event.OccurredAt,
		"payload", string(event.Payload),
	)
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
