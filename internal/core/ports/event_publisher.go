package ports

import (
	"context"
	"time"
)

// IntegrationEvent is the message handed to the notification collaborator.
type IntegrationEvent struct {
	ID         string
	Name       string
	Key        string
	Payload    []byte
	OccurredAt time.Time
}

// EventPublisher delivers integration events. Publish returns only after the
// broker accepted the event or delivery failed.
type EventPublisher interface {
	Publish(ctx context.Context, event IntegrationEvent) error
}
