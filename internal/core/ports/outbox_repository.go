package ports

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
)

// OutboxMessage is a domain event stored for later delivery to the notification topic.
type OutboxMessage struct {
	ID           int64
	EventID      kernel.UUID
	EventName    string
	AggregateKey string
	Payload      []byte
	OccurredAt   time.Time
	Attempts     int
}

// OutboxRepository stores domain events in the same transaction as the aggregate
// that raised them and hands them to the relay afterwards.
type OutboxRepository interface {
	// Append stores events in the order given.
	Append(ctx context.Context, events ...kernel.DomainEvent) error

	// FetchDue returns at most limit unpublished messages whose next attempt is not
	// after now, ordered by id.
	FetchDue(ctx context.Context, now time.Time, limit int) ([]OutboxMessage, error)

	MarkPublished(ctx context.Context, id int64, at time.Time) error

	// MarkFailed records a failed delivery attempt and when to retry.
	MarkFailed(ctx context.Context, id int64, attempts int, nextAttemptAt time.Time, reason string) error
}
