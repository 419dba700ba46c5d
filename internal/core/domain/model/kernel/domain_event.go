package kernel

import "time"

// DomainEvent is a fact raised by an aggregate and delivered to other systems
// after the aggregate's transaction commits.
type DomainEvent interface {
	// EventID uniquely identifies the event for idempotent consumers.
	EventID() UUID

	// EventName is a dotted name such as "order.status_changed".
	EventName() string

	// AggregateKey is the public key of the aggregate that raised the event.
	// Events with the same key are delivered in order.
	AggregateKey() string

	// OccurredAt is the instant the change happened.
	OccurredAt() time.Time

	// MarshalJSON renders the event payload.
	MarshalJSON() ([]byte, error)
}
