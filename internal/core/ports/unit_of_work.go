package ports

import (
	"context"
)

// UnitOfWorkFactory hands out a fresh UnitOfWork per command. Instances are
// never shared between goroutines.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary of a command. Repositories obtained
// from it share the transaction, and every aggregate they write is tracked so
// that its domain events reach the outbox in the same commit.
//
// Handlers call Begin, defer Rollback, and finish with Commit. Rollback after a
// successful Commit returns an error that callers ignore.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit appends the pending domain events of tracked aggregates to the
	// outbox, then commits. A failed outbox write leaves the transaction open
	// for Rollback.
	Commit(ctx context.Context) error

	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	InventoryRepository() InventoryRepository

	// OutboxRepository is used by the relay, which claims and marks messages
	// without going through an aggregate.
	OutboxRepository() OutboxRepository
}
