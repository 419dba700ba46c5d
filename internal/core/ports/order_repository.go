// Package ports defines the contracts between the application core and its adapters:
// persistence, the unit of work, the payment collaborator and the event publisher.
package ports

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// ErrOrderNumberTaken is returned by OrderRepository.Add when the order number is already stored.
var ErrOrderNumberTaken = errors.New("order number is already taken")

// OrderRepository defines the persistence contract for order aggregates.
// Orders are addressed by their public order number and are never deleted.
type OrderRepository interface {
	// Add persists a new order together with its pending history entries.
	// Returns ErrOrderNumberTaken when the number collides with a stored order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the order back only if its stored version still equals aggregate.Version().
	// Pending history entries are inserted in the same statement batch.
	//
	// Errors:
	//   - errs.ConcurrencyConflictError when another writer got there first
	//   - errs.ObjectNotFoundError when the order does not exist
	Update(ctx context.Context, aggregate *order.Order) error

	// GetByNumber retrieves an order. Returns errs.ObjectNotFoundError for unknown numbers.
	GetByNumber(ctx context.Context, number kernel.OrderNumber) (*order.Order, error)

	// History returns the status changes of an order ordered by occurrence, then insertion.
	History(ctx context.Context, number kernel.OrderNumber) ([]order.StatusChange, error)
}

// OrderReader is the read-only part of OrderRepository used by queries.
type OrderReader interface {
	GetByNumber(ctx context.Context, number kernel.OrderNumber) (*order.Order, error)
	History(ctx context.Context, number kernel.OrderNumber) ([]order.StatusChange, error)
}
