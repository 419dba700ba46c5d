package ports

import (
	"context"

	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"
)

// InventoryRepository persists stock records. Items are seeded by migrations,
// so there is no Add.
type InventoryRepository interface {
	Get(ctx context.Context, id kernel.UUID) (*inventory.Item, error)
	Update(ctx context.Context, item *inventory.Item) error
}
