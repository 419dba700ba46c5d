package commands

import (
	"context"

	"storefront/internal/core/domain/model/inventory"
)

// UpdateInventoryItemCommandHandler applies admin stock adjustments.
type UpdateInventoryItemCommandHandler struct {
	uowFactory InventoryUoWFactory
}

func NewUpdateInventoryItemCommandHandler(uowFactory InventoryUoWFactory) UpdateInventoryItemCommandHandler {
	return UpdateInventoryItemCommandHandler{uowFactory: uowFactory}
}

// Handle returns the item as stored after the adjustment.
func (h *UpdateInventoryItemCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateInventoryItemCommand,
) (*inventory.Item, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.InventoryRepository()
	item, err := repo.Get(ctx, cmd.ItemID())
	if err != nil {
		return nil, err
	}

	if err = item.Adjust(cmd.Quantity(), cmd.LowStockThreshold()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, item); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return item, nil
}
