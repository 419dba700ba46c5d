package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrUpdateInventoryItemCommandIsNotConstructed = errors.New(
		"UpdateInventoryItemCommand must be created via NewUpdateInventoryItemCommand constructor",
	)
)

// UpdateInventoryItemCommand is an admin stock adjustment. At least one value must be supplied.
type UpdateInventoryItemCommand struct { //nolint:recvcheck //using for validation
	itemID            kernel.UUID
	quantity          *int
	lowStockThreshold *int

	guard guard.ConstructorGuard
}

func NewUpdateInventoryItemCommand(itemID string, quantity, lowStockThreshold *int) (UpdateInventoryItemCommand, error) {
	cmd := UpdateInventoryItemCommand{
		quantity:          quantity,
		lowStockThreshold: lowStockThreshold,
		guard:             guard.NewConstructorGuard(),
	}

	var errValues error
	if quantity == nil && lowStockThreshold == nil {
		errValues = errs.NewValueIsRequiredError("quantity or low stock threshold")
	}

	if err := errors.Join(cmd.setItemID(itemID), errValues); err != nil {
		return UpdateInventoryItemCommand{}, err
	}

	return cmd, nil
}

func (c UpdateInventoryItemCommand) Validate() error {
	return c.guard.Validate(ErrUpdateInventoryItemCommandIsNotConstructed)
}

func (c UpdateInventoryItemCommand) ItemID() kernel.UUID     { return c.itemID }
func (c UpdateInventoryItemCommand) Quantity() *int          { return c.quantity }
func (c UpdateInventoryItemCommand) LowStockThreshold() *int { return c.lowStockThreshold }

func (c *UpdateInventoryItemCommand) setItemID(itemID string) error {
	id, err := kernel.UUIDFromString(itemID)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("inventory item id", err)
	}
	if err = id.Validate(); err != nil {
		return err
	}

	c.itemID = id
	return nil
}
