package inventory

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// MaxUnits bounds quantities and thresholds to catch typos in admin input.
const MaxUnits = 1_000_000

// Item is the stock of one catalog device option.
//
// Item follows these invariants:
//   - quantity and lowStockThreshold are within [0, MaxUnits]
//   - an adjustment either applies completely or not at all
type Item struct {
	id                kernel.UUID
	device            kernel.StorageDevice
	quantity          int
	lowStockThreshold int
	guard             guard.ConstructorGuard
}

// NewItem creates a stock record for device.
//
// Example:
//
//	device, _ := kernel.NewStorageDevice(kernel.FlashDrive, kernel.Size64GB)
//	item, err := inventory.NewItem(kernel.NewUUID(), device, 50, 10)
func NewItem(id kernel.UUID, device kernel.StorageDevice, quantity, lowStockThreshold int) (*Item, error) {
	item := &Item{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setID(id),
		item.setDevice(device),
		item.setQuantity(quantity),
		item.setLowStockThreshold(lowStockThreshold),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem rebuilds a stored item.
func RestoreItem(id kernel.UUID, device kernel.StorageDevice, quantity, lowStockThreshold int) (*Item, error) {
	return NewItem(id, device, quantity, lowStockThreshold)
}

func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i *Item) ID() kernel.UUID              { return i.id }
func (i *Item) Device() kernel.StorageDevice { return i.device }
func (i *Item) Quantity() int                { return i.quantity }
func (i *Item) LowStockThreshold() int       { return i.lowStockThreshold }

// IsLowStock reports whether the quantity has dropped to the threshold or below.
func (i *Item) IsLowStock() bool {
	return i.quantity <= i.lowStockThreshold
}

// Adjust sets the supplied values. Nil leaves a value unchanged.
func (i *Item) Adjust(quantity, lowStockThreshold *int) error {
	if err := i.Validate(); err != nil {
		return err
	}

	next := *i
	var errQuantity, errThreshold error
	if quantity != nil {
		errQuantity = next.setQuantity(*quantity)
	}
	if lowStockThreshold != nil {
		errThreshold = next.setLowStockThreshold(*lowStockThreshold)
	}
	if err := errors.Join(errQuantity, errThreshold); err != nil {
		return err
	}

	*i = next
	return nil
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setDevice(device kernel.StorageDevice) error {
	if err := device.Validate(); err != nil {
		return err
	}
	i.device = device
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 0 || quantity > MaxUnits {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 0, MaxUnits)
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setLowStockThreshold(threshold int) error {
	if threshold < 0 || threshold > MaxUnits {
		return errs.NewValueIsOutOfRangeError("low stock threshold", threshold, 0, MaxUnits)
	}
	i.lowStockThreshold = threshold
	return nil
}
