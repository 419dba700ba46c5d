// Package inventoryrepo persists inventory items, one row per catalog device option.
package inventoryrepo

import (
	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// InventoryItemDTO represents the database structure for persisting inventory items.
// The (storage_type, size_gb) pair is unique.
type InventoryItemDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	StorageType       string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_inventory_items_device"`
	SizeGB            int       `gorm:"not null;uniqueIndex:idx_inventory_items_device"`
	Quantity          int       `gorm:"not null"`
	LowStockThreshold int       `gorm:"not null"`
}

// TableName specifies the database table name for inventory items.
func (InventoryItemDTO) TableName() string {
	return "inventory_items"
}

func fromDomain(item *inventory.Item) InventoryItemDTO {
	return InventoryItemDTO{
		ID:                item.ID().Bytes(),
		StorageType:       item.Device().Type().String(),
		SizeGB:            int(item.Device().Size()),
		Quantity:          item.Quantity(),
		LowStockThreshold: item.LowStockThreshold(),
	}
}

func toDomain(dto InventoryItemDTO) (*inventory.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	device, err := kernel.NewStorageDevice(kernel.StorageType(dto.StorageType), kernel.StorageSize(dto.SizeGB))
	if err != nil {
		return nil, err
	}

	return inventory.RestoreItem(id, device, dto.Quantity, dto.LowStockThreshold)
}
