package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryItemView is one stock record as shown to admins.
type InventoryItemView struct {
	ID                string
	StorageType       string
	SizeGB            int
	Quantity          int
	LowStockThreshold int
	IsLowStock        bool
}

type inventoryRow struct {
	ID                uuid.UUID
	StorageType       string
	SizeGB            int
	Quantity          int
	LowStockThreshold int
}

// GetInventoryQueryHandler lists every stock record ordered by storage type, then size.
type GetInventoryQueryHandler struct {
	db *gorm.DB
}

func NewGetInventoryQueryHandler(db *gorm.DB) GetInventoryQueryHandler {
	return GetInventoryQueryHandler{db: db}
}

func (h GetInventoryQueryHandler) Handle(ctx context.Context) ([]InventoryItemView, error) {
	return readInventory(ctx, h.db, `
		SELECT id, storage_type, size_gb, quantity, low_stock_threshold
		FROM inventory_items
		ORDER BY storage_type, size_gb
	`)
}

// GetLowStockItemsQueryHandler lists the records whose quantity is at or below
// their threshold.
type GetLowStockItemsQueryHandler struct {
	db *gorm.DB
}

func NewGetLowStockItemsQueryHandler(db *gorm.DB) GetLowStockItemsQueryHandler {
	return GetLowStockItemsQueryHandler{db: db}
}

func (h GetLowStockItemsQueryHandler) Handle(ctx context.Context) ([]InventoryItemView, error) {
	return readInventory(ctx, h.db, `
		SELECT id, storage_type, size_gb, quantity, low_stock_threshold
		FROM inventory_items
		WHERE quantity <= low_stock_threshold
		ORDER BY storage_type, size_gb
	`)
}

func readInventory(ctx context.Context, db *gorm.DB, query string) ([]InventoryItemView, error) {
	var rows []inventoryRow
	if err := db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]InventoryItemView, 0, len(rows))
	for _, row := range rows {
		items = append(items, InventoryItemView{
			ID:                row.ID.String(),
			StorageType:       row.StorageType,
			SizeGB:            row.SizeGB,
			Quantity:          row.Quantity,
			LowStockThreshold: row.LowStockThreshold,
			IsLowStock:        row.Quantity <= row.LowStockThreshold,
		})
	}

	return items, nil
}
