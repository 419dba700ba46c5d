package jobs

import (
	"context"
	"log/slog"

	"storefront/internal/core/application/usecases/queries"
)

type lowStockReader interface {
	Handle(ctx context.Context) ([]queries.InventoryItemView, error)
}

// LowStockJob warns about inventory items whose quantity dropped to their threshold.
type LowStockJob struct {
	*scheduledJob
	handler lowStockReader
}

func NewLowStockJob(schedule string, handler lowStockReader, logger *slog.Logger) *LowStockJob {
	return &LowStockJob{
		scheduledJob: newScheduledJob("low_stock_job", schedule, logger),
		handler:      handler,
	}
}

func (j *LowStockJob) Start() error {
	return j.start(j.run)
}

func (j *LowStockJob) Stop() {
	j.stop()
}

func (j *LowStockJob) run(ctx context.Context) {
	items, err := j.handler.Handle(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Low stock job failed", "error", err)
		return
	}

	for _, item := range items {
		j.logger.WarnContext(ctx, "Inventory item is low on stock",
			"item_id", item.ID,
			"storage_type", item.StorageType,
			"size_gb", item.SizeGB,
			"quantity", item.Quantity,
			"threshold", item.LowStockThreshold,
		)
	}
}
