package queries

import (
	"context"

	"storefront/internal/core/ports"
)

// GetOrderHistoryQueryResponse is the admin detail view: the full order and its
// status history, oldest entry first.
type GetOrderHistoryQueryResponse struct {
	Order   OrderDetails
	History []StatusChangeView
}

// GetOrderHistoryQueryHandler answers the admin order detail lookup.
type GetOrderHistoryQueryHandler struct {
	orders ports.OrderReader
}

func NewGetOrderHistoryQueryHandler(orders ports.OrderReader) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{orders: orders}
}

func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderHistoryQueryResponse{}, err
	}

	o, err := h.orders.GetByNumber(ctx, query.OrderNumber())
	if err != nil {
		return GetOrderHistoryQueryResponse{}, err
	}

	history, err := h.orders.History(ctx, query.OrderNumber())
	if err != nil {
		return GetOrderHistoryQueryResponse{}, err
	}

	views := make([]StatusChangeView, 0, len(history))
	for _, change := range history {
		views = append(views, changeViewOf(change))
	}

	return GetOrderHistoryQueryResponse{Order: detailsOf(o), History: views}, nil
}
