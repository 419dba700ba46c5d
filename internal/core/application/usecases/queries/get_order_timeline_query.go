package queries

import (
	"context"

	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
)

// GetOrderTimelineQueryResponse is the order together with its projected tracking timeline.
type GetOrderTimelineQueryResponse struct {
	Order  OrderSummary
	Events []services.TimelineEvent
}

// GetOrderTimelineQueryHandler projects the customer tracking timeline.
//
// Example:
//
//	query, err := queries.NewGetOrderQuery("NCS-1718000000123-AB12C")
//	if err != nil {
//	    return err // malformed order number
//	}
//	timeline, err := handler.Handle(ctx, query)
type GetOrderTimelineQueryHandler struct {
	orders    ports.OrderReader
	projector services.TimelineProjector
}

func NewGetOrderTimelineQueryHandler(orders ports.OrderReader) GetOrderTimelineQueryHandler {
	return GetOrderTimelineQueryHandler{
		orders:    orders,
		projector: services.NewTimelineProjector(),
	}
}

func (h GetOrderTimelineQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderTimelineQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTimelineQueryResponse{}, err
	}

	o, err := h.orders.GetByNumber(ctx, query.OrderNumber())
	if err != nil {
		return GetOrderTimelineQueryResponse{}, err
	}

	history, err := h.orders.History(ctx, query.OrderNumber())
	if err != nil {
		return GetOrderTimelineQueryResponse{}, err
	}

	events, err := h.projector.Project(services.SnapshotOf(o, history))
	if err != nil {
		return GetOrderTimelineQueryResponse{}, err
	}

	return GetOrderTimelineQueryResponse{Order: SummaryOf(o), Events: events}, nil
}
