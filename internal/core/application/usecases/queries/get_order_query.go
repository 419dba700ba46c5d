package queries

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery fetches the public view of one order. The same query drives the
// timeline and the admin detail view.
type GetOrderQuery struct {
	orderNumber kernel.OrderNumber
	guard       guard.ConstructorGuard
}

// NewGetOrderQuery parses the order number. A malformed number is a validation error.
func NewGetOrderQuery(orderNumber string) (GetOrderQuery, error) {
	number, err := kernel.ParseOrderNumber(orderNumber)
	if err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{orderNumber: number, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderNumber() kernel.OrderNumber {
	return q.orderNumber
}

// GetOrderQueryHandler answers the customer order lookup.
type GetOrderQueryHandler struct {
	orders ports.OrderReader
}

func NewGetOrderQueryHandler(orders ports.OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders}
}

// Handle returns errs.ObjectNotFoundError for unknown orders.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return OrderSummary{}, err
	}

	o, err := h.orders.GetByNumber(ctx, query.OrderNumber())
	if err != nil {
		return OrderSummary{}, err
	}

	return SummaryOf(o), nil
}
