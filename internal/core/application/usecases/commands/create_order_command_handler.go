package commands

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// maxOrderNumberAttempts bounds regeneration after an order number collision.
const maxOrderNumberAttempts = 3

// CreateOrderResult is what the customer receives after checkout.
type CreateOrderResult struct {
	OrderNumber  kernel.OrderNumber
	Status       order.Status
	Amount       int64
	ClientSecret string
}

// CreateOrderCommandHandler places new orders.
//
// The flow for every attempt:
//   - generate an order number from the configured prefix and the current instant
//   - build the order in pending_payment
//   - ask the payment collaborator for an intent and store its id on the order
//   - persist the order, its "created" history entry and its event in one transaction
//
// A collision on the order number starts a fresh attempt, at most maxOrderNumberAttempts times.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, gateway, published, "NCS", ports.SystemClock)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	fmt.Println(result.OrderNumber, result.ClientSecret)
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	payments   ports.PaymentGateway
	catalog    *catalog.Catalog
	prefix     string
	clock      ports.Clock
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	payments ports.PaymentGateway,
	published *catalog.Catalog,
	prefix string,
	clock ports.Clock,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		payments:   payments,
		catalog:    published,
		prefix:     prefix,
		clock:      clock,
	}
}

// Handle validates the selection against the catalog and places the order.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	checkout := cmd.Checkout()
	if err := h.catalog.CheckPrice(checkout.Device, checkout.Amount); err != nil {
		return CreateOrderResult{}, err
	}

	for attempt := 1; ; attempt++ {
		result, err := h.place(ctx, checkout)
		if errors.Is(err, ports.ErrOrderNumberTaken) && attempt < maxOrderNumberAttempts {
			continue
		}
		return result, err
	}
}

func (h *CreateOrderCommandHandler) place(ctx context.Context, checkout order.Checkout) (CreateOrderResult, error) {
	now := h.clock()
	number, err := kernel.GenerateOrderNumber(h.prefix, now)
	if err != nil {
		return CreateOrderResult{}, err
	}

	o, err := order.NewOrder(kernel.NewUUID(), number, checkout, now)
	if err != nil {
		return CreateOrderResult{}, err
	}

	intent, err := h.payments.CreatePaymentIntent(ctx, number, o.Amount(), h.catalog.Currency())
	if err != nil {
		return CreateOrderResult{}, fmt.Errorf("create payment intent: %w", err)
	}
	if err = o.AttachPaymentIntent(intent.ID); err != nil {
		return CreateOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	return CreateOrderResult{
		OrderNumber:  o.Number(),
		Status:       o.Status(),
		Amount:       o.Amount(),
		ClientSecret: intent.ClientSecret,
	}, nil
}
