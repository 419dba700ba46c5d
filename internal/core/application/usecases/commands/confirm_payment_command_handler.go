package commands

import (
	"context"

	"storefront/internal/core/ports"
)

// ConfirmPaymentCommandHandler moves an order to payment_received when the payment
// collaborator confirms the intent attached at checkout. Repeated confirmations are no-ops.
type ConfirmPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

func NewConfirmPaymentCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetByNumber(ctx, cmd.OrderNumber())
	if err != nil {
		return err
	}

	changed, err := o.ConfirmPayment(cmd.PaymentIntentID(), h.clock())
	if err != nil || !changed {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
