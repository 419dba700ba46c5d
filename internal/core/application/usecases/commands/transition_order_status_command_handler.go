package commands

import (
	"context"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// TransitionOrderStatusCommandHandler applies admin status changes.
//
// The order is loaded, transitioned in memory and written back with a version check,
// so two admins editing the same order from the same state cannot both succeed:
// the slower one gets errs.ConcurrencyConflictError. A same-status re-submission that
// changes nothing is answered without opening a write.
//
// Example:
//
//	handler := NewTransitionOrderStatusCommandHandler(uowFactory, ports.SystemClock)
//	updated, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrStatusTransitionIsInvalid) {
//	    // e.g. pending_payment -> shipped
//	}
type TransitionOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

// NewTransitionOrderStatusCommandHandler creates a handler for status transitions.
func NewTransitionOrderStatusCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) TransitionOrderStatusCommandHandler {
	return TransitionOrderStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle returns the order as stored after the command.
func (h *TransitionOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetByNumber(ctx, cmd.OrderNumber())
	if err != nil {
		return nil, err
	}

	changed, err := o.Transition(cmd.Target(), cmd.Fields(), h.clock())
	if err != nil {
		return nil, err
	}
	if !changed {
		return o, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
