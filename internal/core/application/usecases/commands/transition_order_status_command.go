package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var (
	ErrTransitionOrderStatusCommandIsNotConstructed = errors.New(
		"TransitionOrderStatusCommand must be created via NewTransitionOrderStatusCommand constructor",
	)
)

// TransitionOrderStatusCommand is an admin request to move an order to another status,
// optionally updating tracking number, carrier and notes.
//
// Example:
//
//	tracking, carrier := "1Z999", "UPS"
//	cmd, err := NewTransitionOrderStatusCommand("NCS-1718000000123-AB12C", "shipped", &tracking, &carrier, nil)
//	if err != nil {
//	    return err
//	}
//	updated, err := handler.Handle(ctx, cmd)
type TransitionOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderNumber kernel.OrderNumber
	target      order.Status
	fields      order.TransitionFields

	guard guard.ConstructorGuard
}

// NewTransitionOrderStatusCommand parses the order number and the target status name.
func NewTransitionOrderStatusCommand(
	orderNumber, status string,
	trackingNumber, carrier, notes *string,
) (TransitionOrderStatusCommand, error) {
	cmd := TransitionOrderStatusCommand{
		fields: order.TransitionFields{
			TrackingNumber: trackingNumber,
			Carrier:        carrier,
			Notes:          notes,
		},
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setTarget(status),
	); err != nil {
		return TransitionOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderStatusCommandIsNotConstructed)
}

func (c TransitionOrderStatusCommand) OrderNumber() kernel.OrderNumber { return c.orderNumber }
func (c TransitionOrderStatusCommand) Target() order.Status            { return c.target }
func (c TransitionOrderStatusCommand) Fields() order.TransitionFields  { return c.fields }

func (c *TransitionOrderStatusCommand) setOrderNumber(orderNumber string) error {
	number, err := kernel.ParseOrderNumber(orderNumber)
	if err != nil {
		return err
	}

	c.orderNumber = number
	return nil
}

func (c *TransitionOrderStatusCommand) setTarget(status string) error {
	target, err := order.ParseStatus(status)
	if err != nil {
		return err
	}

	c.target = target
	return nil
}
