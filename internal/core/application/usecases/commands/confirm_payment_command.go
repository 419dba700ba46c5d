package commands

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrConfirmPaymentCommandIsNotConstructed = errors.New(
		"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
	)
)

// ConfirmPaymentCommand carries the payment collaborator's webhook callback.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	orderNumber     kernel.OrderNumber
	paymentIntentID string

	guard guard.ConstructorGuard
}

func NewConfirmPaymentCommand(orderNumber, paymentIntentID string) (ConfirmPaymentCommand, error) {
	cmd := ConfirmPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setPaymentIntentID(paymentIntentID),
	); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return cmd, nil
}

func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

func (c ConfirmPaymentCommand) OrderNumber() kernel.OrderNumber { return c.orderNumber }
func (c ConfirmPaymentCommand) PaymentIntentID() string         { return c.paymentIntentID }

func (c *ConfirmPaymentCommand) setOrderNumber(orderNumber string) error {
	number, err := kernel.ParseOrderNumber(orderNumber)
	if err != nil {
		return err
	}

	c.orderNumber = number
	return nil
}

func (c *ConfirmPaymentCommand) setPaymentIntentID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("payment intent id")
	}

	c.paymentIntentID = id
	return nil
}
