package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
)

// PaymentIntent is the payment collaborator's handle for an expected payment.
// ClientSecret is returned to the customer and never stored.
type PaymentIntent struct {
	ID           string
	ClientSecret string
}

// PaymentGateway creates payment intents. Its confirmation webhook later triggers
// the payment_received transition.
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, number kernel.OrderNumber, amount int64, currency string) (PaymentIntent, error)
}
