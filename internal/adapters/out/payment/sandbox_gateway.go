// Package payment holds the payment collaborator used by checkout.
package payment

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

const (
	intentPrefix = "pi_"
	secretInfix  = "_secret_"
)

// SandboxGateway issues payment intents locally without talking to a processor.
// Intents are confirmed later through the payment webhook.
type SandboxGateway struct {
	logger *slog.Logger
}

func NewSandboxGateway(logger *slog.Logger) *SandboxGateway {
	return &SandboxGateway{logger: logger.With("component", "sandbox_payment_gateway")}
}

// CreatePaymentIntent returns an intent id of the form pi_<24 hex> and a client
// secret derived from it.
func (g *SandboxGateway) CreatePaymentIntent(
	ctx context.Context,
	number kernel.OrderNumber,
	amount int64,
	currency string,
) (ports.PaymentIntent, error) {
	if err := number.Validate(); err != nil {
		return ports.PaymentIntent{}, err
	}
	if amount <= 0 {
		return ports.PaymentIntent{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is not greater than 0", amount))
	}
	if currency == "" {
		return ports.PaymentIntent{}, errs.NewValueIsRequiredError("currency")
	}

	id, err := randomHex(12)
	if err != nil {
		return ports.PaymentIntent{}, fmt.Errorf("generate intent id: %w", err)
	}
	secret, err := randomHex(16)
	if err != nil {
		return ports.PaymentIntent{}, fmt.Errorf("generate client secret: %w", err)
	}

	intent := ports.PaymentIntent{
		ID:           intentPrefix + id,
		ClientSecret: intentPrefix + id + secretInfix + secret,
	}

	g.logger.InfoContext(ctx, "payment intent created",
		"order_number", number.String(),
		"payment_intent_id", intent.ID,
		"amount", amount,
		"currency", currency,
	)
	return intent, nil
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
