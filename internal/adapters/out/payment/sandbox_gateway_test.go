package payment

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSandboxGateway_CreatePaymentIntent(t *testing.T) {
	gateway := NewSandboxGateway(slog.New(slog.DiscardHandler))
	number, err := kernel.ParseOrderNumber("NCS-1718000000123-AB12C")
	require.NoError(t, err)

	t.Run("should issue distinct intents", func(t *testing.T) {
		first, err := gateway.CreatePaymentIntent(context.Background(), number, 3999, "usd")
		require.NoError(t, err)
		second, err := gateway.CreatePaymentIntent(context.Background(), number, 3999, "usd")
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(first.ID, "pi_"))
		assert.Len(t, first.ID, len("pi_")+24)
		assert.True(t, strings.HasPrefix(first.ClientSecret, first.ID+"_secret_"))
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("should reject non-positive amount", func(t *testing.T) {
		_, err := gateway.CreatePaymentIntent(context.Background(), number, 0, "usd")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should require currency", func(t *testing.T) {
		_, err := gateway.CreatePaymentIntent(context.Background(), number, 3999, "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject zero order number", func(t *testing.T) {
		_, err := gateway.CreatePaymentIntent(context.Background(), kernel.OrderNumber{}, 3999, "usd")

		require.ErrorIs(t, err, kernel.ErrOrderNumberIsNotConstructed)
	})
}
