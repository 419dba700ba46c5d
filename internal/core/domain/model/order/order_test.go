package order_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 6, 10, 6, 13, 20, 0, time.UTC)

func ptr(s string) *string { return &s }

func validCheckout(t *testing.T) order.Checkout {
	t.Helper()

	customer, err := order.NewCustomer("Ada Lovelace", "ada@example.com")
	require.NoError(t, err)
	address, err := order.NewAddress("1 Main St", "", "Springfield", "IL", "62701", "US")
	require.NoError(t, err)
	device, err := kernel.NewStorageDevice(kernel.FlashDrive, kernel.Size64GB)
	require.NoError(t, err)
	f1, err := order.NewFile("file-1", "photos.zip", 1024)
	require.NoError(t, err)
	f2, err := order.NewFile("file-2", "notes.txt", 2048)
	require.NoError(t, err)

	return order.Checkout{
		Customer:        customer,
		ShippingAddress: address,
		Device:          device,
		Amount:          3999,
		AutoDelete:      true,
		Files:           []order.File{f1, f2},
	}
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()

	number, err := kernel.GenerateOrderNumber(kernel.DefaultOrderNumberPrefix, baseTime)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), number, validCheckout(t), baseTime)
	require.NoError(t, err)
	return o
}

// advance moves o along the happy path up to and including target.
func advance(t *testing.T, o *order.Order, target order.Status) {
	t.Helper()

	at := baseTime
	for _, s := range order.Statuses() {
		if s <= o.Status() {
			continue
		}
		at = at.Add(time.Hour)
		fields := order.TransitionFields{}
		if s == order.Shipped {
			fields = order.TransitionFields{TrackingNumber: ptr("1Z999"), Carrier: ptr("UPS")}
		}
		changed, err := o.Transition(s, fields, at)
		require.NoError(t, err, s.String())
		require.True(t, changed, s.String())
		if s == target {
			return
		}
	}
}

func TestNewOrder(t *testing.T) {
	number, _ := kernel.GenerateOrderNumber(kernel.DefaultOrderNumberPrefix, baseTime)

	t.Run("should create order in pending payment", func(t *testing.T) {
		id := kernel.NewUUID()
		checkout := validCheckout(t)

		o, err := order.NewOrder(id, number, checkout, baseTime)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.True(t, o.Number().IsEqual(number))
		assert.Equal(t, order.PendingPayment, o.Status())
		assert.Equal(t, int64(3999), o.Amount())
		assert.Equal(t, "flash_drive/64GB", o.Device().String())
		assert.True(t, o.AutoDelete())
		assert.Equal(t, 2, o.FileCount())
		assert.Equal(t, int64(3072), o.TotalSizeBytes())
		assert.Equal(t, baseTime, o.CreatedAt())
		assert.Nil(t, o.PaidAt())
		assert.Nil(t, o.ShippedAt())
		assert.Nil(t, o.DeliveredAt())
		assert.Nil(t, o.CancelledAt())
		assert.Equal(t, int64(1), o.Version())
	})

	t.Run("should record the creation entry and event", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), number, validCheckout(t), baseTime)
		require.NoError(t, err)

		history := o.UncommittedHistory()
		require.Len(t, history, 1)
		assert.True(t, history[0].IsCreation())
		assert.Equal(t, order.PendingPayment, history[0].To())
		assert.Equal(t, baseTime, history[0].OccurredAt())

		events := o.DomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, order.EventNameOrderCreated, events[0].EventName())
		assert.Equal(t, number.String(), events[0].AggregateKey())
	})

	t.Run("should copy the files slice", func(t *testing.T) {
		checkout := validCheckout(t)
		o, err := order.NewOrder(kernel.NewUUID(), number, checkout, baseTime)
		require.NoError(t, err)

		checkout.Files[0], _ = order.NewFile("other", "other.bin", 1)

		assert.Equal(t, "file-1", o.Files()[0].ID())
	})

	t.Run("should fail with zero amount", func(t *testing.T) {
		checkout := validCheckout(t)
		checkout.Amount = 0

		o, err := order.NewOrder(kernel.NewUUID(), number, checkout, baseTime)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "amount")
		assert.Contains(t, err.Error(), "0 is not greater than 0")
	})

	t.Run("should fail with duplicate files", func(t *testing.T) {
		checkout := validCheckout(t)
		checkout.Files = append(checkout.Files, checkout.Files[0])

		_, err := order.NewOrder(kernel.NewUUID(), number, checkout, baseTime)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "selected twice")
	})

	t.Run("should join all validation errors", func(t *testing.T) {
		o, err := order.NewOrder(kernel.UUID{}, kernel.OrderNumber{}, order.Checkout{}, time.Time{})

		require.Error(t, err)
		assert.Nil(t, o)
		assert.True(t, errors.Is(err, kernel.ErrUUIDIsNotConstructed))
		assert.True(t, errors.Is(err, kernel.ErrOrderNumberIsNotConstructed))
		assert.True(t, errors.Is(err, order.ErrCustomerIsNotConstructed))
		assert.True(t, errors.Is(err, order.ErrAddressIsNotConstructed))
		assert.True(t, errors.Is(err, kernel.ErrStorageDeviceIsNotConstructed))
		assert.Contains(t, err.Error(), "created at")
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should fail for nil order", func(t *testing.T) {
		var o *order.Order

		assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	})

	t.Run("should fail for zero value order", func(t *testing.T) {
		o := &order.Order{}

		assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	})

	t.Run("should reject transitions on zero value order", func(t *testing.T) {
		o := &order.Order{}

		_, err := o.Transition(order.PaymentReceived, order.TransitionFields{}, baseTime)

		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})
}

func TestOrder_Transition_HappyPath(t *testing.T) {
	o := newTestOrder(t)
	o.ClearUncommittedHistory()
	o.ClearDomainEvents()

	advance(t, o, order.Delivered)

	assert.Equal(t, order.Delivered, o.Status())
	assert.Equal(t, "1Z999", o.TrackingNumber())
	assert.Equal(t, "UPS", o.Carrier())
	require.NotNil(t, o.PaidAt())
	require.NotNil(t, o.ShippedAt())
	require.NotNil(t, o.DeliveredAt())
	assert.Nil(t, o.CancelledAt())
	assert.Equal(t, baseTime.Add(time.Hour), *o.PaidAt())
	assert.Equal(t, baseTime.Add(5*time.Hour), *o.ShippedAt())
	assert.Equal(t, baseTime.Add(6*time.Hour), *o.DeliveredAt())

	history := o.UncommittedHistory()
	require.Len(t, history, 6)
	assert.Equal(t, order.PendingPayment, history[0].From())
	assert.Equal(t, order.PaymentReceived, history[0].To())
	assert.Equal(t, order.Shipped, history[5].From())
	assert.Equal(t, order.Delivered, history[5].To())
	assert.Len(t, o.DomainEvents(), 6)
}

func TestOrder_Transition_Rejections(t *testing.T) {
	t.Run("should reject skipping stages and leave order unchanged", func(t *testing.T) {
		o := newTestOrder(t)

		changed, err := o.Transition(order.Shipped, order.TransitionFields{
			TrackingNumber: ptr("1Z999"),
			Carrier:        ptr("UPS"),
		}, baseTime.Add(time.Hour))

		require.Error(t, err)
		assert.False(t, changed)
		assert.True(t, errors.Is(err, errs.ErrStatusTransitionIsInvalid))
		assert.Contains(t, err.Error(), "pending_payment")
		assert.Contains(t, err.Error(), "shipped")
		assert.Equal(t, order.PendingPayment, o.Status())
		assert.Empty(t, o.TrackingNumber())
		assert.Empty(t, o.Carrier())
		assert.Nil(t, o.ShippedAt())
		assert.Len(t, o.UncommittedHistory(), 1)
	})

	t.Run("should reject cancellation of delivered order", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.Delivered)
		historyBefore := len(o.UncommittedHistory())

		_, err := o.Transition(order.Cancelled, order.TransitionFields{}, baseTime.Add(24*time.Hour))

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrStatusTransitionIsInvalid))
		assert.Equal(t, order.Delivered, o.Status())
		assert.Nil(t, o.CancelledAt())
		assert.Len(t, o.UncommittedHistory(), historyBefore)
	})

	t.Run("should reject leaving cancelled", func(t *testing.T) {
		o := newTestOrder(t)
		_, err := o.Transition(order.Cancelled, order.TransitionFields{}, baseTime.Add(time.Hour))
		require.NoError(t, err)

		_, err = o.Transition(order.PaymentReceived, order.TransitionFields{}, baseTime.Add(2*time.Hour))

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrStatusTransitionIsInvalid))
	})

	t.Run("should require tracking number and carrier to ship", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.DevicePrepared)

		_, err := o.Transition(order.Shipped, order.TransitionFields{Carrier: ptr("  ")}, baseTime.Add(24*time.Hour))

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsRequired))
		assert.Contains(t, err.Error(), "tracking number")
		assert.Contains(t, err.Error(), "carrier")
		assert.Equal(t, order.DevicePrepared, o.Status())
	})

	t.Run("should reject invalid target", func(t *testing.T) {
		o := newTestOrder(t)

		_, err := o.Transition(order.Unknown, order.TransitionFields{}, baseTime)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
	})

	t.Run("should reject clearing tracking number of shipped order", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.Shipped)

		_, err := o.Transition(order.Shipped, order.TransitionFields{TrackingNumber: ptr("")}, baseTime.Add(24*time.Hour))

		require.Error(t, err)
		assert.Equal(t, "1Z999", o.TrackingNumber())
	})
}

func TestOrder_Transition_SameStatus(t *testing.T) {
	t.Run("should be a no-op without field changes", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.PaymentReceived)
		paidAt := o.PaidAt()
		historyBefore := len(o.UncommittedHistory())

		changed, err := o.Transition(order.PaymentReceived, order.TransitionFields{}, baseTime.Add(48*time.Hour))

		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, paidAt, o.PaidAt())
		assert.Len(t, o.UncommittedHistory(), historyBefore)
	})

	t.Run("should be a no-op when supplied fields equal stored ones", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.Shipped)

		changed, err := o.Transition(order.Shipped, order.TransitionFields{
			TrackingNumber: ptr("1Z999"),
			Carrier:        ptr("UPS"),
		}, baseTime.Add(48*time.Hour))

		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("should record a note on the current status", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.Shipped)
		shippedAt := o.ShippedAt()
		o.ClearUncommittedHistory()
		o.ClearDomainEvents()

		changed, err := o.Transition(order.Shipped, order.TransitionFields{Notes: ptr("left at door")}, baseTime.Add(48*time.Hour))

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, "left at door", o.Notes())
		assert.Equal(t, shippedAt, o.ShippedAt())

		history := o.UncommittedHistory()
		require.Len(t, history, 1)
		assert.Equal(t, order.Shipped, history[0].From())
		assert.Equal(t, order.Shipped, history[0].To())
		assert.Equal(t, "left at door", history[0].Notes())
		assert.Len(t, o.DomainEvents(), 1)
	})
}

func TestOrder_Transition_Cancel(t *testing.T) {
	for _, from := range []order.Status{
		order.PendingPayment,
		order.PaymentReceived,
		order.FilesDownloading,
		order.FilesDownloaded,
		order.DevicePrepared,
		order.Shipped,
	} {
		t.Run(from.String(), func(t *testing.T) {
			o := newTestOrder(t)
			if from != order.PendingPayment {
				advance(t, o, from)
			}

			changed, err := o.Transition(order.Cancelled, order.TransitionFields{Notes: ptr("customer request")}, baseTime.Add(72*time.Hour))

			require.NoError(t, err)
			assert.True(t, changed)
			assert.Equal(t, order.Cancelled, o.Status())
			require.NotNil(t, o.CancelledAt())
			assert.Equal(t, baseTime.Add(72*time.Hour), *o.CancelledAt())
			assert.Equal(t, "customer request", o.Notes())
		})
	}
}

func TestOrder_Transition_MonotonicTimestamps(t *testing.T) {
	o := newTestOrder(t)

	_, err := o.Transition(order.PaymentReceived, order.TransitionFields{}, baseTime.Add(-time.Hour))

	require.NoError(t, err)
	require.NotNil(t, o.PaidAt())
	assert.Equal(t, baseTime, *o.PaidAt())
	history := o.UncommittedHistory()
	assert.Equal(t, baseTime, history[len(history)-1].OccurredAt())
}

func TestOrder_Transition_FileProgress(t *testing.T) {
	o := newTestOrder(t)
	advance(t, o, order.FilesDownloading)

	for _, f := range o.Files() {
		assert.Equal(t, order.DownloadInProgress, f.DownloadStatus())
	}

	_, err := o.Transition(order.FilesDownloaded, order.TransitionFields{}, baseTime.Add(10*time.Hour))
	require.NoError(t, err)

	for _, f := range o.Files() {
		assert.Equal(t, order.DownloadCompleted, f.DownloadStatus())
	}
}

func TestOrder_PaymentIntent(t *testing.T) {
	t.Run("should attach intent while awaiting payment", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.AttachPaymentIntent("pi_123"))

		assert.Equal(t, "pi_123", o.PaymentIntentID())
	})

	t.Run("should refuse to attach intent after payment", func(t *testing.T) {
		o := newTestOrder(t)
		advance(t, o, order.PaymentReceived)

		assert.Error(t, o.AttachPaymentIntent("pi_123"))
	})

	t.Run("should confirm matching intent once", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AttachPaymentIntent("pi_123"))

		changed, err := o.ConfirmPayment("pi_123", baseTime.Add(time.Minute))
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, order.PaymentReceived, o.Status())

		changed, err = o.ConfirmPayment("pi_123", baseTime.Add(2*time.Minute))
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, baseTime.Add(time.Minute), *o.PaidAt())
	})

	t.Run("should reject mismatched intent", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AttachPaymentIntent("pi_123"))

		_, err := o.ConfirmPayment("pi_other", baseTime.Add(time.Minute))

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
		assert.Equal(t, order.PendingPayment, o.Status())
	})

	t.Run("should reject confirmation of cancelled order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AttachPaymentIntent("pi_123"))
		_, err := o.Transition(order.Cancelled, order.TransitionFields{}, baseTime.Add(time.Minute))
		require.NoError(t, err)

		_, err = o.ConfirmPayment("pi_123", baseTime.Add(time.Hour))

		assert.True(t, errors.Is(err, errs.ErrStatusTransitionIsInvalid))
	})
}

func TestRestoreOrder(t *testing.T) {
	number, _ := kernel.GenerateOrderNumber(kernel.DefaultOrderNumberPrefix, baseTime)
	checkout := validCheckout(t)
	paidAt := baseTime.Add(time.Hour)
	shippedAt := baseTime.Add(2 * time.Hour)

	snapshot := func() order.Snapshot {
		return order.Snapshot{
			ID:              kernel.NewUUID(),
			Number:          number,
			Customer:        checkout.Customer,
			ShippingAddress: checkout.ShippingAddress,
			Device:          checkout.Device,
			Amount:          checkout.Amount,
			Files:           checkout.Files,
			Status:          order.Shipped,
			TrackingNumber:  "1Z999",
			Carrier:         "UPS",
			CreatedAt:       baseTime,
			PaidAt:          &paidAt,
			ShippedAt:       &shippedAt,
			Version:         7,
		}
	}

	t.Run("should restore consistent order without pending history", func(t *testing.T) {
		o, err := order.RestoreOrder(snapshot())

		require.NoError(t, err)
		assert.Equal(t, order.Shipped, o.Status())
		assert.Equal(t, int64(7), o.Version())
		assert.Empty(t, o.UncommittedHistory())
		assert.Empty(t, o.DomainEvents())
	})

	t.Run("should reject shipped order without tracking number", func(t *testing.T) {
		s := snapshot()
		s.TrackingNumber = ""

		_, err := order.RestoreOrder(s)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "tracking number")
	})

	t.Run("should reject paid order without paid at", func(t *testing.T) {
		s := snapshot()
		s.PaidAt = nil

		_, err := order.RestoreOrder(s)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "paid at")
	})

	t.Run("should reject out of order timestamps", func(t *testing.T) {
		s := snapshot()
		early := baseTime.Add(-time.Hour)
		s.PaidAt = &early

		_, err := order.RestoreOrder(s)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "paid at is before created at")
	})

	t.Run("should reject non-positive version", func(t *testing.T) {
		s := snapshot()
		s.Version = 0

		_, err := order.RestoreOrder(s)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrVersionIsInvalid))
	})

	t.Run("should increment version", func(t *testing.T) {
		o, err := order.RestoreOrder(snapshot())
		require.NoError(t, err)

		o.IncrementVersion()

		assert.Equal(t, int64(8), o.Version())
	})
}

func TestStatusChangedEvent_MarshalJSON(t *testing.T) {
	o := newTestOrder(t)
	advance(t, o, order.Shipped)

	events := o.DomainEvents()
	last := events[len(events)-1]
	raw, err := last.MarshalJSON()
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))

	assert.Equal(t, order.EventNameOrderStatusChanged, payload["eventName"])
	assert.Equal(t, o.Number().String(), payload["orderNumber"])
	assert.Equal(t, "device_prepared", payload["previousStatus"])
	assert.Equal(t, "shipped", payload["status"])
	assert.Equal(t, "1Z999", payload["trackingNumber"])
	assert.Equal(t, "UPS", payload["carrier"])
	assert.Equal(t, "ada@example.com", payload["customerEmail"])
	assert.Equal(t, last.EventID().String(), payload["eventId"])

	created, err := events[0].MarshalJSON()
	require.NoError(t, err)
	assert.NotContains(t, string(created), "previousStatus")
}
