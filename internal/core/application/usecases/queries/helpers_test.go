package queries_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 6, 10, 6, 13, 20, 0, time.UTC)

type MockOrderReader struct {
	mock.Mock
}

func (m *MockOrderReader) GetByNumber(ctx context.Context, number kernel.OrderNumber) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderReader) History(ctx context.Context, number kernel.OrderNumber) ([]order.StatusChange, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.StatusChange), args.Error(1)
}

type orderSpec struct {
	storageType kernel.StorageType
	size        kernel.StorageSize
	amount      int64
	createdAt   time.Time
}

func newOrder(t *testing.T, spec orderSpec) *order.Order {
	t.Helper()

	if spec.storageType == "" {
		spec = orderSpec{kernel.FlashDrive, kernel.Size64GB, 3999, baseTime}
	}

	customer, err := order.NewCustomer("Ada Lovelace", "ada@example.com")
	require.NoError(t, err)
	address, err := order.NewAddress("1 Main St", "Apt 2", "Springfield", "IL", "62701", "US")
	require.NoError(t, err)
	device, err := kernel.NewStorageDevice(spec.storageType, spec.size)
	require.NoError(t, err)
	file, err := order.NewFile("file-1", "photos.zip", 1024)
	require.NoError(t, err)
	number, err := kernel.GenerateOrderNumber(kernel.DefaultOrderNumberPrefix, spec.createdAt)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), number, order.Checkout{
		Customer:        customer,
		ShippingAddress: address,
		Device:          device,
		Amount:          spec.amount,
		Files:           []order.File{file},
	}, spec.createdAt)
	require.NoError(t, err)
	return o
}

// advance walks o along the happy path up to target, one hour per stage.
func advance(t *testing.T, o *order.Order, target order.Status) {
	t.Helper()

	at := o.CreatedAt()
	for _, s := range order.Statuses() {
		if s <= o.Status() {
			continue
		}
		at = at.Add(time.Hour)
		fields := order.TransitionFields{}
		if s == order.Shipped {
			tracking, carrier := "1Z999", "UPS"
			fields = order.TransitionFields{TrackingNumber: &tracking, Carrier: &carrier}
		}
		_, err := o.Transition(s, fields, at)
		require.NoError(t, err, s.String())
		if s == target {
			return
		}
	}
}
