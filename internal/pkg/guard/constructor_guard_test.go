package guard_test

import (
	"errors"
	"testing"

	"storefront/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTrackingRequestIsNotConstructed = errors.New("trackingRequest must be created via newTrackingRequest")

// trackingRequest mirrors how commands and queries embed the guard.
type trackingRequest struct {
	orderNumber string
	guard       guard.ConstructorGuard
}

func newTrackingRequest(orderNumber string) (trackingRequest, error) {
	if orderNumber == "" {
		return trackingRequest{}, errors.New("order number is required")
	}
	return trackingRequest{orderNumber: orderNumber, guard: guard.NewConstructorGuard()}, nil
}

func (r trackingRequest) Validate() error {
	return r.guard.Validate(errTrackingRequestIsNotConstructed)
}

func TestConstructorGuard_Validate(t *testing.T) {
	tests := []struct {
		name    string
		guard   guard.ConstructorGuard
		err     error
		wantErr error
	}{
		{"constructed guard passes", guard.NewConstructorGuard(), errTrackingRequestIsNotConstructed, nil},
		{"constructed guard passes without error", guard.NewConstructorGuard(), nil, nil},
		{"zero guard returns supplied error", guard.ConstructorGuard{}, errTrackingRequestIsNotConstructed, errTrackingRequestIsNotConstructed},
		{"zero guard falls back to default error", guard.ConstructorGuard{}, nil, guard.ErrDefaultConstructorGuard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.guard.Validate(tt.err)

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConstructorGuard_EmbeddedInRequest(t *testing.T) {
	t.Run("request built by its constructor is valid", func(t *testing.T) {
		r, err := newTrackingRequest("NCS-1718000000123-AB12C")

		require.NoError(t, err)
		assert.NoError(t, r.Validate())
	})

	t.Run("declared request is rejected", func(t *testing.T) {
		var r trackingRequest

		assert.ErrorIs(t, r.Validate(), errTrackingRequestIsNotConstructed)
	})

	t.Run("failed construction returns a zero request", func(t *testing.T) {
		r, err := newTrackingRequest("")

		require.Error(t, err)
		assert.ErrorIs(t, r.Validate(), errTrackingRequestIsNotConstructed)
	})

	t.Run("copies keep the constructed state", func(t *testing.T) {
		r, err := newTrackingRequest("NCS-1718000000123-AB12C")
		require.NoError(t, err)

		copied := r
		assert.NoError(t, copied.Validate())
	})
}
