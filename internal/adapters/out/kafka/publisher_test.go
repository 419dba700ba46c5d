package kafka

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"storefront/internal/core/ports"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockWriter) Close() error {
	return m.Called().Error(0)
}

var testEvent = ports.IntegrationEvent{
	ID:         "0b7a3c4e-9a53-4f0e-9e41-6f1c0a9d2b11",
	Name:       "order.status_changed",
	Key:        "NCS-1718000000123-AB12C",
	Payload:    []byte(`{"status":"shipped"}`),
	OccurredAt: time.Date(2024, 6, 10, 6, 13, 20, 0, time.UTC),
}

func TestPublisher_Publish(t *testing.T) {
	writer := new(MockWriter)
	writer.On("WriteMessages", mock.Anything, mock.MatchedBy(func(msgs []kafka.Message) bool {
		if len(msgs) != 1 {
			return false
		}
		m := msgs[0]
		return string(m.Key) == testEvent.Key &&
			bytes.Equal(m.Value, testEvent.Payload) &&
			len(m.Headers) == 3 &&
			m.Headers[0].Key == headerEventType &&
			string(m.Headers[0].Value) == testEvent.Name &&
			m.Time.Equal(testEvent.OccurredAt)
	})).Return(nil).Once()

	p := newPublisher(writer, "order-notifications", slog.New(slog.DiscardHandler))

	require.NoError(t, p.Publish(context.Background(), testEvent))
	writer.AssertExpectations(t)
}

func TestPublisher_Publish_WrapsWriterError(t *testing.T) {
	brokerDown := errors.New("dial tcp: connection refused")
	writer := new(MockWriter)
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(brokerDown)

	p := newPublisher(writer, "order-notifications", slog.New(slog.DiscardHandler))
	err := p.Publish(context.Background(), testEvent)

	require.ErrorIs(t, err, brokerDown)
	assert.Contains(t, err.Error(), testEvent.Key)
}

func TestPublisher_Close(t *testing.T) {
	writer := new(MockWriter)
	writer.On("Close").Return(nil).Once()

	p := newPublisher(writer, "order-notifications", slog.New(slog.DiscardHandler))

	require.NoError(t, p.Close())
	writer.AssertExpectations(t)
}

func TestLogPublisher_Publish(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, p.Publish(context.Background(), testEvent))
	assert.Contains(t, buf.String(), `"order_number":"NCS-1718000000123-AB12C"`)
	assert.Contains(t, buf.String(), `"event":"order.status_changed"`)
}
