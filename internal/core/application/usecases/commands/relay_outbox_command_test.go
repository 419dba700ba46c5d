package commands_test

import (
	"errors"
	"testing"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewRelayOutboxCommand(t *testing.T) {
	_, err := commands.NewRelayOutboxCommand(0)
	require.Error(t, err)

	_, err = commands.NewRelayOutboxCommand(commands.MaxRelayBatchSize + 1)
	require.Error(t, err)

	cmd, err := commands.NewRelayOutboxCommand(50)
	require.NoError(t, err)
	assert.Equal(t, 50, cmd.BatchSize())
}

func TestRetryBackoff(t *testing.T) {
	assert.Equal(t, 30*time.Second, commands.RetryBackoff(0))
	assert.Equal(t, time.Minute, commands.RetryBackoff(1))
	assert.Equal(t, 2*time.Minute, commands.RetryBackoff(2))
	assert.Equal(t, 32*time.Minute, commands.RetryBackoff(6))
	assert.Equal(t, time.Hour, commands.RetryBackoff(7))
	assert.Equal(t, time.Hour, commands.RetryBackoff(100))
}

func TestRelayOutboxCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewRelayOutboxCommand(10)

	okMsg := ports.OutboxMessage{
		ID:           1,
		EventID:      kernel.NewUUID(),
		EventName:    "order.created",
		AggregateKey: testOrderNumber,
		Payload:      []byte(`{"status":"pending_payment"}`),
		OccurredAt:   fixedNow,
	}
	failingMsg := ports.OutboxMessage{
		ID:           2,
		EventID:      kernel.NewUUID(),
		EventName:    "order.status_changed",
		AggregateKey: testOrderNumber,
		Payload:      []byte(`{"status":"payment_received"}`),
		OccurredAt:   fixedNow,
		Attempts:     1,
	}

	outbox := new(MockOutboxRepository)
	outbox.On("FetchDue", ctx, fixedNow, 10).Return([]ports.OutboxMessage{okMsg, failingMsg}, nil).Once()
	outbox.On("MarkPublished", ctx, int64(1), fixedNow).Return(nil).Once()
	outbox.On("MarkFailed", ctx, int64(2), 2, fixedNow.Add(2*time.Minute), "broker unavailable").Return(nil).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, mock.MatchedBy(func(e ports.IntegrationEvent) bool {
		return e.ID == okMsg.EventID.String() && e.Key == testOrderNumber && e.Name == "order.created"
	})).Return(nil).Once()
	publisher.On("Publish", ctx, mock.MatchedBy(func(e ports.IntegrationEvent) bool {
		return e.ID == failingMsg.EventID.String()
	})).Return(errors.New("broker unavailable")).Once()

	uow := new(MockOutboxUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OutboxRepository").Return(outbox).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOutboxUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRelayOutboxCommandHandler(factory, publisher, fixedClock)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.RelayOutboxResult{Published: 1, Failed: 1}, result)
	outbox.AssertExpectations(t)
	publisher.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRelayOutboxCommandHandler_Handle_FetchError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewRelayOutboxCommand(10)

	outbox := new(MockOutboxRepository)
	outbox.On("FetchDue", ctx, fixedNow, 10).Return([]ports.OutboxMessage(nil), errors.New("db down")).Once()
	uow := new(MockOutboxUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OutboxRepository").Return(outbox).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOutboxUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRelayOutboxCommandHandler(factory, new(MockEventPublisher), fixedClock)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestRelayOutboxCommandHandler_Handle_HoldsLaterEventsOfFailedOrder(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewRelayOutboxCommand(10)
	const otherOrder = "NCS-1718000000000-B2C3D"

	paid := ports.OutboxMessage{
		ID: 1, EventID: kernel.NewUUID(), EventName: "order.status_changed",
		AggregateKey: testOrderNumber, Payload: []byte(`{"status":"payment_received"}`), OccurredAt: fixedNow,
	}
	downloading := ports.OutboxMessage{
		ID: 2, EventID: kernel.NewUUID(), EventName: "order.status_changed",
		AggregateKey: testOrderNumber, Payload: []byte(`{"status":"files_downloading"}`), OccurredAt: fixedNow,
	}
	unrelated := ports.OutboxMessage{
		ID: 3, EventID: kernel.NewUUID(), EventName: "order.created",
		AggregateKey: otherOrder, Payload: []byte(`{"status":"pending_payment"}`), OccurredAt: fixedNow,
	}

	outbox := new(MockOutboxRepository)
	outbox.On("FetchDue", ctx, fixedNow, 10).Return([]ports.OutboxMessage{paid, downloading, unrelated}, nil).Once()
	outbox.On("MarkFailed", ctx, int64(1), 1, fixedNow.Add(time.Minute), "broker unavailable").Return(nil).Once()
	outbox.On("MarkPublished", ctx, int64(3), fixedNow).Return(nil).Once()

	var published []string
	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, mock.MatchedBy(func(e ports.IntegrationEvent) bool {
		return e.ID == paid.EventID.String()
	})).Return(errors.New("broker unavailable")).Once()
	publisher.On("Publish", ctx, mock.MatchedBy(func(e ports.IntegrationEvent) bool {
		return e.Key == otherOrder
	})).Run(func(args mock.Arguments) {
		published = append(published, args.Get(1).(ports.IntegrationEvent).ID)
	}).Return(nil).Once()

	uow := new(MockOutboxUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OutboxRepository").Return(outbox).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOutboxUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRelayOutboxCommandHandler(factory, publisher, fixedClock)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.RelayOutboxResult{Published: 1, Failed: 1, Held: 1}, result)
	assert.Equal(t, []string{unrelated.EventID.String()}, published)
	outbox.AssertNotCalled(t, "MarkPublished", ctx, int64(2), mock.Anything)
	outbox.AssertNotCalled(t, "MarkFailed", ctx, int64(2), mock.Anything, mock.Anything, mock.Anything)
	outbox.AssertExpectations(t)
	publisher.AssertExpectations(t)
}
