package commands

import (
	"context"
	"time"

	"storefront/internal/core/ports"
)

const (
	relayBaseBackoff = 30 * time.Second
	relayMaxBackoff  = time.Hour
)

// RelayOutboxResult summarizes one relay pass.
type RelayOutboxResult struct {
	Published int
	Failed    int
	// Held counts messages left due because an earlier message of the same order failed.
	Held int
}

// RelayOutboxCommandHandler delivers stored domain events to the notification collaborator.
//
// Messages are published one by one in id order, keyed by order number, so events of one
// order reach the topic in the order they happened. A failed message is retried later with
// exponential backoff: 2^attempts * 30s, capped at one hour. Later messages of the same order
// are held back in the pass, and FetchDue keeps them back until the failed one is due again.
// Delivery is at least once.
//
// Example:
//
//	handler := NewRelayOutboxCommandHandler(uowFactory, publisher, ports.SystemClock)
//	cmd, _ := NewRelayOutboxCommand(100)
//	result, err := handler.Handle(ctx, cmd)
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	clock      ports.Clock
}

func NewRelayOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
	clock ports.Clock,
) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle publishes every due message of one batch. Publishing errors are recorded on the
// message and counted in the result; only storage errors are returned.
func (h *RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (RelayOutboxResult, error) {
	var result RelayOutboxResult
	if err := cmd.Validate(); err != nil {
		return result, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return result, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	messages, err := outbox.FetchDue(ctx, h.clock(), cmd.BatchSize())
	if err != nil {
		return result, err
	}

	failedKeys := make(map[string]struct{})
	for _, msg := range messages {
		if err = ctx.Err(); err != nil {
			break
		}

		if _, blocked := failedKeys[msg.AggregateKey]; blocked {
			result.Held++
			continue
		}

		pubErr := h.publisher.Publish(ctx, ports.IntegrationEvent{
			ID:         msg.EventID.String(),
			Name:       msg.EventName,
			Key:        msg.AggregateKey,
			Payload:    msg.Payload,
			OccurredAt: msg.OccurredAt,
		})

		now := h.clock()
		if pubErr != nil {
			attempts := msg.Attempts + 1
			if err = outbox.MarkFailed(ctx, msg.ID, attempts, now.Add(RetryBackoff(attempts)), pubErr.Error()); err != nil {
				return result, err
			}
			failedKeys[msg.AggregateKey] = struct{}{}
			result.Failed++
			continue
		}

		if err = outbox.MarkPublished(ctx, msg.ID, now); err != nil {
			return result, err
		}
		result.Published++
	}

	if err = uow.Commit(ctx); err != nil {
		return result, err
	}

	return result, nil
}

// RetryBackoff returns the delay before the next delivery attempt after attempts failures.
func RetryBackoff(attempts int) time.Duration {
	if attempts < 0 {
		attempts = 0
	}

	backoff := relayBaseBackoff
	for i := 0; i < attempts; i++ {
		backoff *= 2
		if backoff >= relayMaxBackoff {
			return relayMaxBackoff
		}
	}
	return backoff
}
