package jobs

import (
	"context"
	"log/slog"

	"storefront/internal/core/application/usecases/commands"
)

type outboxRelayer interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (commands.RelayOutboxResult, error)
}

// OutboxRelayJob publishes due outbox messages on every tick, one batch per tick.
type OutboxRelayJob struct {
	*scheduledJob
	handler   outboxRelayer
	batchSize int
}

// NewOutboxRelayJob creates the relay job. batchSize bounds the messages handled per tick.
func NewOutboxRelayJob(schedule string, handler outboxRelayer, batchSize int, logger *slog.Logger) *OutboxRelayJob {
	return &OutboxRelayJob{
		scheduledJob: newScheduledJob("outbox_relay_job", schedule, logger),
		handler:      handler,
		batchSize:    batchSize,
	}
}

// Start schedules the relay. An invalid schedule or batch size is reported here.
func (j *OutboxRelayJob) Start() error {
	if _, err := commands.NewRelayOutboxCommand(j.batchSize); err != nil {
		return err
	}
	return j.start(j.run)
}

// Stop stops the relay job and waits for a running pass.
func (j *OutboxRelayJob) Stop() {
	j.stop()
}

func (j *OutboxRelayJob) run(ctx context.Context) {
	cmd, err := commands.NewRelayOutboxCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job misconfigured", "error", err)
		return
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err)
		return
	}

	switch {
	case result.Failed > 0:
		j.logger.WarnContext(ctx, "Outbox relay pass had failures",
			"published", result.Published, "failed", result.Failed, "held", result.Held)
	case result.Published > 0:
		j.logger.InfoContext(ctx, "Outbox relay pass", "published", result.Published)
	}
}
