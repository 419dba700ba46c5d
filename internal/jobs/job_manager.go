package jobs

import (
	"fmt"
	"log/slog"
)

// Schedules holds the cron expressions of the jobs, seconds field first.
type Schedules struct {
	OutboxRelay string
	LowStock    string
}

type job interface {
	Start() error
	Stop()
}

type namedJob struct {
	name string
	job  job
}

// JobManager starts the background jobs in order and stops them in reverse.
type JobManager struct {
	jobs []namedJob
}

// NewJobManager wires the outbox relay and the low stock report to their handlers.
func NewJobManager(
	schedules Schedules,
	relayHandler outboxRelayer,
	relayBatchSize int,
	lowStockHandler lowStockReader,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		jobs: []namedJob{
			{name: "outbox relay", job: NewOutboxRelayJob(schedules.OutboxRelay, relayHandler, relayBatchSize, logger)},
			{name: "low stock", job: NewLowStockJob(schedules.LowStock, lowStockHandler, logger)},
		},
	}
}

// StartAll starts every job. When one fails, the jobs started before it are
// stopped again and the error names the failing job.
func (jm *JobManager) StartAll() error {
	for i, j := range jm.jobs {
		if err := j.job.Start(); err != nil {
			stopAll(jm.jobs[:i])
			return fmt.Errorf("failed to start %s job: %w", j.name, err)
		}
	}
	return nil
}

// StopAll stops all jobs and waits for running executions to finish.
func (jm *JobManager) StopAll() {
	stopAll(jm.jobs)
}

func stopAll(jobs []namedJob) {
	for i := len(jobs) - 1; i >= 0; i-- {
		jobs[i].job.Stop()
	}
}
