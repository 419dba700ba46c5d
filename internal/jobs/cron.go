package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// cronLogger adapts slog to the logger interface of robfig/cron.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}

// scheduledJob owns one cron scheduler running a single function.
type scheduledJob struct {
	name     string
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

func newScheduledJob(name, schedule string, logger *slog.Logger) *scheduledJob {
	logger = logger.With("component", name)
	cl := cronLogger{logger: logger}
	ctx, cancel := context.WithCancel(context.Background())

	return &scheduledJob{
		name:     name,
		schedule: schedule,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (j *scheduledJob) start(run func(ctx context.Context)) error {
	if _, err := j.cron.AddFunc(j.schedule, func() { run(j.ctx) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(j.ctx, "Job started", "schedule", j.schedule)
	return nil
}

// stop cancels the running pass, if any, and waits for it to return.
func (j *scheduledJob) stop() {
	j.cancel()
	<-j.cron.Stop().Done()
	j.logger.Info("Job stopped")
}
