package outbox

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Job runs the relay on a cron schedule with seconds precision. Runs never
// overlap; a tick that arrives while a batch is in flight is skipped.
type Job struct {
	relay    *Relay
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewJob(relay *Relay, schedule string, logger *slog.Logger) *Job {
	logger = logger.With("component", "outbox_job")
	return &Job{
		relay:    relay,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger,
	}
}

func (j *Job) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.tick); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox job started", "schedule", j.schedule)
	return nil
}

// Stop waits for an in-flight batch to finish.
func (j *Job) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox job stopped")
}

func (j *Job) tick() {
	ctx := context.Background()
	res, err := j.relay.RunOnce(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay run failed", "error", err)
		return
	}
	if res.Published > 0 || res.Failed > 0 {
		j.logger.InfoContext(ctx, "Outbox relay run", "published", res.Published, "failed", res.Failed, "dead_lettered", res.DeadLettered)
	}
}
