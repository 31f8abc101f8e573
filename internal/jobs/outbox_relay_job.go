package jobs

import (
	"context"
	"log/slog"

	"vendorbot/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultOutboxRelaySchedule runs the relay every 30 seconds.
const DefaultOutboxRelaySchedule = "*/30 * * * * *"

type outboxRelayHandler interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (commands.RelayOutboxResult, error)
}

// OutboxRelayJob periodically resends outbox notifications whose first handoff
// did not complete.
type OutboxRelayJob struct {
	handler  outboxRelayHandler
	cmd      commands.RelayOutboxCommand
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOutboxRelayJob creates the relay job. An empty schedule falls back to
// DefaultOutboxRelaySchedule; the expression uses the six-field format with seconds.
func NewOutboxRelayJob(
	handler outboxRelayHandler,
	cmd commands.RelayOutboxCommand,
	schedule string,
	logger *slog.Logger,
) *OutboxRelayJob {
	if schedule == "" {
		schedule = DefaultOutboxRelaySchedule
	}
	return &OutboxRelayJob{
		handler:  handler,
		cmd:      cmd,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "outbox_relay_job"),
	}
}

func (j *OutboxRelayJob) Name() string {
	return "outbox relay"
}

// Start registers the relay with its schedule and starts the scheduler.
func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.Run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// Run executes one relay pass. Failures are logged; the next tick retries.
func (j *OutboxRelayJob) Run() {
	ctx := context.Background()

	result, err := j.handler.Handle(ctx, j.cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err)
		return
	}

	if result.Due > 0 {
		j.logger.InfoContext(ctx, "Outbox relay pass finished",
			"due", result.Due,
			"delivered", result.Delivered,
			"failed", result.Failed)
	}
}

// Stop stops the scheduler and waits for a running pass to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
