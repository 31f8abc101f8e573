// Package jobs provides scheduled background tasks for the vendor bot.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OutboxRelayJob - resends outbox notifications that are still pending after a grace
// period and marks them failed once the attempt limit is reached
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(jobs.NewOutboxRelayJob(relayHandler, relayCmd, schedule, logger))
//
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the six-field cron format with seconds. The relay defaults to
// "*/30 * * * * *" and skips a tick while the previous pass is still running.
//
// # Error Handling
//
// - Relay failures are logged and retried on the next tick
// - Failed job starts stop any already running jobs
package jobs
