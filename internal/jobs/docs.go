// Package jobs provides scheduled background tasks for the storefront.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations of the order service.
//
// # Available Jobs
//
// 1. OutboxRelayJob - Publishes stored order events to the notification topic
// 2. LowStockJob - Logs a warning for every inventory item at or below its threshold
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(schedules, relayHandler, relayBatchSize, lowStockHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are cron expressions with a leading seconds field, for example
// "*/5 * * * * *" for every five seconds. Every job is wrapped in
// SkipIfStillRunning, so a slow run is never overlapped by the next one.
//
// # Error Handling
//
// - Relay failures of single messages are recorded on the message and only counted here
// - Storage errors are logged and the next tick tries again
// - Failed job starts will stop any already running jobs
package jobs
