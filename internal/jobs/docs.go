// Package jobs provides scheduled background tasks for order status automation.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OrderChangeRelayJob - Drains the orders change feed and runs the status automation for every change
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(automateHandler, changeFeed, jobs.RelayOptions{}, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The relay uses the cron expression "* * * * * *" by default, so changes are
// picked up within a second. Overlapping ticks are skipped.
//
// # Error Handling
//
// - A change stays pending when the automation returns an error and is retried on the next tick
// - Changes that cannot form a command are logged and acknowledged
// - Failed job starts are reported by StartAll
package jobs
