// Package jobs provides scheduled background tasks for ParcelMyBox.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OverdueBillingJob - marks PENDING bills and invoices whose due date has
// passed as OVERDUE. Runs every ten minutes unless OVERDUE_SWEEP_SCHEDULE
// says otherwise.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(markOverdueHandler, cfg.OverdueSweepSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// The same sweep is available on demand through "manage mark-overdue".
//
// # Error Handling
//
// A failed sweep is logged and retried on the next tick. A job that fails to
// start stops any jobs already running.
package jobs
