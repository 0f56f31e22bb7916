// Package jobs provides scheduled background tasks for the production service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules are six-field expressions (with seconds).
//
// # Available Jobs
//
// 1. OrderReconciliationJob - completes orders whose steps are all done but whose status lags behind
// 2. LineLoadJob - republishes the occupancy of every line to the metrics recorder
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(reconcileHandler, occupancyReader, recorder, jobs.Schedules{}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Both jobs log failures and try again on the next tick
// - Failed job starts will stop any already running jobs
package jobs
