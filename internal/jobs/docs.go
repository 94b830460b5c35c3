// Package jobs provides scheduled background tasks for the reservation system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required to keep inventory honest.
//
// # Available Jobs
//
// 1. InventoryMaintenanceJob - Runs at midnight to purge stale reservations,
// size the next purchase orders from the day's demand and receive ordered
// stock on supplier delivery days.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(maintenanceHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The maintenance job runs inside one unit of work; a failed sweep rolls
// back whole and is logged, the next midnight run covers the gap.
package jobs
