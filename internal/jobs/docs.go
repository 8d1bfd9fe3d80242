// Package jobs provides scheduled background tasks for the dispatch service.
//
// This package implements cron-based polling using github.com/robfig/cron/v3.
// Document stores that cannot push changes (the postgres backend) are watched
// by re-reading on a fixed schedule instead.
//
// # Available Jobs
//
// Poller - a ports.Watcher that signals on every tick of an "@every <interval>"
// schedule. Live views treat each signal like a pushed change and re-run their
// projection.
//
// # Usage
//
// Pollers are handed out by JobManager, which also stops them at shutdown:
//
//	jobManager := jobs.NewJobManager(2*time.Second, logger.Named("jobs"))
//	defer jobManager.StopAll()
//
//	watcher, err := jobManager.Watch(ctx)
//	if err != nil {
//		return err
//	}
//	for range watcher.Changes() {
//		// re-read
//	}
//
// # Scheduling
//
// The cron instance is created with seconds enabled. Intervals below one
// second are rounded up to one second by the scheduler.
package jobs
