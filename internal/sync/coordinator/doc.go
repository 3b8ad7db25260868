// Package coordinator schedules mirror refreshes and the validations job.
//
// On a jittered interval the coordinator asks every mirror to refresh if its
// data is stale and then checks whether the validations job should run. A
// Trigger wakes it between ticks; mirrors fire the trigger when a refresh
// replaces their data, so validations follow new mirror data promptly.
//
// # Core Interface
//
//	type Coordinator interface {
//	    Start(ctx context.Context) error  // Begin the background loop
//	    Stop() error                      // Graceful shutdown
//	}
//
// # Usage Example
//
//	trigger := coordinator.NewTrigger()
//	// pass refresh.WithOnRefreshSuccess(trigger.Fire) to each mirror
//
//	manager := sync.NewDefaultSyncManager(mirrorSet, engine, projects, collections)
//	coord := coordinator.New(manager, state.NewDBStateService(pool), mirrorSet,
//	    coordinator.WithTrigger(trigger))
//
//	go coord.Start(ctx)
//	defer coord.Stop()
//
// # Claiming the Job
//
// The job status row is claimed with JobStateService.UpdateStatusAtomically,
// so only one instance runs the job at a time. The final status is written
// when the run returns, keeping the time and entity count of the last
// successful run when a run fails.
package coordinator
