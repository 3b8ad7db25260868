// Package state persists the status of background sync jobs.
package state

import (
	"context"

	"github.com/clevercanary/atlas-sync/internal/status"
)

// JobStateService provides methods for inspecting and updating the status of sync jobs.
//
//go:generate mockgen -destination=mocks/mock_job_state_service.go -package=mocks github.com/clevercanary/atlas-sync/internal/sync/state JobStateService
type JobStateService interface {
	// Initialize creates a status row for every named job and removes rows
	// for jobs that no longer exist. Jobs left running by a previous process
	// are marked failed. It is intended to be called at application startup.
	Initialize(ctx context.Context, jobNames []string) error
	// ListSyncStatuses lists the status of every job.
	ListSyncStatuses(ctx context.Context) (map[string]*status.SyncStatus, error)
	// GetSyncStatus returns the status of the named job.
	GetSyncStatus(ctx context.Context, jobName string) (*status.SyncStatus, error)
	// UpdateSyncStatus overrides the status of the named job.
	UpdateSyncStatus(ctx context.Context, jobName string, syncStatus *status.SyncStatus) error
	// UpdateStatusAtomically fetches the status of the named job, applies
	// testAndUpdateFn, and stores the result if the function reports a
	// change, all under a row lock. It returns whether the status changed.
	UpdateStatusAtomically(
		ctx context.Context,
		jobName string,
		testAndUpdateFn func(syncStatus *status.SyncStatus) bool,
	) (bool, error)
}
