// Package status provides the status types reported by mirror refreshes and
// background sync jobs.
package status

import "time"

// RefreshActivity describes what a mirror is currently doing
type RefreshActivity string

const (
	// RefreshActivityNotRefreshing means no refresh is being evaluated or performed
	RefreshActivityNotRefreshing RefreshActivity = "NOT_REFRESHING"

	// RefreshActivityAttemptingRefresh means refresh parameters are being resolved
	// to decide whether a refresh is needed
	RefreshActivityAttemptingRefresh RefreshActivity = "ATTEMPTING_REFRESH"

	// RefreshActivityRefreshing means new data is being fetched
	RefreshActivityRefreshing RefreshActivity = "REFRESHING"
)

// RefreshOutcome is the result of the most recent refresh attempt
type RefreshOutcome string

const (
	// RefreshOutcomeNA means no refresh has resolved yet
	RefreshOutcomeNA RefreshOutcome = "NA"

	// RefreshOutcomeCompleted means the last refresh replaced the data
	RefreshOutcomeCompleted RefreshOutcome = "COMPLETED"

	// RefreshOutcomeFailed means the last refresh failed and prior data was kept
	RefreshOutcomeFailed RefreshOutcome = "FAILED"
)

// RefreshStatus is an observability snapshot of a mirror
type RefreshStatus struct {
	CurrentActivity RefreshActivity `json:"currentActivity"`
	ErrorMessage    string          `json:"errorMessage,omitempty"`
	LastAttemptedAt *time.Time      `json:"lastAttemptedAt,omitempty"`
	LastResolvedAt  *time.Time      `json:"lastResolvedAt,omitempty"`
	PreviousOutcome RefreshOutcome  `json:"previousOutcome"`
}

// SyncPhase represents the current phase of a background sync job
type SyncPhase string

const (
	// SyncPhaseSyncing means the job is currently running
	SyncPhaseSyncing SyncPhase = "Syncing"

	// SyncPhaseComplete means the job completed successfully
	SyncPhaseComplete SyncPhase = "Complete"

	// SyncPhaseFailed means the job failed
	SyncPhaseFailed SyncPhase = "Failed"
)

// SyncStatus represents the persisted state of a background sync job
type SyncStatus struct {
	// Phase represents the current phase of the job
	Phase SyncPhase `json:"phase"`

	// Message provides additional information about the status
	Message string `json:"message,omitempty"`

	// LastAttempt is the timestamp of the last run
	LastAttempt *time.Time `json:"lastAttempt,omitempty"`

	// AttemptCount is the number of runs since the last success
	AttemptCount int `json:"attemptCount,omitempty"`

	// LastSyncTime is the timestamp of the last successful run
	LastSyncTime *time.Time `json:"lastSyncTime,omitempty"`

	// EntityCount is the number of entities processed by the last successful run
	EntityCount int `json:"entityCount,omitempty"`
}
