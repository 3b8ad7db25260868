// Package sync decides when the validations job runs and performs it.
//
// The job updates the external IDs of published source studies from the
// mirrors and then refreshes the validations of every source study and source
// dataset, finishing with the per-atlas task counts.
//
// # Core Interfaces
//
//   - Manager: decides whether the job should run and performs it
//   - Mirrors: the readiness and idle view of the mirror set
//   - Validator: the validation engine operations the job calls
//
// # Coordinator Package
//
// The sync/coordinator subpackage schedules the job. It runs it after every
// successful mirror refresh and on a jittered interval, persisting progress
// through the sync/state package.
//
// # Sync Decision Making
//
// Manager.ShouldSync returns a Reason. Reasons below ReasonNeverSynced mean
// no run is needed:
//
//   - A run is already in progress
//   - A mirror has not produced its first snapshot
//   - The last run completed and no mirror refreshed since
//
// A run is needed when a mirror refresh completed, the job never completed,
// or the previous run failed.
//
// # Errors
//
// PerformSync returns an *Error with a reason code. An error caused by a
// mirror without data is reported as ReasonCodeMirrorsNotReady so callers
// can skip the run without treating it as a failure.
package sync
