package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/clevercanary/atlas-sync/internal/refresh"
	"github.com/clevercanary/atlas-sync/internal/status"
	"github.com/clevercanary/atlas-sync/internal/validation"
)

// JobValidations is the name of the job that refreshes validations from the mirrors
const JobValidations = "validations"

// Result contains the result of a successful sync operation
type Result struct {
	EntityCount        int
	Writes             int
	ExternalIDsUpdated int
	AtlasesUpdated     int64
}

// Reason encodes whether a sync is needed and why
type Reason int

// Reasons that indicate a sync is not needed
const (
	ReasonAlreadyInProgress Reason = iota
	ReasonMirrorsNotReady
	ReasonUpToDate
)

// Reasons that indicate a sync is needed
const (
	ReasonNeverSynced Reason = iota + 100
	ReasonPreviousFailed
	ReasonMirrorsRefreshed
)

// ShouldSync reports whether the reason calls for a sync
func (r Reason) ShouldSync() bool {
	return r >= ReasonNeverSynced
}

// String returns the reason as a kebab-case string
func (r Reason) String() string {
	switch r {
	case ReasonAlreadyInProgress:
		return "sync-already-in-progress"
	case ReasonMirrorsNotReady:
		return "mirrors-not-ready"
	case ReasonUpToDate:
		return "up-to-date"
	case ReasonNeverSynced:
		return "never-synced"
	case ReasonPreviousFailed:
		return "previous-sync-failed"
	case ReasonMirrorsRefreshed:
		return "mirrors-refreshed"
	default:
		return "unknown"
	}
}

// Failure reasons carried by Error
const (
	ReasonCodeMirrorsBusy       = "MirrorsBusy"
	ReasonCodeMirrorsNotReady   = "MirrorsNotReady"
	ReasonCodeExternalIDsFailed = "ExternalIDUpdateFailed"
	ReasonCodeValidationFailed  = "ValidationRefreshFailed"
)

// DefaultIdleWait is the default bound on waiting for mirrors to stop refreshing
const DefaultIdleWait = 10 * time.Minute

// Error represents a structured sync failure
type Error struct {
	Err     error
	Message string
	Reason  string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotReady reports whether the sync was skipped because a mirror has no snapshot yet
func (e *Error) NotReady() bool {
	return e.Reason == ReasonCodeMirrorsNotReady
}

// Manager decides on and performs the validations job
//
//go:generate mockgen -destination=mocks/mock_manager.go -package=mocks github.com/clevercanary/atlas-sync/internal/sync Manager
type Manager interface {
	// ShouldSync determines if the job needs to run given its last status and
	// whether a mirror refresh completed since the last check
	ShouldSync(ctx context.Context, syncStatus *status.SyncStatus, mirrorsRefreshed bool) Reason

	// PerformSync updates external IDs and then refreshes every validation
	PerformSync(ctx context.Context) (*Result, *Error)
}

// Mirrors is the view of the mirror set used by the manager
//
//go:generate mockgen -destination=mocks/mock_mirrors.go -package=mocks github.com/clevercanary/atlas-sync/internal/sync Mirrors
type Mirrors interface {
	AllReady() bool
	WaitUntilIdle(ctx context.Context, maxWait time.Duration) error
}

// Validator runs the validation updates
//
//go:generate mockgen -destination=mocks/mock_validator.go -package=mocks github.com/clevercanary/atlas-sync/internal/sync Validator
type Validator interface {
	UpdateExternalIDs(ctx context.Context, projects validation.ProjectIDResolver, collections validation.CollectionIDResolver) (int, error)
	RefreshAll(ctx context.Context) (*validation.RefreshSummary, error)
}

// ManagerOption configures the default manager
type ManagerOption func(*defaultSyncManager)

// WithIdleWait bounds how long PerformSync waits for refreshing mirrors
func WithIdleWait(d time.Duration) ManagerOption {
	return func(m *defaultSyncManager) {
		if d > 0 {
			m.idleWait = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *defaultSyncManager) {
		m.logger = logger
	}
}

// defaultSyncManager is the default implementation of Manager
type defaultSyncManager struct {
	mirrors     Mirrors
	validator   Validator
	projects    validation.ProjectIDResolver
	collections validation.CollectionIDResolver
	idleWait    time.Duration
	logger      *slog.Logger
}

// NewDefaultSyncManager creates a new Manager
func NewDefaultSyncManager(
	mirrors Mirrors,
	validator Validator,
	projects validation.ProjectIDResolver,
	collections validation.CollectionIDResolver,
	opts ...ManagerOption,
) Manager {
	m := &defaultSyncManager{
		mirrors:     mirrors,
		validator:   validator,
		projects:    projects,
		collections: collections,
		idleWait:    DefaultIdleWait,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ShouldSync determines if the validations job needs to run
func (m *defaultSyncManager) ShouldSync(
	_ context.Context,
	syncStatus *status.SyncStatus,
	mirrorsRefreshed bool,
) Reason {
	if syncStatus != nil && syncStatus.Phase == status.SyncPhaseSyncing {
		return ReasonAlreadyInProgress
	}

	// Rules need every mirror, so running earlier would only hit NotReady
	if !m.mirrors.AllReady() {
		return ReasonMirrorsNotReady
	}

	if mirrorsRefreshed {
		return ReasonMirrorsRefreshed
	}
	if syncStatus == nil || syncStatus.LastSyncTime == nil {
		return ReasonNeverSynced
	}
	if syncStatus.Phase == status.SyncPhaseFailed {
		return ReasonPreviousFailed
	}
	return ReasonUpToDate
}

// PerformSync waits for the mirrors to settle, updates the external IDs of
// source studies, and refreshes all validations
func (m *defaultSyncManager) PerformSync(ctx context.Context) (*Result, *Error) {
	if err := m.mirrors.WaitUntilIdle(ctx, m.idleWait); err != nil {
		return nil, &Error{
			Err:     err,
			Message: fmt.Sprintf("Mirrors still refreshing: %v", err),
			Reason:  ReasonCodeMirrorsBusy,
		}
	}

	updated, err := m.validator.UpdateExternalIDs(ctx, m.projects, m.collections)
	if err != nil {
		return nil, m.syncError(err, "External ID update failed", ReasonCodeExternalIDsFailed)
	}

	summary, err := m.validator.RefreshAll(ctx)
	if err != nil {
		return nil, m.syncError(err, "Validation refresh failed", ReasonCodeValidationFailed)
	}

	return &Result{
		EntityCount:        summary.EntityCount(),
		Writes:             summary.Writes,
		ExternalIDsUpdated: updated,
		AtlasesUpdated:     summary.AtlasesUpdated,
	}, nil
}

// syncError maps NotReady to its own reason so a missing snapshot skips the
// run instead of counting as a failed validation
func (m *defaultSyncManager) syncError(err error, message, reason string) *Error {
	if errors.Is(err, refresh.ErrNotReady) {
		m.logger.Info("Skipping validation refresh until mirrors are ready", "error", err)
		return &Error{
			Err:     err,
			Message: fmt.Sprintf("Mirrors not ready: %v", err),
			Reason:  ReasonCodeMirrorsNotReady,
		}
	}
	m.logger.Error(message, "error", err)
	return &Error{
		Err:     err,
		Message: fmt.Sprintf("%s: %v", message, err),
		Reason:  reason,
	}
}
