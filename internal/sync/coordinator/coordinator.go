package coordinator

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/clevercanary/atlas-sync/internal/status"
	pkgsync "github.com/clevercanary/atlas-sync/internal/sync"
	"github.com/clevercanary/atlas-sync/internal/sync/state"
	"github.com/clevercanary/atlas-sync/internal/telemetry"
)

const (
	// DefaultPollingInterval is the default base interval between mirror refresh checks
	DefaultPollingInterval = 10 * time.Minute
	// pollingJitterFraction bounds the random offset applied to the polling interval
	pollingJitterFraction = 4
)

// Coordinator manages background scheduling of mirror refreshes and the validations job
type Coordinator interface {
	// Start begins background coordination.
	// Blocks until context is cancelled or an unrecoverable error occurs
	Start(ctx context.Context) error

	// Stop gracefully stops the coordinator
	Stop() error
}

// Refresher refreshes the mirrors whose data is stale
type Refresher interface {
	RefreshAllIfNeeded(ctx context.Context) error
}

// Trigger collects requests to run the validations job. Mirrors fire it when
// a refresh replaces their data. It is safe for concurrent use.
type Trigger struct {
	pending atomic.Bool
	wake    chan struct{}
}

// NewTrigger creates a Trigger
func NewTrigger() *Trigger {
	return &Trigger{wake: make(chan struct{}, 1)}
}

// Fire requests a run and wakes the coordinator
func (t *Trigger) Fire() {
	t.pending.Store(true)
	select {
	case t.wake <- struct{}{}:
	default:
	}
}

// take reports whether a run was requested and clears the request
func (t *Trigger) take() bool {
	return t.pending.Swap(false)
}

// defaultCoordinator is the default implementation of Coordinator
type defaultCoordinator struct {
	manager   pkgsync.Manager
	refresher Refresher
	trigger   *Trigger
	interval  time.Duration
	logger    *slog.Logger

	// Lifecycle management
	cancelFunc context.CancelFunc
	done       chan struct{}

	statusSvc state.JobStateService

	syncMetrics *telemetry.SyncMetrics
}

// Option is a function that configures the coordinator
type Option func(*defaultCoordinator)

// WithSyncMetrics sets the sync metrics for the coordinator
func WithSyncMetrics(metrics *telemetry.SyncMetrics) Option {
	return func(c *defaultCoordinator) {
		c.syncMetrics = metrics
	}
}

// WithPollingInterval sets the base interval between mirror refresh checks
func WithPollingInterval(d time.Duration) Option {
	return func(c *defaultCoordinator) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithTrigger sets the trigger the coordinator listens on
func WithTrigger(t *Trigger) Option {
	return func(c *defaultCoordinator) {
		c.trigger = t
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *defaultCoordinator) {
		c.logger = logger
	}
}

// New creates a new coordinator with injected dependencies
func New(
	manager pkgsync.Manager,
	statusSvc state.JobStateService,
	refresher Refresher,
	opts ...Option,
) Coordinator {
	c := &defaultCoordinator{
		manager:   manager,
		statusSvc: statusSvc,
		refresher: refresher,
		interval:  DefaultPollingInterval,
		logger:    slog.Default(),
		done:      make(chan struct{}),
	}

	for _, opt := range opts {
		opt(c)
	}
	if c.trigger == nil {
		c.trigger = NewTrigger()
	}

	return c
}

// calculatePollingInterval returns the base interval with a random jitter of
// up to a quarter of it in either direction
func calculatePollingInterval(base time.Duration) time.Duration {
	jitter := base / pollingJitterFraction
	if jitter <= 0 {
		return base
	}
	//nolint:gosec // G404: Non-cryptographic randomness is sufficient for polling jitter
	jitterOffset := time.Duration(rand.Int64N(int64(2*jitter))) - jitter
	return base + jitterOffset
}

// Start begins background coordination
func (c *defaultCoordinator) Start(ctx context.Context) error {
	c.logger.Info("Starting background sync coordinator", "job", pkgsync.JobValidations)

	coordCtx, cancel := context.WithCancel(ctx)
	c.cancelFunc = cancel
	defer func() {
		close(c.done)
		c.logger.Info("Background sync coordinator shutting down")
	}()

	if err := c.statusSvc.Initialize(ctx, []string{pkgsync.JobValidations}); err != nil {
		return fmt.Errorf("failed to initialize sync job status: %w", err)
	}

	pollingInterval := calculatePollingInterval(c.interval)
	c.logger.Info("Configured coordinator polling interval",
		"base_interval", c.interval,
		"actual_interval", pollingInterval)

	ticker := time.NewTicker(pollingInterval)
	defer ticker.Stop()

	c.poll(coordCtx)

	for {
		select {
		case <-ticker.C:
			c.poll(coordCtx)
			ticker.Reset(calculatePollingInterval(c.interval))
		case <-c.trigger.wake:
			c.processSyncJob(coordCtx)
		case <-coordCtx.Done():
			c.logger.Info("Sync coordinator stopping")
			return nil
		}
	}
}

// Stop gracefully stops the coordinator
func (c *defaultCoordinator) Stop() error {
	if c.cancelFunc != nil {
		c.logger.Info("Stopping sync coordinator")
		c.cancelFunc()
		<-c.done
	}
	return nil
}

// poll refreshes stale mirrors and then checks the job
func (c *defaultCoordinator) poll(ctx context.Context) {
	if err := c.refresher.RefreshAllIfNeeded(ctx); err != nil {
		c.logger.Error("Mirror refresh check failed", "error", err)
	}
	c.processSyncJob(ctx)
}

// processSyncJob claims the job if it should run and performs it
func (c *defaultCoordinator) processSyncJob(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	refreshed := c.trigger.take()

	var previous status.SyncStatus
	claimed, err := c.statusSvc.UpdateStatusAtomically(ctx, pkgsync.JobValidations,
		func(syncStatus *status.SyncStatus) bool {
			reason := c.manager.ShouldSync(ctx, syncStatus, refreshed)
			if !reason.ShouldSync() {
				c.logger.Debug("Validations job does not need to run", "reason", reason.String())
				return false
			}
			c.logger.Info("Validations job needs to run", "reason", reason.String())

			previous = *syncStatus
			now := time.Now()
			syncStatus.Phase = status.SyncPhaseSyncing
			syncStatus.LastAttempt = &now
			syncStatus.AttemptCount++
			return true
		},
	)
	if err != nil {
		c.logger.Error("Error claiming sync job", "job", pkgsync.JobValidations, "error", err)
		if refreshed {
			c.trigger.pending.Store(true)
		}
		return
	}
	if !claimed {
		return
	}

	c.performSync(ctx, &previous)
}

// performSync runs the job and records its final status
func (c *defaultCoordinator) performSync(ctx context.Context, previous *status.SyncStatus) {
	jobName := pkgsync.JobValidations
	startTime := time.Now()

	// Set a default error here in case the function is killed by an unexpected error
	attemptedAt := startTime
	syncStatus := &status.SyncStatus{
		Phase:        status.SyncPhaseFailed,
		Message:      fmt.Sprintf("Unexpected failure while running job %s", jobName),
		LastAttempt:  &attemptedAt,
		AttemptCount: previous.AttemptCount + 1,
		LastSyncTime: previous.LastSyncTime,
		EntityCount:  previous.EntityCount,
	}
	defer func() {
		// The final status is written even when the coordinator is stopping
		if err := c.statusSvc.UpdateSyncStatus(context.WithoutCancel(ctx), jobName, syncStatus); err != nil {
			c.logger.Error("Error updating sync status", "job", jobName, "error", err)
		}
	}()

	c.logger.Info("Starting sync operation", "job", jobName)

	result, syncErr := c.manager.PerformSync(ctx)
	syncDuration := time.Since(startTime)

	switch {
	case syncErr != nil && syncErr.NotReady():
		// Not a failure of the job itself; keep the previous outcome
		syncStatus.Phase = previous.Phase
		syncStatus.Message = syncErr.Message
		syncStatus.AttemptCount = previous.AttemptCount
		c.syncMetrics.RecordSkipped(ctx, jobName)
	case syncErr != nil:
		syncStatus.Message = syncErr.Message
		c.logger.Error("Sync failed", "job", jobName, "reason", syncErr.Reason, "error", syncErr.Message)
		c.syncMetrics.RecordSyncDuration(ctx, jobName, syncDuration, false)
	default:
		now := time.Now()
		syncStatus.Phase = status.SyncPhaseComplete
		syncStatus.Message = "Sync completed successfully"
		syncStatus.LastSyncTime = &now
		syncStatus.AttemptCount = 0
		syncStatus.EntityCount = result.EntityCount
		c.logger.Info("Sync completed successfully",
			"job", jobName,
			"entity_count", result.EntityCount,
			"writes", result.Writes,
			"external_ids_updated", result.ExternalIDsUpdated,
			"atlases_updated", result.AtlasesUpdated,
			"duration", syncDuration)
		c.syncMetrics.RecordSyncDuration(ctx, jobName, syncDuration, true)
	}
}
