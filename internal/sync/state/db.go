package state

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clevercanary/atlas-sync/internal/db/sqlc"
	"github.com/clevercanary/atlas-sync/internal/status"
)

const (
	initialMessage     = "No previous sync status found"
	interruptedMessage = "Sync interrupted by restart"
)

type dbStatusService struct {
	pool *pgxpool.Pool
}

// ErrJobNotFound is returned when a sync job can't be found.
var ErrJobNotFound = errors.New("sync job not found")

// NewDBStateService creates a new database-backed job state service
func NewDBStateService(pool *pgxpool.Pool) JobStateService {
	return &dbStatusService{
		pool: pool,
	}
}

func (d *dbStatusService) Initialize(ctx context.Context, jobNames []string) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	queries := sqlc.New(d.pool).WithTx(tx)

	if len(jobNames) > 0 {
		statuses := make([]string, len(jobNames))
		messages := make([]string, len(jobNames))
		for i := range jobNames {
			statuses[i] = string(sqlc.SyncStatusFAILED)
			messages[i] = initialMessage
		}

		// New jobs start failed so the first check runs them
		err = queries.BulkInitializeSyncJobs(ctx, sqlc.BulkInitializeSyncJobsParams{
			Names:        jobNames,
			SyncStatuses: statuses,
			ErrorMsgs:    messages,
		})
		if err != nil {
			return err
		}
	}

	reset, err := queries.ResetInProgressSyncJobs(ctx, interruptedMessage)
	if err != nil {
		return err
	}
	if reset > 0 {
		slog.InfoContext(ctx, "Marked interrupted sync jobs as failed", "count", reset)
	}

	if err := queries.DeleteSyncJobsNotInList(ctx, nonNil(jobNames)); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (d *dbStatusService) ListSyncStatuses(ctx context.Context) (map[string]*status.SyncStatus, error) {
	rows, err := sqlc.New(d.pool).ListSyncJobs(ctx)
	if err != nil {
		return nil, err
	}

	result := make(map[string]*status.SyncStatus, len(rows))
	for _, row := range rows {
		result[row.Name] = dbJobToStatus(row)
	}
	return result, nil
}

func (d *dbStatusService) GetSyncStatus(ctx context.Context, jobName string) (*status.SyncStatus, error) {
	job, err := sqlc.New(d.pool).GetSyncJobByName(ctx, jobName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return dbJobToStatus(job), nil
}

func (d *dbStatusService) UpdateSyncStatus(ctx context.Context, jobName string, syncStatus *status.SyncStatus) error {
	return sqlc.New(d.pool).UpsertSyncJob(ctx, statusToUpsertParams(jobName, syncStatus))
}

func (d *dbStatusService) UpdateStatusAtomically(
	ctx context.Context,
	jobName string,
	testAndUpdateFn func(syncStatus *status.SyncStatus) bool,
) (bool, error) {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	queries := sqlc.New(d.pool).WithTx(tx)

	job, err := queries.GetSyncJobByNameForUpdate(ctx, jobName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrJobNotFound
		}
		return false, err
	}

	syncStatus := dbJobToStatus(job)
	if !testAndUpdateFn(syncStatus) {
		return false, tx.Commit(ctx)
	}

	if err := queries.UpsertSyncJob(ctx, statusToUpsertParams(jobName, syncStatus)); err != nil {
		return false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func statusToUpsertParams(jobName string, syncStatus *status.SyncStatus) sqlc.UpsertSyncJobParams {
	var errorMsg *string
	if syncStatus.Message != "" {
		errorMsg = &syncStatus.Message
	}
	return sqlc.UpsertSyncJobParams{
		Name:         jobName,
		SyncStatus:   syncPhaseToDBStatus(syncStatus.Phase),
		ErrorMsg:     errorMsg,
		StartedAt:    syncStatus.LastAttempt,
		EndedAt:      syncStatus.LastSyncTime,
		AttemptCount: int64(syncStatus.AttemptCount),
		EntityCount:  int64(syncStatus.EntityCount),
	}
}

// dbJobToStatus converts a database SyncJob to a status.SyncStatus
func dbJobToStatus(job sqlc.SyncJob) *status.SyncStatus {
	syncStatus := &status.SyncStatus{
		Phase:        dbSyncStatusToPhase(job.SyncStatus),
		LastAttempt:  job.StartedAt,
		LastSyncTime: job.EndedAt,
		AttemptCount: int(job.AttemptCount),
		EntityCount:  int(job.EntityCount),
	}
	if job.ErrorMsg != nil {
		syncStatus.Message = *job.ErrorMsg
	}
	return syncStatus
}

// dbSyncStatusToPhase converts database sync_status values to status.SyncPhase
func dbSyncStatusToPhase(dbStatus sqlc.SyncStatus) status.SyncPhase {
	switch dbStatus {
	case sqlc.SyncStatusINPROGRESS:
		return status.SyncPhaseSyncing
	case sqlc.SyncStatusCOMPLETED:
		return status.SyncPhaseComplete
	case sqlc.SyncStatusFAILED:
		return status.SyncPhaseFailed
	default:
		return status.SyncPhaseFailed
	}
}

// syncPhaseToDBStatus converts status.SyncPhase to database sync_status values
func syncPhaseToDBStatus(phase status.SyncPhase) sqlc.SyncStatus {
	switch phase {
	case status.SyncPhaseSyncing:
		return sqlc.SyncStatusINPROGRESS
	case status.SyncPhaseComplete:
		return sqlc.SyncStatusCOMPLETED
	case status.SyncPhaseFailed:
		return sqlc.SyncStatusFAILED
	default:
		return sqlc.SyncStatusFAILED
	}
}

func nonNil(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
