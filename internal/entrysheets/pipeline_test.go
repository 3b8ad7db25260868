package entrysheets_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	clocktesting "k8s.io/utils/clock/testing"

	"github.com/clevercanary/atlas-sync/internal/entrysheets"
	"github.com/clevercanary/atlas-sync/internal/entrysheets/mocks"
)

var syncTime = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

type recordingReporter struct {
	mu      sync.Mutex
	reports map[string]error
}

func (r *recordingReporter) ReportSyncError(_ context.Context, target entrysheets.Target, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.reports == nil {
		r.reports = map[string]error{}
	}
	r.reports[target.SheetID] = err
}

func strPtr(s string) *string { return &s }

func int64Ptr(n int64) *int64 { return &n }

func bySheetID(validations []entrysheets.Validation) map[string]entrysheets.Validation {
	out := make(map[string]entrysheets.Validation, len(validations))
	for _, v := range validations {
		out[v.EntrySheetID] = v
	}
	return out
}

func waitDone(t *testing.T, h *entrysheets.Handle) (entrysheets.SyncSummary, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return h.Wait(ctx)
}

func TestPipelineSettlesEveryTarget(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	store := mocks.NewMockStore(ctrl)
	tx := mocks.NewMockTx(ctrl)

	study := uuid.New()
	targets := []entrysheets.Target{
		{SourceStudyID: study, SheetID: "sheet-a"},
		{SourceStudyID: study, SheetID: "sheet-b"},
		{SourceStudyID: study, SheetID: "sheet-c"},
	}

	client.EXPECT().ValidateSheet(gomock.Any(), "sheet-a").Return(&entrysheets.Response{
		SheetTitle:  strPtr("Donors"),
		LastUpdated: &entrysheets.LastUpdated{By: "Ada", Date: "2025-03-01T00:00:00Z"},
		Errors:      []entrysheets.ErrorInfo{{Message: "bad age", Row: int64Ptr(4)}},
		Summary:     &entrysheets.Summary{DonorCount: int64Ptr(10), ErrorCount: 1},
	}, nil)
	client.EXPECT().ValidateSheet(gomock.Any(), "sheet-b").Return(&entrysheets.Response{
		Error: strPtr("Sheet not shared with the service account"),
	}, nil)
	client.EXPECT().ValidateSheet(gomock.Any(), "sheet-c").Return(nil, errors.New("connection reset"))

	var inserted []entrysheets.Validation
	store.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().ListStudySheets(gomock.Any(), []uuid.UUID{study}).Return(targets, nil)
	tx.EXPECT().ListExistingSheetIDs(gomock.Any(), gomock.Len(3)).Return([]string{}, nil)
	tx.EXPECT().InsertValidations(gomock.Any(), gomock.Len(3)).DoAndReturn(
		func(_ context.Context, v []entrysheets.Validation) (int64, error) {
			inserted = v
			return int64(len(v)), nil
		})
	tx.EXPECT().Commit(gomock.Any()).Return(nil)
	tx.EXPECT().Rollback(gomock.Any()).Return(nil)

	reporter := &recordingReporter{}
	pipeline := entrysheets.NewPipeline(client, store,
		entrysheets.WithReporter(reporter),
		entrysheets.WithClock(clocktesting.NewFakePassiveClock(syncTime)),
		entrysheets.WithConcurrency(2))

	summary, err := waitDone(t, pipeline.StartBulkSync(context.Background(), targets))
	require.NoError(t, err)
	assert.Equal(t, entrysheets.SyncSummary{Targets: 3, Failed: 2, Inserted: 3}, summary)

	require.Len(t, inserted, 3)
	rows := bySheetID(inserted)

	a := rows["sheet-a"]
	assert.Equal(t, "Donors", *a.EntrySheetTitle)
	assert.Equal(t, "Ada", a.LastUpdated.By)
	assert.Equal(t, int64(1), a.ValidationSummary.ErrorCount)
	assert.Equal(t, int64(10), *a.ValidationSummary.DonorCount)
	assert.Equal(t, syncTime, a.LastSynced)

	b := rows["sheet-b"]
	assert.Nil(t, b.EntrySheetTitle)
	assert.Nil(t, b.LastUpdated)
	require.Len(t, b.ValidationReport, 1)
	assert.Equal(t, "Sheet not shared with the service account", b.ValidationReport[0].Message)
	assert.Equal(t, entrysheets.Summary{ErrorCount: 1}, b.ValidationSummary)

	c := rows["sheet-c"]
	require.Len(t, c.ValidationReport, 1)
	assert.Equal(t, "connection reset", c.ValidationReport[0].Message)
	assert.Nil(t, c.ValidationReport[0].Row)
	assert.Equal(t, study, c.SourceStudyID)

	assert.Len(t, reporter.reports, 2)
	assert.Contains(t, reporter.reports, "sheet-b")
	assert.Contains(t, reporter.reports, "sheet-c")
}

func TestPipelineSplitsUpdatesAndInserts(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	store := mocks.NewMockStore(ctrl)
	tx := mocks.NewMockTx(ctrl)

	study := uuid.New()
	known := entrysheets.Target{SourceStudyID: study, SheetID: "known"}
	fresh := entrysheets.Target{SourceStudyID: study, SheetID: "fresh"}
	removed := entrysheets.Target{SourceStudyID: study, SheetID: "removed"}

	client.EXPECT().ValidateSheet(gomock.Any(), gomock.Any()).Return(&entrysheets.Response{Errors: []entrysheets.ErrorInfo{}}, nil).Times(3)

	store.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().ListStudySheets(gomock.Any(), []uuid.UUID{study}).Return([]entrysheets.Target{known, fresh}, nil)
	tx.EXPECT().ListExistingSheetIDs(gomock.Any(), []string{"known", "fresh"}).Return([]string{"known"}, nil)
	tx.EXPECT().UpdateValidations(gomock.Any(), gomock.Len(1)).DoAndReturn(
		func(_ context.Context, v []entrysheets.Validation) (int64, error) {
			assert.Equal(t, "known", v[0].EntrySheetID)
			assert.Equal(t, entrysheets.Summary{ErrorCount: 0}, v[0].ValidationSummary)
			return 1, nil
		})
	tx.EXPECT().InsertValidations(gomock.Any(), gomock.Len(1)).DoAndReturn(
		func(_ context.Context, v []entrysheets.Validation) (int64, error) {
			assert.Equal(t, "fresh", v[0].EntrySheetID)
			return 1, nil
		})
	tx.EXPECT().Commit(gomock.Any()).Return(nil)
	tx.EXPECT().Rollback(gomock.Any()).Return(nil)

	pipeline := entrysheets.NewPipeline(client, store, entrysheets.WithReporter(&recordingReporter{}))
	summary, err := pipeline.Sync(context.Background(), []entrysheets.Target{known, fresh, removed})
	require.NoError(t, err)
	assert.Equal(t, entrysheets.SyncSummary{Targets: 3, Skipped: 1, Inserted: 1, Updated: 1}, summary)
}

func TestPipelineNothingListed(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	store := mocks.NewMockStore(ctrl)
	tx := mocks.NewMockTx(ctrl)

	target := entrysheets.Target{SourceStudyID: uuid.New(), SheetID: "gone"}
	client.EXPECT().ValidateSheet(gomock.Any(), "gone").Return(&entrysheets.Response{}, nil)
	store.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().ListStudySheets(gomock.Any(), gomock.Any()).Return(nil, nil)
	tx.EXPECT().Rollback(gomock.Any()).Return(nil)

	pipeline := entrysheets.NewPipeline(client, store)
	summary, err := pipeline.Sync(context.Background(), []entrysheets.Target{target})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Skipped)
	assert.Zero(t, summary.Inserted)
}

func TestPipelineNoTargets(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	pipeline := entrysheets.NewPipeline(mocks.NewMockClient(ctrl), mocks.NewMockStore(ctrl))

	summary, err := waitDone(t, pipeline.StartBulkSync(context.Background(), nil))
	require.NoError(t, err)
	assert.Equal(t, entrysheets.SyncSummary{}, summary)
}

func TestPipelineStorageFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	store := mocks.NewMockStore(ctrl)
	tx := mocks.NewMockTx(ctrl)

	study := uuid.New()
	target := entrysheets.Target{SourceStudyID: study, SheetID: "s"}
	client.EXPECT().ValidateSheet(gomock.Any(), "s").Return(&entrysheets.Response{}, nil)
	store.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().ListStudySheets(gomock.Any(), gomock.Any()).Return([]entrysheets.Target{target}, nil)
	tx.EXPECT().ListExistingSheetIDs(gomock.Any(), gomock.Any()).Return(nil, nil)
	tx.EXPECT().InsertValidations(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("disk full"))
	tx.EXPECT().Rollback(gomock.Any()).Return(nil)

	pipeline := entrysheets.NewPipeline(client, store)
	_, err := waitDone(t, pipeline.StartBulkSync(context.Background(), []entrysheets.Target{target}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestStartBulkSyncReturnsBeforeFetches(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	store := mocks.NewMockStore(ctrl)
	tx := mocks.NewMockTx(ctrl)

	release := make(chan struct{})
	target := entrysheets.Target{SourceStudyID: uuid.New(), SheetID: "slow"}
	client.EXPECT().ValidateSheet(gomock.Any(), "slow").DoAndReturn(
		func(context.Context, string) (*entrysheets.Response, error) {
			<-release
			return &entrysheets.Response{}, nil
		})
	store.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().ListStudySheets(gomock.Any(), gomock.Any()).Return(nil, nil)
	tx.EXPECT().Rollback(gomock.Any()).Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	handle := entrysheets.NewPipeline(client, store).StartBulkSync(ctx, []entrysheets.Target{target})
	cancel()

	select {
	case <-handle.Done():
		t.Fatal("sync completed before the fetch was released")
	default:
	}

	close(release)
	_, err := waitDone(t, handle)
	require.NoError(t, err)
}

func TestHandleWaitHonorsContext(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	store := mocks.NewMockStore(ctrl)
	tx := mocks.NewMockTx(ctrl)

	release := make(chan struct{})
	client.EXPECT().ValidateSheet(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, string) (*entrysheets.Response, error) {
			<-release
			return &entrysheets.Response{}, nil
		})
	store.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().ListStudySheets(gomock.Any(), gomock.Any()).Return(nil, nil)
	tx.EXPECT().Rollback(gomock.Any()).Return(nil)

	handle := entrysheets.NewPipeline(client, store).StartBulkSync(context.Background(),
		[]entrysheets.Target{{SourceStudyID: uuid.New(), SheetID: "x"}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := handle.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
	_, err = waitDone(t, handle)
	require.NoError(t, err)
}

func TestStartAtlasSync(t *testing.T) {
	t.Parallel()

	atlasID := uuid.New()

	tests := []struct {
		name      string
		targets   []entrysheets.Target
		listErr   error
		wantErrIs error
	}{
		{
			name:      "missing atlas",
			listErr:   entrysheets.ErrNotFound,
			wantErrIs: entrysheets.ErrNotFound,
		},
		{
			name: "atlas without sheets",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			store := mocks.NewMockStore(ctrl)
			store.EXPECT().ListAtlasTargets(gomock.Any(), atlasID).Return(tt.targets, tt.listErr)

			pipeline := entrysheets.NewPipeline(mocks.NewMockClient(ctrl), store)
			handle, err := pipeline.StartAtlasSync(context.Background(), atlasID)
			if tt.wantErrIs != nil {
				require.ErrorIs(t, err, tt.wantErrIs)
				assert.Nil(t, handle)
				return
			}
			require.NoError(t, err)
			_, err = waitDone(t, handle)
			require.NoError(t, err)
		})
	}
}

func TestStartSingleSync(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	store := mocks.NewMockStore(ctrl)
	tx := mocks.NewMockTx(ctrl)

	atlasID, validationID := uuid.New(), uuid.New()
	target := entrysheets.Target{SourceStudyID: uuid.New(), SheetID: "one"}

	store.EXPECT().GetValidationTarget(gomock.Any(), atlasID, validationID).Return(target, nil)
	client.EXPECT().ValidateSheet(gomock.Any(), "one").Return(&entrysheets.Response{}, nil)
	store.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().ListStudySheets(gomock.Any(), []uuid.UUID{target.SourceStudyID}).Return([]entrysheets.Target{target}, nil)
	tx.EXPECT().ListExistingSheetIDs(gomock.Any(), []string{"one"}).Return([]string{"one"}, nil)
	tx.EXPECT().UpdateValidations(gomock.Any(), gomock.Len(1)).Return(int64(1), nil)
	tx.EXPECT().Commit(gomock.Any()).Return(nil)
	tx.EXPECT().Rollback(gomock.Any()).Return(nil)

	handle, err := entrysheets.NewPipeline(client, store).StartSingleSync(context.Background(), atlasID, validationID)
	require.NoError(t, err)
	summary, err := waitDone(t, handle)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Updated)

	store.EXPECT().GetValidationTarget(gomock.Any(), atlasID, gomock.Any()).Return(entrysheets.Target{}, entrysheets.ErrNotFound)
	_, err = entrysheets.NewPipeline(client, store).StartSingleSync(context.Background(), atlasID, uuid.New())
	assert.ErrorIs(t, err, entrysheets.ErrNotFound)
}
