package sync_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/clevercanary/atlas-sync/internal/refresh"
	"github.com/clevercanary/atlas-sync/internal/status"
	"github.com/clevercanary/atlas-sync/internal/sync"
	"github.com/clevercanary/atlas-sync/internal/sync/mocks"
	"github.com/clevercanary/atlas-sync/internal/validation"
)

type noResolver struct{}

func (noResolver) ProjectIDByDOI(context.Context, []string) (string, error)    { return "", nil }
func (noResolver) CollectionIDByDOI(context.Context, []string) (string, error) { return "", nil }

func TestReasonShouldSync(t *testing.T) {
	t.Parallel()

	tests := []struct {
		reason sync.Reason
		want   bool
		str    string
	}{
		{reason: sync.ReasonAlreadyInProgress, want: false, str: "sync-already-in-progress"},
		{reason: sync.ReasonMirrorsNotReady, want: false, str: "mirrors-not-ready"},
		{reason: sync.ReasonUpToDate, want: false, str: "up-to-date"},
		{reason: sync.ReasonNeverSynced, want: true, str: "never-synced"},
		{reason: sync.ReasonPreviousFailed, want: true, str: "previous-sync-failed"},
		{reason: sync.ReasonMirrorsRefreshed, want: true, str: "mirrors-refreshed"},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.reason.ShouldSync())
			assert.Equal(t, tt.str, tt.reason.String())
		})
	}
	assert.Equal(t, "unknown", sync.Reason(42).String())
}

func TestDefaultSyncManager_ShouldSync(t *testing.T) {
	t.Parallel()

	synced := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		syncStatus *status.SyncStatus
		allReady   bool
		refreshed  bool
		want       sync.Reason
	}{
		{
			name:       "already syncing",
			syncStatus: &status.SyncStatus{Phase: status.SyncPhaseSyncing},
			allReady:   true,
			refreshed:  true,
			want:       sync.ReasonAlreadyInProgress,
		},
		{
			name:       "mirrors not ready",
			syncStatus: &status.SyncStatus{Phase: status.SyncPhaseFailed},
			refreshed:  true,
			want:       sync.ReasonMirrorsNotReady,
		},
		{
			name:       "mirrors refreshed",
			syncStatus: &status.SyncStatus{Phase: status.SyncPhaseComplete, LastSyncTime: &synced},
			allReady:   true,
			refreshed:  true,
			want:       sync.ReasonMirrorsRefreshed,
		},
		{
			name:     "no status",
			allReady: true,
			want:     sync.ReasonNeverSynced,
		},
		{
			name:       "never completed",
			syncStatus: &status.SyncStatus{Phase: status.SyncPhaseFailed},
			allReady:   true,
			want:       sync.ReasonNeverSynced,
		},
		{
			name:       "previous failure",
			syncStatus: &status.SyncStatus{Phase: status.SyncPhaseFailed, LastSyncTime: &synced},
			allReady:   true,
			want:       sync.ReasonPreviousFailed,
		},
		{
			name:       "up to date",
			syncStatus: &status.SyncStatus{Phase: status.SyncPhaseComplete, LastSyncTime: &synced},
			allReady:   true,
			want:       sync.ReasonUpToDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			mirrors := mocks.NewMockMirrors(ctrl)
			mirrors.EXPECT().AllReady().Return(tt.allReady).AnyTimes()

			m := sync.NewDefaultSyncManager(mirrors, mocks.NewMockValidator(ctrl), noResolver{}, noResolver{})
			assert.Equal(t, tt.want, m.ShouldSync(context.Background(), tt.syncStatus, tt.refreshed))
		})
	}
}

func TestDefaultSyncManager_PerformSync(t *testing.T) {
	t.Parallel()

	notReady := fmt.Errorf("atlas 1: %w", refresh.ErrNotReady)

	tests := []struct {
		name       string
		setup      func(*mocks.MockMirrors, *mocks.MockValidator)
		wantResult *sync.Result
		wantReason string
	}{
		{
			name: "success",
			setup: func(mr *mocks.MockMirrors, v *mocks.MockValidator) {
				gomock.InOrder(
					mr.EXPECT().WaitUntilIdle(gomock.Any(), time.Minute).Return(nil),
					v.EXPECT().UpdateExternalIDs(gomock.Any(), gomock.Any(), gomock.Any()).Return(3, nil),
					v.EXPECT().RefreshAll(gomock.Any()).Return(&validation.RefreshSummary{
						SourceStudies:  4,
						SourceDatasets: 6,
						Writes:         5,
						AtlasesUpdated: 2,
					}, nil),
				)
			},
			wantResult: &sync.Result{EntityCount: 10, Writes: 5, ExternalIDsUpdated: 3, AtlasesUpdated: 2},
		},
		{
			name: "mirrors still refreshing",
			setup: func(mr *mocks.MockMirrors, _ *mocks.MockValidator) {
				mr.EXPECT().WaitUntilIdle(gomock.Any(), time.Minute).Return(errors.New("still refreshing"))
			},
			wantReason: sync.ReasonCodeMirrorsBusy,
		},
		{
			name: "external id update fails",
			setup: func(mr *mocks.MockMirrors, v *mocks.MockValidator) {
				mr.EXPECT().WaitUntilIdle(gomock.Any(), gomock.Any()).Return(nil)
				v.EXPECT().UpdateExternalIDs(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, errors.New("db down"))
			},
			wantReason: sync.ReasonCodeExternalIDsFailed,
		},
		{
			name: "mirror lost its snapshot",
			setup: func(mr *mocks.MockMirrors, v *mocks.MockValidator) {
				mr.EXPECT().WaitUntilIdle(gomock.Any(), gomock.Any()).Return(nil)
				v.EXPECT().UpdateExternalIDs(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, notReady)
			},
			wantReason: sync.ReasonCodeMirrorsNotReady,
		},
		{
			name: "validation refresh fails",
			setup: func(mr *mocks.MockMirrors, v *mocks.MockValidator) {
				mr.EXPECT().WaitUntilIdle(gomock.Any(), gomock.Any()).Return(nil)
				v.EXPECT().UpdateExternalIDs(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil)
				v.EXPECT().RefreshAll(gomock.Any()).Return(nil, errors.New("tx aborted"))
			},
			wantReason: sync.ReasonCodeValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			mirrors := mocks.NewMockMirrors(ctrl)
			validator := mocks.NewMockValidator(ctrl)
			tt.setup(mirrors, validator)

			m := sync.NewDefaultSyncManager(mirrors, validator, noResolver{}, noResolver{},
				sync.WithIdleWait(time.Minute))
			result, syncErr := m.PerformSync(context.Background())

			if tt.wantReason != "" {
				require.NotNil(t, syncErr)
				assert.Nil(t, result)
				assert.Equal(t, tt.wantReason, syncErr.Reason)
				assert.Equal(t, tt.wantReason == sync.ReasonCodeMirrorsNotReady, syncErr.NotReady())
				assert.Error(t, syncErr.Unwrap())
				return
			}
			require.Nil(t, syncErr)
			assert.Equal(t, tt.wantResult, result)
		})
	}
}
