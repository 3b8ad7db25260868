package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMeterProvider(t *testing.T) (*sdkmetric.MeterProvider, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	return mp, reader
}

// collectMetricNames returns the names of the metrics recorded under a meter scope
func collectMetricNames(t *testing.T, reader *sdkmetric.ManualReader, scopeName string) []string {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var names []string
	for _, scope := range rm.ScopeMetrics {
		if scope.Scope.Name != scopeName {
			continue
		}
		for _, m := range scope.Metrics {
			names = append(names, m.Name)
		}
	}
	return names
}

func TestNilProviderReturnsNilMetrics(t *testing.T) {
	t.Parallel()

	refresh, err := NewRefreshMetrics(nil)
	require.NoError(t, err)
	assert.Nil(t, refresh)

	validation, err := NewValidationMetrics(nil)
	require.NoError(t, err)
	assert.Nil(t, validation)

	entrySheets, err := NewEntrySheetMetrics(nil)
	require.NoError(t, err)
	assert.Nil(t, entrySheets)

	syncMetrics, err := NewSyncMetrics(nil)
	require.NoError(t, err)
	assert.Nil(t, syncMetrics)

	httpMetrics, err := NewHTTPMetrics(nil)
	require.NoError(t, err)
	assert.Nil(t, httpMetrics)

	// Recording on nil metrics must not panic
	ctx := context.Background()
	refresh.RecordRefresh(ctx, "cellxgene", time.Second, true)
	validation.RecordEntityUpdate(ctx, "SOURCE_STUDY", false)
	validation.RecordRefreshAll(ctx, time.Second, true)
	entrySheets.RecordSheetValidated(ctx, true)
	entrySheets.RecordSync(ctx, time.Second, false)
	syncMetrics.RecordSyncDuration(ctx, "validations", time.Second, true)
	syncMetrics.RecordSkipped(ctx, "validations")
}

func TestRefreshMetrics_RecordRefresh(t *testing.T) {
	t.Parallel()

	mp, reader := newTestMeterProvider(t)
	metrics, err := NewRefreshMetrics(mp)
	require.NoError(t, err)

	metrics.RecordRefresh(context.Background(), "hca-projects", 3*time.Second, true)
	metrics.RecordRefresh(context.Background(), "cellxgene", time.Second, false)

	assert.Equal(t,
		[]string{"atlas_sync_mirror_refresh_duration_seconds"},
		collectMetricNames(t, reader, RefreshMetricsMeterName))
}

func TestValidationMetrics(t *testing.T) {
	t.Parallel()

	mp, reader := newTestMeterProvider(t)
	metrics, err := NewValidationMetrics(mp)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordEntityUpdate(ctx, "SOURCE_STUDY", true)
	metrics.RecordEntityUpdate(ctx, "SOURCE_DATASET", false)
	metrics.RecordRefreshAll(ctx, 12*time.Second, true)

	assert.ElementsMatch(t, []string{
		"atlas_sync_validation_refresh_duration_seconds",
		"atlas_sync_validation_entities_total",
		"atlas_sync_validation_entity_errors_total",
	}, collectMetricNames(t, reader, ValidationMetricsMeterName))
}

func TestEntrySheetMetrics(t *testing.T) {
	t.Parallel()

	mp, reader := newTestMeterProvider(t)
	metrics, err := NewEntrySheetMetrics(mp)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordSheetValidated(ctx, true)
	metrics.RecordSync(ctx, time.Second, true)

	assert.ElementsMatch(t, []string{
		"atlas_sync_entry_sheets_validated_total",
		"atlas_sync_entry_sheet_sync_duration_seconds",
	}, collectMetricNames(t, reader, EntrySheetMetricsMeterName))
}

func TestSyncMetrics(t *testing.T) {
	t.Parallel()

	mp, reader := newTestMeterProvider(t)
	metrics, err := NewSyncMetrics(mp)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordSyncDuration(ctx, "validations", time.Minute, false)
	metrics.RecordSkipped(ctx, "validations")

	assert.ElementsMatch(t, []string{
		"atlas_sync_job_duration_seconds",
		"atlas_sync_job_skipped_total",
	}, collectMetricNames(t, reader, SyncMetricsMeterName))
}
