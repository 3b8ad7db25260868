package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	// RefreshMetricsMeterName is the name used for the mirror refresh metrics meter
	RefreshMetricsMeterName = "github.com/clevercanary/atlas-sync/refresh"

	// ValidationMetricsMeterName is the name used for the validation metrics meter
	ValidationMetricsMeterName = "github.com/clevercanary/atlas-sync/validation"

	// EntrySheetMetricsMeterName is the name used for the entry sheet sync metrics meter
	EntrySheetMetricsMeterName = "github.com/clevercanary/atlas-sync/entrysheets"

	// SyncMetricsMeterName is the name used for the background job metrics meter
	SyncMetricsMeterName = "github.com/clevercanary/atlas-sync/sync"
)

// RefreshMetrics holds the instruments for mirror refreshes
type RefreshMetrics struct {
	refreshDuration metric.Float64Histogram
}

// NewRefreshMetrics creates a new RefreshMetrics instance with the given meter provider.
// If provider is nil, it returns nil (no-op metrics).
func NewRefreshMetrics(provider metric.MeterProvider) (*RefreshMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(RefreshMetricsMeterName)

	refreshDuration, err := meter.Float64Histogram(
		"atlas_sync_mirror_refresh_duration_seconds",
		metric.WithDescription("Duration of external mirror refreshes in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.5, 1, 2.5, 5, 10, 30, 60, 120, 300),
	)
	if err != nil {
		return nil, err
	}

	return &RefreshMetrics{refreshDuration: refreshDuration}, nil
}

// RecordRefresh records the duration and outcome of a mirror fetch
func (m *RefreshMetrics) RecordRefresh(ctx context.Context, mirror string, duration time.Duration, success bool) {
	if m == nil || m.refreshDuration == nil {
		return
	}

	m.refreshDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("mirror", mirror),
		attribute.Bool("success", success),
	))
}

// ValidationMetrics holds the instruments for validation refreshes
type ValidationMetrics struct {
	refreshDuration  metric.Float64Histogram
	entitiesUpdated  metric.Int64Counter
	validationErrors metric.Int64Counter
}

// NewValidationMetrics creates a new ValidationMetrics instance with the given meter provider.
// If provider is nil, it returns nil (no-op metrics).
func NewValidationMetrics(provider metric.MeterProvider) (*ValidationMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(ValidationMetricsMeterName)

	refreshDuration, err := meter.Float64Histogram(
		"atlas_sync_validation_refresh_duration_seconds",
		metric.WithDescription("Duration of full validation refreshes in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300),
	)
	if err != nil {
		return nil, err
	}

	entitiesUpdated, err := meter.Int64Counter(
		"atlas_sync_validation_entities_total",
		metric.WithDescription("Number of entities whose validations were reconciled"),
		metric.WithUnit("{entity}"),
	)
	if err != nil {
		return nil, err
	}

	validationErrors, err := meter.Int64Counter(
		"atlas_sync_validation_entity_errors_total",
		metric.WithDescription("Number of entities whose validation update failed"),
		metric.WithUnit("{entity}"),
	)
	if err != nil {
		return nil, err
	}

	return &ValidationMetrics{
		refreshDuration:  refreshDuration,
		entitiesUpdated:  entitiesUpdated,
		validationErrors: validationErrors,
	}, nil
}

// RecordEntityUpdate counts one reconciled entity of the given type
func (m *ValidationMetrics) RecordEntityUpdate(ctx context.Context, entityType string, success bool) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("entity_type", entityType))
	if success {
		m.entitiesUpdated.Add(ctx, 1, attrs)
		return
	}
	m.validationErrors.Add(ctx, 1, attrs)
}

// RecordRefreshAll records the duration of a full validation refresh
func (m *ValidationMetrics) RecordRefreshAll(ctx context.Context, duration time.Duration, success bool) {
	if m == nil || m.refreshDuration == nil {
		return
	}

	m.refreshDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.Bool("success", success)))
}

// EntrySheetMetrics holds the instruments for entry sheet validation syncs
type EntrySheetMetrics struct {
	sheetsValidated metric.Int64Counter
	syncDuration    metric.Float64Histogram
}

// NewEntrySheetMetrics creates a new EntrySheetMetrics instance with the given meter provider.
// If provider is nil, it returns nil (no-op metrics).
func NewEntrySheetMetrics(provider metric.MeterProvider) (*EntrySheetMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(EntrySheetMetricsMeterName)

	sheetsValidated, err := meter.Int64Counter(
		"atlas_sync_entry_sheets_validated_total",
		metric.WithDescription("Number of entry sheets sent to the validation tools"),
		metric.WithUnit("{sheet}"),
	)
	if err != nil {
		return nil, err
	}

	syncDuration, err := meter.Float64Histogram(
		"atlas_sync_entry_sheet_sync_duration_seconds",
		metric.WithDescription("Duration of bulk entry sheet syncs in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.5, 1, 2.5, 5, 10, 30, 60, 120, 300),
	)
	if err != nil {
		return nil, err
	}

	return &EntrySheetMetrics{
		sheetsValidated: sheetsValidated,
		syncDuration:    syncDuration,
	}, nil
}

// RecordSheetValidated counts one validated entry sheet. success is false when
// the report had to be synthesized from an error.
func (m *EntrySheetMetrics) RecordSheetValidated(ctx context.Context, success bool) {
	if m == nil || m.sheetsValidated == nil {
		return
	}

	m.sheetsValidated.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", success)))
}

// RecordSync records the duration of a bulk sync
func (m *EntrySheetMetrics) RecordSync(ctx context.Context, duration time.Duration, success bool) {
	if m == nil || m.syncDuration == nil {
		return
	}

	m.syncDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.Bool("success", success)))
}

// SyncMetrics holds the instruments for background sync jobs
type SyncMetrics struct {
	syncDuration metric.Float64Histogram
	skipped      metric.Int64Counter
}

// NewSyncMetrics creates a new SyncMetrics instance with the given meter provider.
// If provider is nil, it returns nil (no-op metrics).
func NewSyncMetrics(provider metric.MeterProvider) (*SyncMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(SyncMetricsMeterName)

	syncDuration, err := meter.Float64Histogram(
		"atlas_sync_job_duration_seconds",
		metric.WithDescription("Duration of background sync jobs in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(1, 5, 10, 30, 60, 120, 300, 600, 1800),
	)
	if err != nil {
		return nil, err
	}

	skipped, err := meter.Int64Counter(
		"atlas_sync_job_skipped_total",
		metric.WithDescription("Number of job runs skipped because a mirror had no data"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, err
	}

	return &SyncMetrics{syncDuration: syncDuration, skipped: skipped}, nil
}

// RecordSyncDuration records the duration and outcome of a job run
func (m *SyncMetrics) RecordSyncDuration(ctx context.Context, job string, duration time.Duration, success bool) {
	if m == nil || m.syncDuration == nil {
		return
	}

	m.syncDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("job", job),
		attribute.Bool("success", success),
	))
}

// RecordSkipped counts a job run skipped before it did any work
func (m *SyncMetrics) RecordSkipped(ctx context.Context, job string) {
	if m == nil || m.skipped == nil {
		return
	}

	m.skipped.Add(ctx, 1, metric.WithAttributes(attribute.String("job", job)))
}
