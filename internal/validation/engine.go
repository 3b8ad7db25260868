package validation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"k8s.io/utils/clock"

	"github.com/clevercanary/atlas-sync/internal/otel"
	"github.com/clevercanary/atlas-sync/internal/telemetry"
)

// ChangeKey is a field of a validation compared to decide whether a stored record is outdated
type ChangeKey struct {
	Name string
	get  func(info *Info) any
}

// ChangeKeys lists the fields of the validation info that indicate a change.
// Fields not listed here never cause an update on their own.
var ChangeKeys = []ChangeKey{
	{Name: "description", get: func(i *Info) any { return i.Description }},
	{Name: "doi", get: func(i *Info) any { return i.DOI }},
	{Name: "entityTitle", get: func(i *Info) any { return i.EntityTitle }},
	{Name: "publicationString", get: func(i *Info) any { return i.PublicationString }},
	{Name: "taskStatus", get: func(i *Info) any { return i.TaskStatus }},
	{Name: "validationStatus", get: func(i *Info) any { return i.ValidationStatus }},
	{Name: "differences", get: func(i *Info) any { return i.Differences }},
	{Name: "relatedEntityUrl", get: func(i *Info) any { return i.RelatedEntityURL }},
}

// equateEmpty treats nil and empty slices alike so stored empty lists compare equal to absent ones
var equateEmpty = cmpopts.EquateEmpty()

// Option configures an Engine
type Option func(*Engine)

// WithClock sets the clock used to stamp resolved_at
func WithClock(c clock.PassiveClock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics sets the validation metrics
func WithMetrics(metrics *telemetry.ValidationMetrics) Option {
	return func(e *Engine) {
		e.metrics = metrics
	}
}

// WithTracer sets the tracer used for reconciliation spans
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) {
		e.tracer = tracer
	}
}

// Engine evaluates rules and reconciles their results with stored validations
type Engine struct {
	store    Store
	registry *Registry
	clock    clock.PassiveClock
	logger   *slog.Logger
	metrics  *telemetry.ValidationMetrics
	tracer   trace.Tracer
}

// NewEngine creates an Engine over the given store and rules
func NewEngine(store Store, registry *Registry, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		registry: registry,
		clock:    clock.RealClock{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GetValidationResults evaluates every rule registered for the entity's type.
// Rules that do not apply are skipped. Errors from rules, including
// refresh.ErrNotReady, are returned unwrapped.
func (e *Engine) GetValidationResults(ctx context.Context, entity Entity, atlasIDs []uuid.UUID) ([]Result, error) {
	rules := e.registry.Rules(entity.EntityType())
	results := make([]Result, 0, len(rules))
	for _, rule := range rules {
		statusInfo, err := rule.Validate(ctx, entity)
		if err != nil {
			return nil, err
		}
		if statusInfo == nil {
			continue
		}
		results = append(results, Result{
			EntityID:     entity.EntityID(),
			ValidationID: rule.ID(),
			AtlasIDs:     atlasIDs,
			Info: Info{
				Description:       rule.Description(),
				Differences:       statusInfo.Differences,
				DOI:               entity.EntityDOI(),
				EntityTitle:       entity.Title(),
				EntityType:        entity.EntityType(),
				PublicationString: entity.Citation(),
				RelatedEntityURL:  statusInfo.RelatedEntityURL,
				System:            rule.System(),
				TaskStatus:        TaskStatusFor(statusInfo.Status),
				ValidationStatus:  statusInfo.Status,
				ValidationType:    rule.Type(),
			},
		})
	}
	return results, nil
}

// Reconcile makes the stored validations of an entity match results: missing
// records are inserted, changed records are updated and records of rules
// absent from results are deleted
func (e *Engine) Reconcile(ctx context.Context, tx Tx, entityID uuid.UUID, results []Result) (ReconcileSummary, error) {
	var summary ReconcileSummary

	existing, err := tx.ListValidations(ctx, entityID)
	if err != nil {
		return summary, err
	}
	existingByID := make(map[ID]Record, len(existing))
	for _, record := range existing {
		existingByID[record.ValidationID] = record
	}

	now := e.clock.Now()
	seen := make(map[ID]bool, len(results))
	for _, result := range results {
		seen[result.ValidationID] = true
		record := Record{
			EntityID:     entityID,
			ValidationID: result.ValidationID,
			Info:         result.Info,
			AtlasIDs:     result.AtlasIDs,
		}

		current, ok := existingByID[result.ValidationID]
		if !ok {
			if result.Info.ValidationStatus == StatusPassed {
				record.ResolvedAt = &now
			}
			if err := tx.InsertValidation(ctx, record); err != nil {
				return summary, fmt.Errorf("failed to insert validation %s of %s: %w", result.ValidationID, entityID, err)
			}
			summary.Inserted++
			continue
		}

		if !NeedsUpdate(current, result) {
			continue
		}
		record.ResolvedAt = resolvedAt(current, result.Info.ValidationStatus, now)
		if err := tx.UpdateValidation(ctx, record); err != nil {
			return summary, fmt.Errorf("failed to update validation %s of %s: %w", result.ValidationID, entityID, err)
		}
		summary.Updated++
	}

	var stale []ID
	for _, record := range existing {
		if !seen[record.ValidationID] {
			stale = append(stale, record.ValidationID)
		}
	}
	if len(stale) > 0 {
		if err := tx.DeleteValidations(ctx, entityID, stale); err != nil {
			return summary, fmt.Errorf("failed to delete validations of %s: %w", entityID, err)
		}
		summary.Deleted = len(stale)
	}

	return summary, nil
}

// NeedsUpdate reports whether a stored record differs from a result in any
// change key or in its atlas membership
func NeedsUpdate(record Record, result Result) bool {
	if !cmp.Equal(record.AtlasIDs, result.AtlasIDs, equateEmpty, cmpopts.SortSlices(uuidLess)) {
		return true
	}
	for _, key := range ChangeKeys {
		if !cmp.Equal(key.get(&record.Info), key.get(&result.Info), equateEmpty) {
			return true
		}
	}
	return false
}

func uuidLess(a, b uuid.UUID) bool {
	return a.String() < b.String()
}

// resolvedAt keeps the first-passed time while a validation stays passed
func resolvedAt(current Record, status Status, now time.Time) *time.Time {
	if status != StatusPassed {
		return nil
	}
	if current.Info.ValidationStatus == StatusPassed && current.ResolvedAt != nil {
		return current.ResolvedAt
	}
	return &now
}

// UpdateEntity evaluates and reconciles the validations of one entity inside its own transaction
func (e *Engine) UpdateEntity(ctx context.Context, entity Entity) (summary ReconcileSummary, err error) {
	ctx, span := otel.StartSpan(ctx, e.tracer, "validation.UpdateEntity",
		otel.EntityAttributes(string(entity.EntityType()), entity.EntityID().String())...)
	defer func() {
		otel.End(span, err)
		e.metrics.RecordEntityUpdate(ctx, string(entity.EntityType()), err == nil)
	}()

	tx, err := e.store.Begin(ctx)
	if err != nil {
		return summary, err
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			e.logger.Warn("Failed to roll back validation transaction", "entity_id", entity.EntityID(), "error", rbErr)
		}
	}()

	atlasIDs, err := tx.AtlasIDs(ctx, entity)
	if err != nil {
		return summary, fmt.Errorf("failed to get atlases of %s: %w", entity.EntityID(), err)
	}

	results, err := e.GetValidationResults(ctx, entity, atlasIDs)
	if err != nil {
		return summary, err
	}
	span.SetAttributes(otel.AttrValidationCount.Int(len(results)))

	summary, err = e.Reconcile(ctx, tx, entity.EntityID(), results)
	if err != nil {
		return summary, err
	}

	if err := tx.Commit(ctx); err != nil {
		return summary, fmt.Errorf("failed to commit validations of %s: %w", entity.EntityID(), err)
	}
	return summary, nil
}

// RefreshAll reconciles the validations of every source study and source
// dataset, each in its own transaction, then recomputes atlas task counts.
// The first error aborts the batch and is returned as is; entities reconciled
// before it stay committed.
func (e *Engine) RefreshAll(ctx context.Context) (summary *RefreshSummary, err error) {
	start := e.clock.Now()
	defer func() {
		e.metrics.RecordRefreshAll(ctx, e.clock.Since(start), err == nil)
	}()

	summary = &RefreshSummary{}

	studies, err := e.store.ListSourceStudies(ctx)
	if err != nil {
		return nil, err
	}
	for _, study := range studies {
		s, err := e.UpdateEntity(ctx, study)
		if err != nil {
			return nil, err
		}
		summary.SourceStudies++
		summary.Writes += s.Writes()
	}

	datasets, err := e.store.ListSourceDatasets(ctx)
	if err != nil {
		return nil, err
	}
	for _, dataset := range datasets {
		s, err := e.UpdateEntity(ctx, dataset)
		if err != nil {
			return nil, err
		}
		summary.SourceDatasets++
		summary.Writes += s.Writes()
	}

	summary.AtlasesUpdated, err = e.store.UpdateTaskCounts(ctx)
	if err != nil {
		return nil, err
	}

	e.logger.Info("Validations refreshed",
		"source_studies", summary.SourceStudies,
		"source_datasets", summary.SourceDatasets,
		"writes", summary.Writes,
		"atlases_updated", summary.AtlasesUpdated)
	return summary, nil
}
