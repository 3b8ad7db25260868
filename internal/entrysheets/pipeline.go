package entrysheets

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"k8s.io/utils/clock"

	"github.com/clevercanary/atlas-sync/internal/otel"
	"github.com/clevercanary/atlas-sync/internal/telemetry"
)

// DefaultConcurrency is the default number of sheets validated at once
const DefaultConcurrency = 8

// Option configures a Pipeline
type Option func(*Pipeline)

// WithConcurrency bounds the number of concurrent validation tools requests
func WithConcurrency(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithReporter sets where sync errors are reported
func WithReporter(r Reporter) Option {
	return func(p *Pipeline) {
		p.reporter = r
	}
}

// WithClock sets the clock used to stamp last_synced
func WithClock(c clock.PassiveClock) Option {
	return func(p *Pipeline) {
		p.clock = c
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithMetrics sets the entry sheet metrics
func WithMetrics(metrics *telemetry.EntrySheetMetrics) Option {
	return func(p *Pipeline) {
		p.metrics = metrics
	}
}

// WithTracer sets the tracer used for sync spans
func WithTracer(tracer trace.Tracer) Option {
	return func(p *Pipeline) {
		p.tracer = tracer
	}
}

// Pipeline syncs entry sheet validations in bulk
type Pipeline struct {
	client      Client
	store       Store
	concurrency int
	reporter    Reporter
	clock       clock.PassiveClock
	logger      *slog.Logger
	metrics     *telemetry.EntrySheetMetrics
	tracer      trace.Tracer
}

// NewPipeline creates a Pipeline
func NewPipeline(client Client, store Store, opts ...Option) *Pipeline {
	p := &Pipeline{
		client:      client,
		store:       store,
		concurrency: DefaultConcurrency,
		clock:       clock.RealClock{},
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.reporter == nil {
		p.reporter = NewLogReporter(p.logger)
	}
	return p
}

// Handle tracks a bulk sync running in the background
type Handle struct {
	done    chan struct{}
	once    sync.Once
	summary SyncSummary
	err     error
}

func newHandle() *Handle {
	return &Handle{done: make(chan struct{})}
}

func (h *Handle) finish(summary SyncSummary, err error) {
	h.once.Do(func() {
		h.summary = summary
		h.err = err
		close(h.done)
	})
}

// Done is closed once every sheet was fetched and the results were written
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the sync completes or ctx is done. The returned error is
// a storage failure; fetch failures are part of the stored results.
func (h *Handle) Wait(ctx context.Context) (SyncSummary, error) {
	select {
	case <-h.done:
		return h.summary, h.err
	case <-ctx.Done():
		return SyncSummary{}, ctx.Err()
	}
}

// StartBulkSync starts syncing the targets in the background and returns
// without waiting. The sync outlives cancellation of ctx.
func (p *Pipeline) StartBulkSync(ctx context.Context, targets []Target) *Handle {
	h := newHandle()
	ctx = context.WithoutCancel(ctx)
	go func() {
		summary, err := p.Sync(ctx, targets)
		if err != nil {
			p.logger.Error("Entry sheet sync failed", "targets", len(targets), "error", err)
		}
		h.finish(summary, err)
	}()
	return h
}

// StartAtlasSync starts syncing every entry sheet of an atlas
func (p *Pipeline) StartAtlasSync(ctx context.Context, atlasID uuid.UUID) (*Handle, error) {
	targets, err := p.store.ListAtlasTargets(ctx, atlasID)
	if err != nil {
		return nil, err
	}
	return p.StartBulkSync(ctx, targets), nil
}

// StartSingleSync starts syncing the sheet of one stored entry sheet validation
func (p *Pipeline) StartSingleSync(ctx context.Context, atlasID, validationID uuid.UUID) (*Handle, error) {
	target, err := p.store.GetValidationTarget(ctx, atlasID, validationID)
	if err != nil {
		return nil, err
	}
	return p.StartBulkSync(ctx, []Target{target}), nil
}

// Sync fetches every target, waits for all of them to settle, and writes the results
func (p *Pipeline) Sync(ctx context.Context, targets []Target) (summary SyncSummary, err error) {
	ctx, span := otel.StartSpan(ctx, p.tracer, "entrysheets.Sync", otel.AttrSheetCount.Int(len(targets)))
	start := p.clock.Now()
	defer func() {
		p.metrics.RecordSync(ctx, p.clock.Since(start), err == nil)
		otel.End(span, err)
	}()

	validations, failed := p.fetchAll(ctx, targets)
	summary = SyncSummary{Targets: len(targets), Failed: failed}

	summary, err = p.save(ctx, validations, summary)
	if err != nil {
		return summary, err
	}

	span.SetAttributes(
		otel.AttrSheetsInserted.Int64(summary.Inserted),
		otel.AttrSheetsUpdated.Int64(summary.Updated),
	)
	p.logger.Info("Synced entry sheet validations",
		"targets", summary.Targets,
		"failed", summary.Failed,
		"skipped", summary.Skipped,
		"inserted", summary.Inserted,
		"updated", summary.Updated)
	return summary, nil
}

// fetchAll validates every target with bounded concurrency. No fetch cancels
// another: each one settles into a validation, successful or not.
func (p *Pipeline) fetchAll(ctx context.Context, targets []Target) ([]Validation, int) {
	validations := make([]Validation, len(targets))
	failures := make([]bool, len(targets))

	var g errgroup.Group
	g.SetLimit(p.concurrency)
	for i, target := range targets {
		g.Go(func() error {
			validations[i], failures[i] = p.fetch(ctx, target)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, f := range failures {
		if f {
			failed++
		}
	}
	return validations, failed
}

// fetch validates one sheet, turning any failure into an error report
func (p *Pipeline) fetch(ctx context.Context, target Target) (Validation, bool) {
	syncTime := p.clock.Now()

	resp, err := p.fetchResponse(ctx, target)
	if err == nil && resp.Error != nil {
		err = &ResponseError{Message: *resp.Error}
	}
	if err != nil {
		p.reporter.ReportSyncError(ctx, target, err)
		p.metrics.RecordSheetValidated(ctx, false)
		return errorValidation(target, syncTime, err.Error()), true
	}

	p.metrics.RecordSheetValidated(ctx, true)
	return successValidation(target, syncTime, resp), false
}

func (p *Pipeline) fetchResponse(ctx context.Context, target Target) (*Response, error) {
	resp, err := p.client.ValidateSheet(ctx, target.SheetID)
	if err == nil && resp == nil {
		err = &UnexpectedResponseError{Detail: "empty response"}
	}
	return resp, err
}

// save drops validations of sheets no longer listed by their study, then
// writes the rest with one lookup and at most one update and one insert
func (p *Pipeline) save(ctx context.Context, validations []Validation, summary SyncSummary) (SyncSummary, error) {
	if len(validations) == 0 {
		return summary, nil
	}

	tx, err := p.store.Begin(ctx)
	if err != nil {
		return summary, err
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			p.logger.Warn("Failed to roll back entry sheet transaction", "error", rbErr)
		}
	}()

	current, err := tx.ListStudySheets(ctx, studyIDs(validations))
	if err != nil {
		return summary, err
	}
	keep := keepListed(validations, current)
	summary.Skipped = len(validations) - len(keep)
	if len(keep) == 0 {
		return summary, nil
	}

	sheetIDs := make([]string, len(keep))
	for i, v := range keep {
		sheetIDs[i] = v.EntrySheetID
	}
	existing, err := tx.ListExistingSheetIDs(ctx, sheetIDs)
	if err != nil {
		return summary, err
	}
	updates, inserts := partition(keep, existing)

	if len(updates) > 0 {
		if summary.Updated, err = tx.UpdateValidations(ctx, updates); err != nil {
			return summary, err
		}
	}
	if len(inserts) > 0 {
		if summary.Inserted, err = tx.InsertValidations(ctx, inserts); err != nil {
			return summary, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return summary, fmt.Errorf("failed to commit entry sheet validations: %w", err)
	}
	return summary, nil
}

func studyIDs(validations []Validation) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(validations))
	ids := make([]uuid.UUID, 0, len(validations))
	for _, v := range validations {
		if _, ok := seen[v.SourceStudyID]; ok {
			continue
		}
		seen[v.SourceStudyID] = struct{}{}
		ids = append(ids, v.SourceStudyID)
	}
	return ids
}

// keepListed returns the validations whose sheet is still listed by its
// source study. A sheet synced more than once keeps its last result.
func keepListed(validations []Validation, current []Target) []Validation {
	listed := make(map[Target]struct{}, len(current))
	for _, t := range current {
		listed[t] = struct{}{}
	}

	index := make(map[string]int, len(validations))
	keep := make([]Validation, 0, len(validations))
	for _, v := range validations {
		if _, ok := listed[Target{SourceStudyID: v.SourceStudyID, SheetID: v.EntrySheetID}]; !ok {
			continue
		}
		if i, ok := index[v.EntrySheetID]; ok {
			keep[i] = v
			continue
		}
		index[v.EntrySheetID] = len(keep)
		keep = append(keep, v)
	}
	return keep
}

func partition(validations []Validation, existingIDs []string) (updates, inserts []Validation) {
	existing := make(map[string]struct{}, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = struct{}{}
	}
	for _, v := range validations {
		if _, ok := existing[v.EntrySheetID]; ok {
			updates = append(updates, v)
		} else {
			inserts = append(inserts, v)
		}
	}
	return updates, inserts
}
