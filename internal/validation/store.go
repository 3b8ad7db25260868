package validation

import (
	"context"

	"github.com/google/uuid"

	"github.com/clevercanary/atlas-sync/internal/tracker"
)

// Store provides the entities to validate and transactions to reconcile them in
//
//go:generate mockgen -destination=mocks/mock_store.go -package=mocks github.com/clevercanary/atlas-sync/internal/validation Store,Tx
type Store interface {
	// Begin starts a transaction owned by a single entity reconciliation
	Begin(ctx context.Context) (Tx, error)

	ListSourceStudies(ctx context.Context) ([]*tracker.SourceStudy, error)
	ListPublishedSourceStudies(ctx context.Context) ([]*tracker.SourceStudy, error)
	ListSourceDatasets(ctx context.Context) ([]*tracker.SourceDataset, error)

	// UpdateTaskCounts recomputes the task counts of every atlas and returns
	// the number of atlases updated
	UpdateTaskCounts(ctx context.Context) (int64, error)
}

// Tx is a database transaction scoped to one entity
type Tx interface {
	ListValidations(ctx context.Context, entityID uuid.UUID) ([]Record, error)
	InsertValidation(ctx context.Context, record Record) error
	UpdateValidation(ctx context.Context, record Record) error
	DeleteValidations(ctx context.Context, entityID uuid.UUID, ids []ID) error

	// AtlasIDs returns the IDs of the atlases the entity belongs to
	AtlasIDs(ctx context.Context, entity Entity) ([]uuid.UUID, error)

	// MergeSourceStudyInfo merges fields into the info of a source study
	MergeSourceStudyInfo(ctx context.Context, id uuid.UUID, fields map[string]any) error

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
