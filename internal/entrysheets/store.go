package entrysheets

import (
	"context"

	"github.com/google/uuid"
)

// Store provides the entry sheet targets and transactions used by a sync
//
//go:generate mockgen -destination=mocks/mock_store.go -package=mocks github.com/clevercanary/atlas-sync/internal/entrysheets Store,Tx
type Store interface {
	Begin(ctx context.Context) (Tx, error)

	// ListAtlasTargets returns the entry sheets listed by the source studies
	// of an atlas, or ErrNotFound if the atlas does not exist
	ListAtlasTargets(ctx context.Context, atlasID uuid.UUID) ([]Target, error)

	// GetValidationTarget returns the sheet of an existing entry sheet
	// validation, or ErrNotFound if it does not exist or belongs to a source
	// study outside the atlas
	GetValidationTarget(ctx context.Context, atlasID, validationID uuid.UUID) (Target, error)
}

// Tx writes sync results in one transaction
type Tx interface {
	// ListStudySheets returns the entry sheets currently listed by the given source studies
	ListStudySheets(ctx context.Context, sourceStudyIDs []uuid.UUID) ([]Target, error)

	// ListExistingSheetIDs returns which of the sheet ids already have a stored validation
	ListExistingSheetIDs(ctx context.Context, sheetIDs []string) ([]string, error)

	// UpdateValidations overwrites stored validations in one statement
	UpdateValidations(ctx context.Context, validations []Validation) (int64, error)

	// InsertValidations stores new validations in one statement
	InsertValidations(ctx context.Context, validations []Validation) (int64, error)

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
