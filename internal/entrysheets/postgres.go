package entrysheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clevercanary/atlas-sync/internal/db/sqlc"
)

type dbStore struct {
	pool *pgxpool.Pool
}

// NewDBStore creates a Postgres-backed Store
func NewDBStore(pool *pgxpool.Pool) Store {
	return &dbStore{pool: pool}
}

func (s *dbStore) Begin(ctx context.Context) (Tx, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &dbTx{tx: tx, queries: sqlc.New(s.pool).WithTx(tx)}, nil
}

func (s *dbStore) ListAtlasTargets(ctx context.Context, atlasID uuid.UUID) ([]Target, error) {
	queries := sqlc.New(s.pool)
	atlas, err := queries.GetAtlas(ctx, atlasID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("atlas %s: %w", atlasID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get atlas %s: %w", atlasID, err)
	}
	if len(atlas.SourceStudies) == 0 {
		return nil, nil
	}
	return listStudySheets(ctx, queries, atlas.SourceStudies)
}

func (s *dbStore) GetValidationTarget(ctx context.Context, atlasID, validationID uuid.UUID) (Target, error) {
	queries := sqlc.New(s.pool)
	atlas, err := queries.GetAtlas(ctx, atlasID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Target{}, fmt.Errorf("atlas %s: %w", atlasID, ErrNotFound)
	}
	if err != nil {
		return Target{}, fmt.Errorf("failed to get atlas %s: %w", atlasID, err)
	}

	validation, err := queries.GetEntrySheetValidation(ctx, validationID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Target{}, fmt.Errorf("entry sheet validation %s: %w", validationID, ErrNotFound)
	}
	if err != nil {
		return Target{}, fmt.Errorf("failed to get entry sheet validation %s: %w", validationID, err)
	}
	if !slices.Contains(atlas.SourceStudies, validation.SourceStudyID) {
		return Target{}, fmt.Errorf("entry sheet validation %s on atlas %s: %w", validationID, atlasID, ErrNotFound)
	}

	return Target{SourceStudyID: validation.SourceStudyID, SheetID: validation.EntrySheetID}, nil
}

type dbTx struct {
	tx      pgx.Tx
	queries *sqlc.Queries
}

func (t *dbTx) ListStudySheets(ctx context.Context, sourceStudyIDs []uuid.UUID) ([]Target, error) {
	return listStudySheets(ctx, t.queries, sourceStudyIDs)
}

func (t *dbTx) ListExistingSheetIDs(ctx context.Context, sheetIDs []string) ([]string, error) {
	ids, err := t.queries.ListExistingEntrySheetIDs(ctx, sheetIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list existing entry sheet validations: %w", err)
	}
	return ids, nil
}

func (t *dbTx) UpdateValidations(ctx context.Context, validations []Validation) (int64, error) {
	rows, err := json.Marshal(validations)
	if err != nil {
		return 0, fmt.Errorf("failed to encode entry sheet validations: %w", err)
	}
	n, err := t.queries.BulkUpdateEntrySheetValidations(ctx, rows)
	if err != nil {
		return 0, fmt.Errorf("failed to update entry sheet validations: %w", err)
	}
	return n, nil
}

func (t *dbTx) InsertValidations(ctx context.Context, validations []Validation) (int64, error) {
	rows, err := json.Marshal(validations)
	if err != nil {
		return 0, fmt.Errorf("failed to encode entry sheet validations: %w", err)
	}
	n, err := t.queries.BulkInsertEntrySheetValidations(ctx, rows)
	if err != nil {
		return 0, fmt.Errorf("failed to insert entry sheet validations: %w", err)
	}
	return n, nil
}

func (t *dbTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *dbTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

func listStudySheets(ctx context.Context, queries *sqlc.Queries, sourceStudyIDs []uuid.UUID) ([]Target, error) {
	rows, err := queries.ListStudySheetIDs(ctx, sourceStudyIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list source study entry sheets: %w", err)
	}
	targets := make([]Target, 0, len(rows))
	for _, row := range rows {
		if row.EntrySheetID == nil || *row.EntrySheetID == "" {
			continue
		}
		targets = append(targets, Target{SourceStudyID: row.SourceStudyID, SheetID: *row.EntrySheetID})
	}
	return targets, nil
}
