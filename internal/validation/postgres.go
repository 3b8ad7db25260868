package validation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clevercanary/atlas-sync/internal/db/sqlc"
	"github.com/clevercanary/atlas-sync/internal/tracker"
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

func (s *dbStore) ListSourceStudies(ctx context.Context) ([]*tracker.SourceStudy, error) {
	rows, err := sqlc.New(s.pool).ListSourceStudies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list source studies: %w", err)
	}
	return tracker.SourceStudiesFromRows(rows)
}

func (s *dbStore) ListPublishedSourceStudies(ctx context.Context) ([]*tracker.SourceStudy, error) {
	rows, err := sqlc.New(s.pool).ListPublishedSourceStudies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list published source studies: %w", err)
	}
	return tracker.SourceStudiesFromRows(rows)
}

func (s *dbStore) ListSourceDatasets(ctx context.Context) ([]*tracker.SourceDataset, error) {
	rows, err := sqlc.New(s.pool).ListSourceDatasets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list source datasets: %w", err)
	}
	return tracker.SourceDatasetsFromRows(rows)
}

func (s *dbStore) UpdateTaskCounts(ctx context.Context) (int64, error) {
	n, err := sqlc.New(s.pool).UpdateAtlasTaskCounts(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to update atlas task counts: %w", err)
	}
	return n, nil
}

type dbTx struct {
	tx      pgx.Tx
	queries *sqlc.Queries
}

func (t *dbTx) ListValidations(ctx context.Context, entityID uuid.UUID) ([]Record, error) {
	rows, err := t.queries.ListValidationsByEntity(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list validations of %s: %w", entityID, err)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		record := Record{
			EntityID:     row.EntityID,
			ValidationID: ID(row.ValidationID),
			AtlasIDs:     row.AtlasIds,
			ResolvedAt:   row.ResolvedAt,
		}
		if err := json.Unmarshal(row.ValidationInfo, &record.Info); err != nil {
			return nil, fmt.Errorf("failed to decode validation %s of %s: %w", row.ValidationID, entityID, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func (t *dbTx) InsertValidation(ctx context.Context, record Record) error {
	info, err := json.Marshal(record.Info)
	if err != nil {
		return fmt.Errorf("failed to encode validation %s: %w", record.ValidationID, err)
	}
	return t.queries.InsertValidation(ctx, sqlc.InsertValidationParams{
		EntityID:       record.EntityID,
		ValidationID:   string(record.ValidationID),
		ValidationInfo: info,
		AtlasIds:       nonNilIDs(record.AtlasIDs),
		ResolvedAt:     record.ResolvedAt,
	})
}

func (t *dbTx) UpdateValidation(ctx context.Context, record Record) error {
	info, err := json.Marshal(record.Info)
	if err != nil {
		return fmt.Errorf("failed to encode validation %s: %w", record.ValidationID, err)
	}
	return t.queries.UpdateValidation(ctx, sqlc.UpdateValidationParams{
		ValidationInfo: info,
		AtlasIds:       nonNilIDs(record.AtlasIDs),
		ResolvedAt:     record.ResolvedAt,
		EntityID:       record.EntityID,
		ValidationID:   string(record.ValidationID),
	})
}

func (t *dbTx) DeleteValidations(ctx context.Context, entityID uuid.UUID, ids []ID) error {
	validationIDs := make([]string, len(ids))
	for i, id := range ids {
		validationIDs[i] = string(id)
	}
	return t.queries.DeleteValidations(ctx, sqlc.DeleteValidationsParams{
		EntityID:      entityID,
		ValidationIds: validationIDs,
	})
}

func (t *dbTx) AtlasIDs(ctx context.Context, entity Entity) ([]uuid.UUID, error) {
	switch entity.EntityType() {
	case tracker.EntityTypeSourceStudy:
		return t.queries.ListAtlasIDsForSourceStudy(ctx, entity.EntityID())
	case tracker.EntityTypeSourceDataset:
		return t.queries.ListAtlasIDsForSourceDataset(ctx, entity.EntityID())
	default:
		return nil, fmt.Errorf("unsupported entity type: %s", entity.EntityType())
	}
}

func (t *dbTx) MergeSourceStudyInfo(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	info, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode info of source study %s: %w", id, err)
	}
	return t.queries.MergeSourceStudyInfo(ctx, sqlc.MergeSourceStudyInfoParams{StudyInfo: info, ID: id})
}

func (t *dbTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback is a no-op once the transaction has been committed
func (t *dbTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

// nonNilIDs keeps empty memberships stored as an empty array rather than NULL
func nonNilIDs(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}
