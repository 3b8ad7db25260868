package validation_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clevercanary/atlas-sync/database"
	"github.com/clevercanary/atlas-sync/internal/db/sqlc"
	"github.com/clevercanary/atlas-sync/internal/mirrors"
	"github.com/clevercanary/atlas-sync/internal/validation"
)

func insertSourceStudy(t *testing.T, pool *pgxpool.Pool, doi *string, info map[string]any) uuid.UUID {
	t.Helper()
	raw, err := json.Marshal(info)
	require.NoError(t, err)
	var id uuid.UUID
	err = pool.QueryRow(context.Background(),
		"INSERT INTO source_studies (doi, study_info) VALUES ($1, $2) RETURNING id", doi, raw).Scan(&id)
	require.NoError(t, err)
	return id
}

func insertAtlas(t *testing.T, pool *pgxpool.Pool, studies []uuid.UUID) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	err := pool.QueryRow(context.Background(),
		`INSERT INTO atlases (overview, source_studies, source_datasets) VALUES ('{"shortName": "gut"}', $1, '{}') RETURNING id`,
		studies).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestDBStoreRefreshAll(t *testing.T) {
	t.Parallel()

	pool, cleanup := database.SetupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	projects := &fakeProjects{byID: map[string]mirrors.ProjectInfo{
		"proj-1": {ID: "proj-1", Title: "Gut atlas", HasPrimaryData: true},
	}}
	engine := validation.NewEngine(validation.NewDBStore(pool), validation.DefaultRegistry(projects))

	linked := insertSourceStudy(t, pool, strPtr("10.1/gut"), map[string]any{
		"capId":                 nil,
		"cellxgeneCollectionId": "coll-1",
		"hcaProjectId":          "proj-1",
		"publication":           map[string]any{"title": "Gut atlas", "authors": []any{}, "journal": "Nature", "publicationDate": "2024-01-01"},
	})
	bare := insertSourceStudy(t, pool, nil, map[string]any{
		"unpublishedInfo": map[string]any{"title": "Draft", "referenceAuthor": "Roe"},
	})
	atlasID := insertAtlas(t, pool, []uuid.UUID{linked, bare})

	summary, err := engine.RefreshAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.SourceStudies)
	assert.Equal(t, int64(1), summary.AtlasesUpdated)

	queries := sqlc.New(pool)
	rows, err := queries.ListValidationsByEntity(ctx, linked)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	for _, row := range rows {
		assert.Equal(t, []uuid.UUID{atlasID}, row.AtlasIds)
		var info validation.Info
		require.NoError(t, json.Unmarshal(row.ValidationInfo, &info))
		assert.Equal(t, "Gut atlas", info.EntityTitle)
		if info.ValidationStatus == validation.StatusPassed {
			assert.NotNil(t, row.ResolvedAt, row.ValidationID)
		} else {
			assert.Nil(t, row.ResolvedAt, row.ValidationID)
		}
	}

	byAtlas, err := queries.ListValidationsByAtlas(ctx, atlasID)
	require.NoError(t, err)
	assert.Len(t, byAtlas, 8)

	atlas, err := queries.GetAtlas(ctx, atlasID)
	require.NoError(t, err)
	var overview struct {
		TaskCount           int `json:"taskCount"`
		CompletedTaskCount  int `json:"completedTaskCount"`
		IngestionTaskCounts map[string]struct {
			Count          int `json:"count"`
			CompletedCount int `json:"completedCount"`
		} `json:"ingestionTaskCounts"`
		ShortName string `json:"shortName"`
	}
	require.NoError(t, json.Unmarshal(atlas.Overview, &overview))
	assert.Equal(t, "gut", overview.ShortName)
	assert.Equal(t, 8, overview.TaskCount)
	// IN_CELLXGENE, IN_HCA, TITLE and PRIMARY_DATA pass for the linked study
	assert.Equal(t, 4, overview.CompletedTaskCount)
	assert.Equal(t, 2, overview.IngestionTaskCounts["CELLXGENE"].Count)
	assert.Equal(t, 1, overview.IngestionTaskCounts["CELLXGENE"].CompletedCount)
	assert.Equal(t, 0, overview.IngestionTaskCounts["CAP"].CompletedCount)

	// A second refresh writes nothing
	summary, err = engine.RefreshAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, summary.Writes)
}

func TestDBStoreUpdateExternalIDs(t *testing.T) {
	t.Parallel()

	pool, cleanup := database.SetupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	id := insertSourceStudy(t, pool, strPtr("10.1/new"), map[string]any{
		"capId":                 "cap-1",
		"cellxgeneCollectionId": nil,
		"hcaProjectId":          nil,
	})
	insertSourceStudy(t, pool, nil, map[string]any{"hcaProjectId": nil})

	engine := validation.NewEngine(validation.NewDBStore(pool), validation.NewRegistry())
	projects := &fakeProjects{byDOI: map[string]mirrors.ProjectInfo{"10.1/new": {ID: "proj-new"}}}
	updated, err := engine.UpdateExternalIDs(ctx, projects, collectionsByDOI{"10.1/new": "coll-new"})
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	row, err := sqlc.New(pool).GetSourceStudy(ctx, id)
	require.NoError(t, err)
	var info map[string]any
	require.NoError(t, json.Unmarshal(row.StudyInfo, &info))
	assert.Equal(t, "proj-new", info["hcaProjectId"])
	assert.Equal(t, "coll-new", info["cellxgeneCollectionId"])
	assert.Equal(t, "cap-1", info["capId"])
}
