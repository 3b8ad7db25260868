package validation

import (
	"context"
	"fmt"
)

// ProjectIDResolver resolves HCA project IDs from publication DOIs
type ProjectIDResolver interface {
	ProjectIDByDOI(ctx context.Context, dois []string) (string, error)
}

// CollectionIDResolver resolves CELLxGENE collection IDs from publication DOIs
type CollectionIDResolver interface {
	CollectionIDByDOI(ctx context.Context, dois []string) (string, error)
}

// UpdateExternalIDs sets the HCA project and CELLxGENE collection IDs of
// published source studies from the mirrors. A project ID is only replaced by
// a found one, while the collection ID follows the mirror, including removal.
// It returns the number of studies updated.
func (e *Engine) UpdateExternalIDs(ctx context.Context, projects ProjectIDResolver, collections CollectionIDResolver) (int, error) {
	studies, err := e.store.ListPublishedSourceStudies(ctx)
	if err != nil {
		return 0, err
	}

	tx, err := e.store.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			e.logger.Warn("Failed to roll back external ID transaction", "error", rbErr)
		}
	}()

	updated := 0
	for _, study := range studies {
		dois := study.PublicationDOIs()
		projectID, err := projects.ProjectIDByDOI(ctx, dois)
		if err != nil {
			return 0, err
		}
		collectionID, err := collections.CollectionIDByDOI(ctx, dois)
		if err != nil {
			return 0, err
		}

		fields := map[string]any{}
		if projectID != "" && projectID != deref(study.Info.HCAProjectID) {
			fields["hcaProjectId"] = projectID
		}
		if collectionID != deref(study.Info.CellxGeneCollectionID) {
			if collectionID == "" {
				fields["cellxgeneCollectionId"] = nil
			} else {
				fields["cellxgeneCollectionId"] = collectionID
			}
		}
		if len(fields) == 0 {
			continue
		}

		if err := tx.MergeSourceStudyInfo(ctx, study.ID, fields); err != nil {
			return 0, fmt.Errorf("failed to update external IDs of source study %s: %w", study.ID, err)
		}
		updated++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit external ID updates: %w", err)
	}
	if updated > 0 {
		e.logger.Info("Updated source study external IDs", "count", updated)
	}
	return updated, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
