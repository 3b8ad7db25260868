package tracker

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/clevercanary/atlas-sync/internal/db/sqlc"
)

// atlasOverview holds the fields of atlases.overview read here
type atlasOverview struct {
	ShortName string `json:"shortName"`
	Version   string `json:"version"`
}

// SourceStudyFromRow decodes a source study row
func SourceStudyFromRow(row sqlc.SourceStudy) (*SourceStudy, error) {
	study := &SourceStudy{ID: row.ID, DOI: row.Doi}
	if len(row.StudyInfo) > 0 {
		if err := json.Unmarshal(row.StudyInfo, &study.Info); err != nil {
			return nil, fmt.Errorf("failed to decode info of source study %s: %w", row.ID, err)
		}
	}
	return study, nil
}

// SourceStudiesFromRows decodes source study rows
func SourceStudiesFromRows(rows []sqlc.SourceStudy) ([]*SourceStudy, error) {
	studies := make([]*SourceStudy, 0, len(rows))
	for _, row := range rows {
		study, err := SourceStudyFromRow(row)
		if err != nil {
			return nil, err
		}
		studies = append(studies, study)
	}
	return studies, nil
}

// SourceDatasetFromRow decodes a source dataset row
func SourceDatasetFromRow(row sqlc.SourceDataset) (*SourceDataset, error) {
	dataset := &SourceDataset{ID: row.ID, SourceStudyID: row.SourceStudyID, DOI: row.Doi}
	if len(row.SdInfo) > 0 {
		if err := json.Unmarshal(row.SdInfo, &dataset.Info); err != nil {
			return nil, fmt.Errorf("failed to decode info of source dataset %s: %w", row.ID, err)
		}
	}
	return dataset, nil
}

// SourceDatasetsFromRows decodes source dataset rows
func SourceDatasetsFromRows(rows []sqlc.SourceDataset) ([]*SourceDataset, error) {
	datasets := make([]*SourceDataset, 0, len(rows))
	for _, row := range rows {
		dataset, err := SourceDatasetFromRow(row)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, dataset)
	}
	return datasets, nil
}

// AtlasFromRow decodes an atlas row
func AtlasFromRow(row sqlc.Atlas) (*Atlas, error) {
	var overview atlasOverview
	if len(row.Overview) > 0 {
		if err := json.Unmarshal(row.Overview, &overview); err != nil {
			return nil, fmt.Errorf("failed to decode overview of atlas %s: %w", row.ID, err)
		}
	}
	return &Atlas{
		ID:             row.ID,
		ShortName:      overview.ShortName,
		Version:        overview.Version,
		SourceStudies:  row.SourceStudies,
		SourceDatasets: row.SourceDatasets,
	}, nil
}

// EntityID returns the ID of the study
func (s *SourceStudy) EntityID() uuid.UUID { return s.ID }

// EntityType returns EntityTypeSourceStudy
func (*SourceStudy) EntityType() EntityType { return EntityTypeSourceStudy }

// EntityDOI returns the DOI of the study, nil if unpublished
func (s *SourceStudy) EntityDOI() *string { return s.DOI }

// Title returns the publication title, falling back to the unpublished title and then the ID
func (s *SourceStudy) Title() string {
	return entityTitle(s.ID, s.Info.Publication, s.Info.UnpublishedInfo)
}

// Citation returns a short citation of the study
func (s *SourceStudy) Citation() string {
	return citation(s.Info.Publication, s.Info.UnpublishedInfo)
}

// PublicationDOIs returns the DOI of the study along with its preprint counterparts
func (s *SourceStudy) PublicationDOIs() []string {
	return PublicationDOIs(s.DOI, s.Info.Publication)
}

// EntityID returns the ID of the dataset
func (d *SourceDataset) EntityID() uuid.UUID { return d.ID }

// EntityType returns EntityTypeSourceDataset
func (*SourceDataset) EntityType() EntityType { return EntityTypeSourceDataset }

// EntityDOI returns the DOI of the dataset, nil if unpublished
func (d *SourceDataset) EntityDOI() *string { return d.DOI }

// Title returns the publication title, falling back to the unpublished title and then the ID
func (d *SourceDataset) Title() string {
	return entityTitle(d.ID, d.Info.Publication, d.Info.UnpublishedInfo)
}

// Citation returns a short citation of the dataset
func (d *SourceDataset) Citation() string {
	return citation(d.Info.Publication, d.Info.UnpublishedInfo)
}

// PublicationDOIs returns the DOI of the dataset along with its preprint counterparts
func (d *SourceDataset) PublicationDOIs() []string {
	return PublicationDOIs(d.DOI, d.Info.Publication)
}

// PublicationDOIs returns doi followed by the preprint DOIs of the publication, skipping absent ones
func PublicationDOIs(doi *string, publication *PublicationInfo) []string {
	var dois []string
	if doi != nil && *doi != "" {
		dois = append(dois, *doi)
	}
	if publication == nil {
		return dois
	}
	for _, related := range []*string{publication.PreprintOfDOI, publication.HasPreprintDOI} {
		if related != nil && *related != "" {
			dois = append(dois, *related)
		}
	}
	return dois
}

func entityTitle(id uuid.UUID, publication *PublicationInfo, unpublished *UnpublishedInfo) string {
	switch {
	case publication != nil:
		return publication.Title
	case unpublished != nil:
		return unpublished.Title
	default:
		return id.String()
	}
}

func citation(publication *PublicationInfo, unpublished *UnpublishedInfo) string {
	if publication != nil {
		author := "Unknown author"
		if len(publication.Authors) > 0 {
			author = publication.Authors[0].Name
			if len(publication.Authors) > 1 {
				author += " et al."
			}
		}
		year, _, _ := strings.Cut(publication.PublicationDate, "-")
		return fmt.Sprintf("%s (%s) %s", author, year, publication.Journal)
	}
	if unpublished != nil {
		return fmt.Sprintf("%s (Unpublished)", unpublished.ReferenceAuthor)
	}
	return ""
}
