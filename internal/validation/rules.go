package validation

import (
	"context"
	"strings"
	"unicode"

	"github.com/clevercanary/atlas-sync/internal/mirrors"
	"github.com/clevercanary/atlas-sync/internal/tracker"
)

const (
	hcaExplorerProjectURL    = "https://explore.data.humancellatlas.org/projects/"
	cellxgeneCollectionURL   = "https://cellxgene.cziscience.com/collections/"
	descriptionIngestStudy   = "Ingest source study."
	descriptionIngestDataset = "Ingest source dataset."
	descriptionUpdateTitle   = "Update project title to match publication title."
	descriptionPrimaryData   = "Add primary data."
)

// ProjectLookup resolves HCA data repository projects from the mirrored catalog
type ProjectLookup interface {
	ProjectInfoByID(ctx context.Context, id string) (*mirrors.ProjectInfo, error)
	ProjectInfoByDOI(ctx context.Context, dois []string) (*mirrors.ProjectInfo, error)
}

// DefaultRegistry returns a Registry with the source study and source dataset rules
func DefaultRegistry(projects ProjectLookup) *Registry {
	r := NewRegistry()
	// IDs are distinct, so registration cannot fail
	_ = r.Register(tracker.EntityTypeSourceStudy, SourceStudyRules(projects)...)
	_ = r.Register(tracker.EntityTypeSourceDataset, SourceDatasetRules(projects)...)
	return r
}

// SourceStudyRules returns the rules evaluated for source studies
func SourceStudyRules(projects ProjectLookup) []Rule {
	return []Rule{
		NewRule(SourceStudyInCAP, TypeIngest, SystemCAP, descriptionIngestStudy,
			func(_ context.Context, study *tracker.SourceStudy) (*StatusInfo, error) {
				if isEmpty(study.Info.CellxGeneCollectionID) {
					return &StatusInfo{Status: StatusBlocked}, nil
				}
				return passedIf(!isEmpty(study.Info.CapID), nil), nil
			}),
		NewRule(SourceStudyInCellxGene, TypeIngest, SystemCellxGene, descriptionIngestStudy,
			func(_ context.Context, study *tracker.SourceStudy) (*StatusInfo, error) {
				return passedIf(!isEmpty(study.Info.CellxGeneCollectionID),
					linkTo(cellxgeneCollectionURL, study.Info.CellxGeneCollectionID)), nil
			}),
		NewRule(SourceStudyInHCADataRepository, TypeIngest, SystemHCADataRepository, descriptionIngestStudy,
			func(_ context.Context, study *tracker.SourceStudy) (*StatusInfo, error) {
				return passedIf(!isEmpty(study.Info.HCAProjectID),
					linkTo(hcaExplorerProjectURL, study.Info.HCAProjectID)), nil
			}),
		NewRule(SourceStudyTitleMatchesHCADataRepository, TypeMetadata, SystemHCADataRepository, descriptionUpdateTitle,
			func(ctx context.Context, study *tracker.SourceStudy) (*StatusInfo, error) {
				if isEmpty(study.Info.HCAProjectID) || study.Info.Publication == nil {
					return nil, nil
				}
				project, err := projects.ProjectInfoByID(ctx, *study.Info.HCAProjectID)
				if err != nil || project == nil {
					return nil, err
				}
				return compareTitles(project, study.Info.Publication.Title), nil
			}),
		NewRule(SourceStudyHCAProjectHasPrimaryData, TypeIngest, SystemHCADataRepository, descriptionPrimaryData,
			func(ctx context.Context, study *tracker.SourceStudy) (*StatusInfo, error) {
				if isEmpty(study.Info.HCAProjectID) {
					return nil, nil
				}
				project, err := projects.ProjectInfoByID(ctx, *study.Info.HCAProjectID)
				if err != nil || project == nil {
					return nil, err
				}
				return passedIf(project.HasPrimaryData, linkTo(hcaExplorerProjectURL, &project.ID)), nil
			}),
	}
}

// SourceDatasetRules returns the rules evaluated for source datasets
func SourceDatasetRules(projects ProjectLookup) []Rule {
	return []Rule{
		NewRule(SourceDatasetInCellxGene, TypeIngest, SystemCellxGene, descriptionIngestDataset,
			func(_ context.Context, dataset *tracker.SourceDataset) (*StatusInfo, error) {
				return passedIf(!isEmpty(dataset.Info.CellxGeneCollectionID),
					linkTo(cellxgeneCollectionURL, dataset.Info.CellxGeneCollectionID)), nil
			}),
		NewRule(SourceDatasetInHCADataRepository, TypeIngest, SystemHCADataRepository, descriptionIngestDataset,
			func(_ context.Context, dataset *tracker.SourceDataset) (*StatusInfo, error) {
				return passedIf(!isEmpty(dataset.Info.HCAProjectID),
					linkTo(hcaExplorerProjectURL, dataset.Info.HCAProjectID)), nil
			}),
		NewRule(SourceDatasetTitleMatchesHCADataRepository, TypeMetadata, SystemHCADataRepository, descriptionUpdateTitle,
			func(ctx context.Context, dataset *tracker.SourceDataset) (*StatusInfo, error) {
				if isEmpty(dataset.DOI) || dataset.Info.Publication == nil || isEmpty(dataset.Info.HCAProjectID) {
					return nil, nil
				}
				project, err := projects.ProjectInfoByDOI(ctx, dataset.PublicationDOIs())
				if err != nil {
					return nil, err
				}
				if project == nil {
					return &StatusInfo{
						Status: StatusFailed,
						Differences: []Difference{{
							Variable: "title",
							Expected: dataset.Info.Publication.Title,
						}},
					}, nil
				}
				return compareTitles(project, dataset.Info.Publication.Title), nil
			}),
	}
}

func compareTitles(project *mirrors.ProjectInfo, publicationTitle string) *StatusInfo {
	info := &StatusInfo{
		Status:           StatusPassed,
		RelatedEntityURL: linkTo(hcaExplorerProjectURL, &project.ID),
	}
	if !TitlesMatch(project.Title, publicationTitle) {
		info.Status = StatusFailed
		info.Differences = []Difference{{
			Variable: "title",
			Actual:   project.Title,
			Expected: publicationTitle,
		}}
	}
	return info
}

// TitlesMatch compares titles ignoring case, punctuation and whitespace runs
func TitlesMatch(a, b string) bool {
	return normalizeTitle(a) == normalizeTitle(b)
}

func normalizeTitle(title string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, title)
	return strings.Join(strings.Fields(mapped), " ")
}

func passedIf(passed bool, relatedEntityURL *string) *StatusInfo {
	if passed {
		return &StatusInfo{Status: StatusPassed, RelatedEntityURL: relatedEntityURL}
	}
	return &StatusInfo{Status: StatusFailed}
}

func linkTo(base string, id *string) *string {
	if isEmpty(id) {
		return nil
	}
	url := base + *id
	return &url
}

func isEmpty(s *string) bool {
	return s == nil || *s == ""
}
