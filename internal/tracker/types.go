// Package tracker contains the atlas tracker entities read by the validation
// engine and the entry sheet sync, decoded from their database rows.
package tracker

import (
	"github.com/google/uuid"
)

// EntityType identifies the kind of entity a validation belongs to
type EntityType string

const (
	// EntityTypeSourceStudy is a published or unpublished study contributing to atlases
	EntityTypeSourceStudy EntityType = "SOURCE_STUDY"

	// EntityTypeSourceDataset is a dataset produced by a source study
	EntityTypeSourceDataset EntityType = "SOURCE_DATASET"
)

// Author is an author of a publication
type Author struct {
	Name            string `json:"name"`
	PersonalName    string `json:"personalName,omitempty"`
	IsCorresponding bool   `json:"isCorresponding,omitempty"`
}

// PublicationInfo is the Crossref metadata of a published study
type PublicationInfo struct {
	Authors         []Author `json:"authors"`
	HasPreprintDOI  *string  `json:"hasPreprintDoi"`
	Journal         string   `json:"journal"`
	PreprintOfDOI   *string  `json:"preprintOfDoi"`
	PublicationDate string   `json:"publicationDate"`
	Title           string   `json:"title"`
}

// UnpublishedInfo describes a study that has no DOI yet
type UnpublishedInfo struct {
	ContactEmail    *string `json:"contactEmail"`
	ReferenceAuthor string  `json:"referenceAuthor"`
	Title           string  `json:"title"`
}

// MetadataSpreadsheet is an entry sheet linked to a source study
type MetadataSpreadsheet struct {
	ID    string  `json:"id"`
	Title *string `json:"title"`
	URL   string  `json:"url,omitempty"`
}

// StudyInfo is the study_info column of a source study
type StudyInfo struct {
	CapID                 *string               `json:"capId"`
	CellxGeneCollectionID *string               `json:"cellxgeneCollectionId"`
	HCAProjectID          *string               `json:"hcaProjectId"`
	MetadataSpreadsheets  []MetadataSpreadsheet `json:"metadataSpreadsheets,omitempty"`
	Publication           *PublicationInfo      `json:"publication"`
	UnpublishedInfo       *UnpublishedInfo      `json:"unpublishedInfo"`
}

// SourceStudy is a study contributing data to one or more atlases
type SourceStudy struct {
	ID   uuid.UUID
	DOI  *string
	Info StudyInfo
}

// DatasetInfo is the sd_info column of a source dataset
type DatasetInfo struct {
	CellxGeneCollectionID *string          `json:"cellxgeneCollectionId"`
	HCAProjectID          *string          `json:"hcaProjectId"`
	Publication           *PublicationInfo `json:"publication"`
	UnpublishedInfo       *UnpublishedInfo `json:"unpublishedInfo"`
}

// SourceDataset is a dataset belonging to a source study
type SourceDataset struct {
	ID            uuid.UUID
	SourceStudyID *uuid.UUID
	DOI           *string
	Info          DatasetInfo
}

// Atlas groups source studies and datasets
type Atlas struct {
	ID             uuid.UUID
	ShortName      string
	Version        string
	SourceStudies  []uuid.UUID
	SourceDatasets []uuid.UUID
}
