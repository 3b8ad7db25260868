// Package validation evaluates validation rules against tracker entities and
// reconciles the results with the validation records stored for them.
package validation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clevercanary/atlas-sync/internal/tracker"
)

// ID identifies a validation rule
type ID string

// Source study validations
const (
	SourceStudyInCAP                         ID = "SOURCE_STUDY_IN_CAP"
	SourceStudyInCellxGene                   ID = "SOURCE_STUDY_IN_CELLXGENE"
	SourceStudyInHCADataRepository           ID = "SOURCE_STUDY_IN_HCA_DATA_REPOSITORY"
	SourceStudyTitleMatchesHCADataRepository ID = "SOURCE_STUDY_TITLE_MATCHES_HCA_DATA_REPOSITORY"
	SourceStudyHCAProjectHasPrimaryData      ID = "SOURCE_STUDY_HCA_PROJECT_HAS_PRIMARY_DATA"
)

// Source dataset validations
const (
	SourceDatasetInCellxGene                   ID = "SOURCE_DATASET_IN_CELLXGENE"
	SourceDatasetInHCADataRepository           ID = "SOURCE_DATASET_IN_HCA_DATA_REPOSITORY"
	SourceDatasetTitleMatchesHCADataRepository ID = "SOURCE_DATASET_TITLE_MATCHES_HCA_DATA_REPOSITORY"
)

// Status is the outcome of a validation
type Status string

const (
	StatusPassed  Status = "PASSED"
	StatusFailed  Status = "FAILED"
	StatusBlocked Status = "BLOCKED"
)

// TaskStatus is the status of the task tracking a validation
type TaskStatus string

const (
	TaskStatusDone       TaskStatus = "DONE"
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusBlocked    TaskStatus = "BLOCKED"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
)

// System is the external system a validation checks against
type System string

const (
	SystemCAP               System = "CAP"
	SystemCellxGene         System = "CELLXGENE"
	SystemHCADataRepository System = "HCA_DATA_REPOSITORY"
)

// Type is the kind of work a failed validation asks for
type Type string

const (
	TypeIngest   Type = "INGEST"
	TypeMetadata Type = "METADATA"
)

// TaskStatusFor maps a validation status to the status of its task
func TaskStatusFor(status Status) TaskStatus {
	switch status {
	case StatusPassed:
		return TaskStatusDone
	case StatusBlocked:
		return TaskStatusBlocked
	default:
		return TaskStatusTodo
	}
}

// Difference is a mismatch found by a validation
type Difference struct {
	Variable string `json:"variable"`
	Actual   string `json:"actual"`
	Expected string `json:"expected"`
}

// StatusInfo is what a rule computes for an entity it applies to
type StatusInfo struct {
	Status           Status
	Differences      []Difference
	RelatedEntityURL *string
}

// Entity is an entity validations are evaluated for
type Entity interface {
	EntityID() uuid.UUID
	EntityType() tracker.EntityType
	EntityDOI() *string
	Title() string
	Citation() string
}

// Rule is a single validation check.
// Validate returns nil when the rule does not apply to the entity in its current shape.
type Rule interface {
	ID() ID
	Type() Type
	System() System
	Description() string
	Validate(ctx context.Context, entity Entity) (*StatusInfo, error)
}

// Info is the validation_info payload of a stored validation
type Info struct {
	Description       string             `json:"description"`
	Differences       []Difference       `json:"differences"`
	DOI               *string            `json:"doi"`
	EntityTitle       string             `json:"entityTitle"`
	EntityType        tracker.EntityType `json:"entityType"`
	PublicationString string             `json:"publicationString"`
	RelatedEntityURL  *string            `json:"relatedEntityUrl"`
	System            System             `json:"system"`
	TaskStatus        TaskStatus         `json:"taskStatus"`
	ValidationStatus  Status             `json:"validationStatus"`
	ValidationType    Type               `json:"validationType"`
}

// Result is the outcome of one rule for one entity
type Result struct {
	EntityID     uuid.UUID
	ValidationID ID
	AtlasIDs     []uuid.UUID
	Info         Info
}

// Record is a stored validation
type Record struct {
	EntityID     uuid.UUID
	ValidationID ID
	Info         Info
	AtlasIDs     []uuid.UUID
	ResolvedAt   *time.Time
}

// ReconcileSummary counts the writes made by a reconciliation
type ReconcileSummary struct {
	Inserted int
	Updated  int
	Deleted  int
}

// Writes returns the total number of records written
func (s ReconcileSummary) Writes() int {
	return s.Inserted + s.Updated + s.Deleted
}

// RefreshSummary describes a completed refresh of all validations
type RefreshSummary struct {
	SourceStudies  int
	SourceDatasets int
	Writes         int
	AtlasesUpdated int64
}

// EntityCount returns the number of entities reconciled
func (s *RefreshSummary) EntityCount() int {
	return s.SourceStudies + s.SourceDatasets
}
