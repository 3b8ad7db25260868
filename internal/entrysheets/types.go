// Package entrysheets syncs metadata entry sheet validation reports from the
// HCA validation tools into the tracker database.
//
// A sync fetches the report of every target sheet concurrently, waits for all
// of them to settle, and writes the results with one lookup query and two bulk
// statements. A failure fetching one sheet is stored as a one-entry report for
// that sheet and never aborts the others.
package entrysheets

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an atlas or entry sheet validation does not exist
var ErrNotFound = errors.New("not found")

// Target is an entry sheet to sync along with the source study listing it
type Target struct {
	SourceStudyID uuid.UUID
	SheetID       string
}

// EntityType is the kind of metadata entity an error entry refers to
type EntityType string

const (
	// EntityTypeDataset is a dataset row
	EntityTypeDataset EntityType = "dataset"
	// EntityTypeDonor is a donor row
	EntityTypeDonor EntityType = "donor"
	// EntityTypeSample is a sample row
	EntityTypeSample EntityType = "sample"
)

// ErrorInfo is one entry of a validation report
type ErrorInfo struct {
	Cell        *string     `json:"cell"`
	Column      *string     `json:"column"`
	EntityType  *EntityType `json:"entity_type"`
	Input       any         `json:"input"`
	Message     string      `json:"message"`
	PrimaryKey  *string     `json:"primary_key"`
	Row         *int64      `json:"row"`
	WorksheetID *int64      `json:"worksheet_id"`
}

// Summary holds the counts of a validation report
type Summary struct {
	DatasetCount *int64 `json:"dataset_count"`
	DonorCount   *int64 `json:"donor_count"`
	ErrorCount   int64  `json:"error_count"`
	SampleCount  *int64 `json:"sample_count"`
}

// LastUpdated records who last edited a sheet and when
type LastUpdated struct {
	By      string  `json:"by"`
	ByEmail *string `json:"by_email"`
	Date    string  `json:"date"`
}

// Response is a validation tools response. Either Error is set, or the
// remaining fields describe the sheet.
type Response struct {
	Error       *string      `json:"error,omitempty"`
	SheetTitle  *string      `json:"sheet_title"`
	LastUpdated *LastUpdated `json:"last_updated"`
	Errors      []ErrorInfo  `json:"errors"`
	Summary     *Summary     `json:"summary"`
}

// Validation is the stored result of syncing one entry sheet
type Validation struct {
	EntrySheetID      string       `json:"entry_sheet_id"`
	EntrySheetTitle   *string      `json:"entry_sheet_title"`
	LastSynced        time.Time    `json:"last_synced"`
	LastUpdated       *LastUpdated `json:"last_updated"`
	SourceStudyID     uuid.UUID    `json:"source_study_id"`
	ValidationReport  []ErrorInfo  `json:"validation_report"`
	ValidationSummary Summary      `json:"validation_summary"`
}

// SyncSummary describes the outcome of a bulk sync
type SyncSummary struct {
	// Targets is the number of sheets fetched
	Targets  int
	// Failed is the number of sheets whose fetch ended in an error report
	Failed   int
	// Skipped is the number of sheets no longer listed by their source study
	Skipped  int
	Inserted int64
	Updated  int64
}

// ResponseError is a logical failure reported by the validation tools
type ResponseError struct {
	Message string
}

// Error returns the message sent by the validation tools
func (e *ResponseError) Error() string {
	return e.Message
}

// UnexpectedResponseError is returned when a validation tools response has neither shape
type UnexpectedResponseError struct {
	Detail string
}

// Error returns the error message
func (e *UnexpectedResponseError) Error() string {
	return "Received unexpected response format from HCA validation tools: " + e.Detail
}

// errorValidation builds the one-entry report stored when a sheet could not be validated
func errorValidation(target Target, syncTime time.Time, message string) Validation {
	return Validation{
		EntrySheetID:  target.SheetID,
		LastSynced:    syncTime,
		SourceStudyID: target.SourceStudyID,
		ValidationReport: []ErrorInfo{
			{Message: message},
		},
		ValidationSummary: Summary{ErrorCount: 1},
	}
}

// successValidation maps a successful response into its stored shape
func successValidation(target Target, syncTime time.Time, resp *Response) Validation {
	report := resp.Errors
	if report == nil {
		report = []ErrorInfo{}
	}
	summary := Summary{ErrorCount: int64(len(report))}
	if resp.Summary != nil {
		summary = *resp.Summary
	}
	return Validation{
		EntrySheetID:      target.SheetID,
		EntrySheetTitle:   resp.SheetTitle,
		LastSynced:        syncTime,
		LastUpdated:       resp.LastUpdated,
		SourceStudyID:     target.SourceStudyID,
		ValidationReport:  report,
		ValidationSummary: summary,
	}
}
