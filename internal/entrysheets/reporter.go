package entrysheets

import (
	"context"
	"log/slog"
)

// Reporter receives the sync errors that were turned into error reports
type Reporter interface {
	ReportSyncError(ctx context.Context, target Target, err error)
}

// LogReporter reports sync errors to a logger
type LogReporter struct {
	logger *slog.Logger
}

// NewLogReporter creates a LogReporter. A nil logger selects slog.Default().
func NewLogReporter(logger *slog.Logger) *LogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogReporter{logger: logger}
}

// ReportSyncError logs the error at error level
func (r *LogReporter) ReportSyncError(ctx context.Context, target Target, err error) {
	r.logger.ErrorContext(ctx, "Entry sheet validation failed",
		"entry_sheet_id", target.SheetID,
		"source_study_id", target.SourceStudyID,
		"error", err)
}
