package app

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clevercanary/atlas-sync/internal/entrysheets"
	"github.com/clevercanary/atlas-sync/internal/mirrors"
	pkgsync "github.com/clevercanary/atlas-sync/internal/sync"
	"github.com/clevercanary/atlas-sync/internal/sync/coordinator"
	"github.com/clevercanary/atlas-sync/internal/sync/state"
	"github.com/clevercanary/atlas-sync/internal/telemetry"
	"github.com/clevercanary/atlas-sync/internal/validation"
)

// AppComponents groups all application components
//
//nolint:revive // This name is fine
type AppComponents struct {
	// Pool is the database pool opened by the app. It is nil when a pool was injected.
	Pool *pgxpool.Pool

	// Telemetry holds the tracer and meter providers
	Telemetry *telemetry.Telemetry

	// Projects and Collections are the mirrored external catalogs
	Projects    *mirrors.HCAProjects
	Collections *mirrors.CellxGene

	// Mirrors groups every mirror for status and refresh
	Mirrors *mirrors.Set

	// Engine evaluates and stores validations
	Engine *validation.Engine

	// EntrySheets syncs entry sheet validations. It is nil when no
	// validation tools URL is configured.
	EntrySheets *entrysheets.Pipeline

	// StateService persists background job status
	StateService state.JobStateService

	// SyncManager decides on and performs the validations job
	SyncManager pkgsync.Manager

	// Trigger requests a validations run outside the polling schedule
	Trigger *coordinator.Trigger

	// SyncCoordinator manages the background validations job
	SyncCoordinator coordinator.Coordinator
}

// Close releases the pool and flushes telemetry
func (c *AppComponents) Close(ctx context.Context) {
	if c == nil {
		return
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
	if c.Telemetry != nil {
		if err := c.Telemetry.Shutdown(ctx); err != nil {
			slog.Error("Failed to shut down telemetry", "error", err)
		}
	}
}
