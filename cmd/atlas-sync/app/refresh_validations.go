package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/clevercanary/atlas-sync/internal/app"
)

func newRefreshValidationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh-validations",
		Short: "Refresh the mirrors and every validation once",
		Long: `Refresh the mirrors, update the external IDs of published source studies, and
recompute the validations of every source study and source dataset. The job
status stored for the background coordinator is left untouched.`,
		RunE: runRefreshValidations,
	}
	addConfigFlag(cmd, false)
	return cmd
}

func runRefreshValidations(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	components, err := app.NewComponents(ctx, app.WithConfig(cfg), app.WithMirrorAutoStart(false))
	if err != nil {
		return fmt.Errorf("failed to build components: %w", err)
	}
	defer components.Close(context.WithoutCancel(ctx))

	if err := components.Mirrors.RefreshAllIfNeeded(ctx); err != nil {
		return fmt.Errorf("failed to refresh mirrors: %w", err)
	}
	if !components.Mirrors.AllReady() {
		for name, st := range components.Mirrors.Statuses() {
			if st.ErrorMessage != "" {
				slog.Error("Mirror refresh failed", "mirror", name, "error", st.ErrorMessage)
			}
		}
		return fmt.Errorf("mirrors are not ready")
	}

	result, syncErr := components.SyncManager.PerformSync(ctx)
	if syncErr != nil {
		return syncErr
	}

	slog.Info("Validations refreshed",
		"entities", result.EntityCount,
		"writes", result.Writes,
		"external_ids_updated", result.ExternalIDsUpdated,
		"atlases_updated", result.AtlasesUpdated)
	return nil
}
