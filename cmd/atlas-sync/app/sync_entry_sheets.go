package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/clevercanary/atlas-sync/internal/app"
	"github.com/clevercanary/atlas-sync/internal/entrysheets"
)

func newSyncEntrySheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync-entry-sheets",
		Short: "Sync the entry sheet validations of an atlas",
		Long: `Validate every entry sheet of the source studies of an atlas with the HCA
validation tools and store the results. With --validation only the sheet of
that stored entry sheet validation is synced. The command waits for the sync
to finish.`,
		RunE: runSyncEntrySheets,
	}
	addConfigFlag(cmd, false)
	cmd.Flags().String("atlas", "", "ID of the atlas (required)")
	cmd.Flags().String("validation", "", "ID of a single entry sheet validation to sync")
	if err := cmd.MarkFlagRequired("atlas"); err != nil {
		panic(err)
	}
	return cmd
}

func runSyncEntrySheets(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	atlasID, validationID, err := entrySheetIDs(cmd)
	if err != nil {
		return err
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

	if components.EntrySheets == nil {
		return fmt.Errorf("no validation tools URL configured")
	}

	var handle *entrysheets.Handle
	if validationID == uuid.Nil {
		handle, err = components.EntrySheets.StartAtlasSync(ctx, atlasID)
	} else {
		handle, err = components.EntrySheets.StartSingleSync(ctx, atlasID, validationID)
	}
	if err != nil {
		return fmt.Errorf("failed to start entry sheet sync: %w", err)
	}

	summary, err := handle.Wait(ctx)
	if err != nil {
		return fmt.Errorf("entry sheet sync failed: %w", err)
	}

	slog.Info("Entry sheet sync finished",
		"atlas", atlasID,
		"targets", summary.Targets,
		"failed", summary.Failed,
		"skipped", summary.Skipped,
		"inserted", summary.Inserted,
		"updated", summary.Updated)
	return nil
}

// entrySheetIDs parses the --atlas and --validation flags. The validation ID
// is uuid.Nil when the flag is not set.
func entrySheetIDs(cmd *cobra.Command) (uuid.UUID, uuid.UUID, error) {
	atlasFlag, err := cmd.Flags().GetString("atlas")
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("failed to get atlas flag: %w", err)
	}
	atlasID, err := uuid.Parse(atlasFlag)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("atlas must be a UUID: %w", err)
	}

	validationFlag, err := cmd.Flags().GetString("validation")
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("failed to get validation flag: %w", err)
	}
	if validationFlag == "" {
		return atlasID, uuid.Nil, nil
	}
	validationID, err := uuid.Parse(validationFlag)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("validation must be a UUID: %w", err)
	}
	return atlasID, validationID, nil
}
