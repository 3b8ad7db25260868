package app

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clevercanary/atlas-sync/internal/versions"
)

func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	root := NewRootCmd()
	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "version", "migrate", "refresh-validations", "sync-entry-sheets"}, names)

	migrate, _, err := root.Find([]string{"migrate", "down"})
	require.NoError(t, err)
	assert.Equal(t, "down", migrate.Name())
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		args   []string
		verify func(t *testing.T, out string)
	}{
		{
			name: "text",
			args: []string{"version"},
			verify: func(t *testing.T, out string) {
				t.Helper()
				assert.True(t, strings.HasPrefix(out, "atlas-sync "))
			},
		},
		{
			name: "json",
			args: []string{"version", "--format", "json"},
			verify: func(t *testing.T, out string) {
				t.Helper()
				var info versions.VersionInfo
				require.NoError(t, json.Unmarshal([]byte(out), &info))
				assert.NotEmpty(t, info.Version)
				assert.NotEmpty(t, info.GoVersion)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := NewRootCmd()
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetArgs(tt.args)
			require.NoError(t, root.Execute())
			tt.verify(t, out.String())
		})
	}
}

func TestCommandsRequireConfig(t *testing.T) {
	t.Parallel()

	tests := [][]string{
		{"serve"},
		{"migrate", "up"},
		{"refresh-validations"},
		{"sync-entry-sheets", "--atlas", uuid.NewString()},
	}

	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			t.Parallel()

			root := NewRootCmd()
			root.SetOut(&bytes.Buffer{})
			root.SetErr(&bytes.Buffer{})
			root.SetArgs(args)
			err := root.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), `required flag(s) "config" not set`)
		})
	}
}

func TestServeRejectsMissingConfigFile(t *testing.T) {
	t.Parallel()

	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"serve", "--config", "does-not-exist.yaml"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestEntrySheetIDs(t *testing.T) {
	t.Parallel()

	atlasID := uuid.New()
	validationID := uuid.New()

	tests := []struct {
		name           string
		atlas          string
		validation     string
		wantAtlas      uuid.UUID
		wantValidation uuid.UUID
		wantErr        string
	}{
		{name: "atlas only", atlas: atlasID.String(), wantAtlas: atlasID},
		{name: "atlas and validation", atlas: atlasID.String(), validation: validationID.String(),
			wantAtlas: atlasID, wantValidation: validationID},
		{name: "bad atlas", atlas: "atlas-1", wantErr: "atlas must be a UUID"},
		{name: "bad validation", atlas: atlasID.String(), validation: "x", wantErr: "validation must be a UUID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := newSyncEntrySheetsCmd()
			require.NoError(t, cmd.Flags().Set("atlas", tt.atlas))
			if tt.validation != "" {
				require.NoError(t, cmd.Flags().Set("validation", tt.validation))
			}

			gotAtlas, gotValidation, err := entrySheetIDs(cmd)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAtlas, gotAtlas)
			assert.Equal(t, tt.wantValidation, gotValidation)
		})
	}
}

func TestConfirmed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		yes   bool
		input string
		want  bool
	}{
		{name: "yes flag", yes: true, want: true},
		{name: "answer yes", input: "yes\n", want: true},
		{name: "answer y without newline", input: "Y", want: true},
		{name: "answer no", input: "no\n", want: false},
		{name: "empty answer", input: "\n", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := &cobra.Command{}
			cmd.Flags().Bool("yes", tt.yes, "")
			cmd.SetIn(strings.NewReader(tt.input))
			cmd.SetOut(&bytes.Buffer{})

			got, err := confirmed(cmd, "Continue?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
