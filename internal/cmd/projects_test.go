package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projects42/projects42-cli/internal/query"
	"github.com/projects42/projects42-cli/internal/testutil"
)

func TestParseSortFlag(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected query.SortState
		wantErr  bool
	}{
		{
			name:     "empty means no sort",
			input:    "",
			expected: query.SortState{},
		},
		{
			name:     "bare field defaults to ascending",
			input:    "name",
			expected: query.SortState{Key: query.SortName, Direction: query.Ascending},
		},
		{
			name:     "field with direction",
			input:    "xp_points:desc",
			expected: query.SortState{Key: query.SortXPPoints, Direction: query.Descending},
		},
		{
			name:     "direction is case-insensitive",
			input:    "estimate_time:ASC",
			expected: query.SortState{Key: query.SortEstimateTime, Direction: query.Ascending},
		},
		{
			name:    "invalid field",
			input:   "difficulty:asc",
			wantErr: true,
		},
		{
			name:    "invalid direction",
			input:   "name:sideways",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, err := parseSortFlag(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, state)
		})
	}
}

func TestResolveListFilters_Flags(t *testing.T) {
	// Prefs live under HOME; point it somewhere empty so only flags apply.
	testutil.SetEnv(t, "HOME", t.TempDir())

	tests := []struct {
		name     string
		soloFlag string
		wantSolo *bool
		wantErr  bool
	}{
		{"solo keyword", "solo", testutil.BoolPtr(true), false},
		{"true alias", "true", testutil.BoolPtr(true), false},
		{"group keyword", "group", testutil.BoolPtr(false), false},
		{"false alias", "false", testutil.BoolPtr(false), false},
		{"all clears the constraint", "all", nil, false},
		{"garbage rejected", "sometimes", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := listProjectsCmd
			require.NoError(t, cmd.Flags().Set("solo", tt.soloFlag))
			listFlags.solo = tt.soloFlag
			t.Cleanup(func() {
				cmd.Flags().Lookup("solo").Changed = false
				listFlags.solo = ""
			})

			filters, err := resolveListFilters(cmd)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantSolo == nil {
				assert.Nil(t, filters.Solo)
			} else {
				require.NotNil(t, filters.Solo)
				assert.Equal(t, *tt.wantSolo, *filters.Solo)
			}
		})
	}
}

func TestResolveListFilters_LanguageAndSpecialization(t *testing.T) {
	testutil.SetEnv(t, "HOME", t.TempDir())

	cmd := listProjectsCmd
	require.NoError(t, cmd.Flags().Set("language", "c,typescript"))
	require.NoError(t, cmd.Flags().Set("specialization", "web_mobile"))
	t.Cleanup(func() {
		cmd.Flags().Lookup("language").Changed = false
		cmd.Flags().Lookup("specialization").Changed = false
		listFlags.languages = nil
		listFlags.spec = ""
	})

	filters, err := resolveListFilters(cmd)

	require.NoError(t, err)
	assert.Equal(t, []string{"c", "typescript"}, filters.Languages)
	assert.Equal(t, "web_mobile", filters.Specialization)
}

func TestResolveListFilters_DefaultsWithoutFlags(t *testing.T) {
	testutil.SetEnv(t, "HOME", t.TempDir())

	filters, err := resolveListFilters(listProjectsCmd)

	require.NoError(t, err)
	assert.Equal(t, query.DefaultFilters(), filters)
}
