package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projects42/projects42-cli/internal/api"
	"github.com/projects42/projects42-cli/internal/testutil"
)

func TestFormatXP(t *testing.T) {
	assert.Equal(t, "0", FormatXP(nil))
	assert.Equal(t, "200", FormatXP(testutil.IntPtr(200)))
	assert.Equal(t, "0", FormatXP(testutil.IntPtr(0)))
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "N/A", FormatHours(nil))
	assert.Equal(t, "70h", FormatHours(testutil.IntPtr(70)))
}

func TestFormatSolo(t *testing.T) {
	assert.Equal(t, "Solo", FormatSolo(true))
	assert.Equal(t, "Group", FormatSolo(false))
}

func TestFormatSpecializations(t *testing.T) {
	assert.Equal(t, "N/A", FormatSpecializations(nil))
	assert.Equal(t, "Common Core", FormatSpecializations([]api.Specialization{
		{Name: "common_core", DisplayName: "Common Core"},
	}))
	assert.Equal(t, "Common Core, Web & Mobile", FormatSpecializations([]api.Specialization{
		{Name: "common_core", DisplayName: "Common Core"},
		{Name: "web_mobile", DisplayName: "Web & Mobile"},
	}))
}

func TestFormatLanguages(t *testing.T) {
	assert.Equal(t, "N/A", FormatLanguages(nil))
	assert.Equal(t, "C, TypeScript", FormatLanguages([]api.Language{
		{Name: "c", DisplayName: "C"},
		{Name: "typescript", DisplayName: "TypeScript"},
	}))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{"shorter than width", "hello", 10, "hello"},
		{"exactly width", "hello", 5, "hello"},
		{"truncated with ellipsis", "hello world", 8, "hello..."},
		{"tiny width keeps prefix", "hello", 2, "he"},
		{"zero width", "hello", 0, ""},
		{"multibyte runes", "héllo wörld", 8, "héllo..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truncate(tt.input, tt.width))
		})
	}
}

func TestRenderProjectsTable(t *testing.T) {
	var buf bytes.Buffer

	err := RenderProjectsTable(&buf, testutil.SampleProjects())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ft_printf")
	assert.Contains(t, out, "minishell")
	assert.Contains(t, out, "Solo")
	assert.Contains(t, out, "Group")
	assert.Contains(t, out, "200")
	assert.Contains(t, out, "N/A")
}

func TestRenderProjectsTable_Empty(t *testing.T) {
	var buf bytes.Buffer

	err := RenderProjectsTable(&buf, nil)
	require.NoError(t, err)
}
