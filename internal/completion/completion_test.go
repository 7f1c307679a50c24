package completion

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestFilterCompletions(t *testing.T) {
	completions := []string{"name", "xp_points", "1\tft_printf", "2\tminishell"}

	assert.Equal(t, completions, filterCompletions(completions, ""))
	assert.Equal(t, []string{"xp_points"}, filterCompletions(completions, "xp"))
	// the prefix matches the value, not the description
	assert.Equal(t, []string{"1\tft_printf"}, filterCompletions(completions, "1"))
	assert.Empty(t, filterCompletions(completions, "zzz"))
}

func TestSortFieldCompletionFunc(t *testing.T) {
	fn := SortFieldCompletionFunc()

	values, directive := fn(&cobra.Command{}, nil, "xp_points:")
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
	assert.Contains(t, values, "xp_points:asc")
	assert.Contains(t, values, "xp_points:desc")
}

func TestSoloValueCompletionFunc(t *testing.T) {
	fn := SoloValueCompletionFunc()

	values, _ := fn(&cobra.Command{}, nil, "")
	assert.Equal(t, []string{"solo", "group", "all"}, values)

	values, _ = fn(&cobra.Command{}, nil, "g")
	assert.Equal(t, []string{"group"}, values)
}

func TestValidOutputFormats(t *testing.T) {
	assert.Equal(t, []string{"table", "json"}, ValidOutputFormats())
}
