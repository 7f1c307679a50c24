package ui

import (
	"fmt"
	"strings"

	"github.com/projects42/projects42-cli/internal/api"
)

// FormatXP renders the XP points column. Absent XP displays as 0.
func FormatXP(xp *int) string {
	if xp == nil {
		return "0"
	}
	return fmt.Sprintf("%d", *xp)
}

// FormatHours renders the time estimate column. Absent estimates display as
// N/A.
func FormatHours(hours *int) string {
	if hours == nil {
		return "N/A"
	}
	return fmt.Sprintf("%dh", *hours)
}

// FormatSolo renders the solo/group column.
func FormatSolo(solo bool) string {
	if solo {
		return "Solo"
	}
	return "Group"
}

// FormatSpecializations renders the specialization display names, or N/A.
func FormatSpecializations(specs []api.Specialization) string {
	if len(specs) == 0 {
		return "N/A"
	}
	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = s.DisplayName
	}
	return strings.Join(names, ", ")
}

// FormatLanguages renders the language display names, or N/A.
func FormatLanguages(langs []api.Language) string {
	if len(langs) == 0 {
		return "N/A"
	}
	names := make([]string, len(langs))
	for i, l := range langs {
		names[i] = l.DisplayName
	}
	return strings.Join(names, ", ")
}

// Truncate shortens s to at most width runes, appending an ellipsis when
// anything was cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
