package ui

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/projects42/projects42-cli/internal/api"
)

// RenderProjectsTable writes the project listing as a table. The description
// column is truncated to fit the terminal.
func RenderProjectsTable(w io.Writer, projects []api.Project) error {
	descWidth := TerminalWidth() / 3
	if descWidth < 20 {
		descWidth = 20
	}

	table := tablewriter.NewWriter(w)
	table.Header("Name", "Description", "XP", "Time", "Type", "Specializations")

	for _, p := range projects {
		desc := p.Description
		if desc == "" {
			desc = "No description"
		}
		table.Append(
			p.Name,
			Truncate(desc, descWidth),
			FormatXP(p.XPPoints),
			FormatHours(p.EstimateTimeHours),
			FormatSolo(p.Solo),
			FormatSpecializations(p.Specializations),
		)
	}

	return table.Render()
}
