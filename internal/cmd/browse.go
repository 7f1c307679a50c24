package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/projects42/projects42-cli/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactive TUI for browsing projects",
	Long: `Launch an interactive terminal browser for the project listing.

The browser provides:
- Live search (press ctrl+k or /, esc clears)
- Filter cycling: s for solo/group, S for specialization, L for language,
  c clears all filters
- Sorting: 1 name, 2 XP, 3 time estimate, 4 solo/group; pressing the same
  key again flips the direction
- Row expansion (Enter) showing description, objectives, and prerequisites
- Help panel (press ? to toggle)

Filter selections are saved and restored across runs. You must be logged in
(projects42 login) before browsing.`,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	client, _, err := getClient(cmd)
	if err != nil {
		return err
	}

	store, err := getPrefsStore()
	if err != nil {
		return fmt.Errorf("failed to open preference store: %w", err)
	}

	p := tea.NewProgram(tui.New(client, store), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
