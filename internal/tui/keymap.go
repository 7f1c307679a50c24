package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines keybindings for the listing view.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Expand      key.Binding
	Search      key.Binding
	ClearSearch key.Binding
	SoloFilter  key.Binding
	SpecFilter  key.Binding
	LangFilter  key.Binding
	ClearFilter key.Binding
	SortName    key.Binding
	SortXP      key.Binding
	SortTime    key.Binding
	SortSolo    key.Binding
	Refresh     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Expand: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "expand/collapse"),
		),
		Search: key.NewBinding(
			key.WithKeys("ctrl+k", "/"),
			key.WithHelp("ctrl+k", "search"),
		),
		ClearSearch: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear search"),
		),
		SoloFilter: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "solo/group filter"),
		),
		SpecFilter: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "specialization filter"),
		),
		LangFilter: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "language filter"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear filters"),
		),
		SortName: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "sort by name"),
		),
		SortXP: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "sort by XP"),
		),
		SortTime: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "sort by time"),
		),
		SortSolo: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "sort by solo/group"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refetch projects"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Expand, k.Search, k.SoloFilter, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Expand, k.Search, k.ClearSearch},
		{k.SoloFilter, k.SpecFilter, k.LangFilter, k.ClearFilter},
		{k.SortName, k.SortXP, k.SortTime, k.SortSolo},
		{k.Refresh, k.Help, k.Quit},
	}
}
