// Package tui provides the interactive terminal browser for the project
// listing.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/projects42/projects42-cli/internal/api"
	"github.com/projects42/projects42-cli/internal/prefs"
	"github.com/projects42/projects42-cli/internal/query"
	"github.com/projects42/projects42-cli/internal/session"
	"github.com/projects42/projects42-cli/internal/ui"
)

// Model represents the state of the TUI application.
type Model struct {
	client  *api.Client
	machine *session.Machine
	store   prefs.Store

	width  int
	height int
	ready  bool

	// Session
	authState session.State
	user      *api.User

	// Data
	projects []api.Project
	visible  []api.Project

	// Search
	searchMode  bool
	searchInput textinput.Model
	search      string

	// Filters and sort
	filters   query.FilterState
	sortState query.SortState

	// Row state
	expanded  expansionSet
	cursor    int
	rowOffset int

	// Help
	help     help.Model
	keyMap   KeyMap
	showHelp bool

	statusMsg string
}

// New creates the TUI model. Saved filter preferences are seeded from the
// store; everything else starts fresh.
func New(client *api.Client, store prefs.Store) Model {
	searchInput := textinput.New()
	searchInput.Placeholder = "Search by name or description..."

	return Model{
		client:      client,
		machine:     session.New(client),
		store:       store,
		authState:   session.Authenticating,
		searchInput: searchInput,
		filters:     prefs.LoadFilters(store),
		expanded:    newExpansionSet(),
		help:        help.New(),
		keyMap:      DefaultKeyMap(),
		statusMsg:   "Checking session...",
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		checkSession(m.machine),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.searchInput.Width = m.width - 20
		return m, nil

	case sessionCheckedMsg:
		m.authState = msg.state
		m.user = msg.user
		if m.authState == session.Authenticated {
			m.statusMsg = "Loading projects..."
			return m, loadProjects(m.client)
		}
		return m, nil

	case projectsLoadedMsg:
		m.projects = msg.projects
		m.statusMsg = fmt.Sprintf("Loaded %d projects", len(msg.projects))
		m.recompute()
		return m, nil

	case errMsg:
		// Failures from explicit actions stay in the status bar; the UI
		// remains interactive.
		m.statusMsg = "Error: " + msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchInput(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keyMap.Search):
		m.searchMode = true
		m.searchInput.SetValue(m.search)
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keyMap.ClearSearch):
		if m.search != "" {
			m.search = ""
			m.recompute()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.scrollToCursor()
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
		m.scrollToCursor()
		return m, nil

	case key.Matches(msg, m.keyMap.Expand):
		if m.cursor < len(m.visible) {
			m.expanded.toggle(m.visible[m.cursor].ID)
		}
		return m, nil

	case key.Matches(msg, m.keyMap.SoloFilter):
		m.filters.Solo = cycleSolo(m.filters.Solo)
		m.persistFilters()
		m.recompute()
		return m, nil

	case key.Matches(msg, m.keyMap.SpecFilter):
		m.filters.Specialization = cycleOption(m.filters.Specialization, specializationOptions(m.projects))
		m.persistFilters()
		m.recompute()
		return m, nil

	case key.Matches(msg, m.keyMap.LangFilter):
		current := ""
		if len(m.filters.Languages) > 0 {
			current = m.filters.Languages[0]
		}
		next := cycleOption(current, languageOptions(m.projects))
		if next == "" {
			m.filters.Languages = []string{}
		} else {
			m.filters.Languages = []string{next}
		}
		m.persistFilters()
		m.recompute()
		return m, nil

	case key.Matches(msg, m.keyMap.ClearFilter):
		m.filters = query.DefaultFilters()
		m.persistFilters()
		m.recompute()
		return m, nil

	case key.Matches(msg, m.keyMap.SortName):
		m.sortState = m.sortState.Toggle(query.SortName)
		m.recompute()
		return m, nil

	case key.Matches(msg, m.keyMap.SortXP):
		m.sortState = m.sortState.Toggle(query.SortXPPoints)
		m.recompute()
		return m, nil

	case key.Matches(msg, m.keyMap.SortTime):
		m.sortState = m.sortState.Toggle(query.SortEstimateTime)
		m.recompute()
		return m, nil

	case key.Matches(msg, m.keyMap.SortSolo):
		m.sortState = m.sortState.Toggle(query.SortSolo)
		m.recompute()
		return m, nil

	case key.Matches(msg, m.keyMap.Refresh):
		m.statusMsg = "Refreshing projects..."
		return m, loadProjects(m.client)
	}

	return m, nil
}

// handleSearchInput handles keys while the search input is focused. The
// listing filters live as the text changes.
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.searchMode = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.search = ""
		m.recompute()
		return m, nil

	case tea.KeyEnter:
		m.searchMode = false
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.search = m.searchInput.Value()
	m.recompute()
	return m, cmd
}

// recompute rederives the visible sequence from the latest snapshot and the
// current search, filter, and sort state.
func (m *Model) recompute() {
	m.visible = query.Apply(m.projects, m.search, m.filters, m.sortState)
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.scrollToCursor()
}

func (m *Model) persistFilters() {
	if err := prefs.SaveFilters(m.store, m.filters); err != nil {
		m.statusMsg = "Warning: could not save filters: " + err.Error()
	}
}

func (m *Model) scrollToCursor() {
	maxRows := m.listHeight()
	if maxRows < 1 {
		maxRows = 1
	}
	if m.cursor < m.rowOffset {
		m.rowOffset = m.cursor
	}
	if m.cursor >= m.rowOffset+maxRows {
		m.rowOffset = m.cursor - maxRows + 1
	}
	if m.rowOffset < 0 {
		m.rowOffset = 0
	}
}

// listHeight is the number of project rows that fit between the chrome.
func (m Model) listHeight() int {
	return m.height - 8
}

// Messages

type sessionCheckedMsg struct {
	state session.State
	user  *api.User
}

type projectsLoadedMsg struct {
	projects []api.Project
}

type errMsg struct {
	err error
}

// Commands

func checkSession(machine *session.Machine) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		state := machine.Check(ctx)
		return sessionCheckedMsg{state: state, user: machine.User()}
	}
}

func loadProjects(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		projects, err := client.ListProjects(ctx)
		if err != nil {
			return errMsg{err: fmt.Errorf("failed to load projects: %w", err)}
		}

		return projectsLoadedMsg{projects: projects}
	}
}

// View renders the UI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	switch m.authState {
	case session.Authenticating:
		return m.renderCentered("Checking session...")
	case session.Unauthenticated, session.CallbackError:
		return m.renderCentered(
			"Not logged in.\n\nRun `projects42 login` in another terminal,\nthen restart the browser.\n\nPress q to quit.")
	}

	var content strings.Builder

	content.WriteString(m.renderHeader())
	content.WriteString("\n")
	content.WriteString(m.renderFilterBar())
	content.WriteString("\n\n")
	content.WriteString(m.renderRows())
	content.WriteString("\n")

	if m.searchMode {
		content.WriteString(m.renderSearchBar())
		content.WriteString("\n")
	}

	content.WriteString(m.renderStatusBar())
	content.WriteString("\n")

	if m.showHelp {
		content.WriteString("\n")
		content.WriteString(m.help.View(m.keyMap))
	}

	return content.String()
}

func (m Model) renderCentered(text string) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 3)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, style.Render(text))
}

func (m Model) renderHeader() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Padding(0, 1)

	userStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10")).
		Padding(0, 1)

	login := ""
	if m.user != nil {
		login = m.user.Login42
	}

	left := titleStyle.Render("42 Projects")
	right := userStyle.Render(login)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderFilterBar() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 1)
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	var parts []string

	switch {
	case m.filters.Solo == nil:
		parts = append(parts, "type: all")
	case *m.filters.Solo:
		parts = append(parts, activeStyle.Render("type: solo"))
	default:
		parts = append(parts, activeStyle.Render("type: group"))
	}

	if m.filters.Specialization != "" {
		parts = append(parts, activeStyle.Render("spec: "+m.filters.Specialization))
	} else {
		parts = append(parts, "spec: all")
	}

	if len(m.filters.Languages) > 0 {
		parts = append(parts, activeStyle.Render("lang: "+strings.Join(m.filters.Languages, ",")))
	} else {
		parts = append(parts, "lang: all")
	}

	if m.sortState.Key != query.SortNone {
		arrow := "↑"
		if m.sortState.Direction == query.Descending {
			arrow = "↓"
		}
		parts = append(parts, activeStyle.Render(fmt.Sprintf("sort: %s %s", m.sortState.Key, arrow)))
	}

	if m.search != "" {
		parts = append(parts, activeStyle.Render("search: "+m.search))
	}

	return dimStyle.Render(strings.Join(parts, "   "))
}

func (m Model) renderRows() string {
	if len(m.visible) == 0 {
		emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(1, 2)
		return emptyStyle.Render("No projects found. Try adjusting your search or filter criteria.")
	}

	selectedStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12"))
	normalStyle := lipgloss.NewStyle()
	detailStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		PaddingLeft(4)
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("11")).
		PaddingLeft(4)

	maxRows := m.listHeight()
	if maxRows < 1 {
		maxRows = 1
	}
	end := m.rowOffset + maxRows
	if end > len(m.visible) {
		end = len(m.visible)
	}

	descWidth := m.width / 3
	if descWidth < 20 {
		descWidth = 20
	}

	var sb strings.Builder
	for i := m.rowOffset; i < end; i++ {
		p := m.visible[i]

		desc := p.Description
		if desc == "" {
			desc = "No description"
		}

		line := fmt.Sprintf("%-22s %-*s %6s %6s %-6s %s",
			ui.Truncate(p.Name, 22),
			descWidth, ui.Truncate(desc, descWidth),
			ui.FormatXP(p.XPPoints),
			ui.FormatHours(p.EstimateTimeHours),
			ui.FormatSolo(p.Solo),
			ui.FormatSpecializations(p.Specializations),
		)

		cursor := "  "
		style := normalStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedStyle
		}
		sb.WriteString(cursor + style.Render(ui.Truncate(line, m.width-3)))
		sb.WriteString("\n")

		if m.expanded.has(p.ID) {
			if p.Description != "" {
				sb.WriteString(detailStyle.Render(p.Description))
				sb.WriteString("\n")
			}
			if len(p.Objectives) > 0 {
				sb.WriteString(labelStyle.Render("Objectives:"))
				sb.WriteString("\n")
				for _, obj := range p.Objectives {
					sb.WriteString(detailStyle.Render("• " + obj))
					sb.WriteString("\n")
				}
			}
			if len(p.Prerequisites) > 0 {
				sb.WriteString(labelStyle.Render("Prerequisites: "))
				sb.WriteString(detailStyle.Render(strings.Join(p.Prerequisites, ", ")))
				sb.WriteString("\n")
			}
		}
	}

	return sb.String()
}

func (m Model) renderSearchBar() string {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return style.Render("Search: " + m.searchInput.View())
}

func (m Model) renderStatusBar() string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 1)

	status := m.statusMsg
	if len(m.visible) != len(m.projects) {
		status += fmt.Sprintf(" | %d/%d shown", len(m.visible), len(m.projects))
	}

	return style.Render(status)
}
