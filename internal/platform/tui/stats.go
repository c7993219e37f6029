package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/glyphball/internal/registry"
	"github.com/vovakirdan/glyphball/internal/storage"
)

const maxSessions = 100

// StatsKeyMap defines the key bindings for the stats screen.
type StatsKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextWidget key.Binding
	PrevWidget key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextWidget, k.PrevWidget, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextWidget, k.PrevWidget},
		{k.Back, k.Quit},
	}
}

// DefaultStatsKeyMap returns default key bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextWidget: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next widget"),
		),
		PrevWidget: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev widget"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// StatsModel shows recorded session summaries in a table, one widget at a time.
type StatsModel struct {
	widgets   []registry.Info
	cursor    int
	store     *storage.Store
	sessions  []storage.SessionEntry
	loadErr   error
	table     table.Model
	help      help.Model
	keys      StatsKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewStatsModel creates a new stats model. store may be nil.
func NewStatsModel(store *storage.Store, width, height int) StatsModel {
	m := StatsModel{
		widgets: registry.List(),
		store:   store,
		help:    help.New(),
		keys:    DefaultStatsKeyMap(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// StatsColumns are the table columns, also used by plain output.
var StatsColumns = []string{"#", "Cleared", "Regen", "Hits", "Respawns", "Flattens", "Frames", "User", "Date"}

// StatsRow formats a session as table cells.
func StatsRow(rank int, s storage.SessionEntry) []string {
	return []string{
		fmt.Sprintf("%d", rank),
		fmt.Sprintf("%d", s.CellsCleared),
		fmt.Sprintf("%d", s.Regenerations),
		fmt.Sprintf("%d", s.PaddleHits),
		fmt.Sprintf("%d", s.Respawns),
		fmt.Sprintf("%d", s.Flattens),
		fmt.Sprintf("%d", s.Frames),
		s.User,
		s.CreatedAt.Format("Jan 02 15:04"),
	}
}

// createTable creates a new table sized to the screen.
func (m *StatsModel) createTable() table.Model {
	widths := []int{4, 8, 6, 6, 9, 9, 8, 10, 13}
	columns := make([]table.Column, len(StatsColumns))
	for i, title := range StatsColumns {
		columns[i] = table.Column{Title: title, Width: widths[i]}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fetches sessions for the selected widget.
func (m *StatsModel) load() {
	m.sessions, m.loadErr = nil, nil
	if m.store != nil && len(m.widgets) > 0 {
		m.sessions, m.loadErr = m.store.TopSessions(m.widgets[m.cursor].ID, maxSessions)
	}

	rows := make([]table.Row, len(m.sessions))
	for i, s := range m.sessions {
		rows[i] = StatsRow(i+1, s)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the stats model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the stats screen.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextWidget):
			if len(m.widgets) > 0 {
				m.cursor = (m.cursor + 1) % len(m.widgets)
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevWidget):
			if len(m.widgets) > 0 {
				m.cursor = (m.cursor - 1 + len(m.widgets)) % len(m.widgets)
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.load()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the stats screen.
func (m StatsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "SESSIONS"
	if len(m.widgets) > 0 {
		title = fmt.Sprintf("SESSIONS - %s", m.widgets[m.cursor].Title)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(boxStyle.Render(m.tableContent()))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// tableContent renders the table or an explanatory message.
func (m StatsModel) tableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Session storage is disabled.")
	case m.loadErr != nil:
		return emptyStyle.Render(fmt.Sprintf("Could not load sessions:\n%v", m.loadErr))
	case len(m.sessions) == 0:
		return emptyStyle.Render("No sessions recorded yet.")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m StatsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m StatsModel) IsQuitting() bool {
	return m.quitting
}

// RunStats runs the stats screen on its own.
func RunStats(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		statsProgram{NewStatsModel(store, width, height)},
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

// statsProgram quits on back as well as quit when the stats screen is the
// whole program.
type statsProgram struct {
	StatsModel
}

func (p statsProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := p.StatsModel.Update(msg)
	if sm, ok := next.(StatsModel); ok {
		p.StatsModel = sm
	}
	if p.goingBack {
		return p, tea.Quit
	}
	return p, cmd
}
