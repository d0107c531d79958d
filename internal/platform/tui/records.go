package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/campus-dex/internal/dex"
	"github.com/vovakirdan/campus-dex/internal/minigame"
	"github.com/vovakirdan/campus-dex/internal/storage"
)

// Records layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the tab sidebar
	sidebarWidth       = 20  // Width of the tab sidebar
	maxRecords         = 100 // Max rows to load
)

// RecordsTab is one page of the records browser.
type RecordsTab int

const (
	TabRuns RecordsTab = iota
	TabPuzzles
	TabAttempts
	tabCount
)

// String returns the tab title.
func (t RecordsTab) String() string {
	switch t {
	case TabRuns:
		return "Fastest runs"
	case TabPuzzles:
		return "Puzzles"
	case TabAttempts:
		return "Recent attempts"
	default:
		return "?"
	}
}

// RecordsKeyMap defines the key bindings for the records browser.
type RecordsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RecordsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.PrevTab, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RecordsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Back, k.Quit},
	}
}

// DefaultRecordsKeyMap returns default key bindings.
func DefaultRecordsKeyMap() RecordsKeyMap {
	return RecordsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next page"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev page"),
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

// RecordsModel is the Bubble Tea model for the records browser.
type RecordsModel struct {
	store       *storage.Store
	tab         RecordsTab
	rows        []table.Row
	loadErr     error
	table       table.Model
	help        help.Model
	keys        RecordsKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
	embedded    bool // owned by a parent model; never sends tea.Quit on back
}

// NewRecordsModel creates a records browser.
func NewRecordsModel(store *storage.Store, width, height int) RecordsModel {
	h := help.New()
	h.ShowAll = false

	m := RecordsModel{
		store:       store,
		keys:        DefaultRecordsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.load()
	return m
}

// columns returns the table columns for the current tab.
func (m RecordsModel) columns() []table.Column {
	switch m.tab {
	case TabPuzzles:
		return []table.Column{
			{Title: "Puzzle", Width: 10},
			{Title: "Creature", Width: 10},
			{Title: "Tries", Width: 6},
			{Title: "Caught", Width: 7},
			{Title: "Rate", Width: 6},
			{Title: "Fastest", Width: 8},
		}
	case TabAttempts:
		return []table.Column{
			{Title: "Creature", Width: 10},
			{Title: "Result", Width: 18},
			{Title: "Time", Width: 8},
			{Title: "Player", Width: 10},
			{Title: "Date", Width: 12},
		}
	default:
		return []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Time", Width: 9},
			{Title: "Tries", Width: 6},
			{Title: "Player", Width: 10},
			{Title: "Date", Width: 12},
		}
	}
}

// createTable creates a table sized for the window.
func (m RecordsModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithRows(m.rows),
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

// load reads the rows for the current tab and rebuilds the table.
func (m *RecordsModel) load() {
	m.rows, m.loadErr = RecordRows(m.store, m.tab)
	m.table = m.createTable()
}

// RecordRows loads the rows shown on tab. A nil store has no rows.
func RecordRows(store *storage.Store, tab RecordsTab) ([]table.Row, error) {
	if store == nil {
		return nil, nil
	}

	switch tab {
	case TabPuzzles:
		stats, err := store.GetAllGameStats()
		if err != nil {
			return nil, err
		}
		var rows []table.Row
		for _, info := range minigame.List() {
			st, ok := stats[info.ID]
			if !ok {
				continue
			}
			rows = append(rows, table.Row{
				info.Name,
				creatureLabel(info.ID),
				fmt.Sprintf("%d", st.Attempts),
				fmt.Sprintf("%d", st.Successes),
				fmt.Sprintf("%.0f%%", st.SuccessRate()*100),
				formatDuration(st.Fastest),
			})
		}
		return rows, nil

	case TabAttempts:
		attempts, err := store.RecentAttempts(maxRecords)
		if err != nil {
			return nil, err
		}
		rows := make([]table.Row, len(attempts))
		for i, a := range attempts {
			rows[i] = table.Row{
				creatureLabel(a.Game),
				attemptResult(a),
				formatDuration(a.Duration),
				a.Player,
				a.CreatedAt.Format("Jan 02 15:04"),
			}
		}
		return rows, nil

	default:
		runs, err := store.FastestRuns(maxRecords)
		if err != nil {
			return nil, err
		}
		rows := make([]table.Row, len(runs))
		for i, r := range runs {
			rows[i] = table.Row{
				fmt.Sprintf("#%d", i+1),
				formatDuration(r.Duration),
				fmt.Sprintf("%d", r.Attempts),
				r.Player,
				r.CreatedAt.Format("Jan 02 15:04"),
			}
		}
		return rows, nil
	}
}

// creatureLabel is the dex number and name of the creature a puzzle catches.
func creatureLabel(id dex.ID) string {
	c, ok := dex.Lookup(id)
	if !ok {
		return "?"
	}
	return fmt.Sprintf("%d %s", int(c.ID), c.Name)
}

func attemptResult(a storage.Attempt) string {
	if a.Success {
		return "caught"
	}
	if a.Reason == "" {
		return "escaped"
	}
	return a.Reason
}

// formatDuration renders a duration as m:ss, or "-" for zero.
func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// Init initializes the records model.
func (m RecordsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the records browser.
func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.embedded {
				return m, nil
			}
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % tabCount
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab + tabCount - 1) % tabCount
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the records browser.
func (m RecordsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("CAMPUS DEX RECORDS - %s", m.tab)
	b.WriteString(titleStyle.MarginBottom(1).Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderWideLayout renders the page list as a sidebar next to the table.
func (m RecordsModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Pages\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")
	for t := RecordsTab(0); t < tabCount; t++ {
		cursor := "  "
		style := lipgloss.NewStyle()
		if t == m.tab {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + t.String()))
		sidebar.WriteString("\n")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()),
		"  ",
		tableBoxStyle().Render(m.renderTableContent()),
	)
}

// renderNarrowLayout renders page tabs above the table.
func (m RecordsModel) renderNarrowLayout() string {
	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, 0, tabCount)
	for t := RecordsTab(0); t < tabCount; t++ {
		if t == m.tab {
			tabs = append(tabs, activeTabStyle.Render(t.String()))
		} else {
			tabs = append(tabs, tabStyle.Render(" "+t.String()+" "))
		}
	}

	var b strings.Builder
	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 {
		tabLine = fmt.Sprintf("< %s >", m.tab)
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")
	b.WriteString(tableBoxStyle().Render(m.renderTableContent()))
	return b.String()
}

func tableBoxStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
}

// renderTableContent renders the table or an empty message.
func (m RecordsModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Records are off.\nStart with a --db path to keep them.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not read records:\n" + m.loadErr.Error())
	case len(m.rows) == 0:
		return emptyStyle.Render("Nothing recorded yet.\nGo catch something!")
	}
	return m.table.View()
}

// Tab returns the current page.
func (m RecordsModel) Tab() RecordsTab {
	return m.tab
}

// IsGoingBack returns true if user wants to go back to the menu.
func (m RecordsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RecordsModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunRecords runs the records browser.
// Returns true if user wants to go back to the menu, false if quitting.
func RunRecords(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewRecordsModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(RecordsModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
