package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/guard-patrol/internal/storage"
)

// History layout constants
const (
	maxRuns       = 100 // Max runs to load per tab
	allRunsTab    = "all"
	historyChrome = 9 // rows used by title, tabs, summary and help
)

// RunLister is the part of the run store the history view reads.
type RunLister interface {
	RecentRuns(limit int) ([]storage.Run, error)
	RunsForScenario(scenarioID string, limit int) ([]storage.Run, error)
	Stats() (map[string]*storage.ScenarioStats, error)
}

// HistoryModel is the Bubble Tea model for the run history screen.
// Tabs are "all" followed by every scenario with recorded runs.
type HistoryModel struct {
	store     RunLister
	tabs      []string
	tabCursor int
	runs      []storage.Run
	stats     map[string]*storage.ScenarioStats
	loadErr   error
	table     table.Model
	help      help.Model
	keys      HistoryKeyMap
	width     int
	height    int
	embedded  bool
	quitting  bool
	goingBack bool
}

// NewHistoryModel creates a history view. A non-empty scenarioID opens on
// that scenario's tab.
func NewHistoryModel(store RunLister, scenarioID string, width, height int) HistoryModel {
	h := help.New()
	h.Width = width

	m := HistoryModel{
		store:  store,
		tabs:   []string{allRunsTab},
		keys:   DefaultHistoryKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}

	if store != nil {
		stats, err := store.Stats()
		if err != nil {
			m.loadErr = err
		} else {
			m.stats = stats
			ids := make([]string, 0, len(stats))
			for id := range stats {
				ids = append(ids, id)
			}
			slices.Sort(ids)
			m.tabs = append(m.tabs, ids...)
		}
	}

	if i := slices.Index(m.tabs, scenarioID); scenarioID != "" && i >= 0 {
		m.tabCursor = i
	}

	m.table = m.createTable()
	m.loadRuns()
	return m
}

// createTable creates a new table sized to the current window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 12},
		{Title: "Scenario", Width: 14},
		{Title: "Grid", Width: 9},
		{Title: "Visited", Width: 8},
		{Title: "Loops", Width: 6},
		{Title: "Strategy", Width: 11},
		{Title: "Time", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-historyChrome, 3)),
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

// loadRuns loads runs for the current tab.
func (m *HistoryModel) loadRuns() {
	if m.store == nil {
		m.runs = nil
		m.updateTableRows()
		return
	}

	var (
		runs []storage.Run
		err  error
	)
	if tab := m.CurrentTab(); tab == allRunsTab {
		runs, err = m.store.RecentRuns(maxRuns)
	} else {
		runs, err = m.store.RunsForScenario(tab, maxRuns)
	}
	m.loadErr = err
	m.runs = runs
	m.updateTableRows()
}

// updateTableRows updates the table with current runs.
func (m *HistoryModel) updateTableRows() {
	m.table.SetRows(RunRows(m.runs))
	m.table.GotoTop()
}

// RunRows formats runs as table rows, in the column order of the history table.
func RunRows(runs []storage.Run) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			r.CreatedAt.Format("Jan 02 15:04"),
			r.ScenarioID,
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			strconv.Itoa(r.Visited),
			strconv.Itoa(r.Loops),
			r.Strategy,
			r.Duration.Round(time.Microsecond).String(),
		}
	}
	return rows
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history view.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			m.tabCursor = (m.tabCursor + 1) % len(m.tabs)
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tabCursor--
			if m.tabCursor < 0 {
				m.tabCursor = len(m.tabs) - 1
			}
			m.loadRuns()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history view.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(centerText(titleStyle.Render("RUN HISTORY"), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if summary := m.summary(); summary != "" {
		b.WriteString(dim.Render(summary))
		b.WriteString("\n")
	}
	b.WriteString(dim.Render(m.help.View(m.keys)))

	return b.String()
}

func (m HistoryModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.tabs))
	for i, name := range m.tabs {
		if i == m.tabCursor {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(" " + name + " ")
		}
	}

	line := strings.Join(tabs, " ")
	if m.width > 0 && lipgloss.Width(line) > m.width-4 {
		line = fmt.Sprintf("< %s >", m.CurrentTab())
	}
	return line
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if m.loadErr != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1, 2)
		return errStyle.Render("Could not load runs: " + m.loadErr.Error())
	}
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nSolve a scenario to start the history.")
	}
	return m.table.View()
}

// summary describes the current scenario tab's aggregate stats.
func (m HistoryModel) summary() string {
	st, ok := m.stats[m.CurrentTab()]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%d runs  avg %s  fastest %s  last %s",
		st.Runs,
		st.AvgDuration.Round(time.Microsecond),
		st.Fastest.Round(time.Microsecond),
		st.LastRun.Format("Jan 02 15:04"))
}

// CurrentTab returns the selected tab name.
func (m HistoryModel) CurrentTab() string {
	return m.tabs[m.tabCursor]
}

// Runs returns the runs shown for the current tab.
func (m HistoryModel) Runs() []storage.Run {
	return m.runs
}

// IsGoingBack returns true if user wants to go back.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the history screen as a full-screen program.
func RunHistory(store RunLister, scenarioID string, width, height int) error {
	model := NewHistoryModel(store, scenarioID, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
