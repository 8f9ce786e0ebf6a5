package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/guard-patrol/internal/scenario"
)

// PickerModel is the Bubble Tea model for choosing a scenario to watch.
type PickerModel struct {
	items       []scenario.Scenario
	cursor      int
	width       int
	height      int
	keys        PickerKeyMap
	help        help.Model
	message     string // shown under the list, e.g. a load error
	quitting    bool
	selected    *scenario.Scenario
	openHistory bool
}

// NewPickerModel creates a picker over the given scenarios.
func NewPickerModel(items []scenario.Scenario, width, height int) PickerModel {
	h := help.New()
	h.Width = width
	return PickerModel{
		items:  items,
		width:  width,
		height: height,
		keys:   DefaultPickerKeyMap(),
		help:   h,
	}
}

// Init initializes the picker model.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

func (m PickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}

	case key.Matches(msg, m.keys.History):
		m.openHistory = true
	}

	return m, nil
}

// View renders the picker.
func (m PickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("G U A R D   P A T R O L"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a scenario", m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		empty := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
		b.WriteString(centerText(empty.Render("No scenarios found."), m.width))
		b.WriteString("\n")
	}

	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	for i, sc := range m.items {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = activeStyle
		}
		b.WriteString(centerText(style.Render(cursor+pickerLabel(sc)), m.width))
		b.WriteString("\n")
	}

	if m.message != "" {
		b.WriteString("\n")
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		b.WriteString(centerText(errStyle.Render(m.message), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(centerText(helpStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// pickerLabel is one picker row: name, grid size and known answers.
func pickerLabel(sc scenario.Scenario) string {
	label := sc.Name
	if m, err := sc.Map(); err == nil {
		label += fmt.Sprintf("  %dx%d", m.Bounds.Width, m.Bounds.Height)
	}
	if sc.Expected != nil {
		label += fmt.Sprintf("  (%d visited, %d loops)", sc.Expected.Visited, sc.Expected.Loops)
	}
	return label
}

// Selected returns the selected scenario, or nil if none was selected.
func (m PickerModel) Selected() *scenario.Scenario {
	return m.selected
}

// WantsHistory returns true if user requested the run history.
func (m PickerModel) WantsHistory() bool {
	return m.openHistory
}

// IsQuitting returns true if user requested to quit.
func (m PickerModel) IsQuitting() bool {
	return m.quitting
}

// WithMessage returns the picker with a note shown under the list and
// any previous selection cleared.
func (m PickerModel) WithMessage(msg string) PickerModel {
	m.message = msg
	m.selected = nil
	m.openHistory = false
	return m
}
