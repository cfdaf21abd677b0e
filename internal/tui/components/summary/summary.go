package summary

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jugucan/gymsched/internal/cli"
	"github.com/jugucan/gymsched/internal/report"
)

// Model shows the totals of one period in a scrollable viewport.
type Model struct {
	viewport       viewport.Model
	Summary        *report.Summary
	sessionMinutes int
	width          int
	height         int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Summary == nil {
		return "No period loaded."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetSummary(s report.Summary, sessionMinutes int) {
	m.Summary = &s
	m.sessionMinutes = sessionMinutes
	m.Render()
	m.viewport.GotoTop()
}

func (m *Model) Render() {
	if m.Summary == nil {
		m.viewport.SetContent("No period loaded.")
		return
	}
	m.viewport.SetContent(cli.SummaryText(*m.Summary, m.sessionMinutes))
}
