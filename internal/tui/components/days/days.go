package days

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jugucan/gymsched/internal/report"
)

type Item struct {
	Row report.Row
}

func (i Item) Title() string {
	return fmt.Sprintf("%s %s  %s", i.Row.Date, i.Row.Weekday.Title()[:3], i.Row.DayType)
}

func (i Item) Description() string {
	desc := i.Row.ProgramSummary
	if desc == "" {
		desc = "no sessions"
	}
	if i.Row.Minutes > 0 {
		desc += fmt.Sprintf(" | %d min", i.Row.Minutes)
	}
	if i.Row.Notes != "" {
		desc += " | " + i.Row.Notes
	}
	return desc
}

func (i Item) FilterValue() string { return i.Row.Date + " " + string(i.Row.DayType) }

// Model lists every day of a period with its classification.
type Model struct {
	list list.Model
}

func New(rows []report.Row, width, height int) Model {
	l := list.New(toItems(rows), list.NewDefaultDelegate(), width, height)
	l.Title = "Days"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is rendered by the parent model
	return Model{list: l}
}

func toItems(rows []report.Row) []list.Item {
	items := make([]list.Item, len(rows))
	for i, r := range rows {
		items[i] = Item{Row: r}
	}
	return items
}

func (m *Model) SetRows(rows []report.Row) {
	m.list.SetItems(toItems(rows))
	m.list.ResetSelected()
}

// Selected returns the highlighted day.
func (m Model) Selected() (report.Row, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Row, ok
}

// Filtering reports whether the list is capturing keys for its filter.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No days in this period."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
