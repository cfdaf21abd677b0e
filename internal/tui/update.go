package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		m.summaryModel.SetSize(msg.Width-h, msg.Height-v-chromeHeight)
		m.daysModel.SetSize(msg.Width-h, msg.Height-v-chromeHeight)
		return m, nil

	case tea.KeyMsg:
		if m.state == StateDays && m.daysModel.Filtering() {
			m.daysModel, cmd = m.daysModel.Update(msg)
			return m, cmd
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % stateCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + stateCount) % stateCount
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.shift(-1)
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.shift(1)
			return m, nil
		case key.Matches(msg, m.keys.Current):
			m.token = m.currentToken()
			m.load()
			return m, nil
		case key.Matches(msg, m.keys.Reload):
			m.load()
			return m, nil
		}
	}

	switch m.state {
	case StateSummary:
		m.summaryModel, cmd = m.summaryModel.Update(msg)
	case StateDays:
		m.daysModel, cmd = m.daysModel.Update(msg)
	}
	return m, cmd
}
