package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch {
	case m.loadErr != nil:
		content = errorStyle.Render(fmt.Sprintf("Could not load period %s: %v", m.token, m.loadErr))
	case m.state == StateDays:
		content = docStyle.Render(m.daysModel.View())
	default:
		content = docStyle.Render(m.summaryModel.View())
	}

	parts := []string{m.viewTabs(), m.viewHeader(), content}
	if m.validationWarning != "" {
		parts = append(parts, warningStyle.Render(m.validationWarning))
	}
	parts = append(parts, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewHeader() string {
	if m.period.Token == "" {
		return headerStyle.Render(m.token)
	}
	return headerStyle.Render(fmt.Sprintf("%s  %s", m.period.Token, m.period.Label))
}
