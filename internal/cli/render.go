package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jugucan/gymsched/internal/models"
	"github.com/jugucan/gymsched/internal/report"
)

var (
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	MutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	WarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

var dayTypeColors = map[report.DayType]lipgloss.Color{
	report.DayMissed:             lipgloss.Color("203"),
	report.DayOverride:           lipgloss.Color("141"),
	report.DayScheduled:          lipgloss.Color("78"),
	report.DayWeekendUnscheduled: lipgloss.Color("240"),
	report.DayWorkdayUnscheduled: lipgloss.Color("214"),
}

// Table renders rows under headers with a rounded border.
func Table(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(MutedStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}

// RowsTable renders the per-day rows of a period.
func RowsTable(rows []report.Row) string {
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{
			r.Date,
			r.Weekday.Title()[:3],
			lipgloss.NewStyle().Foreground(dayTypeColors[r.DayType]).Render(string(r.DayType)),
			r.ProgramSummary,
			fmt.Sprintf("%d", r.Minutes),
			r.Notes,
		})
	}
	return Table([]string{"Date", "Day", "Type", "Sessions", "Min", "Notes"}, data)
}

// SummaryText renders the totals of a period.
func SummaryText(s report.Summary, sessionMinutes int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", TitleStyle.Render(fmt.Sprintf("Period %s (%s)", s.Period.Token, s.Period.Label)))

	data := [][]string{}
	for _, g := range s.Gyms() {
		name := g.Name
		if !g.Known {
			name = WarnStyle.Render(g.GymID + " (unknown gym)")
		}
		data = append(data, []string{name, fmt.Sprintf("%d", g.Count), fmt.Sprintf("%d", g.Count*sessionMinutes)})
	}
	b.WriteString(Table([]string{"Gym", "Sessions", "Minutes"}, data))
	b.WriteString("\n")

	hours := float64(s.TotalMinutes) / 60.0
	fmt.Fprintf(&b, "Total sessions: %d\n", s.TotalSessions)
	fmt.Fprintf(&b, "Total time:     %d min (%.1f h)\n", s.TotalMinutes, hours)
	fmt.Fprintf(&b, "Worked days:    %d\n", s.WorkedDays)
	fmt.Fprintf(&b, "Vacation days:  %d\n", s.TotalVacationDays)
	if n := s.ExcludedDays[models.ReasonClosure]; n > 0 {
		fmt.Fprintf(&b, "Closed days:    %d\n", n)
	}
	if n := s.ExcludedDays[models.ReasonHoliday]; n > 0 {
		fmt.Fprintf(&b, "Holidays:       %d\n", n)
	}
	return b.String()
}

// SessionsTable renders the sessions resolved for a day.
func SessionsTable(sessions []models.ResolvedSession, programs map[string]models.Program, gyms map[string]models.Gym) string {
	data := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		program := s.ProgramID
		if p, ok := programs[s.ProgramID]; ok {
			program = p.DisplayName()
		}
		gym := s.GymID
		if g, ok := gyms[s.GymID]; ok {
			gym = g.Name
		}
		data = append(data, []string{s.Time, program, gym, string(s.Source), s.Notes})
	}
	return Table([]string{"Time", "Program", "Gym", "Source", "Notes"}, data)
}
