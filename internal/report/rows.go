package report

import (
	"fmt"
	"strings"

	"github.com/jugucan/gymsched/internal/models"
)

type DayType string

const (
	DayMissed             DayType = "MISSED"
	DayOverride           DayType = "OVERRIDE"
	DayScheduled          DayType = "SCHEDULED"
	DayWeekendUnscheduled DayType = "WEEKEND_UNSCHEDULED"
	DayWorkdayUnscheduled DayType = "WORKDAY_UNSCHEDULED"
)

const unknownLabel = "unknown"

// Row describes one day of a period.
type Row struct {
	Date           string                   `json:"date"`
	Weekday        models.Weekday           `json:"weekday"`
	DayType        DayType                  `json:"day_type"`
	ProgramSummary string                   `json:"program_summary"`
	Minutes        int                      `json:"minutes"`
	Notes          string                   `json:"notes,omitempty"`
	Sessions       []models.ResolvedSession `json:"sessions,omitempty"`
}

// BuildRow classifies a single day. Any exclusion makes the day MISSED with
// the reason in the notes; otherwise the day type depends on whether it has
// sessions and where they came from.
func (b *Builder) BuildRow(date any, sessions []models.ResolvedSession, ex models.Exclusion, overridden bool,
	programsByID map[string]models.Program, gymsByID map[string]models.Gym,
) Row {
	day, _ := b.sched.Dates().NormalizeToStartOfDay(date)
	row := Row{
		Date:           b.sched.Dates().ToDateKey(day),
		Weekday:        models.WeekdayOf(day),
		ProgramSummary: summarize(sessions, programsByID, gymsByID),
		Sessions:       sessions,
	}

	switch {
	case ex.Excluded:
		row.DayType = DayMissed
		row.Notes = exclusionNote(ex)
	case len(sessions) > 0 && overridden:
		row.DayType = DayOverride
	case len(sessions) > 0:
		row.DayType = DayScheduled
	case row.Weekday.IsWeekend():
		row.DayType = DayWeekendUnscheduled
	default:
		row.DayType = DayWorkdayUnscheduled
	}

	if !ex.Excluded {
		row.Minutes = len(sessions) * b.sessionMinutes
		if overridden && len(sessions) == 0 {
			row.Notes = "cleared by override"
		}
	}
	return row
}

// BuildRows returns one row per day of period.
func (b *Builder) BuildRows(period models.PeriodRange, snap models.Snapshot) []Row {
	programs := snap.ProgramsByID()
	gyms := snap.GymsByID()

	days := period.Days()
	rows := make([]Row, 0, len(days))
	for _, day := range days {
		rows = append(rows, b.BuildRow(day,
			b.sched.ResolveSnapshot(day, snap),
			b.sched.ClassifySnapshot(day, snap),
			b.sched.IsOverridden(day, snap.Overrides),
			programs, gyms,
		))
	}
	return rows
}

func summarize(sessions []models.ResolvedSession, programs map[string]models.Program, gyms map[string]models.Gym) string {
	parts := make([]string, 0, len(sessions))
	for _, s := range sessions {
		program := unknownLabel
		if p, ok := programs[s.ProgramID]; ok {
			program = p.DisplayName()
		}
		gym := unknownLabel
		if g, ok := gyms[s.GymID]; ok {
			gym = g.Name
		}
		parts = append(parts, fmt.Sprintf("%s %s @ %s", program, s.Time, gym))
	}
	return strings.Join(parts, "; ")
}

func exclusionNote(ex models.Exclusion) string {
	if ex.Detail == "" {
		return string(ex.Reason)
	}
	return fmt.Sprintf("%s: %s", ex.Reason, ex.Detail)
}
