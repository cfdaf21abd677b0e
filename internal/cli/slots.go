package cli

import (
	"fmt"
	"strings"

	"github.com/jugucan/gymsched/internal/dates"
	"github.com/jugucan/gymsched/internal/models"
)

// ParseSession parses "program@HH:MM@gym".
func ParseSession(s string) (models.SessionSlot, error) {
	parts := strings.Split(strings.TrimSpace(s), "@")
	if len(parts) != 3 {
		return models.SessionSlot{}, fmt.Errorf("invalid session %q, want program@HH:MM@gym", s)
	}
	slot := models.SessionSlot{
		ProgramID: strings.TrimSpace(parts[0]),
		Time:      strings.TrimSpace(parts[1]),
		GymID:     strings.TrimSpace(parts[2]),
	}
	if slot.ProgramID == "" || slot.GymID == "" {
		return models.SessionSlot{}, fmt.Errorf("invalid session %q: program and gym are required", s)
	}
	if !dates.ValidTime(slot.Time) {
		return models.SessionSlot{}, fmt.Errorf("invalid session %q: time must be HH:MM", s)
	}
	return slot, nil
}

// ParseSlot parses "weekday=program@HH:MM@gym" for fixed schedules.
func ParseSlot(s string) (models.Weekday, models.SessionSlot, error) {
	day, session, ok := strings.Cut(s, "=")
	if !ok {
		return 0, models.SessionSlot{}, fmt.Errorf("invalid slot %q, want weekday=program@HH:MM@gym", s)
	}
	wd, err := models.ParseWeekday(day)
	if err != nil {
		return 0, models.SessionSlot{}, err
	}
	slot, err := ParseSession(session)
	if err != nil {
		return 0, models.SessionSlot{}, err
	}
	return wd, slot, nil
}

// BuildSchedule groups slot flags by weekday, keeping flag order per day.
func BuildSchedule(specs []string) (models.WeekdaySchedule, error) {
	sched := models.WeekdaySchedule{}
	for _, spec := range specs {
		wd, slot, err := ParseSlot(spec)
		if err != nil {
			return nil, err
		}
		sched[wd] = append(sched[wd], slot)
	}
	return sched, nil
}

func FormatSession(s models.SessionSlot) string {
	return fmt.Sprintf("%s@%s@%s", s.ProgramID, s.Time, s.GymID)
}

func FormatWeekdays(days []models.Weekday) string {
	if len(days) == 0 {
		return "-"
	}
	names := make([]string, 0, len(days))
	for _, d := range days {
		names = append(names, d.String()[:3])
	}
	return strings.Join(names, ",")
}
