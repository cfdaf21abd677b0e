package scheduler

import (
	"strings"

	"github.com/jugucan/gymsched/internal/models"
)

// Classify decides whether date is excluded from the worked count. A closure
// takes priority over a gym holiday, which takes priority over a missed day.
// The first matching closure or missed day supplies the detail text.
func (s *Scheduler) Classify(date any, closures []models.GymClosure, gyms []models.Gym, missed []models.MissedDay) models.Exclusion {
	day, ok := s.dayOf(date)
	if !ok {
		return models.Exclusion{}
	}
	key := s.dates.ToDateKey(day)

	for _, c := range closures {
		if s.dates.ToDateKey(c.Date) == key {
			return models.Exclusion{Excluded: true, Reason: models.ReasonClosure, Detail: c.Reason}
		}
	}

	var holidayGyms []string
	for _, g := range gyms {
		for _, h := range g.HolidaysTaken {
			if s.dates.ToDateKey(h) == key {
				holidayGyms = append(holidayGyms, gymLabel(g))
				break
			}
		}
	}
	if len(holidayGyms) > 0 {
		return models.Exclusion{Excluded: true, Reason: models.ReasonHoliday, Detail: strings.Join(holidayGyms, ", ")}
	}

	for _, m := range missed {
		if s.dates.ToDateKey(m.Date) == key {
			return models.Exclusion{Excluded: true, Reason: models.ReasonMissed, Detail: m.Notes}
		}
	}
	return models.Exclusion{}
}

// ClassifySnapshot is Classify over the collections of snap.
func (s *Scheduler) ClassifySnapshot(date any, snap models.Snapshot) models.Exclusion {
	return s.Classify(date, snap.Closures, snap.Gyms, snap.MissedDays)
}

func gymLabel(g models.Gym) string {
	if g.Name != "" {
		return g.Name
	}
	return g.ID
}
