package scheduler

import (
	"sort"
	"time"

	"github.com/jugucan/gymsched/internal/logger"
	"github.com/jugucan/gymsched/internal/models"
)

type datedVersion struct {
	start   time.Time
	valid   bool
	version models.FixedSchedule
}

// ActiveVersion returns the version in force on date: the one with the
// latest start date not after date. Versions with the same start date
// resolve to the one that comes later in input order.
func (s *Scheduler) ActiveVersion(date any, versions []models.FixedSchedule) (models.FixedSchedule, bool) {
	day, ok := s.dayOf(date)
	if !ok {
		return models.FixedSchedule{}, false
	}

	sorted := make([]datedVersion, len(versions))
	for i, v := range versions {
		start, ok := s.dates.NormalizeToStartOfDay(v.StartDate)
		if !ok {
			logger.Debug("fixed schedule has malformed start date", "id", v.ID, "start_date", v.StartDate)
		}
		sorted[i] = datedVersion{start: start, valid: ok, version: v}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.valid != b.valid {
			return a.valid
		}
		return a.valid && a.start.Before(b.start)
	})

	var active *models.FixedSchedule
	for i := range sorted {
		v := &sorted[i]
		if !v.valid || v.start.After(day) {
			break
		}
		active = &v.version
	}
	if active == nil {
		return models.FixedSchedule{}, false
	}
	return *active, true
}

// ActiveSchedule returns the weekly template of the active version. When no
// version has started yet the result is an empty schedule.
func (s *Scheduler) ActiveSchedule(date any, versions []models.FixedSchedule) models.WeekdaySchedule {
	v, ok := s.ActiveVersion(date, versions)
	if !ok || v.Schedule == nil {
		return models.WeekdaySchedule{}
	}
	return v.Schedule
}

// FixedSessions returns the sessions of the active template for date's weekday.
func (s *Scheduler) FixedSessions(date any, versions []models.FixedSchedule) []models.SessionSlot {
	day, ok := s.dayOf(date)
	if !ok {
		return nil
	}
	return s.ActiveSchedule(day, versions)[models.WeekdayOf(day)]
}
