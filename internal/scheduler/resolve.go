package scheduler

import (
	"github.com/jugucan/gymsched/internal/models"
)

// Resolve returns the sessions that actually occur on date.
//
// An override for the date replaces everything, and an empty override means
// no sessions at all. Otherwise the result is the active fixed template's
// sessions for the weekday followed by the recurring sessions running that
// day, with repeats of the same program, time and gym dropped after the first.
func (s *Scheduler) Resolve(date any, versions []models.FixedSchedule, recurring []models.RecurringSession, overrides []models.ScheduleOverride) []models.ResolvedSession {
	day, ok := s.dayOf(date)
	if !ok {
		return nil
	}

	if o, ok := s.overrideFor(day, overrides); ok {
		resolved := make([]models.ResolvedSession, 0, len(o.Sessions))
		for _, slot := range o.Sessions {
			resolved = append(resolved, models.ResolvedSession{SessionSlot: slot, Source: models.SourceOverride})
		}
		return resolved
	}

	var resolved []models.ResolvedSession
	seen := make(map[models.SlotKey]bool)
	add := func(slots []models.SessionSlot, source models.Provenance) {
		for _, slot := range slots {
			if seen[slot.Key()] {
				continue
			}
			seen[slot.Key()] = true
			resolved = append(resolved, models.ResolvedSession{SessionSlot: slot, Source: source})
		}
	}
	add(s.FixedSessions(day, versions), models.SourceFixed)
	add(s.ActiveOn(day, recurring), models.SourceRecurring)
	return resolved
}

// ResolveSnapshot is Resolve over the collections of snap.
func (s *Scheduler) ResolveSnapshot(date any, snap models.Snapshot) []models.ResolvedSession {
	return s.Resolve(date, snap.FixedSchedules, snap.RecurringSessions, snap.Overrides)
}

// IsOverridden reports whether an override exists for date.
func (s *Scheduler) IsOverridden(date any, overrides []models.ScheduleOverride) bool {
	day, ok := s.dayOf(date)
	if !ok {
		return false
	}
	_, ok = s.overrideFor(day, overrides)
	return ok
}

// OverrideFor returns the override in effect on date, if any.
func (s *Scheduler) OverrideFor(date any, overrides []models.ScheduleOverride) (models.ScheduleOverride, bool) {
	day, ok := s.dayOf(date)
	if !ok {
		return models.ScheduleOverride{}, false
	}
	return s.overrideFor(day, overrides)
}

// overrideFor matches by date key. The first override for a key wins.
func (s *Scheduler) overrideFor(day any, overrides []models.ScheduleOverride) (models.ScheduleOverride, bool) {
	key := s.dates.ToDateKey(day)
	for _, o := range overrides {
		if s.dates.ToDateKey(o.Date) == key {
			return o, true
		}
	}
	return models.ScheduleOverride{}, false
}
