package scheduler

import (
	"github.com/jugucan/gymsched/internal/logger"
	"github.com/jugucan/gymsched/internal/models"
)

// ActiveOn returns the slots of every recurring session that runs on date,
// in input order. A session runs when date's weekday is one of its days and
// date lies within its start and optional end date, both inclusive. Sessions
// with a malformed start date, or a malformed non-empty end date, never run.
func (s *Scheduler) ActiveOn(date any, recurring []models.RecurringSession) []models.SessionSlot {
	day, ok := s.dayOf(date)
	if !ok {
		return nil
	}
	weekday := models.WeekdayOf(day)

	var slots []models.SessionSlot
	for _, r := range recurring {
		if !r.OnDay(weekday) {
			continue
		}
		start, ok := s.dates.NormalizeToStartOfDay(r.StartDate)
		if !ok {
			logger.Debug("recurring session has malformed start date", "id", r.ID, "start_date", r.StartDate)
			continue
		}
		if day.Before(start) {
			continue
		}
		if r.EndDate != "" {
			end, ok := s.dates.NormalizeToStartOfDay(r.EndDate)
			if !ok {
				logger.Debug("recurring session has malformed end date", "id", r.ID, "end_date", r.EndDate)
				continue
			}
			if day.After(end) {
				continue
			}
		}
		slots = append(slots, r.Slot())
	}
	return slots
}
