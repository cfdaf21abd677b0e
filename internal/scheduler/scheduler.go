// Package scheduler resolves which sessions happen on a calendar date and
// whether that date counts as worked. All functions are pure: they read the
// records they are given and never cache, mutate or consult the clock.
package scheduler

import (
	"time"

	"github.com/jugucan/gymsched/internal/dates"
	"github.com/jugucan/gymsched/internal/logger"
)

type Scheduler struct {
	dates *dates.Normalizer
}

// New returns a Scheduler that interprets dates in loc. A nil loc means
// the system local timezone.
func New(loc *time.Location) *Scheduler {
	return &Scheduler{dates: dates.New(loc)}
}

func (s *Scheduler) Dates() *dates.Normalizer {
	return s.dates
}

func (s *Scheduler) Location() *time.Location {
	return s.dates.Location()
}

// dayOf normalizes the requested date. Callers pass real dates, so a bad
// value is a programming error upstream; it resolves to nothing.
func (s *Scheduler) dayOf(date any) (time.Time, bool) {
	d, ok := s.dates.NormalizeToStartOfDay(date)
	if !ok {
		logger.Debug("ignoring unparseable date", "date", date)
	}
	return d, ok
}
