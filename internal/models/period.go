package models

import "time"

// PeriodRange is a reporting period, normally the 26th of one month through
// the 25th of the next. It is always derived, never stored.
type PeriodRange struct {
	Token string // closing month, YYYY-MM
	Start time.Time
	End   time.Time
	Label string
}

// Days returns every calendar day from Start through End inclusive.
func (p PeriodRange) Days() []time.Time {
	if p.End.Before(p.Start) {
		return nil
	}
	var days []time.Time
	for d := p.Start; !d.After(p.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// ExclusionReason explains why a day is not counted as worked.
type ExclusionReason string

const (
	ReasonNone    ExclusionReason = ""
	ReasonClosure ExclusionReason = "closure"
	ReasonHoliday ExclusionReason = "holiday"
	ReasonMissed  ExclusionReason = "missed"
)

type Exclusion struct {
	Excluded bool
	Reason   ExclusionReason
	Detail   string // display only: closure reason, holiday gym names, missed-day notes
}
