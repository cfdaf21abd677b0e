package models

// SessionSlot is the atomic unit of scheduling: one class of a program at a
// time of day in a gym.
type SessionSlot struct {
	ProgramID string `json:"program_id"`
	Time      string `json:"time"` // HH:MM format
	GymID     string `json:"gym_id"`
	Notes     string `json:"notes,omitempty"`
}

// SlotKey identifies a class slot for deduplication.
type SlotKey struct {
	ProgramID string
	Time      string
	GymID     string
}

func (s SessionSlot) Key() SlotKey {
	return SlotKey{ProgramID: s.ProgramID, Time: s.Time, GymID: s.GymID}
}

// WeekdaySchedule maps each weekday to its ordered list of sessions.
type WeekdaySchedule map[Weekday][]SessionSlot

// FixedSchedule is an effective-dated weekly template. The version with the
// latest StartDate not after a given date is the one in force on that date.
type FixedSchedule struct {
	ID        string          `json:"id"`
	StartDate string          `json:"start_date"` // YYYY-MM-DD format
	Schedule  WeekdaySchedule `json:"schedule"`
}

// RecurringSession repeats on the given weekdays between StartDate and the
// optional EndDate, both inclusive.
type RecurringSession struct {
	ID        string    `json:"id"`
	ProgramID string    `json:"program_id"`
	Time      string    `json:"time"` // HH:MM format
	GymID     string    `json:"gym_id"`
	Days      []Weekday `json:"days"`
	StartDate string    `json:"start_date"`         // YYYY-MM-DD format
	EndDate   string    `json:"end_date,omitempty"` // empty means open-ended
	Notes     string    `json:"notes,omitempty"`
}

func (r RecurringSession) Slot() SessionSlot {
	return SessionSlot{ProgramID: r.ProgramID, Time: r.Time, GymID: r.GymID, Notes: r.Notes}
}

func (r RecurringSession) OnDay(day Weekday) bool {
	for _, d := range r.Days {
		if d == day {
			return true
		}
	}
	return false
}

// ScheduleOverride replaces every fixed and recurring session on its date.
// An empty Sessions list clears the day.
type ScheduleOverride struct {
	Date     string        `json:"date"` // YYYY-MM-DD format
	Sessions []SessionSlot `json:"sessions"`
}

// Provenance records which schedule source produced a resolved session.
type Provenance string

const (
	SourceOverride  Provenance = "override"
	SourceFixed     Provenance = "fixed"
	SourceRecurring Provenance = "recurring"
)

// ResolvedSession is a session as it actually occurs on a date.
type ResolvedSession struct {
	SessionSlot
	Source Provenance `json:"source"`
}
