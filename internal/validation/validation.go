package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jugucan/gymsched/internal/dates"
	"github.com/jugucan/gymsched/internal/models"
)

// ConflictType represents the kind of integrity problem found
type ConflictType string

const (
	ConflictDuplicateStartDate ConflictType = "duplicate_start_date"
	ConflictDuplicateID        ConflictType = "duplicate_id"
	ConflictInvalidDate        ConflictType = "invalid_date"
	ConflictInvalidTime        ConflictType = "invalid_time"
	ConflictInvalidRange       ConflictType = "invalid_range"
	ConflictEmptyDays          ConflictType = "empty_days"
	ConflictUnknownProgram     ConflictType = "unknown_program"
	ConflictUnknownGym         ConflictType = "unknown_gym"
)

// Conflict is a single integrity warning. Resolution never depends on it:
// the scheduler tolerates every record flagged here.
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // date key, when the record has a usable one
	Items       []string // ids of the records involved
}

type Result struct {
	Conflicts []Conflict
}

func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// FormatReport returns a human-readable list of the conflicts
func (r *Result) FormatReport() string {
	if !r.HasConflicts() {
		return "No conflicts detected."
	}
	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range r.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// Count returns how many conflicts of type t were found.
func (r *Result) Count(t ConflictType) int {
	n := 0
	for _, c := range r.Conflicts {
		if c.Type == t {
			n++
		}
	}
	return n
}

func (r *Result) add(t ConflictType, date string, items []string, format string, args ...any) {
	r.Conflicts = append(r.Conflicts, Conflict{
		Type:        t,
		Description: fmt.Sprintf(format, args...),
		Date:        date,
		Items:       items,
	})
}

type Validator struct {
	dates *dates.Normalizer
}

func New(n *dates.Normalizer) *Validator {
	if n == nil {
		n = dates.New(nil)
	}
	return &Validator{dates: n}
}

// Validate checks every collection of snap and returns the warnings in a
// stable order: catalogue first, then schedules, then per-date records.
func (v *Validator) Validate(snap models.Snapshot) Result {
	r := Result{Conflicts: []Conflict{}}
	programs := snap.ProgramsByID()
	gyms := snap.GymsByID()

	v.checkDuplicateIDs(&r, snap)
	v.checkGyms(&r, snap.Gyms)
	v.checkFixed(&r, snap.FixedSchedules, programs, gyms)
	v.checkRecurring(&r, snap.RecurringSessions, programs, gyms)
	v.checkOverrides(&r, snap.Overrides, programs, gyms)

	for _, c := range snap.Closures {
		if v.dates.ToDateKey(c.Date) == "" {
			r.add(ConflictInvalidDate, "", nil, "Closure %q has invalid date: %q", c.Reason, c.Date)
		}
	}
	for _, m := range snap.MissedDays {
		key := v.dates.ToDateKey(m.Date)
		if key == "" {
			r.add(ConflictInvalidDate, "", []string{m.ID}, "Missed day %s has invalid date: %q", m.ID, m.Date)
		}
		if m.GymID != "" && m.GymID != models.AllGyms {
			if _, ok := gyms[m.GymID]; !ok {
				r.add(ConflictUnknownGym, key, []string{m.ID}, "Missed day %s references unknown gym %q", displayDate(key, m.Date), m.GymID)
			}
		}
	}
	return r
}

func (v *Validator) checkDuplicateIDs(r *Result, snap models.Snapshot) {
	seen := map[string]bool{}
	for _, p := range snap.Programs {
		if seen[p.ID] {
			r.add(ConflictDuplicateID, "", []string{p.ID}, "Duplicate program id %q (the first record is used)", p.ID)
		}
		seen[p.ID] = true
	}
	seen = map[string]bool{}
	for _, g := range snap.Gyms {
		if seen[g.ID] {
			r.add(ConflictDuplicateID, "", []string{g.ID}, "Duplicate gym id %q (the first record is used)", g.ID)
		}
		seen[g.ID] = true
	}
}

func (v *Validator) checkGyms(r *Result, gyms []models.Gym) {
	for _, g := range gyms {
		for _, d := range g.HolidaysTaken {
			if v.dates.ToDateKey(d) == "" {
				r.add(ConflictInvalidDate, "", []string{g.ID}, "Gym %q has invalid holiday date: %q", g.ID, d)
			}
		}
		if g.VacationDays < 0 {
			r.add(ConflictInvalidRange, "", []string{g.ID}, "Gym %q has a negative vacation allotment: %d", g.ID, g.VacationDays)
		}
	}
}

func (v *Validator) checkFixed(r *Result, versions []models.FixedSchedule, programs map[string]models.Program, gyms map[string]models.Gym) {
	byStart := map[string][]string{}
	for _, f := range versions {
		key := v.dates.ToDateKey(f.StartDate)
		if key == "" {
			r.add(ConflictInvalidDate, "", []string{f.ID}, "Fixed schedule %s has invalid start date: %q", f.ID, f.StartDate)
		} else {
			byStart[key] = append(byStart[key], f.ID)
		}
		for _, day := range models.AllWeekdays {
			for _, slot := range f.Schedule[day] {
				where := fmt.Sprintf("Fixed schedule %s (%s)", f.ID, day)
				v.checkSlot(r, key, f.ID, where, slot, programs, gyms)
			}
		}
	}

	starts := make([]string, 0, len(byStart))
	for k, ids := range byStart {
		if len(ids) > 1 {
			starts = append(starts, k)
		}
	}
	sort.Strings(starts)
	for _, k := range starts {
		ids := byStart[k]
		r.add(ConflictDuplicateStartDate, k, ids, "Fixed schedules %s share start date %s (the last one wins)", strings.Join(ids, ", "), k)
	}
}

func (v *Validator) checkRecurring(r *Result, recurring []models.RecurringSession, programs map[string]models.Program, gyms map[string]models.Gym) {
	for _, rec := range recurring {
		start, startOK := v.dates.NormalizeToStartOfDay(rec.StartDate)
		if !startOK {
			r.add(ConflictInvalidDate, "", []string{rec.ID}, "Recurring session %s has invalid start date: %q", rec.ID, rec.StartDate)
		}
		if rec.EndDate != "" {
			end, endOK := v.dates.NormalizeToStartOfDay(rec.EndDate)
			switch {
			case !endOK:
				r.add(ConflictInvalidDate, "", []string{rec.ID}, "Recurring session %s has invalid end date: %q", rec.ID, rec.EndDate)
			case startOK && end.Before(start):
				r.add(ConflictInvalidRange, "", []string{rec.ID}, "Recurring session %s ends (%s) before it starts (%s)", rec.ID, rec.EndDate, rec.StartDate)
			}
		}
		if len(rec.Days) == 0 {
			r.add(ConflictEmptyDays, "", []string{rec.ID}, "Recurring session %s has no weekdays and never occurs", rec.ID)
		}
		v.checkSlot(r, "", rec.ID, "Recurring session "+rec.ID, rec.Slot(), programs, gyms)
	}
}

func (v *Validator) checkOverrides(r *Result, overrides []models.ScheduleOverride, programs map[string]models.Program, gyms map[string]models.Gym) {
	seen := map[string]bool{}
	for _, o := range overrides {
		key := v.dates.ToDateKey(o.Date)
		if key == "" {
			r.add(ConflictInvalidDate, "", nil, "Override has invalid date: %q", o.Date)
		} else if seen[key] {
			r.add(ConflictDuplicateID, key, nil, "Duplicate override for %s (the first one is used)", key)
		}
		seen[key] = true
		for _, slot := range o.Sessions {
			v.checkSlot(r, key, "", "Override "+displayDate(key, o.Date), slot, programs, gyms)
		}
	}
}

func (v *Validator) checkSlot(r *Result, date, id, where string, slot models.SessionSlot, programs map[string]models.Program, gyms map[string]models.Gym) {
	items := []string{}
	if id != "" {
		items = append(items, id)
	}
	if !dates.ValidTime(slot.Time) {
		r.add(ConflictInvalidTime, date, items, "%s has invalid time: %q", where, slot.Time)
	}
	if _, ok := programs[slot.ProgramID]; !ok {
		r.add(ConflictUnknownProgram, date, items, "%s references unknown program %q", where, slot.ProgramID)
	}
	if _, ok := gyms[slot.GymID]; !ok {
		r.add(ConflictUnknownGym, date, items, "%s references unknown gym %q", where, slot.GymID)
	}
}

func displayDate(key, raw string) string {
	if key != "" {
		return key
	}
	return raw
}
