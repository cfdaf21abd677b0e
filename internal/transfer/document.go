// Package transfer moves the whole schedule dataset in and out of a YAML
// document.
package transfer

import (
	"fmt"
	"slices"

	"github.com/jugucan/gymsched/internal/dates"
	"github.com/jugucan/gymsched/internal/models"
	"golang.org/x/exp/maps"
)

const DocumentVersion = 1

// Document is the on-disk shape. Dates are kept raw so an import accepts
// every form the normalizer understands, including {seconds, nanoseconds}
// objects exported by document stores.
type Document struct {
	Version           int            `yaml:"version"`
	ExportedAt        string         `yaml:"exported_at,omitempty"`
	Settings          *settingsDoc   `yaml:"settings,omitempty"`
	Programs          []programDoc   `yaml:"programs,omitempty"`
	Gyms              []gymDoc       `yaml:"gyms,omitempty"`
	Closures          []closureDoc   `yaml:"closures,omitempty"`
	FixedSchedules    []fixedDoc     `yaml:"fixed_schedules,omitempty"`
	RecurringSessions []recurringDoc `yaml:"recurring_sessions,omitempty"`
	Overrides         []overrideDoc  `yaml:"overrides,omitempty"`
	MissedDays        []missedDoc    `yaml:"missed_days,omitempty"`
}

type settingsDoc struct {
	Timezone       string `yaml:"timezone,omitempty"`
	SessionMinutes int    `yaml:"session_minutes,omitempty"`
}

type programDoc struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	ShortName   string    `yaml:"short_name,omitempty"`
	Color       string    `yaml:"color,omitempty"`
	ReleaseDate dates.Raw `yaml:"release_date,omitempty"`
}

type gymDoc struct {
	ID            string      `yaml:"id"`
	Name          string      `yaml:"name"`
	WorkDays      []string    `yaml:"work_days,omitempty"`
	VacationDays  int         `yaml:"vacation_days,omitempty"`
	HolidaysTaken []dates.Raw `yaml:"holidays_taken,omitempty"`
}

type closureDoc struct {
	Date   dates.Raw `yaml:"date"`
	Reason string    `yaml:"reason,omitempty"`
}

type slotDoc struct {
	Program string `yaml:"program"`
	Time    string `yaml:"time"`
	Gym     string `yaml:"gym"`
	Notes   string `yaml:"notes,omitempty"`
}

type fixedDoc struct {
	ID        string               `yaml:"id,omitempty"`
	StartDate dates.Raw            `yaml:"start_date"`
	Schedule  map[string][]slotDoc `yaml:"schedule"`
}

type recurringDoc struct {
	ID        string    `yaml:"id,omitempty"`
	Program   string    `yaml:"program"`
	Time      string    `yaml:"time"`
	Gym       string    `yaml:"gym"`
	Days      []string  `yaml:"days"`
	StartDate dates.Raw `yaml:"start_date"`
	EndDate   dates.Raw `yaml:"end_date,omitempty"`
	Notes     string    `yaml:"notes,omitempty"`
}

type overrideDoc struct {
	Date     dates.Raw `yaml:"date"`
	Sessions []slotDoc `yaml:"sessions"`
}

type missedDoc struct {
	ID    string    `yaml:"id,omitempty"`
	Date  dates.Raw `yaml:"date"`
	Gym   string    `yaml:"gym,omitempty"`
	Notes string    `yaml:"notes,omitempty"`
}

func slotToDoc(s models.SessionSlot) slotDoc {
	return slotDoc{Program: s.ProgramID, Time: s.Time, Gym: s.GymID, Notes: s.Notes}
}

func (s slotDoc) model() models.SessionSlot {
	return models.SessionSlot{ProgramID: s.Program, Time: s.Time, GymID: s.Gym, Notes: s.Notes}
}

func slotsToDoc(slots []models.SessionSlot) []slotDoc {
	out := make([]slotDoc, 0, len(slots))
	for _, s := range slots {
		out = append(out, slotToDoc(s))
	}
	return out
}

func slotsFromDoc(slots []slotDoc) []models.SessionSlot {
	out := make([]models.SessionSlot, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.model())
	}
	return out
}

func weekdayNames(days []models.Weekday) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, d.String())
	}
	return out
}

func parseWeekdays(names []string) ([]models.Weekday, error) {
	out := make([]models.Weekday, 0, len(names))
	for _, n := range names {
		d, err := models.ParseWeekday(n)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// keyOrRaw writes a stored date as its canonical key, leaving values the
// normalizer rejects untouched so an export never loses data.
func keyOrRaw(n *dates.Normalizer, s string) dates.Raw {
	if s == "" {
		return dates.Raw{}
	}
	if key := n.ToDateKey(s); key != "" {
		return dates.RawString(key)
	}
	return dates.RawString(s)
}

// fromSnapshot builds a document from snap.
func fromSnapshot(n *dates.Normalizer, snap models.Snapshot, settings models.Settings) Document {
	doc := Document{
		Version:  DocumentVersion,
		Settings: &settingsDoc{Timezone: settings.Timezone, SessionMinutes: settings.SessionMinutes},
	}

	for _, p := range snap.Programs {
		doc.Programs = append(doc.Programs, programDoc{
			ID: p.ID, Name: p.Name, ShortName: p.ShortName, Color: p.Color,
			ReleaseDate: keyOrRaw(n, p.ReleaseDate),
		})
	}
	for _, g := range snap.Gyms {
		gd := gymDoc{ID: g.ID, Name: g.Name, WorkDays: weekdayNames(g.WorkDays), VacationDays: g.VacationDays}
		for _, h := range g.HolidaysTaken {
			gd.HolidaysTaken = append(gd.HolidaysTaken, keyOrRaw(n, h))
		}
		doc.Gyms = append(doc.Gyms, gd)
	}
	for _, c := range snap.Closures {
		doc.Closures = append(doc.Closures, closureDoc{Date: keyOrRaw(n, c.Date), Reason: c.Reason})
	}
	for _, f := range snap.FixedSchedules {
		fd := fixedDoc{ID: f.ID, StartDate: keyOrRaw(n, f.StartDate), Schedule: map[string][]slotDoc{}}
		for _, d := range models.AllWeekdays {
			if slots := f.Schedule[d]; len(slots) > 0 {
				fd.Schedule[d.String()] = slotsToDoc(slots)
			}
		}
		doc.FixedSchedules = append(doc.FixedSchedules, fd)
	}
	for _, r := range snap.RecurringSessions {
		doc.RecurringSessions = append(doc.RecurringSessions, recurringDoc{
			ID: r.ID, Program: r.ProgramID, Time: r.Time, Gym: r.GymID,
			Days:      weekdayNames(r.Days),
			StartDate: keyOrRaw(n, r.StartDate),
			EndDate:   keyOrRaw(n, r.EndDate),
			Notes:     r.Notes,
		})
	}
	for _, o := range snap.Overrides {
		doc.Overrides = append(doc.Overrides, overrideDoc{Date: keyOrRaw(n, o.Date), Sessions: slotsToDoc(o.Sessions)})
	}
	for _, m := range snap.MissedDays {
		doc.MissedDays = append(doc.MissedDays, missedDoc{ID: m.ID, Date: keyOrRaw(n, m.Date), Gym: m.GymID, Notes: m.Notes})
	}
	return doc
}

// schedule merges the day keys in name order, so aliases of one weekday
// (monday, dilluns, lunes) always append their slots in the same order.
func (f fixedDoc) schedule() (models.WeekdaySchedule, error) {
	out := models.WeekdaySchedule{}
	names := maps.Keys(f.Schedule)
	slices.Sort(names)
	for _, name := range names {
		d, err := models.ParseWeekday(name)
		if err != nil {
			return nil, fmt.Errorf("schedule %s: %w", f.ID, err)
		}
		out[d] = append(out[d], slotsFromDoc(f.Schedule[name])...)
	}
	return out, nil
}
